//go:build windows

package windows

import win "golang.org/x/sys/windows"

const (
	gmemMoveable = 0x0002
	gmemZeroInit = 0x0040
)

// Win32 API
var (
	user32   = win.NewLazySystemDLL("user32.dll")
	kernel32 = win.NewLazySystemDLL("kernel32.dll")

	registerClipboardFormat = user32.NewProc("RegisterClipboardFormatW")
	openClipboard           = user32.NewProc("OpenClipboard")
	closeClipboard          = user32.NewProc("CloseClipboard")
	emptyClipboard          = user32.NewProc("EmptyClipboard")
	getClipboardData        = user32.NewProc("GetClipboardData")
	setClipboardData        = user32.NewProc("SetClipboardData")

	gAlloc  = kernel32.NewProc("GlobalAlloc")
	gLock   = kernel32.NewProc("GlobalLock")
	gUnlock = kernel32.NewProc("GlobalUnlock")
	gFree   = kernel32.NewProc("GlobalFree")
	gSize   = kernel32.NewProc("GlobalSize")
)
