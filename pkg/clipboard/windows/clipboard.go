//go:build windows

// Package windows publishes data through the user32 clipboard and kernel32
// global memory API.
package windows

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/labi-le/richclip/pkg/clipboard/host"
	win "golang.org/x/sys/windows"
)

const Name = "nt10"

var errStillLocked = errors.New("global memory is still locked")

var _ host.Host = &Clipboard{}

// Clipboard is the Win32 host. OpenClipboard binds the clipboard to the
// calling thread, so a whole transaction must run on one locked OS thread.
type Clipboard struct{}

func New() *Clipboard {
	return new(Clipboard)
}

func (c *Clipboard) RegisterFormat(name string) (host.Format, error) {
	ptr, err := win.UTF16PtrFromString(name)
	if err != nil {
		return 0, fmt.Errorf("failed to register clipboard format %q: %w", name, err)
	}

	r, err := call(registerClipboardFormat, uintptr(unsafe.Pointer(ptr)))
	if r == 0 {
		return 0, failed("register clipboard format", err)
	}
	return host.Format(r), nil
}

func (c *Clipboard) Open() error {
	r, err := call(openClipboard, 0)
	if r == 0 {
		if err != nil {
			return fmt.Errorf("failed to open clipboard: %w: %w", host.ErrUnavailable, err)
		}
		return fmt.Errorf("failed to open clipboard: %w", host.ErrUnavailable)
	}
	return nil
}

func (c *Clipboard) Empty() error {
	r, err := call(emptyClipboard)
	if r == 0 {
		return failed("clear clipboard", err)
	}
	return nil
}

func (c *Clipboard) Close() error {
	r, err := call(closeClipboard)
	if r == 0 {
		return failed("close clipboard", err)
	}
	return nil
}

func (c *Clipboard) Alloc(size int) (host.Handle, error) {
	hMem, err := call(gAlloc, gmemMoveable|gmemZeroInit, uintptr(size))
	if hMem == 0 {
		return 0, failed("alloc global memory", err)
	}
	return host.Handle(hMem), nil
}

func (c *Clipboard) Lock(h host.Handle) ([]byte, error) {
	p, err := call(gLock, uintptr(h))
	if p == 0 {
		return nil, failed("lock global memory", err)
	}

	size, err := call(gSize, uintptr(h))
	if size == 0 {
		_, _ = call(gUnlock, uintptr(h))
		return nil, failed("size global memory", err)
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(p)), size), nil
}

// Unlock releases the lock taken by Lock. GlobalUnlock reports zero both on
// failure and when the lock count drops to zero, only the last error tells
// them apart.
func (c *Clipboard) Unlock(h host.Handle) error {
	r, err := call(gUnlock, uintptr(h))
	if r != 0 {
		return failed("unlock global memory", errStillLocked)
	}
	if err != nil {
		return failed("unlock global memory", err)
	}
	return nil
}

func (c *Clipboard) Free(h host.Handle) error {
	r, err := call(gFree, uintptr(h))
	if r != 0 {
		return failed("free global memory", err)
	}
	return nil
}

func (c *Clipboard) SetData(f host.Format, h host.Handle) error {
	r, err := call(setClipboardData, uintptr(f), uintptr(h))
	if r == 0 {
		return failed(fmt.Sprintf("set clipboard data (format %d)", f), err)
	}
	return nil
}

func (c *Clipboard) Name() string {
	return Name
}

// call invokes p and drops the ERROR_SUCCESS value Call always returns.
func call(p *win.LazyProc, args ...uintptr) (uintptr, error) {
	r, _, err := p.Call(args...)
	if errors.Is(err, win.ERROR_SUCCESS) {
		err = nil
	}
	return r, err
}

func failed(op string, err error) error {
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	return fmt.Errorf("failed to %s", op)
}
