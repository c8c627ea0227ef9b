package htmlclip

import (
	"errors"
	"fmt"
)

// Status is the numeric outcome of a publish. Every failure point has its
// own code; codes never change meaning.
type Status int

const (
	StatusOK Status = 0

	StatusBuildFailed    Status = -1 // descriptor could not be built
	StatusTextInvalid    Status = -2 // fallback text cannot be encoded
	StatusRegisterFailed Status = -3 // HTML format id could not be resolved
	StatusAcquireFailed  Status = -4 // clipboard held by someone else
	StatusClearFailed    Status = -5

	StatusHTMLAllocFailed   Status = -6
	StatusHTMLLockFailed    Status = -7
	StatusHTMLUnlockFailed  Status = -8
	StatusHTMLInstallFailed Status = -9

	// HTML is on the clipboard, the fallback is not.
	StatusTextAllocFailed   Status = -10
	StatusTextLockFailed    Status = -11
	StatusTextUnlockFailed  Status = -12
	StatusTextInstallFailed Status = -13

	StatusReleaseFailed Status = -14

	StatusUnknown Status = -100
)

// Kind groups statuses by the kind of failure.
type Kind int

const (
	KindNone Kind = iota
	KindBuild
	KindAllocation
	KindRegistration
	KindAcquisition
	KindClear
	KindLock
	KindInstall
	KindRelease
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBuild:
		return "build"
	case KindAllocation:
		return "allocation"
	case KindRegistration:
		return "registration"
	case KindAcquisition:
		return "acquisition"
	case KindClear:
		return "clear"
	case KindLock:
		return "lock"
	case KindInstall:
		return "install"
	case KindRelease:
		return "release"
	default:
		return "unknown"
	}
}

func (s Status) Kind() Kind {
	switch s {
	case StatusOK:
		return KindNone
	case StatusBuildFailed, StatusTextInvalid:
		return KindBuild
	case StatusRegisterFailed:
		return KindRegistration
	case StatusAcquireFailed:
		return KindAcquisition
	case StatusClearFailed:
		return KindClear
	case StatusHTMLAllocFailed, StatusTextAllocFailed:
		return KindAllocation
	case StatusHTMLLockFailed, StatusHTMLUnlockFailed, StatusTextLockFailed, StatusTextUnlockFailed:
		return KindLock
	case StatusHTMLInstallFailed, StatusTextInstallFailed:
		return KindInstall
	case StatusReleaseFailed:
		return KindRelease
	default:
		return KindUnknown
	}
}

// Partial reports whether the HTML representation was installed even though
// the publish failed.
func (s Status) Partial() bool {
	return s <= StatusTextAllocFailed && s >= StatusTextInstallFailed
}

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBuildFailed:
		return "build descriptor"
	case StatusTextInvalid:
		return "encode fallback text"
	case StatusRegisterFailed:
		return "register html format"
	case StatusAcquireFailed:
		return "open clipboard"
	case StatusClearFailed:
		return "clear clipboard"
	case StatusHTMLAllocFailed:
		return "alloc html block"
	case StatusHTMLLockFailed:
		return "lock html block"
	case StatusHTMLUnlockFailed:
		return "unlock html block"
	case StatusHTMLInstallFailed:
		return "install html"
	case StatusTextAllocFailed:
		return "alloc text block"
	case StatusTextLockFailed:
		return "lock text block"
	case StatusTextUnlockFailed:
		return "unlock text block"
	case StatusTextInstallFailed:
		return "install text"
	case StatusReleaseFailed:
		return "close clipboard"
	case StatusUnknown:
		return "publish"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Error is returned by Publish for every failure.
type Error struct {
	Status Status
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("htmlclip: %s: %v", e.Status, e.Err)
	}
	return "htmlclip: " + e.Status.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Partial reports whether HTML stayed on the clipboard.
func (e *Error) Partial() bool {
	return e.Status.Partial()
}

func newError(s Status, err error) error {
	return &Error{Status: s, Err: err}
}

// StatusOf maps an error returned by Publish back to its Status.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return StatusUnknown
}
