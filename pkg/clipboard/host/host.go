// Package host describes the clipboard primitives a platform provides.
package host

import "errors"

// Format identifies a data representation inside the clipboard.
type Format uint32

// Handle is an OS shared memory block that can be handed to the clipboard.
type Handle uintptr

// FormatUnicodeText is the predefined UTF-16 plain text format.
const FormatUnicodeText Format = 13

var ErrUnavailable = errors.New("clipboard unavailable")

// Host is the set of primitives the platform provides for publishing data.
//
// Open takes the clipboard exclusively and fails immediately when another
// actor holds it. A block accepted by SetData belongs to the clipboard and
// must not be freed; any other allocated block must be released with Free.
// Lock exposes the block for writing; it must be unlocked before SetData.
type Host interface {
	RegisterFormat(name string) (Format, error)

	Open() error
	Empty() error
	Close() error

	Alloc(size int) (Handle, error)
	Lock(h Handle) ([]byte, error)
	Unlock(h Handle) error
	Free(h Handle) error

	SetData(f Format, h Handle) error

	Name() string
}
