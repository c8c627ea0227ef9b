// Package cfhtml builds and reads the "HTML Format" clipboard descriptor:
// a fixed-width header of byte offsets followed by a wrapper document that
// surrounds the caller's fragment.
package cfhtml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// FormatName is the name the descriptor is registered under.
const FormatName = "HTML Format"

const (
	Version = "0.9"

	// MaxOffset is the largest value an offset field can carry.
	MaxOffset = 99999999

	fieldWidth  = 8
	placeholder = "00000000"
)

const (
	keyVersion       = "Version:"
	keyStartHTML     = "StartHTML:"
	keyEndHTML       = "EndHTML:"
	keyStartFragment = "StartFragment:"
	keyEndFragment   = "EndFragment:"
	keySourceURL     = "SourceURL:"

	crlf = "\r\n"

	docOpen     = "<html><body>" + crlf + startMarker + crlf
	docClose    = crlf + endMarker + crlf + "</body>" + crlf + "</html>"
	startMarker = "<!--StartFragment-->"
	endMarker   = "<!--EndFragment-->"
)

var (
	ErrTooLarge         = errors.New("cfhtml: descriptor exceeds offset field range")
	ErrInvalidSourceURL = errors.New("cfhtml: source url contains a line break")
)

// Offsets are byte positions inside a descriptor.
type Offsets struct {
	StartHTML     int
	EndHTML       int
	StartFragment int
	EndFragment   int
}

// fields returns the offsets in header order.
func (o Offsets) fields() [4]int {
	return [4]int{o.StartHTML, o.EndHTML, o.StartFragment, o.EndFragment}
}

type Option func(*options)

type options struct {
	sourceURL string
}

// WithSourceURL adds a SourceURL line to the header.
func WithSourceURL(url string) Option {
	return func(o *options) {
		o.sourceURL = url
	}
}

// Size reports the exact descriptor length for a fragment of n bytes.
func Size(n int, opts ...Option) int {
	return headerLen(collect(opts)) + len(docOpen) + n + len(docClose)
}

// Build resets dst and writes the descriptor for fragment into it.
//
// Positions are recorded while the body is written and formatted into the
// header afterwards, so the fragment may contain anything, markers included.
func Build(dst *bytes.Buffer, fragment []byte, opts ...Option) (Offsets, error) {
	o := collect(opts)
	if strings.ContainsAny(o.sourceURL, "\r\n") {
		return Offsets{}, ErrInvalidSourceURL
	}

	total := headerLen(o) + len(docOpen) + len(fragment) + len(docClose)
	if total > MaxOffset {
		return Offsets{}, fmt.Errorf("%w: %d bytes", ErrTooLarge, total)
	}

	dst.Reset()
	dst.Grow(total)

	dst.WriteString(keyVersion + Version + crlf)

	var slots [4]int
	for i, key := range [4]string{keyStartHTML, keyEndHTML, keyStartFragment, keyEndFragment} {
		dst.WriteString(key)
		slots[i] = dst.Len()
		dst.WriteString(placeholder + crlf)
	}

	if o.sourceURL != "" {
		dst.WriteString(keySourceURL + o.sourceURL + crlf)
	}

	var off Offsets
	off.StartHTML = dst.Len()
	dst.WriteString(docOpen)
	off.StartFragment = dst.Len()
	dst.Write(fragment)
	off.EndFragment = dst.Len()
	dst.WriteString(docClose)
	off.EndHTML = dst.Len()

	buf := dst.Bytes()
	for i, v := range off.fields() {
		putOffset(buf[slots[i]:], v)
	}

	return off, nil
}

// putOffset writes v as zero padded digits and terminates the field with '\r'.
func putOffset(dst []byte, v int) {
	_ = dst[fieldWidth]
	for i := fieldWidth - 1; i >= 0; i-- {
		dst[i] = byte('0' + v%10)
		v /= 10
	}
	dst[fieldWidth] = '\r'
}

func headerLen(o options) int {
	n := len(keyVersion + Version + crlf)
	n += len(keyStartHTML + keyEndHTML + keyStartFragment + keyEndFragment)
	n += 4 * (fieldWidth + len(crlf))
	if o.sourceURL != "" {
		n += len(keySourceURL) + len(o.sourceURL) + len(crlf)
	}
	return n
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
