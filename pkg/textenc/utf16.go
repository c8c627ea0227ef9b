// Package textenc encodes plain text the way the clipboard's Unicode text
// format stores it: UTF-16 little endian, NUL terminated.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// TerminatorSize is the width of the trailing NUL in bytes.
const TerminatorSize = 2

var ErrNUL = errors.New("textenc: text contains NUL")

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// UTF16 encodes s and appends the terminator. Invalid UTF-8 is replaced
// with U+FFFD.
func UTF16(s string) ([]byte, error) {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return nil, fmt.Errorf("%w at byte %d", ErrNUL, i)
	}

	b, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("textenc: encode: %w", err)
	}
	return append(b, 0, 0), nil
}

// DecodeUTF16 reverses UTF16, stopping at the first NUL code unit.
func DecodeUTF16(b []byte) (string, error) {
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			b = b[:i]
			break
		}
	}
	if len(b)%2 != 0 {
		return "", fmt.Errorf("textenc: odd length %d", len(b))
	}

	s, err := utf16le.NewDecoder().Bytes(bytes.Clone(b))
	if err != nil {
		return "", fmt.Errorf("textenc: decode: %w", err)
	}
	return string(s), nil
}
