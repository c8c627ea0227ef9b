package cfhtml

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

var ErrMalformed = errors.New("cfhtml: malformed descriptor")

// Header is the parsed key/value block of a descriptor.
type Header struct {
	Version   string
	SourceURL string
	Offsets
}

// Document returns the [StartHTML, EndHTML) range of desc.
func (h Header) Document(desc []byte) []byte {
	return desc[h.StartHTML:h.EndHTML]
}

// Fragment returns the [StartFragment, EndFragment) range of desc.
func (h Header) Fragment(desc []byte) []byte {
	return desc[h.StartFragment:h.EndFragment]
}

const (
	seenStartHTML = 1 << iota
	seenEndHTML
	seenStartFragment
	seenEndFragment

	seenAll = seenStartHTML | seenEndHTML | seenStartFragment | seenEndFragment
)

// Parse reads the header of desc and checks that its offsets describe
// ranges inside desc. Unknown keys are skipped.
func Parse(desc []byte) (Header, error) {
	var (
		h    Header
		seen int
		rest = desc
	)

	for len(rest) > 0 && rest[0] != '<' {
		line, tail, found := bytes.Cut(rest, []byte{'\n'})
		if !found {
			return h, fmt.Errorf("%w: unterminated header", ErrMalformed)
		}
		rest = tail
		line = bytes.TrimSuffix(line, []byte{'\r'})

		key, val, ok := bytes.Cut(line, []byte{':'})
		if !ok {
			return h, fmt.Errorf("%w: header line %q", ErrMalformed, line)
		}

		var (
			dst *int
			bit int
		)
		switch string(key) {
		case "Version":
			h.Version = string(val)
			continue
		case "SourceURL":
			h.SourceURL = string(val)
			continue
		case "StartHTML":
			dst, bit = &h.StartHTML, seenStartHTML
		case "EndHTML":
			dst, bit = &h.EndHTML, seenEndHTML
		case "StartFragment":
			dst, bit = &h.StartFragment, seenStartFragment
		case "EndFragment":
			dst, bit = &h.EndFragment, seenEndFragment
		default:
			continue
		}

		n, err := strconv.Atoi(string(val))
		if err != nil {
			return h, fmt.Errorf("%w: %s: %w", ErrMalformed, key, err)
		}
		*dst = n
		seen |= bit
	}

	if seen != seenAll {
		return h, fmt.Errorf("%w: missing offset fields", ErrMalformed)
	}

	if h.StartHTML < 0 ||
		h.StartHTML > h.StartFragment ||
		h.StartFragment > h.EndFragment ||
		h.EndFragment > h.EndHTML ||
		h.EndHTML > len(desc) {
		return h, fmt.Errorf("%w: offsets %+v out of range for %d bytes", ErrMalformed, h.Offsets, len(desc))
	}

	return h, nil
}
