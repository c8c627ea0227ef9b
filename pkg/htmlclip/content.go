package htmlclip

import (
	"github.com/cespare/xxhash"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// Content is what one publish puts on the clipboard. A nil Text installs
// the HTML representation only.
type Content struct {
	HTML []byte
	Text *string
}

func (c Content) MarshalZerologObject(e *zerolog.Event) {
	e.Str("html_size", humanize.Bytes(uint64(len(c.HTML))))
	e.Uint64("html_hash", xxhash.Sum64(c.HTML))
	e.Bool("fallback", c.Text != nil)
	if c.Text != nil {
		e.Int("text_length", len(*c.Text))
	}
}
