package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/labi-le/richclip/pkg/cfhtml"
	"github.com/labi-le/richclip/pkg/clipboard/host"
	"github.com/labi-le/richclip/pkg/clipboard/null"
	"github.com/labi-le/richclip/pkg/htmlclip"
	"github.com/labi-le/richclip/pkg/textenc"
)

var errNoHTML = errors.New("no html representation on the clipboard")

// dryRun publishes to an in-memory clipboard and prints what landed there.
// A payload that cannot be read back is not a publish failure and is
// reported as htmlclip.StatusUnknown.
func dryRun(w io.Writer, content htmlclip.Content, opts []htmlclip.Option) htmlclip.Status {
	board := null.NewNull()

	if s := htmlclip.New(board, opts...).PublishHTML(content.HTML, content.Text); s != htmlclip.StatusOK {
		return s
	}

	if err := printPayload(w, board); err != nil {
		_, _ = fmt.Fprintf(w, "read back: %v\n", err)
		return htmlclip.StatusUnknown
	}
	return htmlclip.StatusOK
}

func printPayload(w io.Writer, board *null.Clipboard) error {
	format, ok := board.Format(cfhtml.FormatName)
	if !ok {
		return errNoHTML
	}
	desc, ok := board.Data(format)
	if !ok {
		return errNoHTML
	}

	hdr, err := cfhtml.Parse(desc)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "%s (0x%04X), %s\n", cfhtml.FormatName, uint32(format), humanize.IBytes(uint64(len(desc))))
	_, _ = fmt.Fprintf(w, "html [%d, %d) fragment [%d, %d)\n",
		hdr.StartHTML, hdr.EndHTML, hdr.StartFragment, hdr.EndFragment)
	_, _ = fmt.Fprintf(w, "%s\n", desc)

	raw, ok := board.Data(host.FormatUnicodeText)
	if !ok {
		return nil
	}

	text, err := textenc.DecodeUTF16(raw)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "unicode text, %s\n%s\n", humanize.IBytes(uint64(len(raw))), text)

	return nil
}
