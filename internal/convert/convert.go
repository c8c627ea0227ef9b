// Package convert prepares what the command line publishes: it sanitizes the
// fragment and derives a plain text fallback from it.
package convert

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/labi-le/richclip/pkg/strutil"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Mode string

const (
	ModeNone     Mode = ""
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
)

var ErrUnknownMode = errors.New("unknown conversion mode")

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeNone, ModeText, ModeMarkdown:
		return m, nil
	default:
		return ModeNone, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

var policy = bluemonday.UGCPolicy()

// Sanitize drops scripts, event handlers and anything else the user
// generated content policy does not allow.
func Sanitize(fragment []byte) []byte {
	return policy.SanitizeBytes(fragment)
}

// PlainText renders fragment as text for the fallback representation.
func PlainText(fragment []byte, mode Mode) (string, error) {
	switch mode {
	case ModeText:
		return extractText(fragment)
	case ModeMarkdown:
		return toMarkdown(fragment)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

func toMarkdown(fragment []byte) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			strikethrough.NewStrikethroughPlugin(),
			table.NewTablePlugin(),
		),
	)

	md, err := conv.ConvertString(strutil.BytesToString(fragment))
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}
	return md, nil
}

var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Li: true, atom.Tr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Table: true, atom.Blockquote: true, atom.Pre: true,
	atom.Section: true, atom.Article: true, atom.Header: true, atom.Footer: true,
}

func extractText(fragment []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var w textWriter
	w.walk(doc)
	return strings.TrimRight(w.sb.String(), "\n"), nil
}

type textWriter struct {
	sb    strings.Builder
	space bool
}

func (w *textWriter) walk(n *html.Node) {
	if n.Type == html.TextNode {
		w.text(n.Data)
		return
	}

	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Head, atom.Script, atom.Style, atom.Template, atom.Noscript:
			return
		case atom.Br:
			w.newline()
			return
		case atom.Td, atom.Th:
			w.space = true
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}

	if n.Type == html.ElementNode && blocks[n.DataAtom] {
		w.newline()
	}
}

func (w *textWriter) text(s string) {
	words := strings.Fields(s)
	if len(words) == 0 {
		if s != "" {
			w.space = true
		}
		return
	}

	if s[0] == ' ' || s[0] == '\t' || s[0] == '\n' || s[0] == '\r' {
		w.space = true
	}
	if w.space && w.sb.Len() > 0 && !w.atLineStart() {
		w.sb.WriteByte(' ')
	}
	w.sb.WriteString(strings.Join(words, " "))

	last := s[len(s)-1]
	w.space = last == ' ' || last == '\t' || last == '\n' || last == '\r'
}

func (w *textWriter) newline() {
	if w.sb.Len() > 0 && !w.atLineStart() {
		w.sb.WriteByte('\n')
	}
	w.space = false
}

func (w *textWriter) atLineStart() bool {
	s := w.sb.String()
	return s[len(s)-1] == '\n'
}
