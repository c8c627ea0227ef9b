package cfhtml_test

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/labi-le/richclip/pkg/cfhtml"
)

const goldenBold = "Version:0.9\r\n" +
	"StartHTML:00000097\r\n" +
	"EndHTML:00000180\r\n" +
	"StartFragment:00000133\r\n" +
	"EndFragment:00000142\r\n" +
	"<html><body>\r\n" +
	"<!--StartFragment-->\r\n" +
	"<b>hi</b>\r\n" +
	"<!--EndFragment-->\r\n" +
	"</body>\r\n" +
	"</html>"

func descriptor(fragment []byte, opts ...cfhtml.Option) ([]byte, error) {
	var buf bytes.Buffer
	_, err := cfhtml.Build(&buf, fragment, opts...)
	return buf.Bytes(), err
}

func TestBuild_Golden(t *testing.T) {
	var buf bytes.Buffer

	off, err := cfhtml.Build(&buf, []byte("<b>hi</b>"))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if diff := cmp.Diff(goldenBold, buf.String()); diff != "" {
		t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
	}

	want := cfhtml.Offsets{StartHTML: 97, EndHTML: 180, StartFragment: 133, EndFragment: 142}
	if diff := cmp.Diff(want, off); diff != "" {
		t.Errorf("offsets mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_Offsets(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
	}{
		{"empty", ""},
		{"bold", "<b>hi</b>"},
		{"nested html tag", "<html><body><p>inner</p></body></html>"},
		{"start marker inside", "a<!--StartFragment-->b"},
		{"end marker inside", "<!--EndFragment-->tail"},
		{"both markers reversed", "<!--EndFragment--><!--StartFragment-->"},
		{"line breaks", "line1\r\nline2\nline3\r"},
		{"non ascii", "<i>кириллица 👋</i>"},
		{"header lookalike", "StartHTML:12345678\r\nEndHTML:00000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			off, err := cfhtml.Build(&buf, []byte(tt.fragment))
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			desc := buf.Bytes()

			h, err := cfhtml.Parse(desc)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(off, h.Offsets); diff != "" {
				t.Errorf("parsed offsets differ (-built +parsed):\n%s", diff)
			}

			if off.EndHTML != len(desc) {
				t.Errorf("EndHTML = %d, want %d", off.EndHTML, len(desc))
			}
			if got := string(h.Fragment(desc)); got != tt.fragment {
				t.Errorf("Fragment() = %q, want %q", got, tt.fragment)
			}

			doc := h.Document(desc)
			if !bytes.HasPrefix(doc, []byte("<html><body>")) || !bytes.HasSuffix(doc, []byte("</html>")) {
				t.Errorf("Document() = %q, want a complete wrapper document", doc)
			}
			if !bytes.HasSuffix(desc[:off.StartFragment], []byte("<!--StartFragment-->\r\n")) {
				t.Errorf("StartFragment %d does not follow the start marker", off.StartFragment)
			}
			if !bytes.HasPrefix(desc[off.EndFragment:], []byte("\r\n<!--EndFragment-->")) {
				t.Errorf("EndFragment %d does not precede the end marker", off.EndFragment)
			}
			if got := cfhtml.Size(len(tt.fragment)); got != len(desc) {
				t.Errorf("Size() = %d, want %d", got, len(desc))
			}
		})
	}
}

func TestBuild_EmptyFragment(t *testing.T) {
	var buf bytes.Buffer

	off, err := cfhtml.Build(&buf, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if off.StartFragment != off.EndFragment {
		t.Errorf("StartFragment = %d, EndFragment = %d, want an empty range", off.StartFragment, off.EndFragment)
	}
	if off.EndHTML != 171 {
		t.Errorf("EndHTML = %d, want 171", off.EndHTML)
	}
}

var fieldPattern = regexp.MustCompile(`(?m)^(StartHTML|EndHTML|StartFragment|EndFragment):([0-9]*)(\r?)\n`)

func TestBuild_FieldWidth(t *testing.T) {
	sizes := []int{0, 1, 9, 1 << 10, 1 << 16, 1 << 20, 10 << 20}

	for _, size := range sizes {
		t.Run(fmt.Sprint(size), func(t *testing.T) {
			if size > 1<<20 && testing.Short() {
				t.Skip("large fragment")
			}

			var buf bytes.Buffer
			if _, err := cfhtml.Build(&buf, bytes.Repeat([]byte{'x'}, size)); err != nil {
				t.Fatalf("Build() error = %v", err)
			}

			h, err := cfhtml.Parse(buf.Bytes())
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			header := buf.Bytes()[:h.StartHTML]
			fields := fieldPattern.FindAllSubmatch(header, -1)
			if len(fields) != 4 {
				t.Fatalf("found %d offset fields, want 4", len(fields))
			}
			for _, f := range fields {
				if len(f[2]) != 8 || len(f[3]) != 1 {
					t.Errorf("field %s = %q%q, want 8 digits and CR", f[1], f[2], f[3])
				}
			}
		})
	}
}

func TestBuild_Idempotent(t *testing.T) {
	fragment := []byte("<p>same <em>input</em></p>")

	first, err := descriptor(fragment)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var reused bytes.Buffer
	reused.WriteString(string(bytes.Repeat([]byte{0xAA}, 4096)))
	if _, err := cfhtml.Build(&reused, fragment); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if !bytes.Equal(first, reused.Bytes()) {
		t.Errorf("descriptors differ:\n%q\n%q", first, reused.Bytes())
	}
}

func TestBuild_SourceURL(t *testing.T) {
	const url = "https://example.com/page?a=1"

	desc, err := descriptor([]byte("<b>x</b>"), cfhtml.WithSourceURL(url))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	h, err := cfhtml.Parse(desc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if h.SourceURL != url {
		t.Errorf("SourceURL = %q, want %q", h.SourceURL, url)
	}
	if got := string(h.Fragment(desc)); got != "<b>x</b>" {
		t.Errorf("Fragment() = %q", got)
	}
	if got := cfhtml.Size(len("<b>x</b>"), cfhtml.WithSourceURL(url)); got != len(desc) {
		t.Errorf("Size() = %d, want %d", got, len(desc))
	}

	_, err = descriptor(nil, cfhtml.WithSourceURL("https://a\r\nStartHTML:1"))
	if !errors.Is(err, cfhtml.ErrInvalidSourceURL) {
		t.Errorf("Build() error = %v, want %v", err, cfhtml.ErrInvalidSourceURL)
	}
}

func TestBuild_OffsetBoundary(t *testing.T) {
	fits := cfhtml.MaxOffset - cfhtml.Size(0)

	var buf bytes.Buffer
	buf.WriteString("stale")

	_, err := cfhtml.Build(&buf, make([]byte, fits+1))
	if !errors.Is(err, cfhtml.ErrTooLarge) {
		t.Fatalf("Build() error = %v, want %v", err, cfhtml.ErrTooLarge)
	}
	if buf.String() != "stale" {
		t.Errorf("rejected build touched the buffer")
	}

	if testing.Short() {
		t.Skip("descriptor at the offset limit")
	}

	off, err := cfhtml.Build(&buf, make([]byte, fits))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if off.EndHTML != cfhtml.MaxOffset {
		t.Errorf("EndHTML = %d, want %d", off.EndHTML, cfhtml.MaxOffset)
	}
	if !bytes.Contains(buf.Bytes()[:off.StartHTML], []byte("EndHTML:99999999\r\n")) {
		t.Errorf("EndHTML field not written at full width")
	}
}

func BenchmarkBuild(b *testing.B) {
	for _, size := range []int{64, 64 << 10, 4 << 20} {
		b.Run(fmt.Sprint(size), func(b *testing.B) {
			fragment := bytes.Repeat([]byte("<b>x</b>"), size/8)
			var buf bytes.Buffer

			b.ReportAllocs()
			b.SetBytes(int64(len(fragment)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := cfhtml.Build(&buf, fragment); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
