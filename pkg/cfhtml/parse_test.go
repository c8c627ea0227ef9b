package cfhtml_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/labi-le/richclip/pkg/cfhtml"
)

func TestParse(t *testing.T) {
	h, err := cfhtml.Parse([]byte(goldenBold))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := cfhtml.Header{
		Version: "0.9",
		Offsets: cfhtml.Offsets{StartHTML: 97, EndHTML: 180, StartFragment: 133, EndFragment: 142},
	}
	if diff := cmp.Diff(want, h); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_UnknownKeys(t *testing.T) {
	desc := "Version:1.0\r\n" +
		"StartHTML:00000000\r\n" +
		"EndHTML:00000000\r\n" +
		"StartFragment:00000000\r\n" +
		"EndFragment:00000000\r\n" +
		"StartSelection:-1\r\n" +
		"EndSelection:-1\r\n"

	h, err := cfhtml.Parse([]byte(desc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if h.Version != "1.0" {
		t.Errorf("Version = %q, want 1.0", h.Version)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		desc string
	}{
		{"empty", ""},
		{"document only", "<html></html>"},
		{"unterminated", "Version:0.9"},
		{"no colon", "Version 0.9\r\n<html>"},
		{"not a number", "StartHTML:abc\r\nEndHTML:1\r\nStartFragment:0\r\nEndFragment:0\r\n<"},
		{"missing field", "StartHTML:0\r\nEndHTML:1\r\nStartFragment:0\r\n<"},
		{"past end", "StartHTML:0\r\nEndHTML:999\r\nStartFragment:0\r\nEndFragment:0\r\n<"},
		{"fragment before html", "StartHTML:10\r\nEndHTML:20\r\nStartFragment:5\r\nEndFragment:6\r\n<html>...........</html>"},
		{"reversed fragment", "StartHTML:0\r\nEndHTML:20\r\nStartFragment:9\r\nEndFragment:8\r\n<html>...........</html>"},
		{"negative", "StartHTML:-1\r\nEndHTML:20\r\nStartFragment:0\r\nEndFragment:0\r\n<html>...........</html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := cfhtml.Parse([]byte(tt.desc)); !errors.Is(err, cfhtml.ErrMalformed) {
				t.Errorf("Parse() error = %v, want %v", err, cfhtml.ErrMalformed)
			}
		})
	}
}
