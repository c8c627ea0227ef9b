package htmlclip_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/labi-le/richclip/pkg/htmlclip"
)

var allStatuses = []htmlclip.Status{
	htmlclip.StatusOK,
	htmlclip.StatusBuildFailed,
	htmlclip.StatusTextInvalid,
	htmlclip.StatusRegisterFailed,
	htmlclip.StatusAcquireFailed,
	htmlclip.StatusClearFailed,
	htmlclip.StatusHTMLAllocFailed,
	htmlclip.StatusHTMLLockFailed,
	htmlclip.StatusHTMLUnlockFailed,
	htmlclip.StatusHTMLInstallFailed,
	htmlclip.StatusTextAllocFailed,
	htmlclip.StatusTextLockFailed,
	htmlclip.StatusTextUnlockFailed,
	htmlclip.StatusTextInstallFailed,
	htmlclip.StatusReleaseFailed,
}

func TestStatus_Distinct(t *testing.T) {
	codes := make(map[htmlclip.Status]bool, len(allStatuses))
	names := make(map[string]bool, len(allStatuses))

	for _, s := range allStatuses {
		if codes[s] {
			t.Errorf("status code %d reused", s)
		}
		codes[s] = true

		if names[s.String()] {
			t.Errorf("status name %q reused", s)
		}
		names[s.String()] = true

		if s != htmlclip.StatusOK && s.Kind() == htmlclip.KindNone {
			t.Errorf("%s has no failure kind", s)
		}
	}
}

func TestStatus_Kind(t *testing.T) {
	tests := []struct {
		status  htmlclip.Status
		kind    htmlclip.Kind
		partial bool
	}{
		{htmlclip.StatusOK, htmlclip.KindNone, false},
		{htmlclip.StatusBuildFailed, htmlclip.KindBuild, false},
		{htmlclip.StatusAcquireFailed, htmlclip.KindAcquisition, false},
		{htmlclip.StatusClearFailed, htmlclip.KindClear, false},
		{htmlclip.StatusHTMLAllocFailed, htmlclip.KindAllocation, false},
		{htmlclip.StatusHTMLLockFailed, htmlclip.KindLock, false},
		{htmlclip.StatusHTMLInstallFailed, htmlclip.KindInstall, false},
		{htmlclip.StatusTextAllocFailed, htmlclip.KindAllocation, true},
		{htmlclip.StatusTextUnlockFailed, htmlclip.KindLock, true},
		{htmlclip.StatusTextInstallFailed, htmlclip.KindInstall, true},
		{htmlclip.StatusReleaseFailed, htmlclip.KindRelease, false},
		{htmlclip.StatusUnknown, htmlclip.KindUnknown, false},
		{htmlclip.Status(42), htmlclip.KindUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.Kind(); got != tt.kind {
				t.Errorf("Kind() = %s, want %s", got, tt.kind)
			}
			if got := tt.status.Partial(); got != tt.partial {
				t.Errorf("Partial() = %v, want %v", got, tt.partial)
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	base := errors.New("boom")
	wrapped := fmt.Errorf("caller: %w", &htmlclip.Error{Status: htmlclip.StatusClearFailed, Err: base})

	tests := []struct {
		name string
		err  error
		want htmlclip.Status
	}{
		{"nil", nil, htmlclip.StatusOK},
		{"foreign", base, htmlclip.StatusUnknown},
		{"wrapped", wrapped, htmlclip.StatusClearFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlclip.StatusOf(tt.err); got != tt.want {
				t.Errorf("StatusOf() = %s, want %s", got, tt.want)
			}
		})
	}

	if !errors.Is(wrapped, base) {
		t.Error("Error does not unwrap to its cause")
	}
}
