//go:build windows

package clipboard

import (
	"github.com/labi-le/richclip/pkg/clipboard/host"
	"github.com/labi-le/richclip/pkg/clipboard/windows"
	"github.com/rs/zerolog"
)

func New(zerolog.Logger) host.Host {
	return windows.New()
}
