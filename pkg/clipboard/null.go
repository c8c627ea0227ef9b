//go:build !windows

package clipboard

import (
	"github.com/labi-le/richclip/pkg/clipboard/host"
	"github.com/labi-le/richclip/pkg/clipboard/null"
	"github.com/rs/zerolog"
)

// New returns an in-memory host: there is no system clipboard to publish to
// outside of Windows.
func New(logger zerolog.Logger) host.Host {
	h := null.NewNull()
	logger.Warn().Str("host", h.Name()).Msg("system clipboard is not supported on this platform")
	return h
}
