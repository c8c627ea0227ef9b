//go:build !windows

package main

import (
	atotto "github.com/atotto/clipboard"
	"github.com/labi-le/richclip/pkg/htmlclip"
	"github.com/labi-le/richclip/pkg/ptr"
	"github.com/rs/zerolog"
)

var writeAll = atotto.WriteAll

// publish copies plain text only: the HTML clipboard format exists on
// windows alone. The fallback is preferred, the raw HTML is used without one.
// Nothing is installed when the copy fails, so the status is never partial.
func publish(content htmlclip.Content, _ []htmlclip.Option, logger zerolog.Logger) htmlclip.Status {
	text := ptr.ValueOr(content.Text, string(content.HTML))

	logger.Warn().Msg("html clipboard is not supported on this platform, copying plain text")

	if err := writeAll(text); err != nil {
		logger.Error().Err(err).Msg("plain text clipboard")
		return htmlclip.StatusUnknown
	}
	return htmlclip.StatusOK
}
