//go:build windows

package main

import (
	"github.com/labi-le/richclip/pkg/clipboard"
	"github.com/labi-le/richclip/pkg/htmlclip"
	"github.com/rs/zerolog"
)

func publish(content htmlclip.Content, opts []htmlclip.Option, logger zerolog.Logger) htmlclip.Status {
	return htmlclip.New(clipboard.New(logger), opts...).PublishHTML(content.HTML, content.Text)
}
