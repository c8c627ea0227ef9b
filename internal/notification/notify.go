package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog"
)

const title = "richclip"

type Notifier interface {
	Notify(message string, v ...any)
}

func New(enable bool, logger zerolog.Logger) Notifier {
	if !enable {
		return NullNotifier{}
	}
	return BeepDecorator{Title: title, Logger: logger}
}

type BeepDecorator struct {
	Title  string
	Logger zerolog.Logger
}

func (b BeepDecorator) Notify(message string, v ...any) {
	if err := beeep.Notify(b.Title, fmt.Sprintf(message, v...), ""); err != nil {
		b.Logger.Debug().Err(err).Msg("desktop notification")
	}
}

type NullNotifier struct{}

func (n NullNotifier) Notify(string, ...any) {}
