package ctxlog

import (
	"github.com/rs/zerolog"
)

// Op tags every line of the returned logger with the operation name.
func Op(logger zerolog.Logger, op string) zerolog.Logger {
	return logger.With().Str("op", op).Logger()
}

// Tx tags every line of the returned logger with a transaction id.
func Tx(logger zerolog.Logger, tx int64) zerolog.Logger {
	return logger.With().Int64("tx", tx).Logger()
}
