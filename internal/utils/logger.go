package utils

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func newConsoleLogger(w io.Writer) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.DateTime,
	}
	return zerolog.New(console).With().Timestamp().Logger()
}

func InitLogger(debug bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = newConsoleLogger(os.Stderr)
}

func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// SetLogOutput reroutes the global logger, used to keep log lines from
// tearing the in-place batch display.
func SetLogOutput(w io.Writer) {
	log.Logger = newConsoleLogger(w)
}
