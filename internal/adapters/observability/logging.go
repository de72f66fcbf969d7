package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns the process-wide logger with the service name attached
// to every line. APP_ENV=dev (or development) switches to a human-friendly
// console writer; anything else logs JSON.
func NewLogger(env string) zerolog.Logger {
	return newLogger(os.Stdout, env)
}

func newLogger(w io.Writer, env string) zerolog.Logger {
	if env == "dev" || env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().
		Timestamp().
		Str("service", "pousada-manicaca").
		Logger()
}
