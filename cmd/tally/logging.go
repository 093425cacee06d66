package main

import (
	stdlog "log"
	"strings"

	"github.com/rs/zerolog"
)

// stdLogger routes net/http server errors into the application logger.
func stdLogger(log *zerolog.Logger) *stdlog.Logger {
	return stdlog.New(errorWriter{log: log}, "", 0)
}

type errorWriter struct {
	log *zerolog.Logger
}

func (w errorWriter) Write(p []byte) (int, error) {
	w.log.Error().Str("component", "http").Msg(strings.TrimSpace(string(p)))
	return len(p), nil
}
