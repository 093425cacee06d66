package support

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	CombinedLogFile = "combined.log"
	ErrorLogFile    = "error.log"

	consoleTimeFormat = "2006-01-02 15:04:05"
)

// ParseLevel maps a configured level name onto zerolog. Unknown names fall
// back to info and report ok=false.
func ParseLevel(name string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return zerolog.InfoLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	default:
		return zerolog.InfoLevel, false
	}
}

// NewLogger writes to the console and, when LogDir is set, to combined.log
// (every entry) and error.log (error and above). The cleanup closes the files.
func NewLogger(cfg Config) (*zerolog.Logger, func(), error) {
	return newLogger(cfg, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: consoleTimeFormat})
}

func newLogger(cfg Config, console io.Writer) (*zerolog.Logger, func(), error) {
	writers := []io.Writer{console}
	var files []io.Closer

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
			return nil, nil, errors.Wrapf(err, "can't create log directory %q", cfg.LogDir)
		}

		combined := &lumberjack.Logger{Filename: filepath.Join(cfg.LogDir, CombinedLogFile), MaxSize: 100, MaxBackups: 5}
		failures := &lumberjack.Logger{Filename: filepath.Join(cfg.LogDir, ErrorLogFile), MaxSize: 100, MaxBackups: 5}

		writers = append(writers, combined, levelFilter{Writer: failures, Minimum: zerolog.ErrorLevel})
		files = append(files, combined, failures)
	}

	level, known := ParseLevel(cfg.LogLevel)
	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	if !known {
		logger.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, using info")
	}

	cleanup := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	return &logger, cleanup, nil
}

// levelFilter drops entries below Minimum.
type levelFilter struct {
	io.Writer
	Minimum zerolog.Level
}

func (f levelFilter) Write(p []byte) (int, error) {
	return len(p), nil
}

func (f levelFilter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < f.Minimum || level == zerolog.NoLevel {
		return len(p), nil
	}
	return f.Writer.Write(p)
}
