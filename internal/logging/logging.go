// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction from CLI flags.
type Options struct {
	// Verbosity raises the level: 0 warn, 1 info, 2 debug, 3+ trace.
	Verbosity int
	// Quiet drops everything below errors and wins over Verbosity.
	Quiet bool
	// FilePath additionally appends JSON logs to a rotated file.
	FilePath string
}

// Setup installs the global logger: human-readable console output on stderr,
// plus an optional rotated JSON file.
func Setup(opts Options) {
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}

	var out io.Writer = console
	if opts.FilePath != "" {
		out = zerolog.MultiLevelWriter(console, &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	log.Logger = zerolog.New(out).Level(levelFor(opts)).With().Timestamp().Logger()
}

func levelFor(opts Options) zerolog.Level {
	if opts.Quiet {
		return zerolog.ErrorLevel
	}
	switch opts.Verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
