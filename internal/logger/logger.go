// Package logger builds the zerolog logger shared by every component.
// Each entry is one JSON object per line with a "ts" timestamp and a "level".
package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.TimestampFieldName = "ts"
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// New returns a JSON logger writing to w. Unknown levels fall back to info.
// Timestamps are rendered in loc; a nil loc means UTC.
func New(w io.Writer, level string, loc *time.Location) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if loc == nil {
		loc = time.UTC
	}

	return zerolog.New(w).
		Level(lvl).
		Hook(tsHook{loc: loc})
}

// tsHook stamps the event time in a fixed location. zerolog's own Timestamp()
// reads a package-level clock, which would make the location process-global.
type tsHook struct {
	loc *time.Location
}

func (h tsHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Time(zerolog.TimestampFieldName, time.Now().In(h.loc))
}

// Location resolves a timezone name, falling back to UTC.
func Location(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
