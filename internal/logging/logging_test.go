package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want zerolog.Level
	}{
		{"default", Options{}, zerolog.WarnLevel},
		{"verbose", Options{Verbosity: 1}, zerolog.InfoLevel},
		{"very verbose", Options{Verbosity: 2}, zerolog.DebugLevel},
		{"extra flags saturate", Options{Verbosity: 5}, zerolog.TraceLevel},
		{"quiet", Options{Quiet: true}, zerolog.ErrorLevel},
		{"quiet beats verbose", Options{Quiet: true, Verbosity: 3}, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, levelFor(tt.opts))
		})
	}
}
