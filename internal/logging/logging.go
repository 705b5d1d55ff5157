// Package logging builds the diagnostic logger shared by every pipeline
// stage. Diagnostics go to one stream, one line per event, prefixed by
// severity, so they never mix with generated output on stdout.
package logging

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

var levelPrefix = map[string]string{
	"info":  "INFO:",
	"warn":  "WARN:",
	"error": "ERR:",
}

// New returns a logger writing severity-prefixed lines to w.
func New(w io.Writer) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:     w,
		NoColor: true,
		PartsOrder: []string{
			zerolog.LevelFieldName,
			zerolog.MessageFieldName,
		},
		FormatLevel: func(level any) string {
			if prefix, ok := levelPrefix[fmt.Sprint(level)]; ok {
				return prefix
			}
			return fmt.Sprint(level) + ":"
		},
	}
	return zerolog.New(cw)
}
