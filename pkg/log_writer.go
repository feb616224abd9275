package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// LogWriter copies every log line to all its sinks, e.g. stdout and a rotated file.
// A failing sink does not stop the others from getting the line.
type LogWriter struct {
	sinks []io.Writer
}

func NewLogWriter(sinks ...io.Writer) *LogWriter {
	return &LogWriter{
		sinks: sinks,
	}
}

func (lw *LogWriter) Sinks() int {
	return len(lw.sinks)
}

// Write reports len(p) only when every sink took the whole line; otherwise it
// returns the smallest count written and the errors of all failing sinks.
func (lw *LogWriter) Write(p []byte) (int, error) {
	written := len(p)
	var errs error
	for _, sink := range lw.sinks {
		n, err := sink.Write(p)
		if err == nil && n < len(p) {
			err = io.ErrShortWrite
		}
		if err != nil {
			errs = multierr.Append(errs, err)
		}
		written = min(written, n)
	}
	return written, errs
}
