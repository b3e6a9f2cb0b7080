package normalize

import (
	"fmt"
	"io"
)

// Reporter receives the human-readable status lines of a run.
type Reporter interface {
	Status(line string)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(line string)

// Status calls f(line).
func (f ReporterFunc) Status(line string) { f(line) }

// WriterReporter prints each status line to w.
func WriterReporter(w io.Writer) Reporter {
	return ReporterFunc(func(line string) {
		fmt.Fprintln(w, line)
	})
}

type nopReporter struct{}

func (nopReporter) Status(string) {}
