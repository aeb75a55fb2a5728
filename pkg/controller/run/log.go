package run

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/suzuki-shunsuke/leakreview/pkg/finding"
)

type colorFunc func(a ...any) string

// Logger prints findings for humans reading the CI log.
type Logger struct {
	stderr io.Writer
	red    colorFunc
	yellow colorFunc
}

func NewLogger(stderr io.Writer) *Logger {
	return &Logger{
		red:    color.New(color.FgRed).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
		stderr: stderr,
	}
}

func (l *Logger) Output(f *finding.Finding) {
	detector := f.Detector
	if detector == "" {
		detector = "unknown detector"
	}
	if f.Verified {
		detector = l.red(detector + ", verified")
	}
	fmt.Fprintf(l.stderr, `%s Secret detected (%s)
%s:%d
`, l.red("ERROR"), detector, f.File, f.Line)
	if f.Commit != "" {
		fmt.Fprintf(l.stderr, "%s %s\n", l.yellow("commit"), f.Commit)
	}
}
