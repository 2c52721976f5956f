// Package output provides CLI output formatting utilities
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Printer handles formatted output to the terminal. Screens render to out;
// feedback and errors go to err so piped output stays clean.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter creates a printer writing to stdout/stderr with colors enabled
// unless NO_COLOR is set.
func NewPrinter() *Printer {
	return NewPrinterWithWriters(os.Stdout, os.Stderr, os.Getenv("NO_COLOR") == "")
}

// NewPrinterWithWriters creates a printer with custom writers. Used in tests.
func NewPrinterWithWriters(out, err io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: err, useColors: useColors}
}

// Out returns the screen writer.
func (p *Printer) Out() io.Writer { return p.out }

// Printf writes formatted screen output.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a screen line.
func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Heading writes a section heading.
func (p *Printer) Heading(text string) {
	if p.useColors {
		text = color.New(color.Bold, color.FgCyan).Sprint(text)
	}
	fmt.Fprintln(p.out, text)
}

// Success writes positive inline feedback.
func (p *Printer) Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.useColors {
		msg = color.GreenString(msg)
	}
	fmt.Fprintln(p.err, msg)
}

// Warn writes a non-fatal notice.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.useColors {
		msg = color.YellowString(msg)
	}
	fmt.Fprintln(p.err, msg)
}

// Error writes an inline error banner. The message is expected to already be
// human-readable; raw transport errors never reach here.
func (p *Printer) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.useColors {
		msg = color.RedString(msg)
	}
	fmt.Fprintln(p.err, msg)
}
