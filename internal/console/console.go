// Package console is the presentation layer: colored prompts and status
// lines over an injectable reader/writer pair, so the interactive flow is
// testable without a real terminal.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Console reads line-oriented input and writes colored output.
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
	noColor bool
}

// New wraps in/out. With noColor set every paint is a no-op.
func New(in io.Reader, out io.Writer, noColor bool) *Console {
	return &Console{scanner: bufio.NewScanner(in), out: out, noColor: noColor}
}

// Out exposes the underlying writer for components that render their own
// output (tables, previews).
func (c *Console) Out() io.Writer { return c.out }

func (c *Console) paint(col text.Color, s string) string {
	if c.noColor {
		return s
	}
	return col.Sprint(s)
}

// ReadLine blocks for the next input line, surrounding whitespace trimmed.
// Returns io.EOF when the input source is exhausted.
func (c *Console) ReadLine() (string, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

// Prompt prints a green prompt and blocks for one line of input.
func (c *Console) Prompt(msg string) (string, error) {
	fmt.Fprintln(c.out, c.paint(text.FgGreen, msg))
	return c.ReadLine()
}

// Info prints a yellow status line.
func (c *Console) Info(format string, args ...any) {
	fmt.Fprintln(c.out, c.paint(text.FgYellow, fmt.Sprintf(format, args...)))
}

// Success prints a green status line.
func (c *Console) Success(format string, args ...any) {
	fmt.Fprintln(c.out, c.paint(text.FgGreen, fmt.Sprintf(format, args...)))
}

// Error prints a red error line.
func (c *Console) Error(format string, args ...any) {
	fmt.Fprintln(c.out, c.paint(text.FgRed, fmt.Sprintf(format, args...)))
}

// Data prints a blue data line (previews, column lists).
func (c *Console) Data(format string, args ...any) {
	fmt.Fprintln(c.out, c.paint(text.FgBlue, fmt.Sprintf(format, args...)))
}

// Table renders a header and rows as an aligned table.
func (c *Console) Table(header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(c.out)
	h := make(table.Row, len(header))
	for i, v := range header {
		h[i] = v
	}
	t.AppendHeader(h)
	for _, rec := range rows {
		r := make(table.Row, len(rec))
		for i, v := range rec {
			r[i] = v
		}
		t.AppendRow(r)
	}
	t.Render()
}

// Section prints a bold section header between rules.
func (c *Console) Section(title string) {
	rule := strings.Repeat("-", 50)
	fmt.Fprintln(c.out, rule)
	if c.noColor {
		fmt.Fprintln(c.out, title)
	} else {
		fmt.Fprintln(c.out, text.Bold.Sprint(title))
	}
	fmt.Fprintln(c.out, rule)
}
