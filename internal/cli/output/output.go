// Package output renders CLI results for terminals and pipes.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// OutputMode selects how results are rendered.
type OutputMode string

// Output modes.
const (
	ModeAuto OutputMode = "auto"
	ModeText OutputMode = "text"
	ModeJSON OutputMode = "json"
)

// Mode converts a flag or config value to an OutputMode; unknown values
// mean ModeAuto.
func Mode(s string) OutputMode {
	switch OutputMode(s) {
	case ModeText, ModeJSON:
		return OutputMode(s)
	default:
		return ModeAuto
	}
}

// Styles holds the lipgloss styles used by status and header lines.
type Styles struct {
	Header  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Success: r.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:    r.NewStyle().Bold(true),
	}
}

// Renderer writes command output. Colour is only emitted on a TTY.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	isTTY  bool
	mode   OutputMode
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return NewRendererWithTTY(out, errOut, isTTY, mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	lr := lipgloss.NewRenderer(out)
	if !isTTY {
		lr.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		isTTY:  isTTY,
		mode:   mode,
		styles: newStyles(lr),
	}
}

// EffectiveMode resolves ModeAuto: text on a terminal, JSON otherwise.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeJSON
}

// Writer returns the primary output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the diagnostic output writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Styles returns the renderer's styles.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to the primary output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to the primary output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header writes a styled section header.
func (r *Renderer) Header(title string) {
	r.Println(r.styles.Header.Render(title))
}

// StatusLine writes a success or failure line to the diagnostic output.
func (r *Renderer) StatusLine(ok bool, msg string) {
	mark, style := "✓", r.styles.Success
	if !ok {
		mark, style = "✗", r.styles.Error
	}
	_, _ = fmt.Fprintln(r.errOut, style.Render(mark+" "+msg))
}

// JSON writes v as a single JSON document.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// Table renders rows under cols, followed by a row count.
func (r *Renderer) Table(cols []string, rows [][]any) {
	if len(rows) == 0 {
		r.Println("(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	t.AppendHeader(header)

	for _, values := range rows {
		row := make(table.Row, len(values))
		for i, v := range values {
			row[i] = FormatValue(v)
		}
		t.AppendRow(row)
	}

	t.Render()
	r.Printf("(%d rows)\n", len(rows))
}

// FormatValue renders a cell; nil is shown as NULL.
func FormatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}
