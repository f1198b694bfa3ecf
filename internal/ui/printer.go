package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/muurk/netatmo/internal/config"
	"github.com/muurk/netatmo/internal/netatmo"
)

// Printer writes UI components to a writer.
// Styled output is only used when the writer is a terminal; redirected output
// gets the plain text formatters.
type Printer struct {
	out    io.Writer
	width  int
	styled bool
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:    w,
		width:  GetTerminalWidth(),
		styled: IsTerminal(w),
	}
}

// SetStyled forces styled or plain output
func (p *Printer) SetStyled(styled bool) *Printer {
	p.styled = styled
	return p
}

// SetWidth overrides the detected terminal width
func (p *Printer) SetWidth(width int) *Printer {
	p.width = clampWidth(width)
	return p
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintSuccess prints a success result box, or plain key/value lines
func (p *Printer) PrintSuccess(title string, details ...Detail) {
	if !p.styled {
		p.Println(title)
		for _, d := range details {
			p.Println(fmt.Sprintf("  %-14s %s", d.Key+":", d.Value))
		}
		return
	}
	p.Println(NewSuccessResult(title, details...).SetWidth(p.width).Render())
}

// PrintError prints an error result box with troubleshooting tips taken from err
func (p *Printer) PrintError(title string, err error) {
	if !p.styled {
		p.Println(fmt.Sprintf("%s: %v", title, err))
		for _, tip := range netatmo.TroubleshootingHint(err) {
			p.Println("  - " + tip)
		}
		return
	}
	p.Println(NewErrorResult(title, err).SetWidth(p.width).Render())
}

// PrintSnapshot prints a snapshot in the given format (detailed, compact, json).
// Detailed output on a terminal uses the panel layout.
func (p *Printer) PrintSnapshot(snap *netatmo.StationSnapshot, stationName, format string) error {
	switch format {
	case config.FormatJSON:
		return p.PrintJSON(snap)
	case config.FormatCompact:
		p.Print(snap.FormatCompact())
	default:
		if p.styled {
			p.Println(RenderSnapshot(snap, stationName, p.width))
		} else {
			p.Print(snap.FormatDetailed())
		}
	}
	return nil
}

// PrintJSON prints v as indented JSON
func (p *Printer) PrintJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	p.Println(string(data))
	return nil
}
