package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/nmlcell/internal/core/ports/driving"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#06B6D4"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printer writes command output, styled only when stdout is a terminal.
type printer struct {
	cmd    *cobra.Command
	styled bool
}

func newPrinter(cmd *cobra.Command) *printer {
	return &printer{cmd: cmd, styled: isTerminal(cmd.OutOrStdout())}
}

func (p *printer) render(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

func (p *printer) title(text string) {
	p.cmd.Println(p.render(titleStyle, text))
}

func (p *printer) field(key string, value any) {
	p.cmd.Printf("  %s %v\n", p.render(keyStyle, key+":"), value)
}

func (p *printer) muted(text string) {
	p.cmd.Println(p.render(mutedStyle, text))
}

// block prints a multi-line summary, boxed on a terminal.
func (p *printer) block(text string) {
	text = strings.TrimRight(text, "\n")
	if p.styled {
		p.cmd.Println(boxStyle.Render(text))
		return
	}
	p.cmd.Println(text)
}

func (p *printer) artifact(a *driving.Artifact) {
	p.title(fmt.Sprintf("%s %s", a.Kind, a.Name))
	p.field("written", a.Key)
	p.field("size", fmt.Sprintf("%d bytes", a.Size))
	p.field("run", a.RunID)
	if a.Summary != "" {
		p.block(a.Summary)
	}
	p.cmd.Println()
}
