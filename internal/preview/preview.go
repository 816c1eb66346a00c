// Package preview shows markdown in the terminal, in a scrollable pager
// when stdout is a TTY.
package preview

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// DefaultWidth is the wrap width when the terminal size is unknown.
const DefaultWidth = 80

// Options configure terminal rendering.
type Options struct {
	// Style is a glamour standard style name. Empty picks "dark" or
	// "light" from the terminal background.
	Style string

	// Width is the word-wrap width. <= 0 uses DefaultWidth.
	Width int
}

// StyleName returns the glamour style that suits the terminal background.
func StyleName() string {
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// Render formats markdown for the terminal.
func Render(markdown string, opts Options) (string, error) {
	if opts.Style == "" {
		opts.Style = StyleName()
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(opts.Style),
		glamour.WithWordWrap(opts.Width),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := tr.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// Show renders markdown to out. When out is a terminal the result is
// shown in a pager; otherwise it is written as plain text without styling.
func Show(out *os.File, title, markdown string) error {
	fd := int(out.Fd())
	if !term.IsTerminal(fd) {
		return Write(out, markdown, Options{Style: "notty"})
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		width = DefaultWidth
	}
	rendered, err := Render(markdown, Options{Width: width})
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewPager(title, rendered), tea.WithAltScreen(), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running pager: %w", err)
	}
	return nil
}

// Write renders markdown with opts and writes the result to w.
func Write(w io.Writer, markdown string, opts Options) error {
	rendered, err := Render(markdown, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, rendered)
	return err
}
