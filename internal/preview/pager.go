package preview

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hemmendinger/mdsite/internal/style"
)

var (
	titleStyle  = style.Bold.Padding(0, 1)
	footerStyle = style.Dim.Padding(0, 1)
)

// Pager is a bubbletea model that scrolls pre-rendered content.
type Pager struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

// NewPager creates a pager; it sizes itself on the first WindowSizeMsg.
func NewPager(title, content string) Pager {
	return Pager{title: title, content: content}
}

// Init implements tea.Model.
func (m Pager) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Pager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		chrome := lipgloss.Height(m.header()) + lipgloss.Height(m.footer())
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chrome)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chrome
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Pager) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.header() + "\n" + m.viewport.View() + "\n" + m.footer()
}

func (m Pager) header() string {
	return titleStyle.Render(m.title)
}

func (m Pager) footer() string {
	pct := 100
	if m.ready {
		pct = int(m.viewport.ScrollPercent() * 100)
	}
	return footerStyle.Render(fmt.Sprintf("%3d%%  q to quit", pct))
}
