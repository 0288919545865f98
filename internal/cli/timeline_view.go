package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvbarbosa/capex/internal/cli/formatter"
)

const timelineChromeHeight = 4

var (
	timelineTitleStyle  = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true).Padding(0, 1)
	timelineFooterStyle = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
)

// timelineModel is a scrollable pager around the rendered timeline. The
// content is rendered once; the viewport only handles scrolling.
type timelineModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

func newTimelineModel(title, content string) timelineModel {
	return timelineModel{title: title, content: content}
}

func (m timelineModel) Init() tea.Cmd {
	return nil
}

func (m timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		height := msg.Height - timelineChromeHeight
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m timelineModel) View() string {
	if !m.ready {
		return "loading timeline..."
	}
	footer := fmt.Sprintf("%3.0f%%  ↑/↓ scroll · q quit", m.viewport.ScrollPercent()*100)
	return timelineTitleStyle.Render(m.title) + "\n" +
		m.viewport.View() + "\n" +
		timelineFooterStyle.Render(footer)
}

// runTimelinePager shows the timeline in an alt-screen scrollable view.
func runTimelinePager(title, content string) error {
	p := tea.NewProgram(
		newTimelineModel(title, content),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
