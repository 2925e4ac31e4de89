// Package worksheet implements the screen that displays a generated
// practice worksheet with its answer key.
package worksheet

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pam/internal/mathtex"
	"github.com/abhisek/pam/internal/screen"
	"github.com/abhisek/pam/internal/session"
	"github.com/abhisek/pam/internal/ui/layout"
	"github.com/abhisek/pam/internal/ui/theme"
)

// CloseMsg is emitted when the student closes the worksheet and returns
// to the conversation.
type CloseMsg struct{}

// ExportMsg is emitted when the student asks to save the worksheet to disk.
type ExportMsg struct{}

// ExportedMsg reports the outcome of an export.
type ExportedMsg struct {
	Path string
	Err  error
}

// Screen is the worksheet display screen.
type Screen struct {
	renderer mathtex.Renderer
	state    session.State
	scroll   int
	exported *ExportedMsg
}

var _ screen.Screen = (*Screen)(nil)

// New creates the worksheet screen.
func New(renderer mathtex.Renderer) *Screen {
	return &Screen{renderer: renderer}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		s.state = msg.State
		return s, nil

	case ExportedMsg:
		s.exported = &msg
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return CloseMsg{} }
		case "p":
			return s, func() tea.Msg { return ExportMsg{} }
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			s.scroll++
		}
	}

	return s, nil
}

func (s *Screen) View(width, height int) string {
	ws := s.state.Worksheet
	if ws == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No worksheet to display.")
	}

	var b strings.Builder

	title := ws.Title
	if title == "" {
		title = "Practice Worksheet"
	}
	b.WriteString(theme.Title.Render("  " + title))
	b.WriteString("\n\n")

	for _, q := range ws.Questions {
		text := mathtex.Render(q.QuestionText, s.renderer)
		b.WriteString(theme.Body.Render(fmt.Sprintf("  %d. %s", q.QuestionNumber, text)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("  " + strings.Repeat("─", max(width-4, 1))))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("  Answer Key"))
	b.WriteString("\n\n")

	for _, a := range ws.SortedAnswerKey() {
		text := mathtex.Render(a.AnswerText, s.renderer)
		b.WriteString(theme.Body.Render(fmt.Sprintf("  %d. %s", a.QuestionNumber, text)))
		b.WriteString("\n")
	}

	if s.exported != nil {
		b.WriteString("\n")
		if s.exported.Err != nil {
			b.WriteString(theme.ErrorText.Render("  Export failed: " + s.exported.Err.Error()))
		} else {
			b.WriteString(theme.Hint.Render("  Saved to " + s.exported.Path))
		}
		b.WriteString("\n")
	}

	return s.clip(b.String(), width, height)
}

// clip windows the content to the visible height honoring the scroll offset.
func (s *Screen) clip(content string, width, height int) string {
	lines := strings.Split(content, "\n")
	maxScroll := len(lines) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}

	end := s.scroll + height
	if end > len(lines) {
		end = len(lines)
	}
	visible := lines[s.scroll:end]

	if s.scroll < maxScroll {
		more := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("▼ more")
		if len(visible) > 0 {
			visible[len(visible)-1] = more
		}
	}
	return strings.Join(visible, "\n")
}

func (s *Screen) Title() string {
	return "Worksheet"
}

// KeyHints implements screen.KeyHintProvider.
func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "scroll"},
		{Key: "p", Description: "save to file"},
		{Key: "esc", Description: "back to chat"},
		{Key: "ctrl+c", Description: "quit"},
	}
}
