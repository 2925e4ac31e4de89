// Package language implements the screen where the student picks the
// tutoring language. The screen stays on top while the credential probe
// runs and reports probe failures in place.
package language

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pam/internal/screen"
	"github.com/abhisek/pam/internal/session"
	"github.com/abhisek/pam/internal/tutor"
	"github.com/abhisek/pam/internal/ui/components"
	"github.com/abhisek/pam/internal/ui/layout"
	"github.com/abhisek/pam/internal/ui/theme"
)

// ChosenMsg is emitted when the student selects a language.
type ChosenMsg struct {
	Language tutor.Language
}

// RetryMsg is emitted when the student retries after a failed session start.
type RetryMsg struct{}

// Screen is the language selection screen.
type Screen struct {
	menu  components.Menu
	state session.State
}

var _ screen.Screen = (*Screen)(nil)

// New creates the language selection screen.
func New() *Screen {
	items := make([]components.MenuItem, len(tutor.Languages))
	for i, lang := range tutor.Languages {
		items[i] = components.MenuItem{
			Label: lang.Name,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return ChosenMsg{Language: lang}
				}
			},
		}
	}

	return &Screen{menu: components.NewMenu(items)}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		s.state = msg.State
		return s, nil

	case tea.KeyMsg:
		if s.state.Phase == session.PhaseInitFailed {
			if msg.String() == "r" {
				return s, func() tea.Msg { return RetryMsg{} }
			}
			return s, nil
		}
		// Ignore input while the probe or session start is in flight.
		if s.state.Busy() {
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	var sections []string

	sections = append(sections,
		theme.Title.Render("Choose Your Language"))
	sections = append(sections,
		theme.Body.Render("The tutor will hold the whole conversation in this language."))
	sections = append(sections, "")
	sections = append(sections, s.menu.View())

	switch {
	case s.state.Phase == session.PhaseValidating:
		sections = append(sections, theme.Hint.Render("  Connecting..."))
	case s.state.Phase == session.PhaseInitFailed:
		sections = append(sections, theme.ErrorText.Render("  "+s.state.Err))
		sections = append(sections, theme.Hint.Render("  Press r to try again."))
	case s.state.Err != "":
		sections = append(sections, theme.ErrorText.Render("  "+s.state.Err))
	}

	card := theme.Card.Render(strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *Screen) Title() string {
	return "Select Language"
}

// KeyHints implements screen.KeyHintProvider.
func (s *Screen) KeyHints() []layout.KeyHint {
	if s.state.Phase == session.PhaseInitFailed {
		return []layout.KeyHint{
			{Key: "r", Description: "retry"},
			{Key: "esc", Description: "start over"},
			{Key: "ctrl+c", Description: "quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "navigate"},
		{Key: "enter", Description: "select"},
		{Key: "esc", Description: "back"},
		{Key: "ctrl+c", Description: "quit"},
	}
}
