// Package rigor implements the opening screen where the student picks the
// academic level the tutor should pitch its questions at.
package rigor

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pam/internal/screen"
	"github.com/abhisek/pam/internal/tutor"
	"github.com/abhisek/pam/internal/ui/components"
	"github.com/abhisek/pam/internal/ui/layout"
	"github.com/abhisek/pam/internal/ui/theme"
)

// ChosenMsg is emitted when the student selects a rigor level.
type ChosenMsg struct {
	Level tutor.RigorLevel
}

// Screen is the level selection screen.
type Screen struct {
	menu components.Menu
}

var _ screen.Screen = (*Screen)(nil)

// New creates the level selection screen.
func New() *Screen {
	items := make([]components.MenuItem, len(tutor.RigorLevels))
	for i, level := range tutor.RigorLevels {
		items[i] = components.MenuItem{
			Label: string(level),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return ChosenMsg{Level: level}
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
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	var sections []string

	sections = append(sections,
		theme.Title.Render("Welcome to Physicus Aurelius Maximus"))
	sections = append(sections,
		theme.Body.Render("Your personal Socratic physics tutor."))
	sections = append(sections, "")
	sections = append(sections,
		theme.Subtitle.Render("To get started, please select your current physics level."))
	sections = append(sections, "")
	sections = append(sections, s.menu.View())

	card := theme.Card.Render(strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *Screen) Title() string {
	return "Select Level"
}

// KeyHints implements screen.KeyHintProvider.
func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "navigate"},
		{Key: "enter", Description: "select"},
		{Key: "ctrl+c", Description: "quit"},
	}
}
