// Package chat implements the tutoring conversation screen. It renders the
// transcript as speech bubbles, streams the tutor's reply in place, and
// collects the student's next turn.
package chat

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pam/internal/mathtex"
	"github.com/abhisek/pam/internal/screen"
	"github.com/abhisek/pam/internal/session"
	"github.com/abhisek/pam/internal/tutor"
	"github.com/abhisek/pam/internal/ui/components"
	"github.com/abhisek/pam/internal/ui/layout"
	"github.com/abhisek/pam/internal/ui/theme"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SubmitMsg is emitted when the student sends a message.
type SubmitMsg struct {
	Text string
}

// WorksheetMsg is emitted when the student requests a practice worksheet.
type WorksheetMsg struct{}

// ResetMsg is emitted when the student confirms ending the session.
type ResetMsg struct{}

// spinnerTickMsg is sent at short intervals to animate the loading spinner.
type spinnerTickMsg time.Time

// Screen is the tutoring conversation screen.
type Screen struct {
	input        components.ChatInput
	renderer     mathtex.Renderer
	state        session.State
	confirmReset bool
	spinning     bool
	spinnerFrame int
}

var _ screen.Screen = (*Screen)(nil)

// New creates the conversation screen.
func New(renderer mathtex.Renderer) *Screen {
	return &Screen{
		input:    components.NewChatInput("Ask your physics question...", 2000),
		renderer: renderer,
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		s.state = msg.State
		s.input.SetDisabled(s.state.Busy())
		if s.state.Busy() && !s.spinning {
			s.spinning = true
			return s, spinnerTick()
		}
		return s, nil

	case spinnerTickMsg:
		if !s.state.Busy() {
			s.spinning = false
			return s, nil
		}
		s.spinnerFrame = (s.spinnerFrame + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.confirmReset {
		switch msg.String() {
		case "y", "Y":
			s.confirmReset = false
			return s, func() tea.Msg { return ResetMsg{} }
		case "n", "N", "esc":
			s.confirmReset = false
		}
		return s, nil
	}

	switch msg.String() {
	case "esc":
		s.confirmReset = true
		return s, nil

	case "enter":
		if s.state.Busy() {
			return s, nil
		}
		text := strings.TrimSpace(s.input.Value())
		if text == "" {
			return s, nil
		}
		s.input.Clear()
		return s, func() tea.Msg { return SubmitMsg{Text: text} }

	case "ctrl+w":
		if !s.state.CanRequestWorksheet() {
			return s, nil
		}
		return s, func() tea.Msg { return WorksheetMsg{} }
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	if s.confirmReset {
		return s.renderConfirm(width, height)
	}

	inputLine := " " + s.input.View()
	statusLine := s.renderStatus(width)

	// The transcript fills whatever is left above the status and input rows.
	transcriptHeight := height - 2
	if statusLine != "" {
		transcriptHeight -= lipgloss.Height(statusLine)
	}
	transcript := s.renderTranscript(width, transcriptHeight)

	var b strings.Builder
	b.WriteString(transcript)
	b.WriteString("\n")
	if statusLine != "" {
		b.WriteString(statusLine)
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-2, 1))))
	b.WriteString("\n")
	b.WriteString(inputLine)
	return b.String()
}

// renderTranscript renders the newest messages that fit in the given height,
// bottom-aligned so the latest turn is always visible.
func (s *Screen) renderTranscript(width, height int) string {
	if height < 1 {
		height = 1
	}

	var bubbles []string
	for _, msg := range s.state.Messages {
		bubbles = append(bubbles, s.renderBubble(msg, width))
	}

	var lines []string
	for i, bubble := range bubbles {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, strings.Split(bubble, "\n")...)
	}

	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	for len(lines) < height {
		lines = append([]string{""}, lines...)
	}
	return strings.Join(lines, "\n")
}

func (s *Screen) renderBubble(msg tutor.Message, width int) string {
	maxBubble := width * 3 / 4
	if maxBubble < 20 {
		maxBubble = max(width-4, 10)
	}

	if msg.Sender == tutor.SenderStudent {
		bubble := bubbleStyle(theme.StudentBubble, msg.Text, maxBubble).Render(msg.Text)
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(bubble)
	}

	text := msg.Text
	if msg.ID == s.state.StreamingID {
		// Partial replies render raw with a cursor. Math notation is only
		// lowered once the message is complete.
		text += "▌"
	} else {
		text = mathtex.Render(text, s.renderer)
	}
	bubble := bubbleStyle(theme.TutorBubble, text, maxBubble).Render(text)
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Left).Render(bubble)
}

// bubbleStyle caps the bubble at maxBubble columns. Short messages keep
// their natural width so the bubble hugs the text.
func bubbleStyle(base lipgloss.Style, text string, maxBubble int) lipgloss.Style {
	if lipgloss.Width(text) > maxBubble {
		return base.Width(maxBubble)
	}
	return base
}

func (s *Screen) renderStatus(width int) string {
	switch {
	case s.state.Phase == session.PhaseWorksheetPending:
		frame := spinnerFrames[s.spinnerFrame]
		return theme.Hint.Render("  " + frame + " Generating worksheet...")
	case s.state.Err != "":
		return theme.ErrorText.MaxWidth(width - 2).Render("  " + s.state.Err)
	}
	return ""
}

func (s *Screen) renderConfirm(width, height int) string {
	var sections []string
	sections = append(sections, theme.Title.Render("End this session?"))
	sections = append(sections, "")
	sections = append(sections, theme.Body.Render("The conversation will be cleared and you"))
	sections = append(sections, theme.Body.Render("will return to the level selection screen."))
	sections = append(sections, "")
	sections = append(sections, theme.Hint.Render("y: end session   n: keep going"))

	card := theme.Card.Render(strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *Screen) Title() string {
	return "Tutoring Session"
}

// KeyHints implements screen.KeyHintProvider.
func (s *Screen) KeyHints() []layout.KeyHint {
	if s.confirmReset {
		return []layout.KeyHint{
			{Key: "y", Description: "end session"},
			{Key: "n", Description: "keep going"},
		}
	}

	hints := []layout.KeyHint{
		{Key: "enter", Description: "send"},
	}
	if s.state.CanRequestWorksheet() {
		hints = append(hints, layout.KeyHint{Key: "ctrl+w", Description: "worksheet"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "esc", Description: "end session"},
		layout.KeyHint{Key: "ctrl+c", Description: "quit"},
	)
	return hints
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
