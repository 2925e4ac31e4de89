package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pam/internal/ui/theme"
)

// ChatInput wraps bubbles/textinput as a single-line chat prompt. It can be
// disabled while a request is in flight, in which case keystrokes are ignored
// and the prompt is dimmed.
type ChatInput struct {
	Model    textinput.Model
	disabled bool
}

// NewChatInput creates a new styled chat input.
func NewChatInput(placeholder string, charLimit int) ChatInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "❯ "
	ti.Focus()

	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return ChatInput{Model: ti}
}

// Init returns the initial command.
func (c ChatInput) Init() tea.Cmd {
	return c.Model.Focus()
}

// Update handles messages. Keystrokes are dropped while the input is disabled.
func (c ChatInput) Update(msg tea.Msg) (ChatInput, tea.Cmd) {
	if c.disabled {
		if _, ok := msg.(tea.KeyMsg); ok {
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.Model, cmd = c.Model.Update(msg)
	return c, cmd
}

// View renders the input.
func (c ChatInput) View() string {
	view := c.Model.View()
	if c.disabled {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render(view)
	}
	return view
}

// Value returns the current input value.
func (c ChatInput) Value() string {
	return c.Model.Value()
}

// Clear resets the input to empty.
func (c *ChatInput) Clear() {
	c.Model.SetValue("")
}

// SetDisabled toggles whether the input accepts keystrokes.
func (c *ChatInput) SetDisabled(disabled bool) {
	c.disabled = disabled
}

// Disabled reports whether the input is currently disabled.
func (c ChatInput) Disabled() bool {
	return c.disabled
}
