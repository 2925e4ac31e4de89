// Package app wires the screens, the session state machine, and the
// tutoring client into the root Bubble Tea program.
package app

import (
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/pam/internal/mathtex"
	"github.com/abhisek/pam/internal/router"
	"github.com/abhisek/pam/internal/screen"
	"github.com/abhisek/pam/internal/screens/chat"
	"github.com/abhisek/pam/internal/screens/language"
	"github.com/abhisek/pam/internal/screens/rigor"
	worksheetscreen "github.com/abhisek/pam/internal/screens/worksheet"
	"github.com/abhisek/pam/internal/session"
	"github.com/abhisek/pam/internal/store"
	"github.com/abhisek/pam/internal/tutor"
	"github.com/abhisek/pam/internal/ui/layout"
)

// AppModel is the root Bubble Tea model. It holds the session state and
// routes every domain event through the state machine; screens only
// render snapshots and emit intent messages.
type AppModel struct {
	router   *router.Router
	ctrl     *controller
	renderer mathtex.Renderer
	state    session.State
	width    int
	height   int
}

// New creates the root model. transcripts may be nil to disable
// persistence.
func New(client *tutor.Client, transcripts store.TranscriptRepo) AppModel {
	renderer := mathtex.NewTermRenderer()
	return AppModel{
		router:   router.New(rigor.New()),
		ctrl:     newController(client, transcripts),
		renderer: renderer,
		state:    session.New(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.String() == "esc" && m.preSession() {
			if m.state.Phase == session.PhaseUnstarted {
				return m, nil
			}
			return m.dispatch(session.Reset{})
		}

	// Screen intents.
	case rigor.ChosenMsg:
		return m.dispatch(session.LevelSelected{Level: msg.Level})

	case language.ChosenMsg:
		return m.dispatch(session.LanguageSelected{Language: msg.Language})

	case language.RetryMsg:
		return m.dispatch(session.RetryInit{})

	case chat.SubmitMsg:
		return m.dispatch(session.StudentSubmitted{ID: uuid.NewString(), Text: msg.Text})

	case chat.WorksheetMsg:
		return m.dispatch(session.WorksheetRequested{})

	case chat.ResetMsg:
		return m.dispatch(session.Reset{})

	case worksheetscreen.CloseMsg:
		return m.dispatch(session.WorksheetClosed{})

	case worksheetscreen.ExportMsg:
		return m, exportWorksheetCmd(m.state.Worksheet)

	// Controller results.
	case validationResultMsg:
		if msg.result.Valid {
			return m.dispatch(session.ValidationSucceeded{})
		}
		return m.dispatch(session.ValidationFailed{
			Message: tutor.UserErrorMessage(msg.result.Err, tutor.ErrContextValidation),
		})

	case sessionOpenedMsg:
		if msg.err != nil {
			return m.dispatch(session.InitFailed{
				Message: tutor.UserErrorMessage(msg.err, tutor.ErrContextInit),
			})
		}
		m.ctrl.session = msg.session
		model, cmd := m.dispatch(session.SessionOpened{})
		return model, tea.Batch(cmd, m.ctrl.persistSessionCmd())

	case streamStartedMsg:
		model, cmd := m.dispatch(session.AssistantStarted{ID: msg.id})
		appModel := model.(AppModel)
		return appModel, tea.Batch(cmd, appModel.ctrl.waitForChunk())

	case chunkMsg:
		return m.handleChunk(msg)

	case worksheetResultMsg:
		if msg.err != nil {
			return m.dispatch(session.WorksheetFailed{
				Message: tutor.UserErrorMessage(msg.err, tutor.ErrContextWorksheet),
			})
		}
		model, cmd := m.dispatch(session.WorksheetReady{Worksheet: msg.worksheet})
		return model, tea.Batch(cmd, m.ctrl.persistWorksheetCmd(msg.worksheet, msg.topics))

	case persistedMsg:
		// Persistence is best effort.
		return m, nil
	}

	return m, m.router.Update(msg)
}

// handleChunk folds one stream chunk into the state machine and keeps the
// read loop going until a terminal chunk arrives.
func (m AppModel) handleChunk(msg chunkMsg) (tea.Model, tea.Cmd) {
	if m.ctrl.stream == nil {
		// A late chunk from a torn-down stream.
		return m, nil
	}

	chunk := msg.chunk
	switch {
	case chunk.Err != nil:
		m.ctrl.endStream()
		if msg.greeting {
			return m.dispatch(session.InitFailed{
				Message: tutor.UserErrorMessage(chunk.Err, tutor.ErrContextInit),
			})
		}
		return m.dispatch(session.StreamFailed{
			Message: tutor.UserErrorMessage(chunk.Err, tutor.ErrContextChat),
		})

	case chunk.Done:
		m.ctrl.endStream()
		model, cmd := m.dispatch(session.StreamCompleted{})
		appModel := model.(AppModel)
		var persist tea.Cmd
		if last := appModel.state.LastMessage(); last != nil && last.Sender == tutor.SenderTutor {
			persist = appModel.ctrl.persistMessageCmd(tutor.SenderTutor, last.Text)
		}
		return appModel, tea.Batch(cmd, persist)

	default:
		model, cmd := m.dispatch(session.FragmentReceived{Text: chunk.Text})
		appModel := model.(AppModel)
		return appModel, tea.Batch(cmd, appModel.ctrl.waitForChunk())
	}
}

// dispatch applies an event, executes the requested effects, reconciles
// the screen stack with the new phase, and pushes a fresh snapshot to the
// active screen.
func (m AppModel) dispatch(ev session.Event) (tea.Model, tea.Cmd) {
	next, effects := session.Apply(m.state, ev)
	m.state = next

	var cmds []tea.Cmd
	cmds = append(cmds, m.ctrl.execute(effects, next)...)
	cmds = append(cmds, m.reconcileStack()...)
	cmds = append(cmds, m.router.Update(screen.StateMsg{State: m.state}))

	return m, tea.Batch(cmds...)
}

// preSession reports whether the student is still on the selection flow.
func (m AppModel) preSession() bool {
	switch m.state.Phase {
	case session.PhaseUnstarted, session.PhaseLevelChosen, session.PhaseValidating, session.PhaseInitFailed:
		return true
	}
	return false
}

// stackDepth maps each phase to the screen stack that should be showing:
// level selection, then language selection, then the conversation, then
// the worksheet on top.
func stackDepth(phase session.Phase) int {
	switch phase {
	case session.PhaseUnstarted:
		return 1
	case session.PhaseLevelChosen, session.PhaseValidating, session.PhaseInitFailed:
		return 2
	case session.PhaseSessionActive, session.PhaseWorksheetPending:
		return 3
	case session.PhaseWorksheetShown:
		return 4
	}
	return 1
}

func (m AppModel) reconcileStack() []tea.Cmd {
	want := stackDepth(m.state.Phase)

	if m.router.Depth() > want {
		m.router.PopTo(want)
		return nil
	}

	var cmds []tea.Cmd
	for m.router.Depth() < want {
		switch m.router.Depth() {
		case 1:
			cmds = append(cmds, m.router.Push(language.New()))
		case 2:
			cmds = append(cmds, m.router.Push(chat.New(m.renderer)))
		case 3:
			cmds = append(cmds, m.router.Push(worksheetscreen.New(m.renderer)))
		}
	}
	return cmds
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.sessionInfo(), m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "navigate"},
		{Key: "enter", Description: "select"},
		{Key: "ctrl+c", Description: "quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// sessionInfo builds the header badge, e.g. "High School · Español".
func (m AppModel) sessionInfo() string {
	var parts []string
	if m.state.Level != "" {
		parts = append(parts, string(m.state.Level))
	}
	if m.state.Language != nil {
		parts = append(parts, m.state.Language.Name)
	}
	return strings.Join(parts, " · ")
}

// Run starts the Bubble Tea program.
func Run(client *tutor.Client, transcripts store.TranscriptRepo) error {
	p := tea.NewProgram(New(client, transcripts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
