package app

import (
	"context"
	"encoding/json"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/pam/internal/export"
	"github.com/abhisek/pam/internal/llm"
	worksheetscreen "github.com/abhisek/pam/internal/screens/worksheet"
	"github.com/abhisek/pam/internal/session"
	"github.com/abhisek/pam/internal/store"
	"github.com/abhisek/pam/internal/tutor"
)

// controller executes the side effects requested by state transitions. It
// owns the tutoring session handle and the in-flight reply stream; the
// model owns the state itself. All controller methods run on the program's
// update goroutine, so no locking is needed.
type controller struct {
	client      *tutor.Client
	transcripts store.TranscriptRepo // nil disables persistence

	session  *tutor.Session
	stream   <-chan llm.StreamChunk
	greeting bool
	cancel   context.CancelFunc
}

func newController(client *tutor.Client, transcripts store.TranscriptRepo) *controller {
	return &controller{
		client:      client,
		transcripts: transcripts,
	}
}

// execute turns the effects of a transition into commands. The state is
// the post-transition snapshot.
func (c *controller) execute(effects []session.Effect, st session.State) []tea.Cmd {
	var cmds []tea.Cmd
	for _, effect := range effects {
		switch effect {
		case session.EffectValidate:
			cmds = append(cmds, c.validateCmd())
		case session.EffectOpenSession:
			cmds = append(cmds, c.openSessionCmd(st))
		case session.EffectGreet:
			cmds = append(cmds, c.startStream(true, ""))
		case session.EffectSendTurn:
			last := st.LastMessage()
			if last == nil {
				continue
			}
			cmds = append(cmds, c.startStream(false, last.Text))
			cmds = append(cmds, c.persistMessageCmd(tutor.SenderStudent, last.Text))
		case session.EffectCreateWorksheet:
			cmds = append(cmds, c.createWorksheetCmd(st))
		case session.EffectTeardown:
			c.teardown()
		}
	}
	return cmds
}

func (c *controller) validateCmd() tea.Cmd {
	return func() tea.Msg {
		return validationResultMsg{result: c.client.ValidateKey(context.Background())}
	}
}

func (c *controller) openSessionCmd(st session.State) tea.Cmd {
	level := st.Level
	language := *st.Language
	return func() tea.Msg {
		sess, err := c.client.OpenSession(context.Background(), level, language)
		return sessionOpenedMsg{session: sess, err: err}
	}
}

// startStream begins a reply stream and announces it. The channel is
// created here, on the update goroutine, so chunk commands can read it
// without racing the controller.
func (c *controller) startStream(greeting bool, text string) tea.Cmd {
	if c.session == nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.greeting = greeting

	if greeting {
		c.stream = c.session.Greet(ctx)
	} else {
		c.stream = c.session.Send(ctx, text)
	}

	id := uuid.NewString()
	return func() tea.Msg {
		return streamStartedMsg{id: id, greeting: greeting}
	}
}

// waitForChunk reads the next chunk off the active stream. A closed
// channel is treated as completion in case a provider forgets the
// terminal chunk.
func (c *controller) waitForChunk() tea.Cmd {
	ch := c.stream
	greeting := c.greeting
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		chunk, ok := <-ch
		if !ok {
			chunk = llm.StreamChunk{Done: true}
		}
		return chunkMsg{chunk: chunk, greeting: greeting}
	}
}

// endStream releases the finished or failed stream.
func (c *controller) endStream() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.stream = nil
}

func (c *controller) createWorksheetCmd(st session.State) tea.Cmd {
	messages := st.Messages
	level := st.Level
	language := *st.Language
	return func() tea.Msg {
		ws, topics, err := c.client.CreateWorksheet(context.Background(), messages, level, language)
		return worksheetResultMsg{worksheet: ws, topics: topics, err: err}
	}
}

// teardown discards the session handle and cancels any in-flight work.
func (c *controller) teardown() {
	c.endStream()
	c.session = nil
	c.greeting = false
}

func (c *controller) persistSessionCmd() tea.Cmd {
	if c.transcripts == nil || c.session == nil {
		return nil
	}
	rec := store.SessionRecord{
		ID:        c.session.ID,
		Level:     string(c.session.Level),
		Language:  c.session.Language.Code,
		StartedAt: time.Now().UTC(),
	}
	repo := c.transcripts
	return func() tea.Msg {
		return persistedMsg{err: repo.CreateSession(context.Background(), rec)}
	}
}

func (c *controller) persistMessageCmd(sender tutor.Sender, text string) tea.Cmd {
	if c.transcripts == nil || c.session == nil {
		return nil
	}
	rec := store.MessageRecord{
		SessionID: c.session.ID,
		Sender:    string(sender),
		Content:   text,
	}
	repo := c.transcripts
	return func() tea.Msg {
		return persistedMsg{err: repo.AppendMessage(context.Background(), rec)}
	}
}

func (c *controller) persistWorksheetCmd(ws *tutor.Worksheet, topics []string) tea.Cmd {
	if c.transcripts == nil || c.session == nil || ws == nil {
		return nil
	}
	topicsJSON, err := json.Marshal(topics)
	if err != nil {
		return nil
	}
	data, err := json.Marshal(ws)
	if err != nil {
		return nil
	}
	rec := store.WorksheetRecord{
		SessionID: c.session.ID,
		Topics:    string(topicsJSON),
		Data:      string(data),
	}
	repo := c.transcripts
	return func() tea.Msg {
		return persistedMsg{err: repo.SaveWorksheet(context.Background(), rec)}
	}
}

func exportWorksheetCmd(ws *tutor.Worksheet) tea.Cmd {
	if ws == nil {
		return nil
	}
	return func() tea.Msg {
		path, err := export.WriteWorksheet(export.DefaultDir(), ws, time.Now())
		return worksheetscreen.ExportedMsg{Path: path, Err: err}
	}
}
