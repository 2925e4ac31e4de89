package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pam/internal/llm"
	"github.com/abhisek/pam/internal/screens/chat"
	"github.com/abhisek/pam/internal/screens/language"
	"github.com/abhisek/pam/internal/screens/rigor"
	worksheetscreen "github.com/abhisek/pam/internal/screens/worksheet"
	"github.com/abhisek/pam/internal/session"
	"github.com/abhisek/pam/internal/tutor"
)

var spanish = tutor.Language{Name: "Español", Code: "Spanish"}

// harness drives the root model by feeding messages directly, standing in
// for the Bubble Tea runtime.
type harness struct {
	t     *testing.T
	model AppModel
	mock  *llm.MockProvider
}

func newHarness(t *testing.T) *harness {
	mock := llm.NewMockProvider()
	client := tutor.NewClient(mock)
	return &harness{
		t:     t,
		model: New(client, nil),
		mock:  mock,
	}
}

func (h *harness) update(msg tea.Msg) {
	h.t.Helper()
	model, _ := h.model.Update(msg)
	h.model = model.(AppModel)
}

func (h *harness) state() session.State {
	return h.model.state
}

// openSession walks the model into an active session with the greeting
// already streamed.
func (h *harness) openSession() {
	h.t.Helper()

	h.mock.AddTurn(llm.MockTurn{Fragments: []string{"¡Hola", ", soy PAM!"}})

	h.update(rigor.ChosenMsg{Level: tutor.HighSchool})
	h.update(language.ChosenMsg{Language: spanish})
	h.update(validationResultMsg{result: tutor.Validation{Valid: true}})

	sess, err := h.model.ctrl.client.OpenSession(context.Background(), tutor.HighSchool, spanish)
	if err != nil {
		h.t.Fatalf("open session: %v", err)
	}
	h.update(sessionOpenedMsg{session: sess})

	h.update(streamStartedMsg{id: "greet", greeting: true})
	h.update(chunkMsg{chunk: llm.StreamChunk{Text: "¡Hola"}, greeting: true})
	h.update(chunkMsg{chunk: llm.StreamChunk{Text: ", soy PAM!"}, greeting: true})
	h.update(chunkMsg{chunk: llm.StreamChunk{Done: true}, greeting: true})
}

func TestApp_SelectionAdvancesStack(t *testing.T) {
	h := newHarness(t)

	if h.model.router.Depth() != 1 {
		t.Fatalf("initial depth = %d, want 1", h.model.router.Depth())
	}

	h.update(rigor.ChosenMsg{Level: tutor.HighSchool})
	if h.state().Phase != session.PhaseLevelChosen {
		t.Fatalf("phase = %v", h.state().Phase)
	}
	if h.model.router.Depth() != 2 {
		t.Errorf("depth = %d, want 2", h.model.router.Depth())
	}

	h.update(language.ChosenMsg{Language: spanish})
	if h.state().Phase != session.PhaseValidating {
		t.Fatalf("phase = %v", h.state().Phase)
	}
}

func TestApp_ValidationFailureReturnsToLanguage(t *testing.T) {
	h := newHarness(t)
	h.update(rigor.ChosenMsg{Level: tutor.MiddleSchool})
	h.update(language.ChosenMsg{Language: spanish})

	h.update(validationResultMsg{result: tutor.Validation{
		Valid: false,
		Err:   &llm.ErrRateLimit{},
	}})

	st := h.state()
	if st.Phase != session.PhaseLevelChosen {
		t.Fatalf("phase = %v, want level-chosen", st.Phase)
	}
	if st.Language != nil {
		t.Error("language should be cleared after a failed probe")
	}
	if st.Level != tutor.MiddleSchool {
		t.Error("level should survive a failed probe")
	}
	if !strings.HasPrefix(st.Err, "API connection failed:") {
		t.Errorf("Err = %q", st.Err)
	}
	if !strings.Contains(st.Err, "rate limit") {
		t.Errorf("Err = %q, want rate limit text", st.Err)
	}
}

func TestApp_GreetingAssemblesInOrder(t *testing.T) {
	h := newHarness(t)
	h.openSession()

	st := h.state()
	if st.Phase != session.PhaseSessionActive {
		t.Fatalf("phase = %v", st.Phase)
	}
	if len(st.Messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(st.Messages))
	}
	if st.Messages[0].Text != "¡Hola, soy PAM!" {
		t.Errorf("greeting = %q", st.Messages[0].Text)
	}
	if st.Messages[0].Sender != tutor.SenderTutor {
		t.Error("greeting should be a tutor message")
	}
	if h.model.router.Depth() != 3 {
		t.Errorf("depth = %d, want 3", h.model.router.Depth())
	}
	// The synthetic trigger reached the provider but not the transcript.
	if len(h.mock.Sent) != 1 || h.mock.Sent[0] != "Introduce yourself." {
		t.Errorf("Sent = %v", h.mock.Sent)
	}
}

func TestApp_StudentTurnRoundTrip(t *testing.T) {
	h := newHarness(t)
	h.openSession()

	h.mock.AddTurn(llm.MockTurn{Fragments: []string{"What do ", "you think force means?"}})
	h.update(chat.SubmitMsg{Text: "What is force?"})

	st := h.state()
	if len(st.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(st.Messages))
	}
	if st.Messages[1].Sender != tutor.SenderStudent || st.Messages[1].Text != "What is force?" {
		t.Errorf("student turn = %+v", st.Messages[1])
	}

	h.update(streamStartedMsg{id: "reply"})
	h.update(chunkMsg{chunk: llm.StreamChunk{Text: "What do "}})
	h.update(chunkMsg{chunk: llm.StreamChunk{Text: "you think force means?"}})
	h.update(chunkMsg{chunk: llm.StreamChunk{Done: true}})

	st = h.state()
	if len(st.Messages) != 3 {
		t.Fatalf("messages = %d, want 3", len(st.Messages))
	}
	if st.Messages[2].Text != "What do you think force means?" {
		t.Errorf("reply = %q", st.Messages[2].Text)
	}
	if st.StreamingID != "" {
		t.Error("stream should be finished")
	}
}

func TestApp_WorksheetFlow(t *testing.T) {
	h := newHarness(t)
	h.openSession()

	// A second message so the worksheet becomes available.
	h.mock.AddTurn(llm.MockTurn{Fragments: []string{"Good question."}})
	h.update(chat.SubmitMsg{Text: "Tell me about energy."})
	h.update(streamStartedMsg{id: "reply"})
	h.update(chunkMsg{chunk: llm.StreamChunk{Text: "Good question."}})
	h.update(chunkMsg{chunk: llm.StreamChunk{Done: true}})

	h.update(chat.WorksheetMsg{})
	if h.state().Phase != session.PhaseWorksheetPending {
		t.Fatalf("phase = %v", h.state().Phase)
	}

	ws := &tutor.Worksheet{
		Title:     "Energy",
		Questions: []tutor.WorksheetQuestion{{QuestionNumber: 1, QuestionText: "Define work."}},
		AnswerKey: []tutor.WorksheetAnswer{{QuestionNumber: 1, AnswerText: "Force times distance."}},
	}
	h.update(worksheetResultMsg{worksheet: ws, topics: []string{"energy"}})

	st := h.state()
	if st.Phase != session.PhaseWorksheetShown {
		t.Fatalf("phase = %v", st.Phase)
	}
	if st.Worksheet != ws {
		t.Error("worksheet not stored")
	}
	if h.model.router.Depth() != 4 {
		t.Errorf("depth = %d, want 4", h.model.router.Depth())
	}

	h.update(worksheetscreen.CloseMsg{})
	if h.state().Phase != session.PhaseSessionActive {
		t.Fatalf("phase after close = %v", h.state().Phase)
	}
	if h.model.router.Depth() != 3 {
		t.Errorf("depth after close = %d, want 3", h.model.router.Depth())
	}
	if len(h.state().Messages) != 3 {
		t.Errorf("transcript length changed: %d", len(h.state().Messages))
	}
}

func TestApp_WorksheetFailureKeepsChat(t *testing.T) {
	h := newHarness(t)
	h.openSession()

	h.mock.AddTurn(llm.MockTurn{Fragments: []string{"Sure."}})
	h.update(chat.SubmitMsg{Text: "Hi"})
	h.update(streamStartedMsg{id: "reply"})
	h.update(chunkMsg{chunk: llm.StreamChunk{Done: true}})

	h.update(chat.WorksheetMsg{})
	h.update(worksheetResultMsg{err: tutor.ErrNoTopics})

	st := h.state()
	if st.Phase != session.PhaseSessionActive {
		t.Fatalf("phase = %v", st.Phase)
	}
	if !strings.Contains(st.Err, "Could not identify specific topics") {
		t.Errorf("Err = %q", st.Err)
	}
	if h.model.router.Depth() != 3 {
		t.Errorf("depth = %d, want 3", h.model.router.Depth())
	}
}

func TestApp_InitFailureAllowsRetry(t *testing.T) {
	h := newHarness(t)
	h.update(rigor.ChosenMsg{Level: tutor.Undergraduate})
	h.update(language.ChosenMsg{Language: spanish})
	h.update(validationResultMsg{result: tutor.Validation{Valid: true}})

	h.update(sessionOpenedMsg{err: errors.New("socket closed")})

	st := h.state()
	if st.Phase != session.PhaseInitFailed {
		t.Fatalf("phase = %v", st.Phase)
	}
	if st.Level != tutor.Undergraduate || st.Language == nil {
		t.Error("choices should survive an init failure")
	}
	if !strings.HasPrefix(st.Err, "Failed to initialize chat:") {
		t.Errorf("Err = %q", st.Err)
	}
	if h.model.router.Depth() != 2 {
		t.Errorf("depth = %d, want 2", h.model.router.Depth())
	}

	h.update(language.RetryMsg{})
	if h.state().Phase != session.PhaseValidating {
		t.Fatalf("phase after retry = %v", h.state().Phase)
	}
}

func TestApp_ResetTearsEverythingDown(t *testing.T) {
	h := newHarness(t)
	h.openSession()

	h.update(chat.ResetMsg{})

	st := h.state()
	if st.Phase != session.PhaseUnstarted {
		t.Fatalf("phase = %v", st.Phase)
	}
	if st.Level != "" || st.Language != nil || len(st.Messages) != 0 || st.Worksheet != nil {
		t.Errorf("state not cleared: %+v", st)
	}
	if h.model.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", h.model.router.Depth())
	}
	if h.model.ctrl.session != nil {
		t.Error("controller should drop the session handle")
	}
}

func TestApp_StaleChunkAfterResetIgnored(t *testing.T) {
	h := newHarness(t)
	h.openSession()
	h.update(chat.ResetMsg{})

	h.update(chunkMsg{chunk: llm.StreamChunk{Text: "late"}})

	if len(h.state().Messages) != 0 {
		t.Error("stale chunk must not touch the fresh state")
	}
}

func TestApp_SessionInfoHeader(t *testing.T) {
	h := newHarness(t)
	h.openSession()

	if got := h.model.sessionInfo(); got != "High School · Español" {
		t.Errorf("sessionInfo = %q", got)
	}
}
