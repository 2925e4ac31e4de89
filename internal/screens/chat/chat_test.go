package chat

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pam/internal/mathtex"
	"github.com/abhisek/pam/internal/screen"
	"github.com/abhisek/pam/internal/session"
	"github.com/abhisek/pam/internal/tutor"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func activeState() session.State {
	return session.State{
		Phase: session.PhaseSessionActive,
		Level: tutor.HighSchool,
		Messages: []tutor.Message{
			{ID: "m1", Sender: tutor.SenderTutor, Text: "Hello! What shall we explore?"},
			{ID: "m2", Sender: tutor.SenderStudent, Text: "Newton's laws."},
		},
	}
}

func testScreen(st session.State) *Screen {
	s := New(mathtex.NewTermRenderer())
	updated, _ := s.Update(screen.StateMsg{State: st})
	return updated.(*Screen)
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func TestChatScreen_Title(t *testing.T) {
	s := New(nil)
	if s.Title() != "Tutoring Session" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestChatScreen_SubmitEmitsMessage(t *testing.T) {
	s := testScreen(activeState())
	s.input.Model.SetValue("  What is inertia?  ")

	updated, cmd := s.Update(specialKey(tea.KeyEnter))
	s = updated.(*Screen)

	msg := runCmd(t, cmd)
	submit, ok := msg.(SubmitMsg)
	if !ok {
		t.Fatalf("msg = %T, want SubmitMsg", msg)
	}
	if submit.Text != "What is inertia?" {
		t.Errorf("Text = %q", submit.Text)
	}
	if s.input.Value() != "" {
		t.Errorf("input not cleared: %q", s.input.Value())
	}
}

func TestChatScreen_SubmitIgnoredWhileBusy(t *testing.T) {
	st := activeState()
	st.StreamingID = "m3"
	s := testScreen(st)
	s.input.Model.SetValue("hello")

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command while a reply is streaming")
	}
}

func TestChatScreen_SubmitIgnoredWhenEmpty(t *testing.T) {
	s := testScreen(activeState())
	s.input.Model.SetValue("   ")

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command for a blank message")
	}
}

func TestChatScreen_WorksheetShortcut(t *testing.T) {
	s := testScreen(activeState())

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'w', Mod: tea.ModCtrl})
	msg := runCmd(t, cmd)
	if _, ok := msg.(WorksheetMsg); !ok {
		t.Fatalf("msg = %T, want WorksheetMsg", msg)
	}
}

func TestChatScreen_WorksheetNeedsTwoMessages(t *testing.T) {
	st := activeState()
	st.Messages = st.Messages[:1]
	s := testScreen(st)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'w', Mod: tea.ModCtrl})
	if cmd != nil {
		t.Error("expected no command with a single message")
	}
}

func TestChatScreen_ResetConfirm(t *testing.T) {
	s := testScreen(activeState())

	updated, _ := s.Update(specialKey(tea.KeyEscape))
	s = updated.(*Screen)
	if !s.confirmReset {
		t.Fatal("expected reset confirmation")
	}

	updated, _ = s.Update(keyPress('n'))
	s = updated.(*Screen)
	if s.confirmReset {
		t.Fatal("expected confirmation dismissed")
	}

	updated, _ = s.Update(specialKey(tea.KeyEscape))
	s = updated.(*Screen)
	updated, cmd := s.Update(keyPress('y'))
	s = updated.(*Screen)

	msg := runCmd(t, cmd)
	if _, ok := msg.(ResetMsg); !ok {
		t.Fatalf("msg = %T, want ResetMsg", msg)
	}
	if s.confirmReset {
		t.Error("expected confirmation cleared after confirming")
	}
}

func TestChatScreen_ViewShowsTranscript(t *testing.T) {
	s := testScreen(activeState())

	view := s.View(80, 24)
	if !strings.Contains(view, "What shall we explore?") {
		t.Error("view missing tutor message")
	}
	if !strings.Contains(view, "Newton's laws.") {
		t.Error("view missing student message")
	}
}

func TestChatScreen_StreamingMessageShowsCursor(t *testing.T) {
	st := activeState()
	st.Messages = append(st.Messages, tutor.Message{ID: "m3", Sender: tutor.SenderTutor, Text: "Good. Newton's first law says"})
	st.StreamingID = "m3"
	s := testScreen(st)

	view := s.View(80, 24)
	if !strings.Contains(view, "▌") {
		t.Error("view missing streaming cursor")
	}
}

func TestChatScreen_FinalizedMathIsLowered(t *testing.T) {
	st := activeState()
	st.Messages = append(st.Messages, tutor.Message{ID: "m3", Sender: tutor.SenderTutor, Text: "Remember $F = ma$ here."})
	s := testScreen(st)

	view := s.View(80, 24)
	if strings.Contains(view, "$F = ma$") {
		t.Error("math delimiters should be lowered in finalized messages")
	}
	if !strings.Contains(view, "F = ma") {
		t.Error("view missing lowered expression")
	}
}

func TestChatScreen_ErrorShown(t *testing.T) {
	st := activeState()
	st.Err = "Sorry, I encountered an error: something broke"
	s := testScreen(st)

	view := s.View(80, 24)
	if !strings.Contains(view, "Sorry, I encountered an error:") {
		t.Error("view missing error line")
	}
}
