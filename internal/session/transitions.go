package session

import "github.com/abhisek/pam/internal/tutor"

// Apply advances the state machine. Events that are not legal in the
// current phase are ignored, returning the state unchanged with no
// effects; stale stream fragments after a reset fall out of this rule
// for free.
func Apply(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case Reset:
		return New(), []Effect{EffectTeardown}

	case LevelSelected:
		if s.Phase != PhaseUnstarted {
			return s, nil
		}
		s.Phase = PhaseLevelChosen
		s.Level = e.Level
		return s, nil

	case LanguageSelected:
		if s.Phase != PhaseLevelChosen {
			return s, nil
		}
		lang := e.Language
		s.Phase = PhaseValidating
		s.Language = &lang
		s.Err = ""
		return s, []Effect{EffectValidate}

	case ValidationSucceeded:
		if s.Phase != PhaseValidating {
			return s, nil
		}
		return s, []Effect{EffectOpenSession}

	case ValidationFailed:
		if s.Phase != PhaseValidating {
			return s, nil
		}
		// Back to language selection: level survives, language does not.
		s.Phase = PhaseLevelChosen
		s.Language = nil
		s.Err = e.Message
		return s, nil

	case SessionOpened:
		if s.Phase != PhaseValidating {
			return s, nil
		}
		s.Phase = PhaseSessionActive
		return s, []Effect{EffectGreet}

	case InitFailed:
		if s.Phase != PhaseValidating && s.Phase != PhaseSessionActive {
			return s, nil
		}
		s.Phase = PhaseInitFailed
		s.Err = e.Message
		s = dropStreamingMessage(s)
		return s, nil

	case RetryInit:
		if s.Phase != PhaseInitFailed {
			return s, nil
		}
		s.Phase = PhaseValidating
		s.Err = ""
		s.Messages = nil
		return s, []Effect{EffectValidate}

	case StudentSubmitted:
		if s.Phase != PhaseSessionActive || s.Busy() {
			return s, nil
		}
		s.Err = ""
		s.Messages = appendMessage(s.Messages, tutor.Message{
			ID:     e.ID,
			Text:   e.Text,
			Sender: tutor.SenderStudent,
		})
		return s, []Effect{EffectSendTurn}

	case AssistantStarted:
		if s.Phase != PhaseSessionActive {
			return s, nil
		}
		s.Messages = appendMessage(s.Messages, tutor.Message{
			ID:     e.ID,
			Sender: tutor.SenderTutor,
		})
		s.StreamingID = e.ID
		return s, nil

	case FragmentReceived:
		if s.StreamingID == "" {
			return s, nil
		}
		s.Messages = appendFragment(s.Messages, s.StreamingID, e.Text)
		return s, nil

	case StreamCompleted:
		s.StreamingID = ""
		return s, nil

	case StreamFailed:
		if s.Phase != PhaseSessionActive {
			return s, nil
		}
		s.StreamingID = ""
		s.Err = e.Message
		return s, nil

	case WorksheetRequested:
		if !s.CanRequestWorksheet() {
			return s, nil
		}
		s.Phase = PhaseWorksheetPending
		s.Err = ""
		return s, []Effect{EffectCreateWorksheet}

	case WorksheetReady:
		if s.Phase != PhaseWorksheetPending {
			return s, nil
		}
		s.Phase = PhaseWorksheetShown
		s.Worksheet = e.Worksheet
		return s, nil

	case WorksheetFailed:
		if s.Phase != PhaseWorksheetPending {
			return s, nil
		}
		// The chat session is untouched by a failed worksheet.
		s.Phase = PhaseSessionActive
		s.Err = e.Message
		return s, nil

	case WorksheetClosed:
		if s.Phase != PhaseWorksheetShown {
			return s, nil
		}
		s.Phase = PhaseSessionActive
		return s, nil
	}

	return s, nil
}

// appendMessage copies the transcript before appending so earlier State
// values keep their own view of history.
func appendMessage(messages []tutor.Message, msg tutor.Message) []tutor.Message {
	out := make([]tutor.Message, len(messages), len(messages)+1)
	copy(out, messages)
	return append(out, msg)
}

// appendFragment folds one fragment into the streaming message,
// producing a new transcript snapshot.
func appendFragment(messages []tutor.Message, id, text string) []tutor.Message {
	out := make([]tutor.Message, len(messages))
	copy(out, messages)
	for i := range out {
		if out[i].ID == id {
			out[i].Text += text
			break
		}
	}
	return out
}

// dropStreamingMessage removes a partially assembled assistant message,
// used when startup fails mid-greeting.
func dropStreamingMessage(s State) State {
	if s.StreamingID == "" {
		return s
	}
	out := make([]tutor.Message, 0, len(s.Messages))
	for _, m := range s.Messages {
		if m.ID != s.StreamingID {
			out = append(out, m)
		}
	}
	s.Messages = out
	s.StreamingID = ""
	return s
}
