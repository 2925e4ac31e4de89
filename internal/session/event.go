package session

import "github.com/abhisek/pam/internal/tutor"

// Event is something that happened: a user choice, a completed external
// call, or a delivered stream fragment.
type Event interface{ isEvent() }

// LevelSelected records the rigor-level choice.
type LevelSelected struct {
	Level tutor.RigorLevel
}

// LanguageSelected records the language choice and starts validation.
type LanguageSelected struct {
	Language tutor.Language
}

// ValidationSucceeded reports a passing credential probe.
type ValidationSucceeded struct{}

// ValidationFailed reports a failed credential probe with the
// user-facing message already formatted.
type ValidationFailed struct {
	Message string
}

// SessionOpened reports that the tutoring session handle exists.
type SessionOpened struct{}

// InitFailed reports that opening the session or streaming the greeting
// failed. Level and language survive so the user can retry.
type InitFailed struct {
	Message string
}

// RetryInit restarts validation and session startup after InitFailed,
// without discarding the user's choices.
type RetryInit struct{}

// StudentSubmitted is the user sending a chat turn.
type StudentSubmitted struct {
	ID   string
	Text string
}

// AssistantStarted begins a new streamed assistant message.
type AssistantStarted struct {
	ID string
}

// FragmentReceived delivers one incremental piece of the in-flight reply.
type FragmentReceived struct {
	Text string
}

// StreamCompleted marks the in-flight reply as final.
type StreamCompleted struct{}

// StreamFailed aborts the in-flight reply with a user-facing message.
type StreamFailed struct {
	Message string
}

// WorksheetRequested is the user asking for a practice worksheet.
type WorksheetRequested struct{}

// WorksheetReady delivers a generated worksheet.
type WorksheetReady struct {
	Worksheet *tutor.Worksheet
}

// WorksheetFailed reports a failed worksheet pipeline with the
// user-facing message already formatted.
type WorksheetFailed struct {
	Message string
}

// WorksheetClosed dismisses the worksheet overlay.
type WorksheetClosed struct{}

// Reset tears the whole session down from any state.
type Reset struct{}

func (LevelSelected) isEvent()       {}
func (LanguageSelected) isEvent()    {}
func (ValidationSucceeded) isEvent() {}
func (ValidationFailed) isEvent()    {}
func (SessionOpened) isEvent()       {}
func (InitFailed) isEvent()          {}
func (RetryInit) isEvent()           {}
func (StudentSubmitted) isEvent()    {}
func (AssistantStarted) isEvent()    {}
func (FragmentReceived) isEvent()    {}
func (StreamCompleted) isEvent()     {}
func (StreamFailed) isEvent()        {}
func (WorksheetRequested) isEvent()  {}
func (WorksheetReady) isEvent()      {}
func (WorksheetFailed) isEvent()     {}
func (WorksheetClosed) isEvent()     {}
func (Reset) isEvent()               {}

// Effect is a side effect the caller must perform after a transition.
type Effect int

const (
	// EffectValidate runs the credential probe.
	EffectValidate Effect = iota
	// EffectOpenSession opens the tutoring session.
	EffectOpenSession
	// EffectGreet sends the synthetic greeting trigger.
	EffectGreet
	// EffectSendTurn forwards the just-appended student turn.
	EffectSendTurn
	// EffectCreateWorksheet runs topic extraction then generation.
	EffectCreateWorksheet
	// EffectTeardown discards the session handle and any in-flight work.
	EffectTeardown
)
