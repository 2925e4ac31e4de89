// Package session models the application flow as a pure state machine.
// Apply is a function of (state, event) producing (state, effects); all
// side effects are requested, never performed, so every transition is
// testable without a terminal or a network.
package session

import (
	"github.com/abhisek/pam/internal/tutor"
)

// Phase is the coarse position in the tutoring flow. Exactly one phase
// is active at any time and each is gated on the previous.
type Phase int

const (
	// PhaseUnstarted is the initial state: nothing chosen yet.
	PhaseUnstarted Phase = iota
	// PhaseLevelChosen has a rigor level but no language.
	PhaseLevelChosen
	// PhaseValidating has both choices and is probing the credential,
	// then opening the session and streaming the greeting.
	PhaseValidating
	// PhaseInitFailed is validation-passed but session startup failed.
	// The choices are kept so the user can retry without starting over.
	PhaseInitFailed
	// PhaseSessionActive is the live tutoring conversation.
	PhaseSessionActive
	// PhaseWorksheetPending is a worksheet request in flight.
	PhaseWorksheetPending
	// PhaseWorksheetShown is the worksheet overlay on top of the chat.
	PhaseWorksheetShown
)

func (p Phase) String() string {
	switch p {
	case PhaseUnstarted:
		return "unstarted"
	case PhaseLevelChosen:
		return "level-chosen"
	case PhaseValidating:
		return "validating"
	case PhaseInitFailed:
		return "init-failed"
	case PhaseSessionActive:
		return "session-active"
	case PhaseWorksheetPending:
		return "worksheet-pending"
	case PhaseWorksheetShown:
		return "worksheet-shown"
	}
	return "unknown"
}

// State is the complete application state. It is a value: Apply returns
// modified copies and never mutates its input's slices in place beyond
// appending to a freshly copied message list.
type State struct {
	Phase    Phase
	Level    tutor.RigorLevel
	Language *tutor.Language

	// Messages is the visible transcript in order. The synthetic
	// greeting trigger is never part of it.
	Messages []tutor.Message

	// StreamingID is the ID of the assistant message currently being
	// assembled from stream fragments, or "" when no stream is active.
	StreamingID string

	// Err is the user-facing error line, "" when clear.
	Err string

	Worksheet *tutor.Worksheet
}

// New returns the initial state.
func New() State {
	return State{Phase: PhaseUnstarted}
}

// Busy reports whether an external request is outstanding. Input
// affordances are disabled while busy, which is what prevents
// overlapping turns against the session.
func (s State) Busy() bool {
	return s.StreamingID != "" ||
		s.Phase == PhaseValidating ||
		s.Phase == PhaseWorksheetPending
}

// CanRequestWorksheet reports whether the worksheet action is available.
func (s State) CanRequestWorksheet() bool {
	return s.Phase == PhaseSessionActive && !s.Busy() && len(s.Messages) >= 2
}

// LastMessage returns the newest message, or nil for an empty transcript.
func (s State) LastMessage() *tutor.Message {
	if len(s.Messages) == 0 {
		return nil
	}
	return &s.Messages[len(s.Messages)-1]
}
