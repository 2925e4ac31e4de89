package app

import (
	"github.com/abhisek/pam/internal/llm"
	"github.com/abhisek/pam/internal/tutor"
)

// validationResultMsg carries the outcome of the credential probe.
type validationResultMsg struct {
	result tutor.Validation
}

// sessionOpenedMsg carries the outcome of opening a tutoring session.
type sessionOpenedMsg struct {
	session *tutor.Session
	err     error
}

// streamStartedMsg signals that a reply stream is running and ready to be
// consumed. The channel itself lives in the controller.
type streamStartedMsg struct {
	id       string
	greeting bool
}

// chunkMsg delivers one chunk from the active reply stream.
type chunkMsg struct {
	chunk    llm.StreamChunk
	greeting bool
}

// worksheetResultMsg carries the outcome of the worksheet pipeline.
type worksheetResultMsg struct {
	worksheet *tutor.Worksheet
	topics    []string
	err       error
}

// persistedMsg reports a best-effort transcript write. Failures are
// ignored: persistence must never disturb the session.
type persistedMsg struct {
	err error
}
