package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // filter by purpose ("" = all)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a recorded LLM request with its database identity.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage per purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage per model, for cost estimation.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest-first, without bodies.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event with full bodies, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

// SessionRecord is a persisted tutoring session.
type SessionRecord struct {
	ID        string
	Level     string
	Language  string
	StartedAt time.Time
}

// MessageRecord is a single persisted conversation turn.
type MessageRecord struct {
	ID        int64
	SessionID string
	Sender    string // "student" or "tutor"
	Content   string
	CreatedAt time.Time
}

// WorksheetRecord is a persisted generated worksheet. Topics and Data
// hold JSON produced by the tutor package.
type WorksheetRecord struct {
	ID        int64
	SessionID string
	Topics    string
	Data      string
	CreatedAt time.Time
}

// TranscriptRepo persists tutoring sessions, their transcripts, and any
// worksheets generated from them.
type TranscriptRepo interface {
	CreateSession(ctx context.Context, rec SessionRecord) error
	AppendMessage(ctx context.Context, rec MessageRecord) error
	SaveWorksheet(ctx context.Context, rec WorksheetRecord) error

	ListSessions(ctx context.Context, limit int) ([]SessionRecord, error)
	GetSession(ctx context.Context, id string) (*SessionRecord, error)
	GetMessages(ctx context.Context, sessionID string) ([]MessageRecord, error)
	GetWorksheets(ctx context.Context, sessionID string) ([]WorksheetRecord, error)
}
