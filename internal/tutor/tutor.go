// Package tutor wraps an LLM provider with the Socratic physics tutor:
// opening streamed tutoring sessions, extracting discussion topics from a
// transcript, and synthesizing practice worksheets.
package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/pam/internal/llm"
)

// ErrNoTopics indicates topic extraction found nothing to build a
// worksheet from. Worksheet generation is never attempted in that case.
var ErrNoTopics = errors.New("no topics identified in conversation")

// Client provides the tutoring operations on top of an llm.Provider.
type Client struct {
	provider llm.Provider
}

// NewClient creates a tutoring client.
func NewClient(p llm.Provider) *Client {
	return &Client{provider: p}
}

// ValidateKey probes the provider with a minimal one-token request to
// confirm the credential and connection work. It reports the outcome as
// a value rather than an error: a failed probe is an expected result.
func (c *Client) ValidateKey(ctx context.Context) Validation {
	ctx = llm.WithPurpose(ctx, "validate")

	_, err := c.provider.Generate(ctx, llm.Request{
		Messages:         []llm.Message{{Role: llm.RoleUser, Content: "hello"}},
		MaxTokens:        1,
		DisableReasoning: true,
	})
	if err != nil {
		return Validation{Valid: false, Err: err}
	}
	return Validation{Valid: true}
}

// Session is an open tutoring conversation bound to a level and language.
// The underlying chat carries the transcript, so each Send only supplies
// the new student turn.
type Session struct {
	ID       string
	Level    RigorLevel
	Language Language

	chat llm.Chat
}

// OpenSession starts a tutoring chat configured for the given level and
// language. No model call happens until the first Send.
func (c *Client) OpenSession(ctx context.Context, level RigorLevel, language Language) (*Session, error) {
	chat, err := c.provider.NewChat(ctx, llm.ChatConfig{
		System: systemInstruction(level, language.Code),
	})
	if err != nil {
		return nil, fmt.Errorf("open tutoring session: %w", err)
	}

	return &Session{
		ID:       uuid.NewString(),
		Level:    level,
		Language: language,
		chat:     chat,
	}, nil
}

// Greet asks the tutor to open the conversation. The triggering turn is
// synthetic and must not appear in the visible transcript.
func (s *Session) Greet(ctx context.Context) <-chan llm.StreamChunk {
	return s.Send(ctx, greetingTurn)
}

// Send submits a student turn and streams the tutor's reply.
func (s *Session) Send(ctx context.Context, text string) <-chan llm.StreamChunk {
	ctx = llm.WithPurpose(ctx, "chat")
	return s.chat.SendStream(ctx, text)
}

// ExtractTopics identifies the physics topics discussed in the given
// transcript. The transcript is truncated from the oldest side to keep
// the prompt within bounds.
func (c *Client) ExtractTopics(ctx context.Context, messages []Message, level RigorLevel, language Language) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "topics")

	history := formatHistory(messages)
	resp, err := c.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: buildTopicsPrompt(history, level, language.Code)}},
		Schema:   TopicsSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("extract topics: %w", err)
	}

	var parsed struct {
		Topics []string `json:"topics"`
	}
	if err := json.Unmarshal(resp.Content, &parsed); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return parsed.Topics, nil
}

// GenerateWorksheet creates a practice worksheet covering the given topics.
func (c *Client) GenerateWorksheet(ctx context.Context, topics []string, level RigorLevel, language Language) (*Worksheet, error) {
	ctx = llm.WithPurpose(ctx, "worksheet")

	resp, err := c.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: buildWorksheetPrompt(topics, level, language.Code)}},
		Schema:   WorksheetSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("generate worksheet: %w", err)
	}

	var ws Worksheet
	if err := json.Unmarshal(resp.Content, &ws); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return &ws, nil
}

// CreateWorksheet runs the two-step pipeline: extract topics from the
// transcript, then generate a worksheet from them. When extraction yields
// no topics the second call is skipped and ErrNoTopics is returned. The
// extracted topics are returned alongside the worksheet.
func (c *Client) CreateWorksheet(ctx context.Context, messages []Message, level RigorLevel, language Language) (*Worksheet, []string, error) {
	topics, err := c.ExtractTopics(ctx, messages, level, language)
	if err != nil {
		return nil, nil, err
	}
	if len(topics) == 0 {
		return nil, nil, ErrNoTopics
	}
	ws, err := c.GenerateWorksheet(ctx, topics, level, language)
	if err != nil {
		return nil, topics, err
	}
	return ws, topics, nil
}
