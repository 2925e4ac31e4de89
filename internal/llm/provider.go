package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for talking to a text-generation service.
// Single-shot calls (credential probe, topic extraction, worksheet
// generation) go through Generate; the tutoring conversation goes through a
// Chat created with NewChat.
type Provider interface {
	// Generate sends a prompt to the service and returns the reply.
	// The request's Schema field, when set, instructs the provider to return
	// JSON conforming to that schema. The response Content is the validated
	// JSON document.
	Generate(ctx context.Context, req Request) (*Response, error)

	// NewChat opens a stateful conversation configured with the given
	// system prompt. Opening a chat performs no remote call; the first
	// turn does.
	NewChat(ctx context.Context, cfg ChatConfig) (Chat, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Chat is an opaque handle to a stateful conversation. The provider owns the
// turn history. A Chat is created per tutoring session and discarded on
// reset; it must never carry more than one in-flight turn.
type Chat interface {
	// SendStream forwards one user turn and returns an ordered, finite
	// stream of reply fragments. The channel is closed after a terminal
	// chunk (Done or Err); concatenating the Text of all chunks in order
	// yields the full reply.
	SendStream(ctx context.Context, text string) <-chan StreamChunk
}

// StreamChunk is one incremental piece of a streamed reply. Exactly one
// terminal chunk is delivered per turn: either Done=true or Err != nil.
type StreamChunk struct {
	Text string
	Err  error
	Done bool
}

// streamBuffer sizes the fragment channels so slow consumers don't stall
// the SDK read loop.
const streamBuffer = 32

// ChatConfig describes how to open a conversation.
type ChatConfig struct {
	// System is the system prompt. Sets the model's persona and constraints
	// for every turn of the conversation.
	System string

	// MaxTokens is the per-turn reply budget.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Request describes a single-shot generation call.
type Request struct {
	// System is the system prompt. Sets the model's role and constraints.
	System string

	// Messages is the conversation content. For single-turn generation
	// (the common case in PAM), this contains one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	// When nil, the response Content is the raw reply text.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64

	// DisableReasoning turns off the model's reasoning/thinking phase where
	// the provider supports it. Used by the credential probe, which only
	// needs to know that the call succeeds. Providers without a reasoning
	// knob ignore it.
	DisableReasoning bool
}

// Message represents a single message in a request.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies this schema (used as the schema name for OpenAI,
	// resource name for validation). Kebab-case, e.g. "worksheet".
	Name string

	// Description is a human-readable description of what this schema
	// represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output for a single-shot call.
type Response struct {
	// Content is the generated output. When a Schema was provided in the
	// request, this is the validated JSON object; otherwise the raw reply
	// text.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
