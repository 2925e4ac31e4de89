package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockTurn is a scripted streamed reply for a MockProvider chat.
// Fragments are emitted as individual chunks before the terminal Done
// chunk; Err, if set, is emitted after the fragments.
type MockTurn struct {
	Fragments []string
	Err       error
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses and scripted chat turns in FIFO order and
// records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	turns     []MockTurn
	Calls     []Request
	Sent      []string
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// NewChat returns a chat that replays scripted turns.
func (m *MockProvider) NewChat(_ context.Context, _ ChatConfig) (Chat, error) {
	return &mockChat{provider: m}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// AddTurn appends a scripted chat turn to the queue.
func (m *MockProvider) AddTurn(turn MockTurn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, turn)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockProvider) nextTurn(text string) MockTurn {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, text)
	if len(m.turns) == 0 {
		return MockTurn{Err: &ErrProviderUnavailable{Err: nil}}
	}
	turn := m.turns[0]
	m.turns = m.turns[1:]
	return turn
}

type mockChat struct {
	provider *MockProvider
}

func (c *mockChat) SendStream(_ context.Context, text string) <-chan StreamChunk {
	out := make(chan StreamChunk, streamBuffer)
	turn := c.provider.nextTurn(text)

	go func() {
		defer close(out)
		for _, frag := range turn.Fragments {
			out <- StreamChunk{Text: frag}
		}
		if turn.Err != nil {
			out <- StreamChunk{Err: turn.Err, Done: true}
			return
		}
		out <- StreamChunk{Done: true}
	}()

	return out
}
