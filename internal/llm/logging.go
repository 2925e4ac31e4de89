package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/pam/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner     Provider
	name      string
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with event logging. The name is the
// configured provider ("gemini", "openai", ...) recorded alongside the
// model on every event.
func WithLogging(p Provider, name string, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, name: name, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latencyMs,
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	l.record(ctx, data)

	return resp, err
}

func (l *LoggingProvider) NewChat(ctx context.Context, cfg ChatConfig) (Chat, error) {
	chat, err := l.inner.NewChat(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &loggingChat{inner: chat, provider: l}, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// record logs the event but doesn't fail the request if logging fails.
func (l *LoggingProvider) record(ctx context.Context, data store.LLMRequestEventData) {
	if err := l.eventRepo.AppendLLMRequest(ctx, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", err)
	}
}

// loggingChat records one event per streamed turn once the stream finishes.
// Token counts are not available mid-stream, so only latency and the
// assembled reply are captured.
type loggingChat struct {
	inner    Chat
	provider *LoggingProvider
}

func (c *loggingChat) SendStream(ctx context.Context, text string) <-chan StreamChunk {
	out := make(chan StreamChunk, streamBuffer)
	start := time.Now()
	purpose := PurposeFrom(ctx)
	in := c.inner.SendStream(ctx, text)

	go func() {
		defer close(out)

		var reply strings.Builder
		var streamErr error
		for chunk := range in {
			if chunk.Err != nil {
				streamErr = chunk.Err
			}
			reply.WriteString(chunk.Text)
			out <- chunk
		}

		data := store.LLMRequestEventData{
			Provider:     c.provider.name,
			Model:        c.provider.inner.ModelID(),
			Purpose:      purpose,
			LatencyMs:    time.Since(start).Milliseconds(),
			Success:      streamErr == nil,
			RequestBody:  text,
			ResponseBody: reply.String(),
		}
		if streamErr != nil {
			data.ErrorMessage = streamErr.Error()
		}
		c.provider.record(context.WithoutCancel(ctx), data)
	}()

	return out
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			b.WriteString(fmt.Sprintf("[schema: %s]\n", req.Schema.Name))
			b.WriteString(string(schemaDef))
			b.WriteString("\n")
		}
	}

	return b.String()
}
