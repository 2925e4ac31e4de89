package llm

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestAnthropicParams_DefaultReplyBudget(t *testing.T) {
	params := buildAnthropicParams("claude-haiku-4-5-20251001", Request{
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})

	if params.MaxTokens != anthropicDefaultMaxTokens {
		t.Errorf("max tokens = %d, want %d", params.MaxTokens, anthropicDefaultMaxTokens)
	}

	body, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	if strings.Contains(string(body), `"max_tokens":0`) {
		t.Errorf("wire body carries a zero token budget: %s", body)
	}
}

func TestAnthropicParams_ExplicitBudgetKept(t *testing.T) {
	params := buildAnthropicParams("claude-haiku-4-5-20251001", Request{
		Messages:  []Message{{Role: RoleUser, Content: "hello"}},
		MaxTokens: 1,
	})

	if params.MaxTokens != 1 {
		t.Errorf("max tokens = %d, want 1", params.MaxTokens)
	}
}

func TestAnthropicChat_DefaultReplyBudget(t *testing.T) {
	chat := &anthropicChat{
		model:     "claude-haiku-4-5-20251001",
		system:    "You are a tutor.",
		maxTokens: anthropicBudget(0),
	}
	chat.history = append(chat.history, anthropic.NewUserMessage(anthropic.NewTextBlock("hello")))

	params := chat.params()
	if params.MaxTokens != anthropicDefaultMaxTokens {
		t.Errorf("max tokens = %d, want %d", params.MaxTokens, anthropicDefaultMaxTokens)
	}

	body, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	if strings.Contains(string(body), `"max_tokens":0`) {
		t.Errorf("wire body carries a zero token budget: %s", body)
	}
}
