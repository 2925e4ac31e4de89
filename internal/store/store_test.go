package store

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"llm_events", "sessions", "session_messages", "worksheets"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "chat", InputTokens: 100, OutputTokens: 50, LatencyMs: 800, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "topics", InputTokens: 400, OutputTokens: 30, LatencyMs: 600, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "chat", InputTokens: 120, OutputTokens: 0, LatencyMs: 50, Success: false, ErrorMessage: "rate limited"},
	}
	for i, d := range data {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	// Newest first.
	if events[0].Success {
		t.Error("expected newest event to be the failed one")
	}
	if events[0].ErrorMessage != "rate limited" {
		t.Errorf("error message = %q", events[0].ErrorMessage)
	}

	// Purpose filter.
	events, err = repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "topics"})
	if err != nil {
		t.Fatalf("query filtered: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("filtered events = %d, want 1", len(events))
	}

	// Limit.
	events, err = repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("limited events = %d, want 2", len(events))
	}
}

func TestGetLLMEventBodies(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "openai",
		Model:        "gpt-4o-mini",
		Purpose:      "worksheet",
		Success:      true,
		RequestBody:  `{"prompt":"..."}`,
		ResponseBody: `{"questions":[]}`,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	e, err := repo.GetLLMEvent(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event 1")
	}
	if e.RequestBody != `{"prompt":"..."}` {
		t.Errorf("request body = %q", e.RequestBody)
	}
	if e.ResponseBody != `{"questions":[]}` {
		t.Errorf("response body = %q", e.ResponseBody)
	}

	missing, err := repo.GetLLMEvent(ctx, 999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}

func TestLLMUsageAggregation(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "chat", InputTokens: 100, OutputTokens: 40, LatencyMs: 200, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "chat", InputTokens: 200, OutputTokens: 60, LatencyMs: 400, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-pro", Purpose: "worksheet", InputTokens: 500, OutputTokens: 300, LatencyMs: 900, Success: true},
	}
	for i, d := range events {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %d, want 2", len(byPurpose))
	}
	var chat LLMUsage
	for _, u := range byPurpose {
		if u.Purpose == "chat" {
			chat = u
		}
	}
	if chat.Calls != 2 || chat.InputTokens != 300 || chat.OutputTokens != 100 {
		t.Errorf("chat usage = %+v", chat)
	}
	if chat.AvgLatencyMs != 300 {
		t.Errorf("avg latency = %d, want 300", chat.AvgLatencyMs)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("models = %d, want 2", len(byModel))
	}
}

func TestTranscriptRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.TranscriptRepo()
	ctx := context.Background()

	sess := SessionRecord{ID: "abc-123", Level: "High School", Language: "Spanish"}
	if err := repo.CreateSession(ctx, sess); err != nil {
		t.Fatalf("create session: %v", err)
	}

	msgs := []MessageRecord{
		{SessionID: "abc-123", Sender: "tutor", Content: "¡Hola, soy PAM!"},
		{SessionID: "abc-123", Sender: "student", Content: "¿Qué es la velocidad?"},
	}
	for i, m := range msgs {
		if err := repo.AppendMessage(ctx, m); err != nil {
			t.Fatalf("append message %d: %v", i, err)
		}
	}

	got, err := repo.GetSession(ctx, "abc-123")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got == nil || got.Language != "Spanish" {
		t.Fatalf("session = %+v", got)
	}

	messages, err := repo.GetMessages(ctx, "abc-123")
	if err != nil {
		t.Fatalf("get messages: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(messages))
	}
	// Chronological order.
	if messages[0].Sender != "tutor" || messages[1].Sender != "student" {
		t.Errorf("message order wrong: %q then %q", messages[0].Sender, messages[1].Sender)
	}

	ws := WorksheetRecord{SessionID: "abc-123", Topics: `["kinematics"]`, Data: `{"questions":[]}`}
	if err := repo.SaveWorksheet(ctx, ws); err != nil {
		t.Fatalf("save worksheet: %v", err)
	}
	sheets, err := repo.GetWorksheets(ctx, "abc-123")
	if err != nil {
		t.Fatalf("get worksheets: %v", err)
	}
	if len(sheets) != 1 || sheets[0].Topics != `["kinematics"]` {
		t.Fatalf("worksheets = %+v", sheets)
	}

	sessions, err := repo.ListSessions(ctx, 10)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
}
