package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/pam/internal/llm"
)

var spanish = Language{Name: "Español", Code: "Spanish"}

func TestValidateKey_Success(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`"ok"`)},
	)
	client := NewClient(mock)

	v := client.ValidateKey(context.Background())
	if !v.Valid {
		t.Fatalf("expected valid, got error: %v", v.Err)
	}

	// The probe must be minimal: one token, no reasoning.
	if len(mock.Calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(mock.Calls))
	}
	req := mock.Calls[0]
	if req.MaxTokens != 1 {
		t.Errorf("max tokens = %d, want 1", req.MaxTokens)
	}
	if !req.DisableReasoning {
		t.Error("expected reasoning disabled for probe")
	}
}

func TestValidateKey_FailureIsAValueNotAnError(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrRateLimit{}},
	)
	client := NewClient(mock)

	v := client.ValidateKey(context.Background())
	if v.Valid {
		t.Fatal("expected invalid")
	}
	var rl *llm.ErrRateLimit
	if !errors.As(v.Err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T", v.Err)
	}
}

func TestOpenSessionAndGreet(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddTurn(llm.MockTurn{Fragments: []string{"¡Hola", ", soy PAM!"}})
	client := NewClient(mock)

	sess, err := client.OpenSession(context.Background(), HighSchool, spanish)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if sess.ID == "" {
		t.Error("expected session ID")
	}
	if sess.Level != HighSchool || sess.Language.Code != "Spanish" {
		t.Errorf("session = %+v", sess)
	}

	var reply strings.Builder
	for chunk := range sess.Greet(context.Background()) {
		if chunk.Err != nil {
			t.Fatalf("stream error: %v", chunk.Err)
		}
		reply.WriteString(chunk.Text)
	}
	if reply.String() != "¡Hola, soy PAM!" {
		t.Fatalf("greeting = %q", reply.String())
	}
	if len(mock.Sent) != 1 || mock.Sent[0] != "Introduce yourself." {
		t.Fatalf("sent = %v", mock.Sent)
	}
}

func TestSystemInstruction_LeadsWithLanguage(t *testing.T) {
	sys := systemInstruction(Undergraduate, "Japanese")
	if !strings.HasPrefix(sys, "You MUST conduct the entire conversation, including your introduction, in Japanese.") {
		t.Fatalf("instruction does not lead with language: %q", sys[:80])
	}
	if !strings.Contains(sys, "Undergraduate level") {
		t.Error("instruction missing rigor level")
	}
	if !strings.Contains(sys, "Socratic method") {
		t.Error("instruction missing Socratic directive")
	}
	if !strings.Contains(sys, "$$F = ma$$") {
		t.Error("instruction missing LaTeX examples")
	}
}

func TestExtractTopics(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"topics":["cinemática","fricción"]}`)},
	)
	client := NewClient(mock)

	messages := []Message{
		{Sender: SenderTutor, Text: "¿Qué es la velocidad?"},
		{Sender: SenderStudent, Text: "Distancia sobre tiempo."},
	}
	topics, err := client.ExtractTopics(context.Background(), messages, HighSchool, spanish)
	if err != nil {
		t.Fatalf("extract topics: %v", err)
	}
	if len(topics) != 2 || topics[0] != "cinemática" {
		t.Fatalf("topics = %v", topics)
	}

	req := mock.Calls[0]
	if req.Schema != TopicsSchema {
		t.Error("expected topics schema on request")
	}
	prompt := req.Messages[0].Content
	if !strings.Contains(prompt, "Tutor: ¿Qué es la velocidad?") {
		t.Error("prompt missing formatted history")
	}
	if !strings.Contains(prompt, "The topics must be in Spanish.") {
		t.Error("prompt missing language directive")
	}
}

func TestGenerateWorksheet(t *testing.T) {
	raw := `{
		"title":"Práctica de Cinemática",
		"questions":[
			{"questionNumber":1,"questionText":"Define $v$."},
			{"questionNumber":2,"questionText":"Calcula $a$."}
		],
		"answerKey":[
			{"questionNumber":1,"answerText":"$v = d/t$"},
			{"questionNumber":2,"answerText":"$a = \\Delta v / t$"}
		]
	}`
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(raw)},
	)
	client := NewClient(mock)

	ws, err := client.GenerateWorksheet(context.Background(), []string{"cinemática"}, HighSchool, spanish)
	if err != nil {
		t.Fatalf("generate worksheet: %v", err)
	}
	if ws.Title != "Práctica de Cinemática" {
		t.Errorf("title = %q", ws.Title)
	}
	if len(ws.Questions) != 2 || len(ws.AnswerKey) != 2 {
		t.Fatalf("questions = %d, answers = %d", len(ws.Questions), len(ws.AnswerKey))
	}

	req := mock.Calls[0]
	if req.Schema != WorksheetSchema {
		t.Error("expected worksheet schema on request")
	}
	if !strings.Contains(req.Messages[0].Content, "cinemática") {
		t.Error("prompt missing topic list")
	}
}

func TestCreateWorksheet_SkipsGenerationWhenNoTopics(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"topics":[]}`)},
	)
	client := NewClient(mock)

	_, _, err := client.CreateWorksheet(context.Background(), []Message{
		{Sender: SenderTutor, Text: "Hello!"},
	}, MiddleSchool, Language{Name: "English", Code: "English"})

	if !errors.Is(err, ErrNoTopics) {
		t.Fatalf("expected ErrNoTopics, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1 (generation must not run)", mock.CallCount())
	}
}

func TestCreateWorksheet_FullPipeline(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"topics":["kinematics"]}`)},
		llm.MockResponse{Content: json.RawMessage(`{"title":"Practice","questions":[{"questionNumber":1,"questionText":"q"}],"answerKey":[{"questionNumber":1,"answerText":"a"}]}`)},
	)
	client := NewClient(mock)

	ws, topics, err := client.CreateWorksheet(context.Background(), []Message{
		{Sender: SenderTutor, Text: "What is velocity?"},
		{Sender: SenderStudent, Text: "Distance over time."},
	}, HighSchool, Language{Name: "English", Code: "English"})
	if err != nil {
		t.Fatalf("create worksheet: %v", err)
	}
	if ws.Title != "Practice" {
		t.Errorf("title = %q", ws.Title)
	}
	if len(topics) != 1 || topics[0] != "kinematics" {
		t.Errorf("topics = %v", topics)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("calls = %d, want 2", mock.CallCount())
	}
}

func TestExtractTopics_InvalidJSON(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`not json`)},
	)
	client := NewClient(mock)

	_, err := client.ExtractTopics(context.Background(), nil, HighSchool, spanish)
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}
