package tutor

import "testing"

func TestWorksheet_SortedAnswerKey(t *testing.T) {
	ws := Worksheet{
		AnswerKey: []WorksheetAnswer{
			{QuestionNumber: 3, AnswerText: "c"},
			{QuestionNumber: 1, AnswerText: "a"},
			{QuestionNumber: 2, AnswerText: "b"},
		},
	}

	key := ws.SortedAnswerKey()

	want := []int{1, 2, 3}
	for i, entry := range key {
		if entry.QuestionNumber != want[i] {
			t.Errorf("key[%d].QuestionNumber = %d, want %d", i, entry.QuestionNumber, want[i])
		}
	}

	// The original slice must not be reordered.
	if ws.AnswerKey[0].QuestionNumber != 3 {
		t.Errorf("original answer key was mutated: first entry is %d", ws.AnswerKey[0].QuestionNumber)
	}
}

func TestLanguages_TwelveChoices(t *testing.T) {
	if len(Languages) != 12 {
		t.Fatalf("len(Languages) = %d, want 12", len(Languages))
	}
	seen := make(map[string]bool)
	for _, lang := range Languages {
		if lang.Name == "" || lang.Code == "" {
			t.Errorf("language %+v has an empty field", lang)
		}
		if seen[lang.Code] {
			t.Errorf("duplicate language code %q", lang.Code)
		}
		seen[lang.Code] = true
	}
}
