package tutor

import "sort"

// RigorLevel is the academic level the tutor pitches its questions at.
// The value is embedded verbatim in prompts, so it reads as English prose.
type RigorLevel string

const (
	MiddleSchool  RigorLevel = "Middle School"
	HighSchool    RigorLevel = "High School"
	Undergraduate RigorLevel = "Undergraduate"
)

// RigorLevels lists the selectable levels in display order.
var RigorLevels = []RigorLevel{MiddleSchool, HighSchool, Undergraduate}

// Language pairs a native display name with the English name used in
// prompts ("Español" is shown to the user, "Spanish" is sent to the model).
type Language struct {
	Name string
	Code string
}

// Languages lists the selectable tutoring languages in display order.
var Languages = []Language{
	{Name: "English", Code: "English"},
	{Name: "Español", Code: "Spanish"},
	{Name: "Français", Code: "French"},
	{Name: "Deutsch", Code: "German"},
	{Name: "中文 (简体)", Code: "Simplified Chinese"},
	{Name: "日本語", Code: "Japanese"},
	{Name: "한국어", Code: "Korean"},
	{Name: "Português", Code: "Portuguese"},
	{Name: "Русский", Code: "Russian"},
	{Name: "العربية", Code: "Arabic"},
	{Name: "हिन्दी", Code: "Hindi"},
	{Name: "Italiano", Code: "Italian"},
}

// Sender identifies who produced a conversation message.
type Sender string

const (
	SenderStudent Sender = "student"
	SenderTutor   Sender = "tutor"
)

// Message is a single turn in the tutoring conversation.
type Message struct {
	ID     string
	Text   string
	Sender Sender
}

// WorksheetQuestion is one practice question on a generated worksheet.
type WorksheetQuestion struct {
	QuestionNumber int    `json:"questionNumber"`
	QuestionText   string `json:"questionText"`
}

// WorksheetAnswer is the answer-key entry for one question.
type WorksheetAnswer struct {
	QuestionNumber int    `json:"questionNumber"`
	AnswerText     string `json:"answerText"`
}

// Worksheet is a generated practice worksheet with its answer key.
type Worksheet struct {
	Title     string              `json:"title"`
	Questions []WorksheetQuestion `json:"questions"`
	AnswerKey []WorksheetAnswer   `json:"answerKey"`
}

// SortedAnswerKey returns the answer key ordered by question number. The
// model sometimes returns key entries out of order, so displays sort them.
func (w Worksheet) SortedAnswerKey() []WorksheetAnswer {
	key := make([]WorksheetAnswer, len(w.AnswerKey))
	copy(key, w.AnswerKey)
	sort.Slice(key, func(i, j int) bool {
		return key[i].QuestionNumber < key[j].QuestionNumber
	})
	return key
}

// Validation is the outcome of a credential probe. A failed probe is not
// an error return: the caller always gets a usable result.
type Validation struct {
	Valid bool
	Err   error
}
