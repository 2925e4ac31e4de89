// Package export writes session artifacts to disk so students can print a
// worksheet or keep a transcript after the terminal session ends.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abhisek/pam/internal/tutor"
)

// DefaultDir returns the directory exports are written to. It prefers the
// user's home directory and falls back to the working directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "pam-exports")
}

// WriteWorksheet renders the worksheet as printable Markdown and writes it
// to dir, returning the path of the created file.
func WriteWorksheet(dir string, ws *tutor.Worksheet, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	name := fmt.Sprintf("worksheet-%s.md", now.Format("2006-01-02-150405"))
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(WorksheetMarkdown(ws)), 0o644); err != nil {
		return "", fmt.Errorf("writing worksheet: %w", err)
	}
	return path, nil
}

// WorksheetMarkdown renders a worksheet as Markdown with the questions in
// their given order and the answer key sorted by question number.
func WorksheetMarkdown(ws *tutor.Worksheet) string {
	var b strings.Builder

	title := ws.Title
	if title == "" {
		title = "Physics Worksheet"
	}
	b.WriteString("# " + title + "\n\n")
	b.WriteString("## Questions\n\n")
	for _, q := range ws.Questions {
		fmt.Fprintf(&b, "%d. %s\n\n", q.QuestionNumber, q.QuestionText)
	}

	b.WriteString("---\n\n## Answer Key\n\n")
	for _, a := range ws.SortedAnswerKey() {
		fmt.Fprintf(&b, "%d. %s\n\n", a.QuestionNumber, a.AnswerText)
	}

	return b.String()
}

// WriteTranscript writes the conversation as plain text and returns the path
// of the created file.
func WriteTranscript(dir string, messages []tutor.Message, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	name := fmt.Sprintf("transcript-%s.txt", now.Format("2006-01-02-150405"))
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(TranscriptText(messages)), 0o644); err != nil {
		return "", fmt.Errorf("writing transcript: %w", err)
	}
	return path, nil
}

// TranscriptText renders the conversation with speaker labels, one blank
// line between turns.
func TranscriptText(messages []tutor.Message) string {
	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		label := "Tutor"
		if msg.Sender == tutor.SenderStudent {
			label = "Student"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, msg.Text)
	}
	return b.String()
}
