package tutor

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxHistoryChars caps the transcript included in the topic extraction
// prompt. Oversized prompts have caused request failures, so the window
// keeps the most recent turns that fit.
const maxHistoryChars = 10000

// formatHistory renders messages as "Student:"/"Tutor:" lines in
// chronological order, truncated from the oldest side. Only whole
// messages are included: a turn that would push the total past the cap
// ends the scan, even if later (older) turns are shorter.
func formatHistory(messages []Message) string {
	var lines []string
	currentChars := 0

	for i := len(messages) - 1; i >= 0; i-- {
		line := formatLine(messages[i])
		lineChars := utf8.RuneCountInString(line)
		if currentChars+lineChars > maxHistoryChars {
			break
		}
		lines = append(lines, line)
		currentChars += lineChars
	}

	// Reverse back to chronological order.
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}

	return strings.Join(lines, "")
}

func formatLine(m Message) string {
	speaker := "Tutor"
	if m.Sender == SenderStudent {
		speaker = "Student"
	}
	return fmt.Sprintf("%s: %s\n", speaker, m.Text)
}
