package tutor

import (
	"errors"

	"github.com/abhisek/pam/internal/llm"
)

// ErrContext names the operation an error surfaced from, selecting the
// prefix on the user-facing message.
type ErrContext string

const (
	ErrContextChat       ErrContext = "chat"
	ErrContextWorksheet  ErrContext = "worksheet"
	ErrContextInit       ErrContext = "initialization"
	ErrContextValidation ErrContext = "validation"
)

var errPrefixes = map[ErrContext]string{
	ErrContextChat:       "Sorry, I encountered an error:",
	ErrContextWorksheet:  "Failed to generate worksheet:",
	ErrContextInit:       "Failed to initialize chat:",
	ErrContextValidation: "API connection failed:",
}

// UserErrorMessage translates a provider error into the message shown to
// the student. This is the only place errors become user-facing text;
// everywhere else they stay typed.
func UserErrorMessage(err error, ctx ErrContext) string {
	prefix := errPrefixes[ctx]

	if errors.Is(err, ErrNoTopics) {
		return "Could not identify specific topics from the conversation to generate a worksheet. Please discuss a topic first."
	}

	var rateLimit *llm.ErrRateLimit
	if errors.As(err, &rateLimit) {
		return prefix + " API rate limit exceeded. Please wait a moment before trying again."
	}

	var network *llm.ErrNetwork
	if errors.As(err, &network) {
		return prefix + " A network request failed. Please check your internet connection and try again."
	}

	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) {
		return prefix + " The tutor returned a response that could not be understood. Please try again."
	}

	if err != nil && err.Error() != "" {
		return prefix + " " + err.Error()
	}
	return prefix + " An unknown error occurred. Please try again later."
}
