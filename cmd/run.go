package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pam/internal/app"
	"github.com/abhisek/pam/internal/llm"
	"github.com/abhisek/pam/internal/store"
	"github.com/abhisek/pam/internal/tutor"
)

// runApp opens the store, builds the provider, and launches the TUI. The
// tutor cannot do anything without a model behind it, so a missing
// credential is fatal here rather than degraded.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		return fmt.Errorf("configure LLM provider: %w", err)
	}

	client := tutor.NewClient(provider)
	return app.Run(client, st.TranscriptRepo())
}
