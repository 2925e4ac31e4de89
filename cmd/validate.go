package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pam/internal/llm"
	"github.com/abhisek/pam/internal/tutor"
)

// validateCmd probes the configured provider with a one-token request so
// users can check their credential without entering the TUI.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the configured API key works",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		provider, err := llm.NewProviderFromEnv(ctx, nil)
		if err != nil {
			return fmt.Errorf("configure LLM provider: %w", err)
		}

		client := tutor.NewClient(provider)
		result := client.ValidateKey(ctx)
		if !result.Valid {
			return fmt.Errorf("%s", tutor.UserErrorMessage(result.Err, tutor.ErrContextValidation))
		}

		fmt.Printf("Connection OK (%s)\n", provider.ModelID())
		return nil
	},
}
