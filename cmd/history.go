package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pam/internal/store"
	"github.com/abhisek/pam/internal/tutor"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past tutoring sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		sessions, err := s.TranscriptRepo().ListSessions(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %-14s  %s\n", "ID", "Started", "Level", "Language")
		fmt.Println(strings.Repeat("─", 84))
		for _, sess := range sessions {
			fmt.Printf("%-36s  %-19s  %-14s  %s\n",
				sess.ID,
				sess.StartedAt.Local().Format("2006-01-02 15:04:05"),
				sess.Level,
				sess.Language,
			)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Print the transcript of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		withWorksheets, _ := cmd.Flags().GetBool("worksheets")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		repo := s.TranscriptRepo()

		sess, err := repo.GetSession(ctx, args[0])
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		if sess == nil {
			return fmt.Errorf("session %q not found", args[0])
		}

		fmt.Printf("Session:   %s\n", sess.ID)
		fmt.Printf("Started:   %s\n", sess.StartedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Level:     %s\n", sess.Level)
		fmt.Printf("Language:  %s\n", sess.Language)
		fmt.Println()

		messages, err := repo.GetMessages(ctx, sess.ID)
		if err != nil {
			return fmt.Errorf("get messages: %w", err)
		}
		for _, msg := range messages {
			label := "Tutor"
			if msg.Sender == string(tutor.SenderStudent) {
				label = "Student"
			}
			fmt.Printf("%s: %s\n\n", label, msg.Content)
		}

		if !withWorksheets {
			return nil
		}

		worksheets, err := repo.GetWorksheets(ctx, sess.ID)
		if err != nil {
			return fmt.Errorf("get worksheets: %w", err)
		}
		for _, rec := range worksheets {
			var ws tutor.Worksheet
			if err := json.Unmarshal([]byte(rec.Data), &ws); err != nil {
				fmt.Printf("(worksheet %d could not be decoded: %v)\n", rec.ID, err)
				continue
			}

			fmt.Println(strings.Repeat("─", 60))
			fmt.Printf("Worksheet: %s (%s)\n\n", ws.Title, rec.CreatedAt.Local().Format("2006-01-02 15:04"))
			for _, q := range ws.Questions {
				fmt.Printf("%d. %s\n", q.QuestionNumber, q.QuestionText)
			}
			fmt.Println("\nAnswer Key")
			for _, a := range ws.SortedAnswerKey() {
				fmt.Printf("%d. %s\n", a.QuestionNumber, a.AnswerText)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
	historyShowCmd.Flags().Bool("worksheets", false, "Also print worksheets generated in the session")

	historyCmd.AddCommand(historyShowCmd)
}
