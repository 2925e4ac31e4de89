package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored sessions and LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			return fmt.Errorf("this deletes the entire database; re-run with --force to confirm")
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		removed := false
		for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
			err := os.Remove(p)
			if err == nil {
				removed = true
				continue
			}
			if !os.IsNotExist(err) {
				return fmt.Errorf("remove %s: %w", p, err)
			}
		}

		if !removed {
			fmt.Println("Nothing to delete.")
			return nil
		}
		fmt.Println("Deleted", dbPath)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Confirm deletion")
}
