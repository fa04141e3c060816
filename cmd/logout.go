package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/upskillhq/skillpath/internal/auth"
	"github.com/upskillhq/skillpath/internal/store"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		session := auth.NewSessionStore(st.SessionRepo())
		if err := session.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}

		fmt.Println("Signed out.")
		return nil
	},
}
