package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/upskillhq/skillpath/internal/auth"
	"github.com/upskillhq/skillpath/internal/store"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in identity",
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
		if err := session.Hydrate(cmd.Context()); err != nil {
			return fmt.Errorf("hydrate session: %w", err)
		}

		cred := session.Credential()
		if cred == nil {
			fmt.Println("Not signed in.")
			return nil
		}

		fmt.Printf("Employee %s (%s)\n", cred.EmployeeID, cred.Role)
		return nil
	},
}
