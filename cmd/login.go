package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/upskillhq/skillpath/internal/api"
	"github.com/upskillhq/skillpath/internal/auth"
	"github.com/upskillhq/skillpath/internal/store"
)

// loginCmd signs in without launching the TUI, for scripted setups.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		email, _ := cmd.Flags().GetString("email")
		reader := bufio.NewReader(os.Stdin)
		if email == "" {
			fmt.Print("Email: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read email: %w", err)
			}
			email = strings.TrimSpace(line)
		}

		fmt.Print("Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password := strings.TrimRight(line, "\r\n")

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
		client := api.NewClient(resolveAPIBase(cmd), session)

		pair, err := client.Login(ctx, email, password)
		if err != nil {
			if m, ok := api.IsRejection(err); ok {
				return fmt.Errorf("login rejected: %s", m)
			}
			return fmt.Errorf("login: %w", err)
		}

		cred, err := session.SetCredential(ctx, pair.Access)
		if err != nil {
			return fmt.Errorf("store session: %w", err)
		}

		fmt.Printf("Signed in as %s (%s)\n", email, cred.Role)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "Email address to sign in with")
}
