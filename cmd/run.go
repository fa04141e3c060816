package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/upskillhq/skillpath/internal/api"
	"github.com/upskillhq/skillpath/internal/app"
	"github.com/upskillhq/skillpath/internal/auth"
	"github.com/upskillhq/skillpath/internal/logging"
	"github.com/upskillhq/skillpath/internal/store"
	"github.com/upskillhq/skillpath/internal/workflow"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	log, err := logging.New(resolveDebugLog(cmd))
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	defer func() { _ = log.Sync() }()

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
	if err := session.Hydrate(ctx); err != nil {
		return fmt.Errorf("hydrate session: %w", err)
	}

	client := api.NewClient(resolveAPIBase(cmd), session, api.WithLogger(log))
	orch := workflow.New(client, session, log)

	return app.Run(app.Deps{
		Client:  client,
		Session: session,
		Orch:    orch,
		Log:     log,
	})
}
