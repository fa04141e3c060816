package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/upskillhq/skillpath/internal/store"
)

const defaultAPIBase = "http://localhost:8000/api"

var rootCmd = &cobra.Command{
	Use:   "skillpath",
	Short: "Terminal client for the Skillpath learning platform",
	Long:  "Skillpath: take your skill assessment, generate a learning path, and track your progress from the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("api", "", "Base URL of the Skillpath API (overrides SKILLPATH_API env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SKILLPATH_DB env var)")
	rootCmd.PersistentFlags().String("debug-log", "", "Write debug logs to this file (overrides SKILLPATH_DEBUG_LOG env var)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveAPIBase returns the API base URL using --api flag (highest
// priority), then SKILLPATH_API env var, then the default.
func resolveAPIBase(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("api"); u != "" {
		return u
	}
	if u := os.Getenv("SKILLPATH_API"); u != "" {
		return u
	}
	return defaultAPIBase
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then SKILLPATH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveDebugLog returns the debug log path, empty for no logging.
func resolveDebugLog(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("debug-log"); p != "" {
		return p
	}
	return os.Getenv("SKILLPATH_DEBUG_LOG")
}
