package cmd

import (
	"fmt"

	"github.com/iksnae/devlog/internal"
	"github.com/iksnae/devlog/internal/server"
	"github.com/iksnae/devlog/internal/store"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	serveDB   string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the shared session receiver",
	Long: `Run the HTTP receiver that collects pushed sessions from multiple
machines into a SQLite store.

Endpoints:
  POST /ingest     accept one session document
  GET  /health     liveness probe
  GET  /sessions   list stored sessions (filter: machine, project, remote, days)
  GET  /stats      per-project activity

Storage is idempotent: re-pushing a session from the same machine
replaces the stored record instead of duplicating it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		addr := serveAddr
		if addr == "" {
			addr = cfg.Server.BindAddr
		}
		dbPath := serveDB
		if dbPath == "" {
			dbPath = cfg.Server.DBPath
		}

		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer func() { _ = st.Close() }()
		internal.LogInfo("Store opened at: %s", dbPath)

		e := server.New(st)
		internal.LogInfo("Receiver listening on %s", addr)
		return e.Start(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Bind address (overrides config)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "SQLite database path (overrides config)")
}
