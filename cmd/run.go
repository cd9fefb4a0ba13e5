package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vuminh/ghinho/internal/api"
	"github.com/vuminh/ghinho/internal/app"
	"github.com/vuminh/ghinho/internal/events"
	"github.com/vuminh/ghinho/internal/store"
)

// runApp wires the config, API client, local store and event bus, then
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal; route all logging to the state-dir file.
	logger := newLogger()
	slog.SetDefault(logger)

	client := api.New(cfg.ServerURL,
		api.WithToken(cfg.Token),
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(logger),
	)

	opts := app.Options{
		Client:       client,
		Bus:          events.NewBus(),
		ServerURL:    cfg.ServerURL,
		LoggedIn:     cfg.Token != "",
		CorrectDelay: cfg.CorrectDelay,
		AdvanceDelay: cfg.AdvanceDelay,
	}

	dbPath, err := store.DefaultDBPath()
	if err == nil {
		if st, err := store.Open(dbPath); err == nil {
			defer st.Close()
			opts.History = st.History()
		} else {
			fmt.Fprintln(os.Stderr, "local history unavailable:", err)
		}
	}

	return app.Run(opts)
}
