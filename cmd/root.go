package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vuminh/ghinho/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "ghinho",
	Short: "Terminal client for Thẻ Ghi Nhớ flashcards",
	Long:  "Ghinho is a terminal study client for a Thẻ Ghi Nhớ server: browse your flashcard sets, review due cards and track progress without leaving the shell.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "Base URL of the backend (overrides GHINHO_SERVER_URL)")
	rootCmd.PersistentFlags().String("config", "", "Path to the config file")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(setsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig applies the persistent flags on top of the config file and
// environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	server, _ := cmd.Flags().GetString("server")
	cfg.SetServerURL(server)
	return cfg, nil
}

// newLogger writes structured logs to the state-dir log file. The TUI
// owns the terminal, so nothing ever logs to stderr while it runs.
func newLogger() *slog.Logger {
	path, err := config.LogPath()
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(f, nil))
}
