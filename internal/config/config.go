// Package config loads client configuration from the config file,
// GHINHO_* environment variables and command-line flags, in rising
// priority.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// UX pacing defaults: how long correct feedback shows before the answer
// auto-submits, and how long the result shows before the next card.
const (
	DefaultCorrectDelay = time.Second
	DefaultAdvanceDelay = 1500 * time.Millisecond
)

// Config holds all client settings.
type Config struct {
	// ServerURL is the base URL of the Thẻ Ghi Nhớ backend.
	ServerURL string

	// Token is the bearer token obtained via `ghinho login`.
	Token string

	// CorrectDelay paces the auto-submit after a correct match.
	CorrectDelay time.Duration

	// AdvanceDelay paces the move to the next card after a recorded
	// answer.
	AdvanceDelay time.Duration

	// Timeout bounds a single API request.
	Timeout time.Duration

	v *viper.Viper
}

// Load reads configuration. An empty path uses the default location;
// a missing config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("server_url", "http://localhost:8000")
	v.SetDefault("correct_delay", DefaultCorrectDelay)
	v.SetDefault("advance_delay", DefaultAdvanceDelay)
	v.SetDefault("timeout", 15*time.Second)

	v.SetEnvPrefix("GHINHO")
	v.AutomaticEnv()

	if path == "" {
		dir, err := defaultConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); !ok {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	return &Config{
		ServerURL:    v.GetString("server_url"),
		Token:        v.GetString("token"),
		CorrectDelay: v.GetDuration("correct_delay"),
		AdvanceDelay: v.GetDuration("advance_delay"),
		Timeout:      v.GetDuration("timeout"),
		v:            v,
	}, nil
}

// SaveToken persists a fresh bearer token to the config file.
func (c *Config) SaveToken(token string) error {
	c.Token = token
	c.v.Set("token", token)

	path := c.v.ConfigFileUsed()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := c.v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// SetServerURL overrides the server URL (from the --server flag).
func (c *Config) SetServerURL(url string) {
	if url != "" {
		c.ServerURL = url
	}
}

func defaultConfigDir() (string, error) {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "ghinho"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "ghinho"), nil
}

// LogPath resolves the debug log file location under the state dir.
func LogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	p := filepath.Join(stateHome, "ghinho", "ghinho.log")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", err
	}
	return p, nil
}
