package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vuminh/ghinho/internal/api"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		username, _ := cmd.Flags().GetString("username")
		reader := bufio.NewReader(os.Stdin)
		if username == "" {
			fmt.Print("Username: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read username: %w", err)
			}
			username = strings.TrimSpace(line)
		}
		fmt.Print("Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password := strings.TrimRight(line, "\r\n")

		client := api.New(cfg.ServerURL, api.WithTimeout(cfg.Timeout), api.WithLogger(newLogger()))
		token, err := client.Login(cmd.Context(), username, password)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		if err := cfg.SaveToken(token.AccessToken); err != nil {
			return err
		}

		fmt.Printf("Logged in as %s.\n", username)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringP("username", "u", "", "Username (prompted when omitted)")
}
