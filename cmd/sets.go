package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vuminh/ghinho/internal/api"
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List your flashcard sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		client := api.New(cfg.ServerURL,
			api.WithToken(cfg.Token),
			api.WithTimeout(cfg.Timeout),
			api.WithLogger(newLogger()),
		)

		ctx := cmd.Context()
		list, err := client.Sets(ctx)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("No sets yet.")
			return nil
		}

		for _, set := range list {
			line := fmt.Sprintf("%4d  %s", set.ID, set.Title)
			if p, err := client.Progress(ctx, set.ID); err == nil && p.TotalCards > 0 {
				line += fmt.Sprintf("  (%d/%d studied)", p.CardsStudied, p.TotalCards)
			}
			fmt.Println(line)
		}
		return nil
	},
}
