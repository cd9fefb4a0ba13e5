package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vuminh/ghinho/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent study sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := store.DefaultDBPath()
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer st.Close()

		recs, err := st.History().Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Println("No sessions yet.")
			return nil
		}

		for _, rec := range recs {
			fmt.Printf("%s  %-24s %2d cards  %3d%% correct  %d:%02d\n",
				rec.CompletedAt.Format("2006-01-02 15:04"),
				rec.SetTitle,
				rec.CardsStudied,
				rec.Accuracy(),
				rec.DurationSecs/60, rec.DurationSecs%60,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of sessions to show")
}
