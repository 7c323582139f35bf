package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show per-source extraction cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newAppContext()
		if err != nil {
			return err
		}
		defer app.cleanup()

		var days *int
		if d, _ := cmd.Flags().GetInt("days"); d > 0 {
			days = &d
		}

		res := app.handlers.Usage.GetUsageCost(cmd.Context(), days)
		if !res.Successful() {
			return fmt.Errorf("%s", res.Message)
		}
		var total float64
		for _, u := range res.Data {
			fmt.Printf("%-30s $%.4f\n", u.SourceName, u.Cost)
			total += u.Cost
		}
		fmt.Printf("%-30s $%.4f\n", "total", total)
		return nil
	},
}

func init() {
	usageCmd.Flags().Int("days", 0, "Only include the last N days")
	rootCmd.AddCommand(usageCmd)
}
