package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/user/scout/internal/api"
	"github.com/user/scout/internal/model"
)

var suggestionsCmd = &cobra.Command{
	Use:   "suggestions",
	Short: "Show suggested sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newAppContext()
		if err != nil {
			return err
		}
		defer app.cleanup()

		var res api.Result[[]model.Suggestion]
		if id, _ := cmd.Flags().GetInt("source"); id > 0 {
			if refresh, _ := cmd.Flags().GetBool("refresh"); refresh {
				res = app.handlers.Suggestions.RefreshSourceSuggestions(cmd.Context(), id)
			} else {
				res = app.handlers.Suggestions.GetSourceSuggestions(cmd.Context(), id)
			}
		} else {
			res = app.handlers.Suggestions.GetSuggestions(cmd.Context())
		}
		if !res.Successful() {
			return fmt.Errorf("%s", res.Message)
		}
		for _, s := range res.Data {
			id := "-"
			if s.ID != nil {
				id = strconv.Itoa(*s.ID)
			}
			fmt.Printf("%4s  %-30s %s\n", id, s.Name, s.URL)
		}
		return nil
	},
}

func init() {
	suggestionsCmd.Flags().Int("source", 0, "Suggestions similar to this source id")
	suggestionsCmd.Flags().Bool("refresh", false, "Recompute the suggestions for the source")
	rootCmd.AddCommand(suggestionsCmd)
}
