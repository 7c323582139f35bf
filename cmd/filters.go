package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/scout/internal/model"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Show the scraping filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newAppContext()
		if err != nil {
			return err
		}
		defer app.cleanup()

		res := app.handlers.Filters.Refresh(cmd.Context())
		if !res.Successful() {
			return fmt.Errorf("%s", res.Message)
		}
		for _, f := range res.Data {
			fmt.Printf("%-20s %s\n", f.Name, f.Value)
		}
		return nil
	},
}

var filtersSetCmd = &cobra.Command{
	Use:   "set <name=value>...",
	Short: "Replace the full filter list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filters := make([]model.Filter, 0, len(args))
		for _, arg := range args {
			name, value, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("invalid filter %q, expected name=value", arg)
			}
			filters = append(filters, model.Filter{Name: name, Value: value})
		}

		app, err := newAppContext()
		if err != nil {
			return err
		}
		defer app.cleanup()

		res := app.handlers.Filters.Update(cmd.Context(), filters)
		if !res.Successful() {
			return fmt.Errorf("%s", res.Message)
		}
		fmt.Printf("Stored %d filter(s)\n", len(res.Data))
		return nil
	},
}

func init() {
	filtersCmd.AddCommand(filtersSetCmd)
	rootCmd.AddCommand(filtersCmd)
}
