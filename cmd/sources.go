package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/user/scout/internal/model"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage posting sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newAppContext()
		if err != nil {
			return err
		}
		defer app.cleanup()

		res := app.handlers.Sources.Refresh(cmd.Context())
		if !res.Successful() {
			return fmt.Errorf("%s", res.Message)
		}
		for _, s := range app.handlers.Sources.SortedSources() {
			id := "-"
			if s.ID != nil {
				id = strconv.Itoa(*s.ID)
			}
			flags := ""
			if s.Unreachable {
				flags += " unreachable"
			}
			if s.Refreshing {
				flags += " refreshing"
			}
			fmt.Printf("%4s  %-30s %s%s\n", id, s.Name, s.URL, flags)
		}
		return nil
	},
}

var sourcesAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add a new source",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newAppContext()
		if err != nil {
			return err
		}
		defer app.cleanup()

		source := model.Source{Name: args[0], URL: args[1]}
		if selector, _ := cmd.Flags().GetString("selector"); selector != "" {
			source.Selector = model.StrPtr(selector)
		}
		if pagination, _ := cmd.Flags().GetString("pagination"); pagination != "" {
			source.Pagination = model.StrPtr(pagination)
		}

		res := app.handlers.Sources.Create(cmd.Context(), source)
		if !res.Successful() {
			return fmt.Errorf("%s", res.Message)
		}
		fmt.Printf("Added source %q (id %d)\n", res.Data.Name, *res.Data.ID)
		return nil
	},
}

var sourcesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid source id %q: %w", args[0], err)
		}

		app, err := newAppContext()
		if err != nil {
			return err
		}
		defer app.cleanup()

		if res := app.handlers.Sources.Refresh(cmd.Context()); !res.Successful() {
			return fmt.Errorf("%s", res.Message)
		}
		res := app.handlers.Sources.Delete(cmd.Context(), id)
		if !res.Successful() {
			return fmt.Errorf("%s", res.Message)
		}
		fmt.Printf("Deleted source %d\n", id)
		return nil
	},
}

var sourcesResetCmd = &cobra.Command{
	Use:   "reset <id>",
	Short: "Drop the content cached server-side for a source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid source id %q: %w", args[0], err)
		}

		app, err := newAppContext()
		if err != nil {
			return err
		}
		defer app.cleanup()

		res := app.handlers.Sources.ResetCache(cmd.Context(), id)
		if !res.Successful() {
			return fmt.Errorf("%s", res.Message)
		}
		fmt.Printf("Reset cache of source %d\n", id)
		return nil
	},
}

func init() {
	sourcesAddCmd.Flags().String("selector", "", "CSS selector narrowing the scraped region")
	sourcesAddCmd.Flags().String("pagination", "", "Pagination descriptor for the source")
	sourcesCmd.AddCommand(sourcesAddCmd)
	sourcesCmd.AddCommand(sourcesRemoveCmd)
	sourcesCmd.AddCommand(sourcesResetCmd)
	rootCmd.AddCommand(sourcesCmd)
}
