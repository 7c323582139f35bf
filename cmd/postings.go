package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var postingsCmd = &cobra.Command{
	Use:   "postings",
	Short: "Browse and update postings",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newAppContext()
		if err != nil {
			return err
		}
		defer app.cleanup()

		var sourceID *int
		if id, _ := cmd.Flags().GetInt("source"); id > 0 {
			sourceID = &id
		}
		rescrape, _ := cmd.Flags().GetBool("rescrape")

		res := app.handlers.Postings.Refresh(cmd.Context(), !rescrape, sourceID)
		if !res.Successful() {
			return fmt.Errorf("%s", res.Message)
		}
		for _, p := range res.Data {
			id := "-"
			if p.ID != nil {
				id = strconv.Itoa(*p.ID)
			}
			marks := " "
			if p.Bookmarked {
				marks = "#"
			}
			fmt.Printf("%6s %s %s  %s\n", id, marks, p.CreatedAt.Local().Format("2006-01-02"), p.Title)
		}
		return nil
	},
}

var postingsReadCmd = &cobra.Command{
	Use:   "read <id>...",
	Short: "Mark postings as read",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]int, 0, len(args))
		for _, arg := range args {
			id, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid posting id %q: %w", arg, err)
			}
			ids = append(ids, id)
		}

		app, err := newAppContext()
		if err != nil {
			return err
		}
		defer app.cleanup()

		res := app.handlers.Postings.MarkAsRead(cmd.Context(), ids)
		if !res.Successful() {
			return fmt.Errorf("%s", res.Message)
		}
		fmt.Printf("Marked %d posting(s) as read\n", len(ids))
		return nil
	},
}

func togglePostingCmd(use, short string, toggle func(*appContext, *cobra.Command, int) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid posting id %q: %w", args[0], err)
			}

			app, err := newAppContext()
			if err != nil {
				return err
			}
			defer app.cleanup()

			// seed the working copy so the by-id precondition can hold
			if res := app.handlers.Postings.Refresh(cmd.Context(), true, nil); !res.Successful() {
				return fmt.Errorf("%s", res.Message)
			}

			out, err := toggle(app, cmd, id)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func init() {
	postingsCmd.Flags().Int("source", 0, "Only postings of this source id")
	postingsCmd.Flags().Bool("rescrape", false, "Trigger a server-side re-scrape instead of using cached postings")

	postingsCmd.AddCommand(postingsReadCmd)
	postingsCmd.AddCommand(togglePostingCmd("bookmark <id>", "Toggle the bookmark flag of a posting",
		func(app *appContext, cmd *cobra.Command, id int) (string, error) {
			res := app.handlers.Postings.Bookmark(cmd.Context(), id)
			if !res.Successful() {
				return "", fmt.Errorf("%s", res.Message)
			}
			if res.Data.Bookmarked {
				return fmt.Sprintf("Bookmarked posting %d", id), nil
			}
			return fmt.Sprintf("Removed bookmark from posting %d", id), nil
		}))
	postingsCmd.AddCommand(togglePostingCmd("like <id>", "Like a posting (again to reset)",
		func(app *appContext, cmd *cobra.Command, id int) (string, error) {
			res := app.handlers.Postings.Like(cmd.Context(), id)
			if !res.Successful() {
				return "", fmt.Errorf("%s", res.Message)
			}
			return fmt.Sprintf("Updated posting %d", id), nil
		}))
	postingsCmd.AddCommand(togglePostingCmd("dislike <id>", "Dislike a posting (again to reset)",
		func(app *appContext, cmd *cobra.Command, id int) (string, error) {
			res := app.handlers.Postings.Dislike(cmd.Context(), id)
			if !res.Successful() {
				return "", fmt.Errorf("%s", res.Message)
			}
			return fmt.Sprintf("Updated posting %d", id), nil
		}))
	rootCmd.AddCommand(postingsCmd)
}
