package cmd

import (
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"
	"github.com/user/scout/internal/model"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the tracker settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newAppContext()
		if err != nil {
			return err
		}
		defer app.cleanup()

		res := app.handlers.Settings.Refresh(cmd.Context())
		if !res.Successful() {
			return fmt.Errorf("%s", res.Message)
		}
		fmt.Printf("api_key: %s\n", maskKey(res.Data.APIKey))
		if res.Data.Model != nil {
			fmt.Printf("model:   %s\n", *res.Data.Model)
		} else {
			fmt.Println("model:   (default)")
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the tracker settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newAppContext()
		if err != nil {
			return err
		}
		defer app.cleanup()

		// start from the stored record so unset flags keep their value
		res := app.handlers.Settings.Refresh(cmd.Context())
		if !res.Successful() {
			return fmt.Errorf("%s", res.Message)
		}
		settings := res.Data

		if key, _ := cmd.Flags().GetString("api-key"); key != "" {
			if verify, _ := cmd.Flags().GetBool("verify"); verify {
				if err := verifyAPIKey(cmd, key); err != nil {
					return fmt.Errorf("api key rejected by provider: %w", err)
				}
			}
			settings.APIKey = model.StrPtr(key)
		}
		if m, _ := cmd.Flags().GetString("model"); m != "" {
			settings.Model = model.StrPtr(m)
		}

		updated := app.handlers.Settings.Update(cmd.Context(), settings)
		if !updated.Successful() {
			return fmt.Errorf("%s", updated.Message)
		}
		fmt.Println("Settings stored")
		return nil
	},
}

var settingsModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the model identifiers available for extraction",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newAppContext()
		if err != nil {
			return err
		}
		defer app.cleanup()

		res := app.handlers.Settings.Models(cmd.Context())
		if !res.Successful() {
			return fmt.Errorf("%s", res.Message)
		}
		fmt.Println(strings.Join(res.Data, "\n"))
		return nil
	},
}

// verifyAPIKey checks the key against the provider before it is stored, so
// a typo does not break server-side extraction on the next scrape.
func verifyAPIKey(cmd *cobra.Command, key string) error {
	client := openai.NewClient(key)
	_, err := client.ListModels(cmd.Context())
	return err
}

func maskKey(key *string) string {
	if key == nil || *key == "" {
		return "(not set)"
	}
	if len(*key) <= 8 {
		return "********"
	}
	return (*key)[:4] + "..." + (*key)[len(*key)-4:]
}

func init() {
	settingsSetCmd.Flags().String("api-key", "", "API key used by the server for extraction")
	settingsSetCmd.Flags().String("model", "", "Model identifier used by the server for extraction")
	settingsSetCmd.Flags().Bool("verify", true, "Verify the API key against the provider before storing")
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsModelsCmd)
	rootCmd.AddCommand(settingsCmd)
}
