package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/scout/internal/api"
	"github.com/user/scout/internal/config"
	"github.com/user/scout/internal/snapshot"
	"github.com/user/scout/internal/store"
	"github.com/user/scout/internal/sync"
	"github.com/user/scout/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "Job postings tracker client",
	Long:  "A terminal client that keeps a local mirror of your job postings tracker: sources, postings, filters, suggestions and usage.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return tui.Run(cfg)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// appContext is the wiring shared by every one-shot command: config, the
// store registry seeded from the on-disk snapshot, and a handler per family.
type appContext struct {
	cfg      *config.Config
	registry *store.Registry
	handlers *sync.Handlers
	cleanup  func()
}

func newAppContext() (*appContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	client := api.NewClient(cfg.ServerURL, cfg.APIVersion, cfg.Timeout())
	reg := store.NewRegistry()

	var detach func()
	snap, err := snapshot.NewStore(cfg.SnapshotPath())
	if err == nil {
		if err := snapshot.Restore(snap, reg); err != nil {
			snap.Close()
			return nil, fmt.Errorf("failed to restore snapshot: %w", err)
		}
		detach = snapshot.Persist(snap, reg)
	}

	handlers := sync.NewHandlers(reg, client)

	return &appContext{
		cfg:      cfg,
		registry: reg,
		handlers: handlers,
		cleanup: func() {
			handlers.Close()
			if detach != nil {
				detach()
			}
			if snap != nil {
				snap.Close()
			}
		},
	}, nil
}
