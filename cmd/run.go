package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, err := openServices(ctx, cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	log.Info("starting", zap.String("version", version))
	return app.Run(ctx, app.Options{
		Catalog:  svc.catalog,
		Progress:    svc.progress,
		Session:     svc.session,
		Flags:       svc.flags,
		Logger:      log,
		ProgressFor: svc.store.ProgressRepo,
	})
}
