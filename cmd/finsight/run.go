package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sagebrush-labs/finsight/internal/pipeline"
	"github.com/sagebrush-labs/finsight/internal/recommend"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full batch pipeline for all users",
		Long: `Execute the nightly batch: compute signals for both windows,
assign personas, and generate guardrailed recommendations for every
user in the database. A failure on one user never aborts the batch.`,
		RunE: runBatch,
	}

	cmd.Flags().Bool("force", false, "recompute users that already have recommendations")
	cmd.Flags().Int("target", recommend.DefaultTargetCount, "target number of recommendations per user")

	return cmd
}

func runBatch(cmd *cobra.Command, _ []string) error {
	force, _ := cmd.Flags().GetBool("force")
	target, _ := cmd.Flags().GetInt("target")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	generator, err := initGenerator()
	if err != nil {
		return fmt.Errorf("failed to initialize content generator: %w", err)
	}
	defer generator.Close()

	p := pipeline.New(store, generator, slog.Default(), pipeline.Config{
		TargetCount: target,
		Force:       force,
	})

	stats, err := p.Run(ctx)
	if err != nil {
		return err
	}

	slog.Info("Batch complete",
		"processed", stats.UsersProcessed,
		"skipped", stats.UsersSkipped,
		"failed", stats.UsersFailed,
		"recommendations", stats.Recommendations,
		"flagged", stats.Flagged)

	if stats.UsersFailed > 0 {
		return fmt.Errorf("%d user(s) failed during the batch run", stats.UsersFailed)
	}

	return nil
}
