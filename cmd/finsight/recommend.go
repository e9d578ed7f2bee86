package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sagebrush-labs/finsight/internal/common"
	"github.com/sagebrush-labs/finsight/internal/guardrail"
	"github.com/sagebrush-labs/finsight/internal/model"
	"github.com/sagebrush-labs/finsight/internal/recommend"
)

func recommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Generate guardrailed recommendations for a user",
		Long: `Render recommendations from the user's stored personas and
long-window signals, run every one through the guardrail pipeline, and
persist the results. Recommendations that fail a guardrail are saved
flagged for review, never delivered.`,
		RunE: runRecommend,
	}

	cmd.Flags().String("user", "", "user ID (required)")
	cmd.Flags().Int("target", recommend.DefaultTargetCount, "target number of recommendations")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	userID, _ := cmd.Flags().GetString("user")
	target, _ := cmd.Flags().GetInt("target")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	user, err := store.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	signals, err := store.GetSignalResult(ctx, userID, model.Window180Days)
	if errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("no %s signals for user %s: run 'finsight signals' first", model.Window180Days, userID)
	}
	if err != nil {
		return err
	}

	personas, err := store.GetPersonaAssignments(ctx, userID)
	if err != nil {
		return err
	}
	if len(personas) == 0 {
		return fmt.Errorf("no personas for user %s: run 'finsight personas' first", userID)
	}

	generator, err := initGenerator()
	if err != nil {
		return fmt.Errorf("failed to initialize content generator: %w", err)
	}
	defer generator.Close()

	engine := recommend.NewEngine(generator, slog.Default())
	recs, err := engine.Generate(ctx, user, signals, personas, target)
	if err != nil {
		return err
	}

	guardrails := guardrail.NewPipeline(slog.Default())
	flagged := 0
	for i := range recs {
		outcome, err := guardrails.Apply(&recs[i], user, signals)
		if err != nil {
			return err
		}
		if !outcome.Passed {
			recs[i].Status = model.StatusFlagged
			flagged++
		}
		if err := store.SaveRecommendation(ctx, &recs[i]); err != nil {
			return err
		}
	}

	slog.Info("Recommendations generated",
		"user_id", userID,
		"count", len(recs),
		"flagged", flagged)

	out, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode recommendations: %w", err)
	}
	fmt.Println(string(out))

	return nil
}
