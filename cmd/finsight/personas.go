package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sagebrush-labs/finsight/internal/common"
	"github.com/sagebrush-labs/finsight/internal/model"
	"github.com/sagebrush-labs/finsight/internal/persona"
)

func personasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "personas",
		Short: "Assign financial wellness personas to a user",
		Long: `Evaluate the user's most recent long-window signals against the
persona criteria, persist the assignments, and print them ordered by
priority.`,
		RunE: runPersonas,
	}

	cmd.Flags().String("user", "", "user ID (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runPersonas(cmd *cobra.Command, _ []string) error {
	userID, _ := cmd.Flags().GetString("user")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	result, err := store.GetSignalResult(ctx, userID, model.Window180Days)
	if errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("no %s signals for user %s: run 'finsight signals' first", model.Window180Days, userID)
	}
	if err != nil {
		return err
	}

	assignments, err := persona.NewClassifier(slog.Default()).Assign(userID, result)
	if err != nil {
		return err
	}

	if err := store.SavePersonaAssignments(ctx, assignments); err != nil {
		return err
	}

	if len(assignments) == 0 {
		slog.Info("No personas matched", "user_id", userID)
		return nil
	}

	primary, _ := persona.Primary(assignments)
	slog.Info("Personas assigned",
		"user_id", userID,
		"primary", primary,
		"count", len(assignments))

	out, err := json.MarshalIndent(assignments, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode assignments: %w", err)
	}
	fmt.Println(string(out))

	return nil
}
