package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagebrush-labs/finsight/internal/model"
	"github.com/sagebrush-labs/finsight/internal/signal"
)

func signalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signals",
		Short: "Detect behavioral signals for a user",
		Long: `Compute credit, subscription, savings, and income signals over a
lookback window from the user's stored records, persist the result, and
print it as JSON.`,
		RunE: runSignals,
	}

	cmd.Flags().String("user", "", "user ID (required)")
	cmd.Flags().String("window", string(model.Window180Days), "lookback window (30d or 180d)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runSignals(cmd *cobra.Command, _ []string) error {
	userID, _ := cmd.Flags().GetString("user")
	windowStr, _ := cmd.Flags().GetString("window")

	window, err := model.ParseWindow(windowStr)
	if err != nil {
		return err
	}

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
	accounts, err := store.GetAccounts(ctx, userID)
	if err != nil {
		return err
	}
	liabilities, err := store.GetLiabilities(ctx, userID)
	if err != nil {
		return err
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -window.Days())
	transactions, err := store.GetTransactionsInWindow(ctx, userID, start, end)
	if err != nil {
		return err
	}

	result, err := signal.NewDetector().Detect(user, accounts, transactions, liabilities, window)
	if err != nil {
		return err
	}

	if err := store.SaveSignalResult(ctx, result); err != nil {
		return err
	}

	slog.Info("Signals computed",
		"user_id", userID,
		"window", window,
		"transactions", len(transactions))

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(out))

	return nil
}
