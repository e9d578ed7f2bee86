package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sagebrush-labs/finsight/internal/model"
	"github.com/sagebrush-labs/finsight/internal/pipeline"
	"github.com/sagebrush-labs/finsight/internal/plaidsync"
)

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull fresh records from Plaid for a user",
		Long: `Fetch accounts, transactions, and liabilities from Plaid for the
given user and persist them. Transactions already stored are deduplicated
by content hash.

Requires plaid.client_id, plaid.secret, plaid.environment, and a
plaid.access_tokens entry for the user in the config file.`,
		RunE: runSync,
	}

	cmd.Flags().String("user", "", "user ID (required)")
	cmd.Flags().String("window", string(model.Window180Days), "how far back to fetch transactions (30d or 180d)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runSync(cmd *cobra.Command, _ []string) error {
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

	// Verify the user exists before calling out to Plaid
	if _, err := store.GetUser(ctx, userID); err != nil {
		return err
	}

	tokens := plaidsync.StaticTokens(viper.GetStringMapString("plaid.access_tokens"))
	fetcher, err := plaidsync.NewClient(plaidsync.Config{
		ClientID:    viper.GetString("plaid.client_id"),
		Secret:      viper.GetString("plaid.secret"),
		Environment: viper.GetString("plaid.environment"),
	}, tokens)
	if err != nil {
		return fmt.Errorf("failed to initialize Plaid client: %w", err)
	}

	p := pipeline.New(store, nil, slog.Default(), pipeline.DefaultConfig())
	if err := p.Sync(ctx, fetcher, userID, window); err != nil {
		return err
	}

	slog.Info("Sync finished", "user_id", userID, "window", window)
	return nil
}
