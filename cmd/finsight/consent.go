package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

func consentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consent",
		Short: "Manage recommendation consent for a user",
	}

	cmd.AddCommand(consentGrantCmd())
	cmd.AddCommand(consentRevokeCmd())
	cmd.AddCommand(consentStatusCmd())

	return cmd
}

func consentGrantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Record that a user has opted in to recommendations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return setConsent(cmd, true)
		},
	}
	cmd.Flags().String("user", "", "user ID (required)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func consentRevokeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revoke",
		Short: "Record that a user has opted out of recommendations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return setConsent(cmd, false)
		},
	}
	cmd.Flags().String("user", "", "user ID (required)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func consentStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a user's current consent state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, _ := cmd.Flags().GetString("user")

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

			if user.Consent.Active {
				fmt.Printf("consent: active (granted %s)\n", user.Consent.GrantedAt.Format(time.RFC3339))
			} else if !user.Consent.RevokedAt.IsZero() {
				fmt.Printf("consent: revoked (%s)\n", user.Consent.RevokedAt.Format(time.RFC3339))
			} else {
				fmt.Println("consent: never granted")
			}
			return nil
		},
	}
	cmd.Flags().String("user", "", "user ID (required)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func setConsent(cmd *cobra.Command, active bool) error {
	userID, _ := cmd.Flags().GetString("user")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	// Verify the user exists before touching consent
	user, err := store.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	consent := user.Consent
	consent.UserID = userID
	consent.Active = active
	if active {
		consent.GrantedAt = now
		consent.RevokedAt = time.Time{}
	} else {
		consent.RevokedAt = now
	}

	if err := store.SaveConsent(ctx, &consent); err != nil {
		return err
	}

	slog.Info("Consent updated", "user_id", userID, "active", active)
	return nil
}
