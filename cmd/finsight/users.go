package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sagebrush-labs/finsight/internal/model"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}

	cmd.AddCommand(usersAddCmd())
	cmd.AddCommand(usersListCmd())

	return cmd
}

func usersAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			id, _ := cmd.Flags().GetString("id")
			if id == "" {
				id = uuid.NewString()
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			user := &model.User{
				ID:        id,
				Name:      name,
				Email:     email,
				CreatedAt: time.Now().UTC(),
			}
			if err := store.SaveUser(ctx, user); err != nil {
				return err
			}

			slog.Info("User created", "user_id", user.ID, "name", user.Name)
			fmt.Println(user.ID)
			return nil
		},
	}

	cmd.Flags().String("name", "", "display name (required)")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("id", "", "explicit user ID (default: generated)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func usersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			users, err := store.GetUsers(ctx)
			if err != nil {
				return err
			}

			for _, u := range users {
				consent := "no consent"
				if u.Consent.Active {
					consent = "consented"
				}
				fmt.Printf("%s\t%s\t%s\n", u.ID, u.Name, consent)
			}
			return nil
		},
	}
}
