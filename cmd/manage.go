package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/horseradish/horseradish-server/internal/sealed"
	"github.com/horseradish/horseradish-server/internal/service"
)

func newInitCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the built-in roles and the default admin user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			password, err := readPassword(password)
			if err != nil {
				return err
			}
			admin, err := service.Bootstrap(cmd.Context(), a.users, a.roles, password)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+] default user %q ready (id %d)\n", admin.Username, admin.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password for the default admin user")
	return cmd
}

func newCreateUserCmd() *cobra.Command {
	var params service.CreateUserParams
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a local user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if params.Password, err = readPassword(params.Password); err != nil {
				return err
			}
			user, err := a.users.Create(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+] created user %q (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&params.Username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&params.Email, "email", "e", "", "email address")
	cmd.Flags().BoolVarP(&params.Active, "active", "a", true, "whether the user may log in")
	cmd.Flags().StringSliceVarP(&params.Roles, "roles", "r", nil, "role names to grant")
	cmd.Flags().StringVarP(&params.Password, "password", "p", "", "password; prompted when omitted")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newResetPasswordCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Replace a user's password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if password, err = readPassword(password); err != nil {
				return err
			}
			if err := a.users.ResetPassword(cmd.Context(), username, password); err != nil {
				return fmt.Errorf("failed to reset password: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+] password for %q updated\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password; prompted when omitted")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newCreateRoleCmd() *cobra.Command {
	var (
		params    service.CreateRoleParams
		usernames []string
	)
	cmd := &cobra.Command{
		Use:   "create-role",
		Short: "Create a role, optionally with members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			for _, name := range usernames {
				user, err := a.users.GetByUsername(ctx, name)
				if err != nil {
					return fmt.Errorf("failed to find user %q: %w", name, err)
				}
				params.UserIDs = append(params.UserIDs, user.ID)
			}

			role, err := a.roles.Create(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to create role: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+] created role %q (id %d)\n", role.Name, role.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&params.Name, "name", "n", "", "role name")
	cmd.Flags().StringVarP(&params.Description, "description", "d", "", "role description")
	cmd.Flags().StringSliceVarP(&usernames, "users", "u", nil, "usernames to add as members")
	cmd.Flags().StringVar(&params.Username, "credential-username", "", "third-party service username")
	cmd.Flags().StringVar(&params.Password, "credential-password", "", "third-party service password, sealed at rest")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newSyncRolesCmd() *cobra.Command {
	var (
		userID      int64
		profilePath string
	)
	cmd := &cobra.Command{
		Use:   "sync-roles",
		Short: "Replace a user's third-party roles from an identity provider profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(profilePath)
			if err != nil {
				return fmt.Errorf("failed to read profile: %w", err)
			}
			var profile map[string]any
			if err := json.Unmarshal(raw, &profile); err != nil {
				return fmt.Errorf("failed to parse profile: %w", err)
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := a.users.SyncFederatedRoles(cmd.Context(), userID, profile)
			if err != nil {
				return fmt.Errorf("failed to sync roles: %w", err)
			}
			for _, r := range user.Roles {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tthird_party=%t\n", r.Name, r.ThirdParty)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "user-id", 0, "local user id")
	cmd.Flags().StringVar(&profilePath, "profile", "", "path to the identity provider profile JSON")
	_ = cmd.MarkFlagRequired("user-id")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write a users and roles snapshot to object storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			name, err := a.exporter.Export(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to export: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}

func newGenerateKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-key",
		Short: "Generate an age identity for HORSERADISH_ENCRYPTION_KEYS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity, recipient, err := sealed.GenerateIdentity()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "# public key: %s\n", recipient)
			fmt.Fprintln(cmd.OutOrStdout(), identity)
			return nil
		},
	}
}
