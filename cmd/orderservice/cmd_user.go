package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/orderservice/app/models"
	"github.com/shashiranjanraj/orderservice/app/repositories"
	"github.com/shashiranjanraj/orderservice/config"
	"github.com/shashiranjanraj/orderservice/pkg/auth"
	"github.com/shashiranjanraj/orderservice/pkg/database"
	"github.com/shashiranjanraj/orderservice/pkg/orm"
)

var (
	userPassword string
	userRoles    []string
)

// orderservice user:create <email> --password=… --role=User
var userCreateCmd = &cobra.Command{
	Use:   "user:create <email>",
	Short: "Create a login with one or more roles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := strings.TrimSpace(args[0])
		if userPassword == "" {
			return errors.New("--password is required")
		}
		for _, role := range userRoles {
			if role != auth.RoleUser && role != auth.RoleAdmin {
				return fmt.Errorf("unknown role %q (want %s or %s)", role, auth.RoleUser, auth.RoleAdmin)
			}
		}

		if err := bootDB(); err != nil {
			return err
		}
		hash, err := auth.HashPassword(userPassword)
		if err != nil {
			return err
		}

		user := &models.User{Email: email, PasswordHash: hash}
		users := repositories.NewUserRepository(orm.New(database.DB))
		if err := users.Create(cmd.Context(), user, userRoles...); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Created user %d %s %v\n", user.ID, user.Email, user.RoleNames())
		return nil
	},
}

// orderservice token:inspect <token>
var tokenInspectCmd = &cobra.Command{
	Use:   "token:inspect <token>",
	Short: "Verify a bearer token and print its claims",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		claims, err := auth.NewIssuer(config.JWTSecret(), config.JWTTTL()).Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid token: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "subject:  %s\n", claims.Subject)
		fmt.Fprintf(out, "user_id:  %d\n", claims.UserID)
		fmt.Fprintf(out, "roles:    %s\n", strings.Join(claims.Roles, ", "))
		if claims.ExpiresAt != nil {
			fmt.Fprintf(out, "expires:  %s\n", claims.ExpiresAt.Time.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "plain-text password (hashed with bcrypt)")
	userCreateCmd.Flags().StringSliceVar(&userRoles, "role", []string{auth.RoleUser}, "role to grant (repeatable)")
}
