package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/orderservice/config"
	"github.com/shashiranjanraj/orderservice/database/seeders"
	"github.com/shashiranjanraj/orderservice/pkg/database"
	"github.com/shashiranjanraj/orderservice/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// orderservice migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
		return migration.New(database.DB, cmd.OutOrStdout()).Run()
	},
}

// orderservice migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch…")
		return migration.New(database.DB, cmd.OutOrStdout()).Rollback()
	},
}

// orderservice migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		return migration.New(database.DB, cmd.OutOrStdout()).Status()
	},
}

// orderservice seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
		return seeders.RunAll(database.DB, cmd.OutOrStdout())
	},
}
