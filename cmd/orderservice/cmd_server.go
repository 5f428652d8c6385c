package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shashiranjanraj/orderservice/config"
	"github.com/shashiranjanraj/orderservice/internal/kernel"
	"github.com/shashiranjanraj/orderservice/internal/server"
	"github.com/shashiranjanraj/orderservice/pkg/auth"
	"github.com/shashiranjanraj/orderservice/pkg/database"
	"github.com/shashiranjanraj/orderservice/pkg/logger"
	"github.com/shashiranjanraj/orderservice/pkg/migration"
	"github.com/shashiranjanraj/orderservice/pkg/throttle"
)

var serveMigrate bool

// orderservice serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := config.Load(); err != nil {
			return err
		}
		closeLog, err := logger.Setup()
		defer closeLog()
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		if err := database.Connect(); err != nil {
			return err
		}
		defer database.Close(database.DB) //nolint:errcheck

		if serveMigrate {
			if err := migration.New(database.DB, os.Stdout).Run(); err != nil {
				return err
			}
		}

		lim := limiter(ctx)
		k := kernel.NewHTTPKernel(database.DB, kernel.Options{
			Issuer:      auth.NewIssuer(config.JWTSecret(), config.JWTTTL()),
			Limiter:     lim,
			CORSOrigins: config.CORSAllowedOrigins(),
		})

		g, gctx := errgroup.WithContext(ctx)
		if m, ok := lim.(*throttle.Memory); ok {
			g.Go(func() error {
				m.Janitor(gctx, time.Minute)
				return nil
			})
		}
		g.Go(func() error {
			return server.Run(gctx, ":"+config.AppPort(), k.Handler())
		})
		return g.Wait()
	},
}

// limiter prefers shared Redis counters and falls back to process memory
// when Redis is not configured or unreachable.
func limiter(ctx context.Context) throttle.Limiter {
	limit := config.RateLimit()
	if limit <= 0 {
		return nil
	}
	if addr := config.RedisAddr(); addr != "" {
		rdb, err := throttle.Connect(ctx, addr, config.RedisPassword())
		if err == nil {
			logger.Info("rate limiter", "store", "redis", "addr", addr, "limit", limit)
			return throttle.NewRedis(rdb, limit, time.Minute)
		}
		logger.Warn("redis unavailable, rate limiting in memory", "error", err)
	}
	return throttle.NewMemory(limit, time.Minute)
}

// orderservice route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		k := kernel.NewHTTPKernel(nil, kernel.Options{})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range k.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "run pending migrations before serving")
}
