package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/mbeoliero/kit/log"
	"github.com/spf13/cobra"

	"github.com/mbeoliero/realty/internal/config"
	"github.com/mbeoliero/realty/internal/job"
	"github.com/mbeoliero/realty/internal/notify"
	"github.com/mbeoliero/realty/internal/repository"
	"github.com/mbeoliero/realty/internal/router"
	"github.com/mbeoliero/realty/internal/service"
	"github.com/mbeoliero/realty/pkg/constant"
	"github.com/mbeoliero/realty/pkg/jwt"
)

const shutdownTimeout = 10 * time.Second

var configPath string

var rootCmd = &cobra.Command{
	Use:   "realty",
	Short: "Real-estate agency backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and background jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables and indexes, and backfill conversation pair keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		return migrate(cmd.Context())
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.yaml", "config file path")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(ctx context.Context) (*config.Config, *repository.Repositories, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log.CtxInfo(ctx, "config loaded: mode=%s", cfg.Server.Mode)

	constant.InitRedisKeyPrefix(cfg.Redis.KeyPrefix)
	log.CtxInfo(ctx, "redis key prefix: %s", constant.GetRedisKeyPrefix())

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
	defer cancel()

	repos, err := repository.NewRepositories(connectCtx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init repositories: %w", err)
	}
	if err := repos.CheckConnection(connectCtx); err != nil {
		_ = repos.Close(ctx)
		return nil, nil, fmt.Errorf("check connections: %w", err)
	}
	log.CtxInfo(ctx, "database connections established")
	return cfg, repos, nil
}

func migrate(ctx context.Context) error {
	_, repos, err := setup(ctx)
	if err != nil {
		return err
	}
	defer repos.Close(ctx)

	if err := repos.Migrate(ctx); err != nil {
		return err
	}
	log.CtxInfo(ctx, "migration finished")
	return nil
}

func serve(ctx context.Context) error {
	cfg, repos, err := setup(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := repos.Close(context.Background()); err != nil {
			log.CtxError(ctx, "close repositories failed: %v", err)
		}
	}()

	if err := repos.EnsureIndexes(ctx); err != nil {
		return err
	}

	// Outbound calls for web push and email
	cli, err := client.NewClient(client.WithDialTimeout(5*time.Second), client.WithClientReadTimeout(cfg.Notify.TaskTimeout))
	if err != nil {
		return fmt.Errorf("create http client: %w", err)
	}

	dispatcher := notify.NewDispatcher(
		cfg.Notify,
		repos.Notification,
		notify.NewRelaySender(repos.PushSubscription, cli, cfg.Notify.PushRelayURL, cfg.Notify.FrontendURL),
		notify.NewBrevoMailer(cli, cfg.Notify),
	)
	dispatcher.Run()
	defer dispatcher.Stop()

	tokens := jwt.NewTokenStore(repos.Redis, cfg.JWT.ExpireHours)
	services := service.NewServices(repos, tokens, dispatcher, cfg)

	var scheduler *job.Scheduler
	if cfg.Jobs.Enabled {
		scheduler, err = job.NewScheduler(cfg.Jobs, services.Meeting, time.Local)
		if err != nil {
			return err
		}
		scheduler.Start()
		log.CtxInfo(ctx, "job scheduler started")
	}

	h := server.Default(
		server.WithHostPorts(fmt.Sprintf(":%d", cfg.Server.HTTPPort)),
		server.WithExitWaitTime(shutdownTimeout),
	)
	router.SetupRouter(h.Engine, cfg, router.NewHandlers(services), services.Auth)

	log.CtxInfo(ctx, "server starting on port %d", cfg.Server.HTTPPort)

	// Start server in goroutine
	go func() {
		h.Spin()
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.CtxInfo(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := h.Shutdown(shutdownCtx); err != nil {
		log.CtxError(ctx, "server shutdown error: %v", err)
	}
	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}

	log.CtxInfo(ctx, "server stopped")
	return nil
}
