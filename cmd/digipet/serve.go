package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/digipet/pkg/api"
	"github.com/cbodonnell/digipet/pkg/config"
	"github.com/cbodonnell/digipet/pkg/game"
	"github.com/cbodonnell/digipet/pkg/log"
	"github.com/cbodonnell/digipet/pkg/messages"
	"github.com/cbodonnell/digipet/pkg/network"
	"github.com/cbodonnell/digipet/pkg/queue"
	"github.com/cbodonnell/digipet/pkg/repositories"
	"github.com/cbodonnell/digipet/pkg/state"
	"github.com/cbodonnell/digipet/pkg/version"
	"github.com/cbodonnell/digipet/pkg/workers"
	"github.com/spf13/cobra"
)

const (
	broadcastChannelSize = 100
	shutdownTimeout      = 10 * time.Second
)

var serveOpts struct {
	configFile  string
	port        int
	allowOrigin string
	databaseURL string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the digipet API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := setupLogger(cfg.LogLevel); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func init() {
	defaults := config.Default()
	serveCmd.Flags().StringVar(&serveOpts.configFile, "config", "", "Path to a YAML config file")
	serveCmd.Flags().IntVar(&serveOpts.port, "port", defaults.Port, "Port to listen on")
	serveCmd.Flags().StringVar(&serveOpts.allowOrigin, "allow-origin", defaults.AllowOrigin, "Comma-separated list of allowed origins")
	serveCmd.Flags().StringVar(&serveOpts.databaseURL, "database-url", defaults.DatabaseURL, "Journal database (memory://, sqlite://path, postgresql://...)")
	rootCmd.AddCommand(serveCmd)
}

// loadConfig layers defaults, the config file, the environment and explicit flags, in that order.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if serveOpts.configFile != "" {
		var err error
		cfg, err = config.LoadFromFile(serveOpts.configFile)
		if err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = serveOpts.port
	}
	if flags.Changed("allow-origin") {
		cfg.AllowOrigin = serveOpts.allowOrigin
	}
	if flags.Changed("database-url") {
		cfg.DatabaseURL = serveOpts.databaseURL
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %v", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cfg config.Config) error {
	log.Info("Starting digipet server version %s", version.Get())

	repository, err := repositories.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open journal repository: %v", err)
	}
	defer repository.Close(context.Background())

	eventQueue := queue.NewInMemoryQueue[*messages.Event](cfg.JournalQueueSize)
	broadcastChan := make(chan *messages.Event, broadcastChannelSize)

	journalWorker := workers.NewJournalWorker(workers.NewJournalWorkerOptions{
		Repository: repository,
		EventQueue: eventQueue,
		Interval:   cfg.JournalInterval,
	})
	journalDone := make(chan struct{})
	go func() {
		journalWorker.Start(ctx)
		close(journalDone)
	}()

	feedHub := network.NewFeedHub(network.NewFeedHubOptions{
		OriginPatterns: network.OriginPatterns(cfg.AllowOrigin),
	})
	defer feedHub.Close()
	go workers.NewBroadcastEventWorker(workers.NewBroadcastEventWorkerOptions{
		Broadcaster: feedHub,
		EventChan:   broadcastChan,
	}).Start(ctx)

	gameManager := game.NewGameManager(game.NewGameManagerOptions{
		StateManager:  state.NewInMemoryStateManager(),
		EventQueue:    eventQueue,
		BroadcastChan: broadcastChan,
	})

	apiServerOpts := api.NewAPIServerOptions{
		Port:        cfg.Port,
		AllowOrigin: cfg.AllowOrigin,
		GameManager: gameManager,
		Repository:  repository,
		Feed:        feedHub,
	}
	if cfg.TLS != nil {
		apiServerOpts.TLS = &api.TLSConfig{
			CertFile: cfg.TLS.CertFile,
			KeyFile:  cfg.TLS.KeyFile,
		}
	}
	server := api.NewAPIServer(apiServerOpts)
	go server.Start()

	<-ctx.Done()
	log.Info("Shutting down")

	// hijacked feed connections are not closed by Shutdown
	feedHub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop server: %v", err)
	}
	<-journalDone
	return nil
}
