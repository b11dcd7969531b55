package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
	"github.com/spf13/cobra"

	"github.com/divebot/divequest/api"
	"github.com/divebot/divequest/config"
	"github.com/divebot/divequest/notify"
	"github.com/divebot/divequest/notify/webhook"
	"github.com/divebot/divequest/quest"
	"github.com/divebot/divequest/scheduler"
)

var rootCmdPersistentFlags struct {
	LogFile    string
	ConfigFile string
	LogLevel   string
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogFile, "log-file", "", "File to write logs to")
	rootCmd.PersistentFlags().StringVarP(&rootCmdPersistentFlags.ConfigFile, "config", "c", "", "Path to config file (default: search for config.yml in current dir, ~/.divequest, /etc/divequest)")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error) - overrides config file setting")
}

var rootCmd = &cobra.Command{
	Use:   "divequest",
	Short: "Divequest tracks quests and scores for a community chat server",
	Long:  `Divequest is the quest gamification backend for a community chat server: it assigns solo and team quests, tracks completions, awards points and keeps the leaderboard.`,
	Example: `divequest --config config.yml
  divequest -c /path/to/config.yml --log-level debug
  divequest init-data  # seed the store files and example catalogs`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logToFile()
	},
	Run: root,
}

func root(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	level := cfg.LogLevel
	if rootCmdPersistentFlags.LogLevel != "" {
		level = rootCmdPersistentFlags.LogLevel
	}
	setLogLevel(level)

	service := quest.New(cfg)

	var sender notify.Sender = notify.Noop{}
	if cfg.Relay != nil && cfg.Relay.Enabled {
		sender = webhook.New(cfg.Relay)
	}

	server := api.New(cfg, service, sender, log.GetLevel() == log.DebugLevel)

	sched, err := setupScheduler(cfg, service, sender)
	if err != nil {
		log.Fatalf("failed to set up scheduler: %v", err)
	}
	if sched != nil {
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				log.Error("failed to stop scheduler", "error", err)
			}
		}()
	}

	// Start the API server in a goroutine
	go func() {
		log.Info("starting API server", "listen", cfg.Listen)
		if err := server.Run(); err != nil {
			log.Error("API server error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("divequest started successfully")
	<-c
	log.Info("shutting down gracefully...")

	// Give time for graceful shutdown
	time.Sleep(2 * time.Second)
}

// setupScheduler registers the leaderboard digest job when it is enabled.
func setupScheduler(cfg *config.Config, service *quest.Service, sender notify.Sender) (*scheduler.Scheduler, error) {
	if cfg.Digest == nil || !cfg.Digest.Enabled {
		return nil, nil
	}

	sched, err := scheduler.New()
	if err != nil {
		return nil, err
	}

	interval := time.Duration(cfg.Digest.IntervalHours) * time.Hour
	err = sched.AddJob("leaderboard-digest", "Leaderboard digest",
		gocron.DurationJob(interval),
		func(ctx context.Context) error {
			text, err := service.Leaderboard()
			if err != nil {
				return fmt.Errorf("failed to render leaderboard: %w", err)
			}
			return sender.PostToChannel(ctx, cfg.Digest.Channel, text)
		},
	)
	if err != nil {
		return nil, err
	}
	return sched, nil
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.Warnf("unknown log level %s, defaulting to info", level)
		log.SetLevel(log.InfoLevel)
	}
}

func logToFile() {
	if rootCmdPersistentFlags.LogFile == "" {
		return
	}
	file, err := os.OpenFile(rootCmdPersistentFlags.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec
	if err != nil {
		log.Errorf("failed to open log file: %v", err)
		return
	}

	// Create a multi-writer that writes to both console and file
	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.Info("logging to both console and file", "file", rootCmdPersistentFlags.LogFile)
}

func Execute() error {
	return rootCmd.Execute()
}
