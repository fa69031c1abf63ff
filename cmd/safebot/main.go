package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"safebot/pkg/command"
	"safebot/pkg/logging"
	"safebot/pkg/scorestore"
	"safebot/pkg/status"
	"safebot/pkg/telegram"
	"safebot/pkg/whitelist"
)

var (
	version     = "dev" // Will be set during build
	cfgFile     string
	showVersion bool
)

func main() {
	cobra.CheckErr(rootCmd.Execute())
}

var rootCmd = &cobra.Command{
	Use:           "safebot",
	Short:         "Safe score Telegram bot",
	SilenceUsage:  false,
	SilenceErrors: true,
	Long: `Safe score bot (safebot) - set and view a manually maintained safe score

The bot exposes a single /safe command. Without an argument it replies with
the current score and when it was last updated. With an argument it updates
the score, restricted to users listed in the whitelist file.

Configuration file must be in JSON format with the following structure:
{
    "telegram_token": "123456:ABC...",
    "whitelist_path": "config/whitelist.yaml",
    "score_file_path": "data/persistence/safe_score.json",
    "status_dir": "run/status",
    "status_interval": 60,
    "app_log_path": "log/safebot.log",
    "command_log_path": "log/safebot-commands.log",
    "log_level": "info"
}

The token may also be supplied via the TELEGRAM_TOKEN environment variable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("safebot %s\n", version)
			return nil
		}

		if cfgFile == "" {
			return fmt.Errorf("config file is required (use --config)")
		}

		// Convert to absolute path if needed
		if !filepath.IsAbs(cfgFile) {
			var err error
			cfgFile, err = filepath.Abs(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to get absolute path: %v", err)
			}
		}

		// Load configuration
		var config Config
		if err := LoadConfig(cfgFile, &config); err != nil {
			return fmt.Errorf("failed to load config: %v", err)
		}

		// Initialize logging
		if err := logging.Initialize(config.CommandLogPath, config.AppLogPath, logging.LogLevel(config.LogLevel)); err != nil {
			return fmt.Errorf("failed to initialize logging: %v", err)
		}

		token := config.TelegramToken
		if token == "" {
			token = os.Getenv("TELEGRAM_TOKEN")
		}
		if token == "" {
			return fmt.Errorf("telegram token is required (config telegram_token or TELEGRAM_TOKEN)")
		}

		fs := afero.NewOsFs()

		// Load whitelist, degrading to empty on any problem
		authorized := whitelist.NewStore(whitelist.NewFileSource(fs, config.WhitelistPath))
		authorized.Load()

		// Load the persisted score; a broken file starts us empty
		scores := scorestore.NewStore(fs, config.ScoreFilePath)
		if err := scores.Load(); err != nil {
			logging.App.Error("Failed to load score file, starting empty", "error", err)
		}

		handler := command.NewHandler(authorized, scores)

		bot, err := telegram.New(telegram.Config{
			Token:       token,
			PollTimeout: time.Duration(config.PollTimeout) * time.Second,
		}, handler)
		if err != nil {
			return fmt.Errorf("failed to create telegram bot: %v", err)
		}

		if err := bot.PublishCommands(); err != nil {
			logging.App.Warn("Failed to publish command list", "error", err)
		}

		// Optional status files for health monitoring
		var statusWriter *status.Writer
		if config.StatusDir != "" {
			statusWriter, err = status.New(config.StatusDir, time.Duration(config.StatusInterval)*time.Second, version)
			if err != nil {
				return fmt.Errorf("failed to create status writer: %v", err)
			}
			statusWriter.SetMetricsProvider(bot)
			if err := statusWriter.WriteStartFile(); err != nil {
				logging.App.Error("Failed to write start file", "error", err)
			}
			statusWriter.StartHeartbeat()
		}

		// The signal goroutine records its reason before stopping the
		// bot, so a drained channel after Start returns means the
		// poller exited on its own.
		stopReason := make(chan string, 1)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			sig := <-sigCh
			logging.App.Info("Shutting down", "signal", sig.String())
			stopReason <- "signal"
			bot.Stop()
		}()

		started := time.Now()
		fmt.Printf("Starting safebot %s\n", version)
		bot.Start()

		if statusWriter != nil {
			statusWriter.Stop()
			if err := statusWriter.WriteStopFile(drainStopReason(stopReason), time.Since(started)); err != nil {
				logging.App.Error("Failed to write stop file", "error", err)
			}
		}
		return nil
	},
}

// drainStopReason returns the recorded shutdown reason, or "poller_exit"
// when the poller stopped without a signal.
func drainStopReason(ch <-chan string) string {
	select {
	case reason := <-ch:
		return reason
	default:
		return "poller_exit"
	}
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "path to config file (required)")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show version information")
}
