package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the bot configuration
type Config struct {
	// TelegramToken may be omitted in favor of the TELEGRAM_TOKEN env var
	TelegramToken string `json:"telegram_token,omitempty"`

	// State files
	WhitelistPath string `json:"whitelist_path"`  // YAML list of user IDs allowed to set the score
	ScoreFilePath string `json:"score_file_path"` // JSON file holding the persisted safe score

	// Transport settings
	PollTimeout int `json:"poll_timeout,omitempty"` // Long-poll timeout in seconds

	// Status settings
	StatusDir      string `json:"status_dir,omitempty"`      // Optional: directory for health status files
	StatusInterval int    `json:"status_interval,omitempty"` // Heartbeat interval in seconds

	// Logging settings
	AppLogPath     string `json:"app_log_path,omitempty"`     // Optional: application log file, stdout if empty
	CommandLogPath string `json:"command_log_path,omitempty"` // Optional: command audit log file
	LogLevel       string `json:"log_level,omitempty"`        // debug, info, warn or error
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	// Set defaults for optional settings
	if config.WhitelistPath == "" {
		config.WhitelistPath = "config/whitelist.yaml"
	}
	if config.ScoreFilePath == "" {
		config.ScoreFilePath = "data/persistence/safe_score.json"
	}
	if config.PollTimeout == 0 {
		config.PollTimeout = 10
	}
	if config.StatusInterval == 0 {
		config.StatusInterval = 60 // 1 minute
	}

	// Convert relative paths to absolute paths based on config file location
	configDir := filepath.Dir(path)
	if !filepath.IsAbs(config.WhitelistPath) {
		config.WhitelistPath = filepath.Join(configDir, config.WhitelistPath)
	}
	if !filepath.IsAbs(config.ScoreFilePath) {
		config.ScoreFilePath = filepath.Join(configDir, config.ScoreFilePath)
	}
	if config.StatusDir != "" && !filepath.IsAbs(config.StatusDir) {
		config.StatusDir = filepath.Join(configDir, config.StatusDir)
	}
	if config.AppLogPath != "" && !filepath.IsAbs(config.AppLogPath) {
		config.AppLogPath = filepath.Join(configDir, config.AppLogPath)
	}
	if config.CommandLogPath != "" && !filepath.IsAbs(config.CommandLogPath) {
		config.CommandLogPath = filepath.Join(configDir, config.CommandLogPath)
	}

	return nil
}
