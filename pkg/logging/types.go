package logging

import (
	"fmt"
	"strings"
)

// LogLevel represents the severity of a log message
type LogLevel string

const (
	// LogLevelDebug is for debug messages
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is for informational messages
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn is for warning messages
	LogLevelWarn LogLevel = "warn"
	// LogLevelError is for error messages
	LogLevelError LogLevel = "error"
)

var (
	// App is the global application logger
	App *AppLogger
	// Command is the global command audit logger
	Command CommandLogger
)

func init() {
	// Default loggers write to stdout / io.Discard until Initialize is called
	var err error

	App, err = NewAppLogger("", LogLevelInfo)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize default app logger: %v", err))
	}

	Command, err = NewCommandLogger("")
	if err != nil {
		panic(fmt.Sprintf("failed to initialize default command logger: %v", err))
	}
}

// Initialize sets up the global loggers
func Initialize(commandLogPath, appLogPath string, level LogLevel) error {
	if level == "" {
		level = LogLevelInfo
	}

	newCommand, err := NewCommandLogger(commandLogPath)
	if err != nil {
		return fmt.Errorf("failed to initialize command logger: %w", err)
	}

	newApp, err := NewAppLogger(appLogPath, level)
	if err != nil {
		return fmt.Errorf("failed to initialize app logger: %w", err)
	}

	Command = newCommand
	App = newApp

	return nil
}

// MustInitialize initializes logging and panics on error
func MustInitialize(commandLogPath, appLogPath string, level LogLevel) {
	if err := Initialize(commandLogPath, appLogPath, level); err != nil {
		panic(fmt.Sprintf("failed to initialize logging: %v", err))
	}
}

// formatValue formats a value for logfmt, quoting if necessary
func formatValue(v interface{}) string {
	s := fmt.Sprintf("%v", v)
	// Quote if contains space, equals, or quotes
	if strings.ContainsAny(s, " =\"") {
		s = strings.ReplaceAll(s, "\"", "\\\"")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
