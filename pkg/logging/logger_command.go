package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// CommandLogger defines the interface for command invocation logging
type CommandLogger interface {
	// LogCommand logs a single command invocation and its outcome
	LogCommand(command string, user string, status string, details ...interface{})
}

type commandLogger struct {
	logger *log.Logger
}

// NewCommandLogger creates a new command logger. An empty logPath discards entries.
func NewCommandLogger(logPath string) (CommandLogger, error) {
	var writer io.Writer

	if logPath == "" {
		writer = io.Discard
	} else {
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening command log file: %w", err)
		}
		writer = f
	}

	return &commandLogger{
		logger: log.New(writer, "", 0), // No flags, we'll handle formatting ourselves
	}, nil
}

func (l *commandLogger) LogCommand(command string, user string, status string, details ...interface{}) {
	var parts []string
	parts = append(parts, fmt.Sprintf("cmd=%s", formatValue(command)))
	if user != "" {
		parts = append(parts, fmt.Sprintf("user=%s", formatValue(user)))
	}
	parts = append(parts, fmt.Sprintf("status=%s", formatValue(status)))

	for i := 0; i < len(details); i += 2 {
		if i+1 < len(details) {
			parts = append(parts, fmt.Sprintf("%v=%s", details[i], formatValue(details[i+1])))
		}
	}

	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05 -0700")
	l.logger.Printf("%s %s", timestamp, strings.Join(parts, " "))
}
