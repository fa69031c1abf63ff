package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	tele "gopkg.in/telebot.v3"

	"safebot/pkg/command"
	"safebot/pkg/logging"
)

// Config holds Telegram transport configuration
type Config struct {
	Token string
	// PollTimeout is the long-polling timeout, defaults to 10s
	PollTimeout time.Duration
	// Offline skips the initial API handshake, for tests
	Offline bool
}

// Bot wires the safe command handler to the Telegram Bot API. It also
// tracks the runtime metrics the status writer reports.
type Bot struct {
	api     *tele.Bot
	handler *command.Handler

	startTime time.Time
	handled   atomic.Int64
}

// New creates a new Bot and registers its command routes
func New(cfg Config, handler *command.Handler) (*Bot, error) {
	timeout := cfg.PollTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	api, err := tele.NewBot(tele.Settings{
		Token:   cfg.Token,
		Poller:  &tele.LongPoller{Timeout: timeout},
		Offline: cfg.Offline,
	})
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	// startTime is fixed here, before the status heartbeat or any other
	// goroutine can observe the Bot, so reads never race a later write.
	b := &Bot{
		api:       api,
		handler:   handler,
		startTime: time.Now(),
	}
	b.api.Handle("/"+command.SafeCommand, b.handleSafe)
	return b, nil
}

// PublishCommands announces the command list to the platform's help menu
func (b *Bot) PublishCommands() error {
	return b.api.SetCommands([]tele.Command{
		{Text: command.SafeCommand, Description: command.SafeDescription},
	})
}

func (b *Bot) handleSafe(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	b.handled.Add(1)

	reply := b.handler.Handle(command.Request{
		UserID: strconv.FormatInt(sender.ID, 10),
		Arg:    strings.TrimSpace(c.Message().Payload),
	})
	return c.Send(reply)
}

// Start begins long polling and blocks until Stop is called
func (b *Bot) Start() {
	logging.App.Info("Telegram bot online", "username", b.api.Me.Username)
	b.api.Start()
}

// Stop shuts the poller down
func (b *Bot) Stop() {
	b.api.Stop()
}

// GetCommandsHandled implements status.MetricsProvider
func (b *Bot) GetCommandsHandled() int64 {
	return b.handled.Load()
}

// GetStartTime implements status.MetricsProvider
func (b *Bot) GetStartTime() time.Time {
	return b.startTime
}
