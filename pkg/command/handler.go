package command

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"safebot/pkg/logging"
)

// Handler implements the safe command: with no argument it reports the
// current score, with an argument it updates the score for whitelisted
// callers. Every outcome is a reply string; the host sends it back on
// whatever channel the command arrived on.
type Handler struct {
	authorizer Authorizer
	scores     Scores
	printer    *message.Printer
}

// NewHandler creates a new Handler
func NewHandler(authorizer Authorizer, scores Scores) *Handler {
	return &Handler{
		authorizer: authorizer,
		scores:     scores,
		printer:    message.NewPrinter(language.English),
	}
}

// Handle processes one invocation. It never fails: every error path
// ends in a user-facing reply and a log entry.
func (h *Handler) Handle(req Request) string {
	if req.Arg == "" {
		return h.view(req)
	}
	return h.update(req)
}

func (h *Handler) view(req Request) string {
	score, lastUpdate, ok := h.scores.Get()
	if !ok {
		logging.Command.LogCommand(SafeCommand, req.UserID, "view_unset")
		return "ℹ️ No safe score has been set yet."
	}

	updated := "unknown"
	if !lastUpdate.IsZero() {
		updated = lastUpdate.Local().Format("2006-01-02 15:04:05")
	}
	logging.Command.LogCommand(SafeCommand, req.UserID, "view")
	return fmt.Sprintf("🛡️ Current safe score: `%s`\n🕒 Last updated: %s", h.formatScore(score), updated)
}

func (h *Handler) update(req Request) string {
	if !h.authorizer.IsAuthorized(req.UserID) {
		logging.App.Warn("Unauthorized safe score update attempt", "user", req.UserID)
		logging.Command.LogCommand(SafeCommand, req.UserID, "denied")
		return "⚠️ You do not have permission to do that."
	}

	digits := ExtractDigits(req.Arg)
	if digits == "" {
		logging.Command.LogCommand(SafeCommand, req.UserID, "invalid", "input", req.Arg)
		return "⚠️ Invalid input, no number found."
	}

	score, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		// Only possible for digit strings beyond int64 range
		logging.Command.LogCommand(SafeCommand, req.UserID, "invalid", "input", req.Arg)
		return "⚠️ Invalid input, please provide a valid number."
	}
	if score < 0 {
		logging.Command.LogCommand(SafeCommand, req.UserID, "invalid", "input", req.Arg)
		return "⚠️ Score cannot be negative."
	}

	if err := h.scores.Set(score); err != nil {
		logging.App.Error("Failed to update safe score", "user", req.UserID, "score", score, "error", err)
		logging.Command.LogCommand(SafeCommand, req.UserID, "error")
		return "⚠️ Something went wrong while updating the score, please try again later."
	}

	logging.App.Info("Safe score updated", "user", req.UserID, "score", score)
	logging.Command.LogCommand(SafeCommand, req.UserID, "updated", "score", score)
	return fmt.Sprintf("✅ Safe score updated to `%s`.", h.formatScore(score))
}

// formatScore renders a score with thousands separators
func (h *Handler) formatScore(score int64) string {
	return h.printer.Sprintf("%d", score)
}

// ExtractDigits strips every character that is not an ASCII digit.
// Digit runs embedded in other text are concatenated, so "sc:1,234pts"
// becomes "1234". Deliberately permissive, not a strict parser.
func ExtractDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
