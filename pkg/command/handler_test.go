package command

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safebot/pkg/scorestore"
	"safebot/pkg/whitelist"
)

func newTestHandler(t *testing.T) (*Handler, *scorestore.Store) {
	t.Helper()
	scores := scorestore.NewStore(afero.NewMemMapFs(), "safe_score.json")
	require.NoError(t, scores.Load())

	authorized := whitelist.NewStore(whitelist.NewMemorySource("trusted"))
	authorized.Load()

	return NewHandler(authorized, scores), scores
}

func TestHandleRead(t *testing.T) {
	t.Run("unset score", func(t *testing.T) {
		h, _ := newTestHandler(t)
		reply := h.Handle(Request{UserID: "anyone"})
		assert.Contains(t, reply, "No safe score has been set")
	})

	t.Run("set score with separators and timestamp", func(t *testing.T) {
		h, scores := newTestHandler(t)
		require.NoError(t, scores.Set(1234567))

		reply := h.Handle(Request{UserID: "anyone"})
		assert.Contains(t, reply, "1,234,567")
		assert.Contains(t, reply, "Last updated:")
		assert.NotContains(t, reply, "unknown")
	})

	t.Run("reads need no authorization", func(t *testing.T) {
		h, scores := newTestHandler(t)
		require.NoError(t, scores.Set(5))

		reply := h.Handle(Request{UserID: "stranger"})
		assert.Contains(t, reply, "5")
	})
}

func TestHandleWrite(t *testing.T) {
	t.Run("plain number", func(t *testing.T) {
		h, scores := newTestHandler(t)
		before := time.Now()

		reply := h.Handle(Request{UserID: "trusted", Arg: "4200"})
		assert.Contains(t, reply, "4,200")

		score, lastUpdate, ok := scores.Get()
		require.True(t, ok)
		assert.Equal(t, int64(4200), score)
		assert.WithinDuration(t, before, lastUpdate, 2*time.Second)
	})

	t.Run("noisy input is sanitized", func(t *testing.T) {
		h, scores := newTestHandler(t)

		reply := h.Handle(Request{UserID: "trusted", Arg: "sc:1,234pts!!"})
		assert.Contains(t, reply, "1,234")

		score, _, ok := scores.Get()
		require.True(t, ok)
		assert.Equal(t, int64(1234), score)
	})

	t.Run("no digits", func(t *testing.T) {
		h, scores := newTestHandler(t)

		reply := h.Handle(Request{UserID: "trusted", Arg: "abc"})
		assert.Contains(t, reply, "no number found")

		_, _, ok := scores.Get()
		assert.False(t, ok, "rejected input must not touch the store")
	})

	t.Run("overflowing digit string", func(t *testing.T) {
		h, scores := newTestHandler(t)

		reply := h.Handle(Request{UserID: "trusted", Arg: strings.Repeat("9", 20)})
		assert.Contains(t, reply, "valid number")

		_, _, ok := scores.Get()
		assert.False(t, ok)
	})

	t.Run("unauthorized caller", func(t *testing.T) {
		h, scores := newTestHandler(t)
		require.NoError(t, scores.Set(7))

		reply := h.Handle(Request{UserID: "stranger", Arg: "4200"})
		assert.Contains(t, reply, "permission")

		score, _, ok := scores.Get()
		require.True(t, ok)
		assert.Equal(t, int64(7), score, "denied write must leave the score unchanged")
	})

	t.Run("persistence failure", func(t *testing.T) {
		authorized := whitelist.NewStore(whitelist.NewMemorySource("trusted"))
		authorized.Load()
		h := NewHandler(authorized, &failingScores{})

		reply := h.Handle(Request{UserID: "trusted", Arg: "4200"})
		assert.Contains(t, reply, "try again later")
	})
}

func TestExtractDigits(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1234", "1234"},
		{"abc", ""},
		{"sc:1,234pts!!", "1234"},
		{"score: 1,234 pts", "1234"},
		{"-42", "42"},
		{"", ""},
		{"１２３", ""}, // full-width digits are not ASCII digits
	}

	for _, tt := range tests {
		if got := ExtractDigits(tt.input); got != tt.want {
			t.Errorf("ExtractDigits(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	// Idempotent on pure digit strings
	if got := ExtractDigits(ExtractDigits("1234")); got != "1234" {
		t.Errorf("expected idempotent sanitization, got %q", got)
	}
}

// failingScores fails every write
type failingScores struct{}

func (f *failingScores) Get() (int64, time.Time, bool) { return 0, time.Time{}, false }

func (f *failingScores) Set(int64) error { return errors.New("disk full") }
