package command

import "time"

// Safe command metadata surfaced to the host's help system
const (
	SafeCommand     = "safe"
	SafeDescription = "set or view safe score"
)

// Request is a single command invocation as delivered by the host
type Request struct {
	// UserID is the caller's platform identity
	UserID string
	// Arg is the free text following the command token, empty for reads
	Arg string
}

// Authorizer decides whether a user may change the safe score
type Authorizer interface {
	IsAuthorized(userID string) bool
}

// Scores is the score storage the handler reads and writes
type Scores interface {
	Get() (score int64, lastUpdate time.Time, ok bool)
	Set(score int64) error
}
