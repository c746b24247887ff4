package ports

import "context"

// ScoreUpdate represents one seat's settled score change for persistence.
type ScoreUpdate struct {
	UserID   string
	Points   int64
	Metadata map[string]interface{}
}

// ScoreboardPort defines the interface for persisting match scores outside
// the room. Implementations must tolerate partial failure; the room keeps
// its own authoritative copy.
type ScoreboardPort interface {
	// GetScore retrieves the persisted career score for a user.
	GetScore(ctx context.Context, userID string) (int64, error)

	// RecordScores applies the per-seat deltas of one settled round.
	RecordScores(ctx context.Context, updates []ScoreUpdate) error
}
