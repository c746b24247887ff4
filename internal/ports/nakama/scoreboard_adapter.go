package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"fivetenking/internal/ports"
)

// NakamaScoreboardAdapter implements ports.ScoreboardPort on Nakama's
// wallet system, keeping career points under a single currency key.
type NakamaScoreboardAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaScoreboardAdapter creates a new scoreboard adapter.
func NewNakamaScoreboardAdapter(nk runtime.NakamaModule) *NakamaScoreboardAdapter {
	return &NakamaScoreboardAdapter{
		nk: nk,
	}
}

// GetScore retrieves the persisted career score for a user.
func (a *NakamaScoreboardAdapter) GetScore(ctx context.Context, userID string) (int64, error) {
	account, err := a.nk.AccountGetId(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}

	var wallet map[string]int64
	if err := json.Unmarshal([]byte(account.Wallet), &wallet); err != nil {
		return 0, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}

	return wallet["points"], nil
}

// RecordScores applies the per-seat deltas of one settled round.
func (a *NakamaScoreboardAdapter) RecordScores(ctx context.Context, updates []ports.ScoreUpdate) error {
	for _, update := range updates {
		if update.Points == 0 {
			continue
		}

		changes := map[string]int64{
			"points": update.Points,
		}

		_, _, err := a.nk.WalletUpdate(ctx, update.UserID, changes, update.Metadata, true)
		if err != nil {
			return fmt.Errorf("failed to record score for user %s: %w", update.UserID, err)
		}
	}
	return nil
}
