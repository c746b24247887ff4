package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"fivetenking/internal/domain"
)

// GameDefaults carries operator-tunable defaults applied when a match is
// created without explicit parameters.
type GameDefaults struct {
	DeckCount           int      `json:"deck_count"`
	MaxSeats            int      `json:"max_seats"`
	TargetScore         int32    `json:"target_score"`
	TurnDurationSeconds int      `json:"turn_duration_seconds"`
	TeamMode            bool     `json:"team_mode"`
	RankPenalty         bool     `json:"rank_penalty"`
	PenaltySchedule     [2]int32 `json:"penalty_schedule"`
	DealStrategy        string   `json:"deal_strategy"`

	// Auto-play pacing: delegated seats wait a random delay in this range
	// before acting, purely for perceived pacing.
	AutoMinDelaySeconds int `json:"auto_min_delay_seconds"`
	AutoMaxDelaySeconds int `json:"auto_max_delay_seconds"`
}

var (
	defaults *GameDefaults
	loadOnce sync.Once
	loadErr  error
)

// LoadGameDefaults loads the defaults file once per process.
func LoadGameDefaults(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game defaults: %w", err)
			return
		}
		var d GameDefaults
		if err := json.Unmarshal(data, &d); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game defaults: %w", err)
			return
		}
		defaults = &d
	})
	return loadErr
}

// GetGameDefaults returns the loaded defaults, falling back to built-in
// values when no file was loaded.
func GetGameDefaults() GameDefaults {
	if defaults != nil {
		return *defaults
	}
	return GameDefaults{
		DeckCount:           2,
		MaxSeats:            4,
		TargetScore:         500,
		TurnDurationSeconds: 30,
		PenaltySchedule:     [2]int32{30, 15},
		DealStrategy:        "classic",
		AutoMinDelaySeconds: 1,
		AutoMaxDelaySeconds: 3,
	}
}

// ParseMatchConfig builds a validated MatchConfig from match creation
// params, filling gaps from the loaded defaults. Unknown strategy or mode
// names are rejected here, not at use time.
func ParseMatchConfig(params map[string]interface{}) (domain.MatchConfig, error) {
	d := GetGameDefaults()
	cfg := domain.MatchConfig{
		DeckCount:       intParam(params, "deck_count", d.DeckCount),
		MaxSeats:        intParam(params, "max_seats", d.MaxSeats),
		TargetScore:     int32(intParam(params, "target_score", int(d.TargetScore))),
		TurnSeconds:     intParam(params, "turn_seconds", d.TurnDurationSeconds),
		TeamMode:        boolParam(params, "team_mode", d.TeamMode),
		RankPenalty:     boolParam(params, "rank_penalty", d.RankPenalty),
		PenaltySchedule: d.PenaltySchedule,
	}

	if raw, ok := params["penalty_schedule"].([]interface{}); ok && len(raw) == 2 {
		for i, v := range raw {
			if f, ok := v.(float64); ok {
				cfg.PenaltySchedule[i] = int32(f)
			}
		}
	}

	name := stringParam(params, "deal_strategy", d.DealStrategy)
	strategy, err := domain.ParseDealStrategy(name)
	if err != nil {
		return domain.MatchConfig{}, err
	}
	cfg.Strategy = strategy

	if err := cfg.Validate(); err != nil {
		return domain.MatchConfig{}, err
	}
	return cfg, nil
}

func intParam(params map[string]interface{}, key string, fallback int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return fallback
}

func boolParam(params map[string]interface{}, key string, fallback bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return fallback
}

func stringParam(params map[string]interface{}, key string, fallback string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
