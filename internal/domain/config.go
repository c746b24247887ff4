package domain

import "fmt"

// DelegationMode selects how the move engine plays for a delegated seat.
type DelegationMode int

const (
	// DelegationDefault plays the cheapest legal move but avoids bombing a
	// trick its own teammate currently owns.
	DelegationDefault DelegationMode = iota
	// DelegationConservative additionally refuses to answer with a bomb
	// when the incumbent play carries no scoring cards.
	DelegationConservative
	// DelegationNeverContest passes whenever passing is legal.
	DelegationNeverContest
)

// ParseDelegationMode maps a configuration name to a mode, rejecting
// unknown names at load time.
func ParseDelegationMode(name string) (DelegationMode, error) {
	switch name {
	case "", "default":
		return DelegationDefault, nil
	case "conservative":
		return DelegationConservative, nil
	case "never_contest":
		return DelegationNeverContest, nil
	default:
		return 0, fmt.Errorf("unknown delegation mode %q", name)
	}
}

func (m DelegationMode) String() string {
	switch m {
	case DelegationConservative:
		return "conservative"
	case DelegationNeverContest:
		return "never_contest"
	default:
		return "default"
	}
}

// MatchConfig is the immutable per-match rule set. It is parsed once when
// the room starts the match and never reinterpreted afterwards.
type MatchConfig struct {
	DeckCount   int
	MaxSeats    int
	TargetScore int32
	TurnSeconds int
	TeamMode    bool
	RankPenalty bool
	// PenaltySchedule holds the point exchanges [firstVsLast,
	// secondVsSecondLast] applied when RankPenalty is on.
	PenaltySchedule [2]int32
	Strategy        DealStrategy
}

// Validate rejects configurations outside the supported envelope.
func (c MatchConfig) Validate() error {
	if c.DeckCount < 1 || c.DeckCount > 8 {
		return fmt.Errorf("deck count %d outside 1..8", c.DeckCount)
	}
	if c.MaxSeats < 2 || c.MaxSeats > 12 {
		return fmt.Errorf("seat count %d outside 2..12", c.MaxSeats)
	}
	if c.TeamMode && c.MaxSeats%2 != 0 {
		return fmt.Errorf("team mode requires an even seat count, got %d", c.MaxSeats)
	}
	if c.TargetScore <= 0 {
		return fmt.Errorf("target score %d must be positive", c.TargetScore)
	}
	if c.TurnSeconds <= 0 {
		return fmt.Errorf("turn timeout %ds must be positive", c.TurnSeconds)
	}
	switch c.Strategy {
	case DealClassic, DealFair:
	default:
		return fmt.Errorf("unknown deal strategy %d", c.Strategy)
	}
	return nil
}
