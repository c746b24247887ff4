package bot

import botinternal "fivetenking/internal/bot/internal"

// DefaultWeights keeps bombs intact unless spending them wins something,
// and shapes free leads toward shedding big structures and orphans first.
var DefaultWeights = botinternal.Weights{
	BombBreakPenalty:   100.0,
	BombSpendPenalty:   40.0,
	LeadTripleRunBonus: 8.0,
	LeadPairRunBonus:   6.0,
	LeadTripleBonus:    4.0,
	LeadPairBonus:      2.0,
	OrphanSingleBonus:  3.0,
	BombFinishBonus:    500.0,
}
