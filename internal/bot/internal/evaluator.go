package internal

import (
	"sort"

	"fivetenking/internal/domain"
)

// Weights tune the move cost function. Lower cost is more preferred.
type Weights struct {
	// BombBreakPenalty charges moves that consume cards belonging to an
	// intact bomb without playing the bomb itself.
	BombBreakPenalty float64
	// BombSpendPenalty charges answering an ordinary play with a bomb.
	BombSpendPenalty float64

	// Free-lead shape bonuses, largest structures first.
	LeadTripleRunBonus float64
	LeadPairRunBonus   float64
	LeadTripleBonus    float64
	LeadPairBonus      float64
	// OrphanSingleBonus rewards leading a single whose rank appears only
	// once in the hand.
	OrphanSingleBonus float64
	// BombFinishBonus rewards a bomb lead that empties the whole hand.
	BombFinishBonus float64
}

// ScoredMove pairs a candidate with its cost.
type ScoredMove struct {
	Move ValidMove
	Cost float64
}

// RankMoves scores every candidate and returns them ascending by cost, so
// the first entry is the engine's preferred move. The base cost is the
// play's comparison value; penalties protect bombs, bonuses shape free
// leads.
func RankMoves(hand []domain.Card, moves []ValidMove, last domain.Play, deckCount int, w Weights) []ScoredMove {
	bombPoints, jokerBombIntact := intactBombs(hand, deckCount)

	scored := make([]ScoredMove, 0, len(moves))
	for _, move := range moves {
		cost := float64(move.Play.Value)

		if breaksBomb(move, bombPoints, jokerBombIntact) {
			cost += w.BombBreakPenalty
		}
		if move.Play.IsBomb() && !last.Empty() && !last.IsBomb() {
			cost += w.BombSpendPenalty
		}

		if last.Empty() {
			switch move.Play.Type {
			case domain.ConsecutiveTriples:
				cost -= w.LeadTripleRunBonus
			case domain.ConsecutivePairs:
				cost -= w.LeadPairRunBonus
			case domain.Triple:
				cost -= w.LeadTripleBonus
			case domain.Pair:
				cost -= w.LeadPairBonus
			case domain.Single:
				if countPoint(hand, move.Play.Value) == 1 {
					cost -= w.OrphanSingleBonus
				}
			}
			if move.Play.IsBomb() && len(move.Cards) == len(hand) {
				cost -= w.BombFinishBonus
			}
		}

		scored = append(scored, ScoredMove{Move: move, Cost: cost})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Cost != scored[j].Cost {
			return scored[i].Cost < scored[j].Cost
		}
		return scored[i].Move.Play.Value < scored[j].Move.Play.Value
	})
	return scored
}

// intactBombs reports which points form a rank bomb in the hand and whether
// the full joker bomb is held.
func intactBombs(hand []domain.Card, deckCount int) (map[int32]bool, bool) {
	counts := map[int32]int{}
	jokers := 0
	for _, c := range hand {
		counts[c.Point()]++
		if c.IsJoker() {
			jokers++
		}
	}
	points := map[int32]bool{}
	for p, n := range counts {
		if n >= 4 {
			points[p] = true
		}
	}
	return points, jokers == deckCount*2 && jokers > 0
}

// breaksBomb reports whether the move spends bomb material on something
// other than that bomb.
func breaksBomb(move ValidMove, bombPoints map[int32]bool, jokerBombIntact bool) bool {
	if move.Play.Type == domain.JokerBomb {
		return false
	}
	for _, c := range move.Cards {
		if c.IsJoker() {
			if jokerBombIntact {
				return true
			}
			continue
		}
		if !bombPoints[c.Point()] {
			continue
		}
		// Spending the whole rank bomb itself is fine.
		if (move.Play.Type == domain.StandardBomb || move.Play.Type == domain.MaxBomb) && move.Play.Value == c.Point() {
			continue
		}
		return true
	}
	return false
}

func countPoint(cards []domain.Card, point int32) int {
	n := 0
	for _, c := range cards {
		if c.Point() == point {
			n++
		}
	}
	return n
}
