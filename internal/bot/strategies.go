package bot

import (
	"fmt"

	botinternal "fivetenking/internal/bot/internal"
	"fivetenking/internal/domain"
)

// NewBrain returns the brain implementing a delegation mode.
func NewBrain(mode domain.DelegationMode) (Brain, error) {
	switch mode {
	case domain.DelegationDefault:
		return &DefaultBrain{}, nil
	case domain.DelegationConservative:
		return &ConservativeBrain{}, nil
	case domain.DelegationNeverContest:
		return &NeverContestBrain{}, nil
	default:
		return nil, fmt.Errorf("unknown delegation mode: %d", mode)
	}
}

// DefaultBrain plays the cheapest ranked move, except it will not bomb a
// trick its own teammate currently owns.
type DefaultBrain struct{}

func (b *DefaultBrain) CalculateMove(game *domain.Game, seat *domain.Seat) (Move, error) {
	ranked := rankedMoves(game, seat)
	if !game.LastPlay.Empty() && game.TrickWinner >= 0 && game.Teammates(seat.Index, game.TrickWinner) {
		ranked = dropBombs(ranked)
	}
	return pickOrPass(game, seat, ranked), nil
}

// ConservativeBrain spends bombs only on incumbents that are worth taking:
// any bomb answer is suppressed while the incumbent play carries no
// scoring cards.
type ConservativeBrain struct{}

func (b *ConservativeBrain) CalculateMove(game *domain.Game, seat *domain.Seat) (Move, error) {
	ranked := rankedMoves(game, seat)
	if !game.LastPlay.Empty() && domain.ScoreSum(game.LastPlay.Cards) == 0 {
		ranked = dropBombs(ranked)
	}
	return pickOrPass(game, seat, ranked), nil
}

// NeverContestBrain passes whenever passing is legal and only plays when it
// must lead.
type NeverContestBrain struct{}

func (b *NeverContestBrain) CalculateMove(game *domain.Game, seat *domain.Seat) (Move, error) {
	if !game.LastPlay.Empty() {
		return Move{Pass: true}, nil
	}
	return pickOrPass(game, seat, rankedMoves(game, seat)), nil
}

// FallbackMove is the timeout resolution shared with auto-play: lead the
// single lowest card on a free lead, pass otherwise. It is always legal
// for a seat that still holds cards.
func FallbackMove(game *domain.Game, seat *domain.Seat) Move {
	if !game.LastPlay.Empty() {
		return Move{Pass: true}
	}
	hand := append([]domain.Card(nil), seat.Hand...)
	domain.SortByPoint(hand)
	return Move{Cards: hand[:1]}
}

func rankedMoves(game *domain.Game, seat *domain.Seat) []botinternal.ScoredMove {
	moves := botinternal.GetValidMoves(seat.Hand, game.LastPlay, game.Config.DeckCount)
	return botinternal.RankMoves(seat.Hand, moves, game.LastPlay, game.Config.DeckCount, DefaultWeights)
}

func dropBombs(ranked []botinternal.ScoredMove) []botinternal.ScoredMove {
	kept := ranked[:0:0]
	for _, m := range ranked {
		if !m.Move.Play.IsBomb() {
			kept = append(kept, m)
		}
	}
	return kept
}

func pickOrPass(game *domain.Game, seat *domain.Seat, ranked []botinternal.ScoredMove) Move {
	if len(ranked) == 0 {
		if game.LastPlay.Empty() {
			// A free lead cannot pass; fall back to the lowest single.
			return FallbackMove(game, seat)
		}
		return Move{Pass: true}
	}
	return Move{Cards: ranked[0].Move.Cards}
}
