package app

import (
	"fmt"

	"github.com/google/uuid"

	"fivetenking/internal/domain"
)

// concludeRound settles the round: unclaimed pot to the provisional trick
// winner, leftover scoring cards to the first finisher, rank penalties,
// cumulative score update and match termination check. Unfinished seats
// join the finish order in seat order — deliberately not by remaining hand
// strength.
func (s *Service) concludeRound(game *domain.Game) []Event {
	if game.Pot > 0 && game.TrickWinner >= 0 {
		game.Seats[game.TrickWinner].RoundScore += game.Pot
		game.Pot = 0
	}

	finished := map[int]bool{}
	for _, idx := range game.FinishOrder {
		finished[idx] = true
	}
	for _, seat := range game.Seats {
		if !finished[seat.Index] {
			game.FinishOrder = append(game.FinishOrder, seat.Index)
		}
	}

	result := domain.RoundResult{
		ID:          uuid.NewString(),
		Round:       game.Round,
		FinishOrder: append([]int(nil), game.FinishOrder...),
	}

	// All scoring value still stuck in hands goes to the first finisher.
	if len(game.FinishOrder) > 0 {
		leftover := int32(0)
		for _, seat := range game.Seats {
			leftover += domain.ScoreSum(seat.Hand)
		}
		first := game.Seats[game.FinishOrder[0]]
		if leftover > 0 {
			result.Detail = append(result.Detail,
				fmt.Sprintf("seat %d collects %d leftover points", first.Index, leftover))
		}
		lines := make([]domain.SettlementLine, len(game.Seats))
		for i, seat := range game.Seats {
			lines[i] = domain.SettlementLine{
				Seat:       seat.Index,
				OwnerID:    seat.OwnerID,
				TrickScore: seat.RoundScore,
			}
		}
		lines[first.Index].Leftover = leftover

		s.applyRankPenalties(game, lines, &result)

		for i := range lines {
			lines[i].RoundTotal = lines[i].TrickScore + lines[i].Leftover + lines[i].Penalty
			seat := game.Seats[lines[i].Seat]
			seat.Score += lines[i].RoundTotal
			lines[i].Cumulative = seat.Score
		}
		result.Lines = lines
	} else {
		// A settlement with no finish order means the round state broke;
		// conclude with best-effort data instead of taking the room down.
		result.Detail = append(result.Detail, "settlement forced with empty finish order")
	}

	game.History = append(game.History, result)
	game.LastPlay = domain.Play{}
	game.LastPlaySeat = -1
	game.Passes = 0
	game.TrickWinner = -1
	game.FinalLap = false

	events := []Event{{Kind: EventRoundSettled, Payload: RoundSettledPayload{Result: result}}}

	if winners := s.matchWinners(game); len(winners) > 0 {
		game.Phase = domain.PhaseEnded
		scores := make([]int32, len(game.Seats))
		for i, seat := range game.Seats {
			scores[i] = seat.Score
		}
		events = append(events, Event{
			Kind:    EventMatchEnded,
			Payload: MatchEndedPayload{FinalScores: scores, WinnerSeats: winners},
		})
	} else {
		game.Phase = domain.PhaseRoundOver
	}
	return events
}

// applyRankPenalties exchanges the configured points between the i-th and
// (n-1-i)-th finishers, waived between teammates.
func (s *Service) applyRankPenalties(game *domain.Game, lines []domain.SettlementLine, result *domain.RoundResult) {
	if !game.Config.RankPenalty {
		return
	}
	n := len(game.FinishOrder)
	for i, points := range game.Config.PenaltySchedule {
		if points == 0 {
			continue
		}
		lo := n - 1 - i
		if i >= lo {
			break
		}
		gainer := game.FinishOrder[i]
		payer := game.FinishOrder[lo]
		if game.Teammates(gainer, payer) {
			result.Detail = append(result.Detail,
				fmt.Sprintf("rank penalty %d waived between teammates %d and %d", points, gainer, payer))
			continue
		}
		lines[gainer].Penalty += points
		lines[payer].Penalty -= points
		result.Detail = append(result.Detail,
			fmt.Sprintf("rank penalty: seat %d takes %d from seat %d", gainer, points, payer))
	}
}

// matchWinners returns the seats that reached the target score, judging
// team sums in team mode.
func (s *Service) matchWinners(game *domain.Game) []int {
	target := game.Config.TargetScore
	if game.Config.TeamMode {
		sums := map[int]int32{}
		for _, seat := range game.Seats {
			sums[game.TeamOf(seat.Index)] += seat.Score
		}
		var winners []int
		for _, seat := range game.Seats {
			if sums[game.TeamOf(seat.Index)] >= target {
				winners = append(winners, seat.Index)
			}
		}
		return winners
	}
	var winners []int
	for _, seat := range game.Seats {
		if seat.Score >= target {
			winners = append(winners, seat.Index)
		}
	}
	return winners
}
