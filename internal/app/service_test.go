package app

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"fivetenking/internal/domain"
)

func testService() *Service {
	return NewService(rand.New(rand.NewSource(1)))
}

func testConfig() domain.MatchConfig {
	return domain.MatchConfig{
		DeckCount:       2,
		MaxSeats:        4,
		TargetScore:     100,
		TurnSeconds:     30,
		RankPenalty:     true,
		PenaltySchedule: [2]int32{30, 15},
		Strategy:        domain.DealClassic,
	}
}

// tcard builds a single-deck card from suit and rank index (0=Ace, 1=Two,
// 2=Three ... 12=King).
func tcard(s domain.Suit, rank int32) domain.Card {
	return domain.Card(int32(s)*13 + rank)
}

// playingGame builds a game mid-round with the given hands, seat 0 on a
// free lead.
func playingGame(cfg domain.MatchConfig, hands ...[]domain.Card) *domain.Game {
	seats := make([]*domain.Seat, len(hands))
	for i, h := range hands {
		seats[i] = &domain.Seat{
			Index:   i,
			OwnerID: fmt.Sprintf("user-%d", i),
			Hand:    append([]domain.Card(nil), h...),
		}
	}
	return &domain.Game{
		Phase:        domain.PhasePlaying,
		Config:       cfg,
		Seats:        seats,
		Round:        1,
		LastPlaySeat: -1,
		TrickWinner:  -1,
	}
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestCreateMatch(t *testing.T) {
	s := testService()

	game, err := s.CreateMatch(testConfig(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("CreateMatch failed: %v", err)
	}
	if game.Phase != domain.PhaseSeatDraw {
		t.Errorf("phase = %v, want seat_draw", game.Phase)
	}
	if game.Draw == nil || game.Draw.PoolSize() != 3 {
		t.Errorf("draw pool missing or wrong size")
	}

	if _, err := s.CreateMatch(testConfig(), []string{"a"}); !errors.Is(err, ErrTooFewSeats) {
		t.Errorf("one owner: got %v, want ErrTooFewSeats", err)
	}
	if _, err := s.CreateMatch(testConfig(), []string{"a", "b", "c", "d", "e"}); !errors.Is(err, ErrTooManySeats) {
		t.Errorf("five owners in four seats: got %v, want ErrTooManySeats", err)
	}

	teamCfg := testConfig()
	teamCfg.TeamMode = true
	if _, err := s.CreateMatch(teamCfg, []string{"a", "b", "c"}); !errors.Is(err, ErrTooFewSeats) {
		t.Errorf("odd players in team mode: got %v, want error", err)
	}
}

func TestDrawSeatFlow(t *testing.T) {
	s := testService()
	game, err := s.CreateMatch(testConfig(), []string{"a", "b", "c", "d"})
	if err != nil {
		t.Fatalf("CreateMatch failed: %v", err)
	}

	if _, err := s.DrawSeat(game, 9, 0); !errors.Is(err, ErrUnknownSeat) {
		t.Errorf("bad seat: got %v, want ErrUnknownSeat", err)
	}

	for seat := 0; seat < 3; seat++ {
		events, err := s.DrawSeat(game, seat, seat)
		if err != nil {
			t.Fatalf("draw for seat %d failed: %v", seat, err)
		}
		if len(events) != 1 || events[0].Kind != EventSeatDrawn {
			t.Fatalf("draw %d events = %v, want one seat_drawn", seat, kinds(events))
		}
	}

	if _, err := s.DrawSeat(game, 3, 0); !errors.Is(err, domain.ErrDrawTaken) {
		t.Errorf("taken index: got %v, want ErrDrawTaken", err)
	}

	events, err := s.DrawSeat(game, 3, 3)
	if err != nil {
		t.Fatalf("final draw failed: %v", err)
	}
	if len(events) != 2 || events[1].Kind != EventSeatingFinal {
		t.Fatalf("final draw events = %v, want seat_drawn then seating_final", kinds(events))
	}
	if game.Phase != domain.PhaseRoundOver || game.Draw != nil {
		t.Errorf("after draw: phase = %v, draw = %v", game.Phase, game.Draw)
	}
	for i, seat := range game.Seats {
		if seat.Index != i {
			t.Errorf("seat at position %d reindexed to %d", i, seat.Index)
		}
	}

	if _, err := s.DrawSeat(game, 0, 0); !errors.Is(err, ErrNotSeatDraw) {
		t.Errorf("draw after seating: got %v, want ErrNotSeatDraw", err)
	}
}

func TestStartRound(t *testing.T) {
	s := testService()
	game, err := s.CreateMatch(testConfig(), []string{"a", "b", "c", "d"})
	if err != nil {
		t.Fatalf("CreateMatch failed: %v", err)
	}
	if _, err := s.StartRound(game); !errors.Is(err, ErrNotSeatDraw) {
		t.Errorf("deal before seating: got %v, want ErrNotSeatDraw", err)
	}
	for seat := 0; seat < 4; seat++ {
		if _, err := s.DrawSeat(game, seat, seat); err != nil {
			t.Fatalf("draw failed: %v", err)
		}
	}

	events, err := s.StartRound(game)
	if err != nil {
		t.Fatalf("StartRound failed: %v", err)
	}
	if game.Phase != domain.PhasePlaying || game.Round != 1 {
		t.Errorf("phase/round = %v/%d, want playing/1", game.Phase, game.Round)
	}
	if game.CurrentTurn != 0 {
		t.Errorf("first round leader = %d, want 0", game.CurrentTurn)
	}

	private := 0
	for _, ev := range events {
		if ev.Kind == EventHandDealt {
			private++
			if len(ev.Recipients) != 1 {
				t.Errorf("hand_dealt recipients = %v, want exactly one", ev.Recipients)
			}
		}
	}
	if private != 4 {
		t.Errorf("hand_dealt events = %d, want 4", private)
	}
	if events[len(events)-1].Kind != EventRoundStarted {
		t.Errorf("last event = %v, want round_started", events[len(events)-1].Kind)
	}

	total := 0
	for _, seat := range game.Seats {
		total += len(seat.Hand)
	}
	if total != 108 {
		t.Errorf("dealt %d cards, want 108", total)
	}

	if _, err := s.StartRound(game); !errors.Is(err, ErrRoundInProgress) {
		t.Errorf("second deal: got %v, want ErrRoundInProgress", err)
	}
}

func TestSubmitPlayValidation(t *testing.T) {
	s := testService()
	game := playingGame(testConfig(),
		[]domain.Card{tcard(domain.SuitSpades, 4), tcard(domain.SuitSpades, 5)},
		[]domain.Card{tcard(domain.SuitHearts, 4)},
	)

	if _, err := s.SubmitPlay(game, 1, []domain.Card{tcard(domain.SuitHearts, 4)}); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("out of turn: got %v, want ErrNotYourTurn", err)
	}
	if _, err := s.SubmitPlay(game, 0, nil); !errors.Is(err, ErrInvalidPlay) {
		t.Errorf("empty play: got %v, want ErrInvalidPlay", err)
	}
	if _, err := s.SubmitPlay(game, 0, []domain.Card{tcard(domain.SuitClubs, 4)}); !errors.Is(err, ErrCardsNotHeld) {
		t.Errorf("unheld card: got %v, want ErrCardsNotHeld", err)
	}
	if _, err := s.SubmitPlay(game, 0, []domain.Card{tcard(domain.SuitSpades, 4), tcard(domain.SuitSpades, 5)}); !errors.Is(err, ErrInvalidPlay) {
		t.Errorf("mismatched pair: got %v, want ErrInvalidPlay", err)
	}

	// Establish an incumbent the next seat cannot beat.
	if _, err := s.SubmitPlay(game, 0, []domain.Card{tcard(domain.SuitSpades, 5)}); err != nil {
		t.Fatalf("lead failed: %v", err)
	}
	if _, err := s.SubmitPlay(game, 1, []domain.Card{tcard(domain.SuitHearts, 4)}); !errors.Is(err, ErrCannotBeat) {
		t.Errorf("low answer: got %v, want ErrCannotBeat", err)
	}

	// A replayed card id must be rejected once it left the hand.
	if _, err := s.SubmitPass(game, 1); err != nil {
		t.Fatalf("pass failed: %v", err)
	}
	if _, err := s.SubmitPlay(game, 0, []domain.Card{tcard(domain.SuitSpades, 5)}); !errors.Is(err, ErrCardsNotHeld) {
		t.Errorf("replayed card: got %v, want ErrCardsNotHeld", err)
	}
}

func TestPassRules(t *testing.T) {
	s := testService()
	game := playingGame(testConfig(),
		[]domain.Card{tcard(domain.SuitSpades, 4), tcard(domain.SuitSpades, 7)},
		[]domain.Card{tcard(domain.SuitHearts, 4), tcard(domain.SuitHearts, 7)},
		[]domain.Card{tcard(domain.SuitClubs, 4), tcard(domain.SuitClubs, 7)},
	)

	if _, err := s.SubmitPass(game, 0); !errors.Is(err, ErrMustLead) {
		t.Errorf("pass on free lead: got %v, want ErrMustLead", err)
	}

	if _, err := s.SubmitPlay(game, 0, []domain.Card{tcard(domain.SuitSpades, 4)}); err != nil {
		t.Fatalf("lead failed: %v", err)
	}
	events, err := s.SubmitPass(game, 1)
	if err != nil {
		t.Fatalf("first pass failed: %v", err)
	}
	if len(events) != 1 || events[0].Kind != EventTurnPassed {
		t.Fatalf("first pass events = %v", kinds(events))
	}

	events, err = s.SubmitPass(game, 2)
	if err != nil {
		t.Fatalf("second pass failed: %v", err)
	}
	// Both opponents passed: the trick settles and the winner leads again.
	settled := false
	for _, ev := range events {
		if ev.Kind == EventTrickSettled {
			settled = true
			p := ev.Payload.(TrickSettledPayload)
			if p.WinnerSeat != 0 || p.Pot != 5 || p.LeaderSeat != 0 {
				t.Errorf("trick settled payload = %+v", p)
			}
		}
	}
	if !settled {
		t.Fatalf("expected trick_settled, got %v", kinds(events))
	}
	if game.Seats[0].RoundScore != 5 {
		t.Errorf("winner round score = %d, want 5", game.Seats[0].RoundScore)
	}
	if game.CurrentTurn != 0 || !game.LastPlay.Empty() {
		t.Errorf("next trick not opened by winner: turn=%d lastPlay=%v", game.CurrentTurn, game.LastPlay)
	}
}

func TestJokerBombPotBonus(t *testing.T) {
	cfg := testConfig()
	cfg.DeckCount = 1
	s := testService()
	game := playingGame(cfg,
		[]domain.Card{domain.Card(52), domain.Card(53), tcard(domain.SuitSpades, 2)},
		[]domain.Card{tcard(domain.SuitHearts, 2)},
	)

	if _, err := s.SubmitPlay(game, 0, []domain.Card{domain.Card(52), domain.Card(53)}); err != nil {
		t.Fatalf("joker bomb rejected: %v", err)
	}
	if game.Pot != 100 {
		t.Errorf("pot = %d, want 100 bonus for a single-deck joker bomb", game.Pot)
	}
}

func TestRoundSettlement(t *testing.T) {
	s := testService()
	game := playingGame(testConfig(),
		[]domain.Card{tcard(domain.SuitSpades, 4)},                           // a five
		[]domain.Card{tcard(domain.SuitSpades, 12)},                          // a king
		[]domain.Card{tcard(domain.SuitSpades, 2), tcard(domain.SuitHearts, 2)}, // pair of threes
		[]domain.Card{tcard(domain.SuitSpades, 9)},                           // a ten, stays stuck
	)

	mustPlay := func(seat int, cards ...domain.Card) []Event {
		t.Helper()
		events, err := s.SubmitPlay(game, seat, cards)
		if err != nil {
			t.Fatalf("seat %d play failed: %v", seat, err)
		}
		return events
	}
	mustPass := func(seat int) []Event {
		t.Helper()
		events, err := s.SubmitPass(game, seat)
		if err != nil {
			t.Fatalf("seat %d pass failed: %v", seat, err)
		}
		return events
	}

	events := mustPlay(0, tcard(domain.SuitSpades, 4))
	if events[1].Kind != EventSeatFinished {
		t.Fatalf("seat 0 did not finish: %v", kinds(events))
	}
	reveals := 0
	for _, ev := range events {
		if ev.Kind == EventObserverReveal {
			reveals++
			if len(ev.Recipients) != 1 || ev.Recipients[0] != "user-0" {
				t.Errorf("observer reveal recipients = %v", ev.Recipients)
			}
		}
	}
	if reveals != 3 {
		t.Errorf("observer reveals = %d, want 3 outside team mode", reveals)
	}

	mustPlay(1, tcard(domain.SuitSpades, 12))
	mustPass(2)
	mustPass(3) // settles the trick: the king's owner collects 15

	if game.Seats[1].RoundScore != 15 {
		t.Fatalf("seat 1 trick score = %d, want 15", game.Seats[1].RoundScore)
	}
	if game.CurrentTurn != 2 {
		t.Fatalf("next leader = %d, want 2 (winner finished)", game.CurrentTurn)
	}

	mustPlay(2, tcard(domain.SuitSpades, 2), tcard(domain.SuitHearts, 2))
	if !game.FinalLap {
		t.Fatal("final lap not raised with one active seat left")
	}

	// The last seat cannot answer; its pass ends the trick and the round.
	events = mustPass(3)

	var result domain.RoundResult
	found := false
	for _, ev := range events {
		if ev.Kind == EventRoundSettled {
			result = ev.Payload.(RoundSettledPayload).Result
			found = true
		}
		if ev.Kind == EventMatchEnded {
			t.Error("match ended at 100-point target after a 25-point round")
		}
	}
	if !found {
		t.Fatalf("no round_settled event in %v", kinds(events))
	}
	if game.Phase != domain.PhaseRoundOver {
		t.Fatalf("phase = %v, want round_over", game.Phase)
	}

	wantOrder := []int{0, 1, 2, 3}
	for i, seat := range result.FinishOrder {
		if seat != wantOrder[i] {
			t.Fatalf("finish order = %v, want %v", result.FinishOrder, wantOrder)
		}
	}

	wantTotals := []int32{40, 30, -15, -30}
	var sum int32
	for i, line := range result.Lines {
		if line.RoundTotal != wantTotals[i] {
			t.Errorf("seat %d round total = %d, want %d (line %+v)", i, line.RoundTotal, wantTotals[i], line)
		}
		if line.Cumulative != game.Seats[i].Score {
			t.Errorf("seat %d cumulative %d != seat score %d", i, line.Cumulative, game.Seats[i].Score)
		}
		sum += line.RoundTotal
	}
	// 5 + 10 + 10 of score value were in play; penalties are zero-sum.
	if sum != 25 {
		t.Errorf("round totals sum = %d, want 25", sum)
	}

	if result.Lines[0].Leftover != 10 {
		t.Errorf("first finisher leftover = %d, want the stuck ten", result.Lines[0].Leftover)
	}
	if result.Lines[0].Penalty != 30 || result.Lines[3].Penalty != -30 {
		t.Errorf("first/last penalty = %d/%d, want 30/-30", result.Lines[0].Penalty, result.Lines[3].Penalty)
	}
	if result.Lines[1].Penalty != 15 || result.Lines[2].Penalty != -15 {
		t.Errorf("second/third penalty = %d/%d, want 15/-15", result.Lines[1].Penalty, result.Lines[2].Penalty)
	}
}

func TestMatchEndsAtTarget(t *testing.T) {
	cfg := testConfig()
	cfg.TargetScore = 10
	cfg.RankPenalty = false
	s := testService()
	game := playingGame(cfg,
		[]domain.Card{tcard(domain.SuitSpades, 9)}, // a ten
		[]domain.Card{tcard(domain.SuitHearts, 2)},
	)

	if _, err := s.SubmitPlay(game, 0, []domain.Card{tcard(domain.SuitSpades, 9)}); err != nil {
		t.Fatalf("play failed: %v", err)
	}
	// The remaining seat cannot beat the ten; its pass closes the round.
	events, err := s.SubmitPass(game, 1)
	if err != nil {
		t.Fatalf("pass failed: %v", err)
	}

	ended := false
	for _, ev := range events {
		if ev.Kind == EventMatchEnded {
			ended = true
			p := ev.Payload.(MatchEndedPayload)
			if len(p.WinnerSeats) != 1 || p.WinnerSeats[0] != 0 {
				t.Errorf("winners = %v, want [0]", p.WinnerSeats)
			}
		}
	}
	if !ended {
		t.Fatalf("no match_ended event in %v", kinds(events))
	}
	if game.Phase != domain.PhaseEnded {
		t.Errorf("phase = %v, want ended", game.Phase)
	}
	if _, err := s.StartRound(game); !errors.Is(err, ErrMatchOver) {
		t.Errorf("deal after match end: got %v, want ErrMatchOver", err)
	}
}

func TestTeamTrickHandoff(t *testing.T) {
	cfg := testConfig()
	cfg.TeamMode = true
	s := testService()
	game := playingGame(cfg,
		[]domain.Card{tcard(domain.SuitSpades, 4)},
		[]domain.Card{tcard(domain.SuitHearts, 2), tcard(domain.SuitHearts, 3)},
		[]domain.Card{tcard(domain.SuitClubs, 2), tcard(domain.SuitClubs, 3)},
		[]domain.Card{tcard(domain.SuitDiamonds, 2), tcard(domain.SuitDiamonds, 3)},
	)

	if _, err := s.SubmitPlay(game, 0, []domain.Card{tcard(domain.SuitSpades, 4)}); err != nil {
		t.Fatalf("lead failed: %v", err)
	}
	for _, seat := range []int{1, 2, 3} {
		if _, err := s.SubmitPass(game, seat); err != nil {
			t.Fatalf("seat %d pass failed: %v", seat, err)
		}
	}

	// The winner finished, so its teammate (same parity) opens the next trick.
	if game.CurrentTurn != 2 {
		t.Errorf("next leader = %d, want teammate seat 2", game.CurrentTurn)
	}
	if game.Seats[0].RoundScore != 5 {
		t.Errorf("winner round score = %d, want 5", game.Seats[0].RoundScore)
	}
}

func TestTeamFinalLapContinues(t *testing.T) {
	cfg := testConfig()
	cfg.TeamMode = true
	s := testService()
	game := playingGame(cfg,
		[]domain.Card{tcard(domain.SuitSpades, 6), tcard(domain.SuitSpades, 8)}, // 7s 9s
		nil,
		[]domain.Card{tcard(domain.SuitClubs, 7), tcard(domain.SuitClubs, 8)}, // 8c 9c
		nil,
	)
	// The opposing team is already out; the last team plays its lap down.
	game.Seats[1].Finished = true
	game.Seats[3].Finished = true
	game.FinishOrder = []int{1, 3}
	game.FinalLap = true

	events, err := s.SubmitPlay(game, 0, []domain.Card{tcard(domain.SuitSpades, 6)})
	if err != nil {
		t.Fatalf("lead failed: %v", err)
	}
	for _, k := range kinds(events) {
		if k == EventRoundSettled {
			t.Fatalf("round settled mid-trick: %v", kinds(events))
		}
	}
	if game.Phase != domain.PhasePlaying {
		t.Fatalf("phase = %v, want playing while both teammates hold cards", game.Phase)
	}
	if game.CurrentTurn != 2 {
		t.Fatalf("turn = %d, want teammate seat 2", game.CurrentTurn)
	}

	// The teammate answers without finishing: still no conclusion.
	if _, err := s.SubmitPlay(game, 2, []domain.Card{tcard(domain.SuitClubs, 7)}); err != nil {
		t.Fatalf("answer failed: %v", err)
	}
	if game.Phase != domain.PhasePlaying {
		t.Fatalf("phase = %v after a non-finishing answer, want playing", game.Phase)
	}

	// Seat 0 empties its hand: that finish is the checkpoint that ends the
	// round, with seat 2 appended unfinished.
	events, err = s.SubmitPlay(game, 0, []domain.Card{tcard(domain.SuitSpades, 8)})
	if err != nil {
		t.Fatalf("finishing play failed: %v", err)
	}
	settled := false
	for _, k := range kinds(events) {
		if k == EventRoundSettled {
			settled = true
		}
	}
	if !settled {
		t.Fatalf("no round_settled after the finishing play: %v", kinds(events))
	}
	if game.Phase != domain.PhaseRoundOver {
		t.Errorf("phase = %v, want round_over", game.Phase)
	}
	want := []int{1, 3, 0, 2}
	got := game.History[len(game.History)-1].FinishOrder
	if len(got) != len(want) {
		t.Fatalf("finish order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("finish order = %v, want %v", got, want)
		}
	}
}

func TestTeamObserverVisibility(t *testing.T) {
	cfg := testConfig()
	cfg.TeamMode = true
	s := testService()
	game := playingGame(cfg,
		[]domain.Card{tcard(domain.SuitSpades, 4)},
		[]domain.Card{tcard(domain.SuitHearts, 2), tcard(domain.SuitHearts, 3)},
		[]domain.Card{tcard(domain.SuitClubs, 2), tcard(domain.SuitClubs, 3)},
		[]domain.Card{tcard(domain.SuitDiamonds, 2), tcard(domain.SuitDiamonds, 3)},
	)

	events, err := s.SubmitPlay(game, 0, []domain.Card{tcard(domain.SuitSpades, 4)})
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}

	var revealed []int
	for _, ev := range events {
		if ev.Kind == EventObserverReveal {
			revealed = append(revealed, ev.Payload.(ObserverRevealPayload).TargetSeat)
		}
	}
	if len(revealed) != 1 || revealed[0] != 2 {
		t.Errorf("team mode reveals = %v, want just teammate seat 2", revealed)
	}
}

func TestResolveTimeout(t *testing.T) {
	s := testService()
	game := playingGame(testConfig(),
		[]domain.Card{tcard(domain.SuitSpades, 7), tcard(domain.SuitSpades, 2)},
		[]domain.Card{tcard(domain.SuitHearts, 7), tcard(domain.SuitHearts, 2)},
	)

	// Free lead: the timeout plays the single lowest card.
	events, err := s.ResolveTimeout(game)
	if err != nil {
		t.Fatalf("timeout on free lead failed: %v", err)
	}
	if events[0].Kind != EventCardPlayed {
		t.Fatalf("timeout events = %v", kinds(events))
	}
	p := events[0].Payload.(CardPlayedPayload)
	if len(p.Cards) != 1 || p.Cards[0] != tcard(domain.SuitSpades, 2) {
		t.Errorf("timeout played %v, want the lowest single 3s", p.Cards)
	}

	// With an incumbent, the timeout passes.
	events, err = s.ResolveTimeout(game)
	if err != nil {
		t.Fatalf("timeout with incumbent failed: %v", err)
	}
	if events[0].Kind != EventTurnPassed {
		t.Errorf("timeout events = %v, want turn_passed first", kinds(events))
	}
}

func TestSetDelegation(t *testing.T) {
	s := testService()
	game := playingGame(testConfig(),
		[]domain.Card{tcard(domain.SuitSpades, 7)},
		[]domain.Card{tcard(domain.SuitHearts, 7)},
	)

	events, err := s.SetDelegation(game, 1, true, domain.DelegationConservative)
	if err != nil {
		t.Fatalf("SetDelegation failed: %v", err)
	}
	if events[0].Kind != EventDelegationChanged {
		t.Fatalf("events = %v", kinds(events))
	}
	if !game.Seats[1].Delegated || game.Seats[1].Mode != domain.DelegationConservative {
		t.Errorf("seat 1 delegation not applied: %+v", game.Seats[1])
	}

	if _, err := s.SetDelegation(game, 9, true, domain.DelegationDefault); !errors.Is(err, ErrUnknownSeat) {
		t.Errorf("bad seat: got %v, want ErrUnknownSeat", err)
	}
}

func TestRemapSeat(t *testing.T) {
	s := testService()
	game := playingGame(testConfig(),
		[]domain.Card{tcard(domain.SuitSpades, 7)},
		[]domain.Card{tcard(domain.SuitHearts, 7)},
	)
	game.History = []domain.RoundResult{{
		ID:    "r1",
		Lines: []domain.SettlementLine{{Seat: 0, OwnerID: "user-0"}, {Seat: 1, OwnerID: "user-1"}},
	}}
	game.DeadlineTick = 77

	events, err := s.RemapSeat(game, "user-1", "session-9")
	if err != nil {
		t.Fatalf("RemapSeat failed: %v", err)
	}
	if events[0].Kind != EventSeatRemapped || events[0].Recipients[0] != "session-9" {
		t.Errorf("remap event = %+v", events[0])
	}
	if game.Seats[1].OwnerID != "session-9" {
		t.Errorf("seat owner = %q, want session-9", game.Seats[1].OwnerID)
	}
	if game.History[0].Lines[1].OwnerID != "session-9" {
		t.Errorf("history line owner not rewired: %+v", game.History[0].Lines[1])
	}
	if game.DeadlineTick != 77 {
		t.Errorf("turn deadline changed on remap: %d", game.DeadlineTick)
	}

	if _, err := s.RemapSeat(game, "nobody", "x"); !errors.Is(err, ErrUnknownOwner) {
		t.Errorf("unknown owner: got %v, want ErrUnknownOwner", err)
	}
}
