package app

import (
	"errors"
	"math/rand"
	"time"

	"fivetenking/internal/bot"
	"fivetenking/internal/domain"
)

// Service contains the match use-cases operating on domain state. All
// methods mutate the game synchronously; callers are responsible for
// serializing calls per room (the match loop does this by construction).
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

// Rejected actions: reported to the originator only, no state mutated.
var (
	ErrNotPlaying      = errors.New("no round in progress")
	ErrNotSeatDraw     = errors.New("seat draw is not open")
	ErrRoundInProgress = errors.New("round already in progress")
	ErrMatchOver       = errors.New("match already ended")
	ErrTooFewSeats     = errors.New("not enough seats to start")
	ErrTooManySeats    = errors.New("more players than configured seats")
	ErrUnknownSeat     = errors.New("seat not found")
	ErrUnknownOwner    = errors.New("no seat mapped to that identity")
	ErrNotYourTurn     = errors.New("not this seat's turn")
	ErrSeatFinished    = errors.New("seat already finished")
	ErrCardsNotHeld    = errors.New("seat does not hold those cards")
	ErrInvalidPlay     = errors.New("cards do not form a legal combination")
	ErrCannotBeat      = errors.New("play does not beat the incumbent")
	ErrMustLead        = errors.New("cannot pass on a free lead")
)

// JokerBombPotBonus is the extra pot value per deck credited when a joker
// bomb is played.
const JokerBombPotBonus = 100

// CreateMatch builds the aggregate for one room with the given owners in
// their pre-draw join order and opens the seat-draw lottery.
func (s *Service) CreateMatch(cfg domain.MatchConfig, ownerIDs []string) (*domain.Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(ownerIDs) < 2 {
		return nil, ErrTooFewSeats
	}
	if len(ownerIDs) > cfg.MaxSeats {
		return nil, ErrTooManySeats
	}
	if cfg.TeamMode && len(ownerIDs)%2 != 0 {
		return nil, ErrTooFewSeats
	}

	seats := make([]*domain.Seat, len(ownerIDs))
	for i, owner := range ownerIDs {
		seats[i] = &domain.Seat{Index: i, OwnerID: owner}
	}

	return &domain.Game{
		Phase:        domain.PhaseSeatDraw,
		Config:       cfg,
		Seats:        seats,
		Draw:         domain.NewSeatDraw(len(seats), cfg.DeckCount, s.rng),
		LastPlaySeat: -1,
		TrickWinner:  -1,
	}, nil
}

// DrawSeat lets a seat claim one card of the draw pool. When the last seat
// has drawn, seating is reordered and the match becomes ready to deal.
func (s *Service) DrawSeat(game *domain.Game, seat, poolIndex int) ([]Event, error) {
	if game.Phase != domain.PhaseSeatDraw || game.Draw == nil {
		return nil, ErrNotSeatDraw
	}
	if seat < 0 || seat >= len(game.Seats) {
		return nil, ErrUnknownSeat
	}

	card, err := game.Draw.Claim(seat, poolIndex)
	if err != nil {
		return nil, err
	}

	events := []Event{{
		Kind:    EventSeatDrawn,
		Payload: SeatDrawnPayload{Seat: seat, PoolIndex: poolIndex, Card: card},
	}}

	if !game.Draw.Complete() {
		return events, nil
	}

	order, err := game.Draw.Order(game.Config.TeamMode)
	if err != nil {
		return nil, err
	}

	reordered := make([]*domain.Seat, len(order))
	for newIndex, oldIndex := range order {
		reordered[newIndex] = game.Seats[oldIndex]
		reordered[newIndex].Index = newIndex
	}
	game.Seats = reordered
	game.Draw = nil
	game.Phase = domain.PhaseRoundOver

	events = append(events, Event{
		Kind:    EventSeatingFinal,
		Payload: SeatingFinalPayload{Order: order, TeamMode: game.Config.TeamMode},
	})
	return events, nil
}

// StartRound deals a fresh round. The previous round's first finisher
// leads; seat 0 leads the first round.
func (s *Service) StartRound(game *domain.Game) ([]Event, error) {
	switch game.Phase {
	case domain.PhaseRoundOver:
	case domain.PhasePlaying:
		return nil, ErrRoundInProgress
	case domain.PhaseEnded:
		return nil, ErrMatchOver
	default:
		return nil, ErrNotSeatDraw
	}

	hands, err := domain.Deal(game.Config.DeckCount, len(game.Seats), game.Config.Strategy, s.rng)
	if err != nil {
		return nil, err
	}

	leader := 0
	if n := len(game.History); n > 0 {
		prev := game.History[n-1].FinishOrder
		if len(prev) > 0 {
			leader = prev[0]
		}
	}

	events := make([]Event, 0, len(game.Seats)+1)
	sizes := make([]int, len(game.Seats))
	for i, seat := range game.Seats {
		domain.SortByPoint(hands[i])
		seat.Hand = hands[i]
		seat.Finished = false
		seat.RoundScore = 0
		seat.Observing = nil
		sizes[i] = len(hands[i])

		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{Seat: i, Hand: seat.Hand},
			Recipients: []string{seat.OwnerID},
		})
	}

	game.Round++
	game.Phase = domain.PhasePlaying
	game.CurrentTurn = leader
	game.LastPlay = domain.Play{}
	game.LastPlaySeat = -1
	game.Passes = 0
	game.Pot = 0
	game.TrickWinner = -1
	game.FinishOrder = nil
	game.FinalLap = false

	events = append(events, Event{
		Kind:    EventRoundStarted,
		Payload: RoundStartedPayload{Round: game.Round, FirstTurnSeat: leader, HandSizes: sizes},
	})
	return events, nil
}

// SubmitPlay validates and applies a play for the seat whose turn it is.
func (s *Service) SubmitPlay(game *domain.Game, seatIndex int, cards []domain.Card) ([]Event, error) {
	seat, err := actingSeat(game, seatIndex)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, ErrInvalidPlay
	}
	if !domain.SeatHolds(seat.Hand, cards) {
		return nil, ErrCardsNotHeld
	}

	play := domain.Classify(cards, game.Config.DeckCount)
	if play.Type == domain.Invalid {
		return nil, ErrInvalidPlay
	}
	if !domain.CanBeat(play, game.LastPlay, game.Config.DeckCount) {
		return nil, ErrCannotBeat
	}

	seat.Hand = domain.RemoveCards(seat.Hand, cards)
	game.Pot += domain.ScoreSum(cards)
	if play.Type == domain.JokerBomb {
		game.Pot += int32(game.Config.DeckCount * JokerBombPotBonus)
	}
	game.LastPlay = play
	game.LastPlaySeat = seat.Index
	game.TrickWinner = seat.Index
	game.Passes = 0

	played := Event{Kind: EventCardPlayed, Payload: CardPlayedPayload{
		Seat:         seat.Index,
		Cards:        play.Cards,
		PlayType:     play.Type,
		Pot:          game.Pot,
		NextTurnSeat: -1,
	}}
	events := []Event{played}

	if len(seat.Hand) == 0 {
		seat.Finished = true
		game.FinishOrder = append(game.FinishOrder, seat.Index)
		events = append(events, Event{
			Kind:    EventSeatFinished,
			Payload: SeatFinishedPayload{Seat: seat.Index, Place: len(game.FinishOrder)},
		})
		events = append(events, s.grantObserverVisibility(game, seat)...)
	}

	// Termination: the final-lap flag is raised the first time a single
	// party remains; the round then ends at the next checkpoint, a seat
	// finishing here or a trick settling in settleTrick. A flagged play
	// that does neither keeps the trick going.
	parties := game.ActiveParties()
	if parties == 0 {
		return append(events, s.concludeRound(game)...), nil
	}
	if parties <= 1 {
		if game.FinalLap && seat.Finished {
			return append(events, s.concludeRound(game)...), nil
		}
		game.FinalLap = true
	}

	next := game.NextActiveSeat(seat.Index)
	if next == game.TrickWinner {
		// Everyone else is out of cards: the trick settles on the spot.
		return append(events, s.settleTrick(game)...), nil
	}
	game.CurrentTurn = next
	events[0].Payload = CardPlayedPayload{
		Seat:         seat.Index,
		Cards:        play.Cards,
		PlayType:     play.Type,
		Pot:          game.Pot,
		NextTurnSeat: next,
	}
	return events, nil
}

// SubmitPass applies a pass. Passing is illegal on a free lead.
func (s *Service) SubmitPass(game *domain.Game, seatIndex int) ([]Event, error) {
	seat, err := actingSeat(game, seatIndex)
	if err != nil {
		return nil, err
	}
	if game.LastPlay.Empty() {
		return nil, ErrMustLead
	}

	game.Passes++

	winnerActive := false
	if game.TrickWinner >= 0 {
		w := game.Seats[game.TrickWinner]
		winnerActive = !w.Finished && len(w.Hand) > 0
	}
	needed := game.ActiveSeats()
	if winnerActive {
		needed--
	}

	if game.Passes >= needed {
		events := []Event{
			{Kind: EventTurnPassed, Payload: TurnPassedPayload{Seat: seat.Index, NextTurnSeat: -1}},
		}
		return append(events, s.settleTrick(game)...), nil
	}

	next := game.NextActiveSeat(seat.Index)
	game.CurrentTurn = next
	return []Event{
		{Kind: EventTurnPassed, Payload: TurnPassedPayload{Seat: seat.Index, NextTurnSeat: next}},
	}, nil
}

// ResolveTimeout applies the automatic move for the current seat after its
// deadline elapsed: the same fallback path auto-play uses. It never fails
// for a seat still holding cards.
func (s *Service) ResolveTimeout(game *domain.Game) ([]Event, error) {
	if game.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	seat := game.Seats[game.CurrentTurn]
	move := bot.FallbackMove(game, seat)
	if move.Pass {
		return s.SubmitPass(game, seat.Index)
	}
	return s.SubmitPlay(game, seat.Index, move.Cards)
}

// SetDelegation toggles auto-play for a seat.
func (s *Service) SetDelegation(game *domain.Game, seatIndex int, enabled bool, mode domain.DelegationMode) ([]Event, error) {
	if seatIndex < 0 || seatIndex >= len(game.Seats) {
		return nil, ErrUnknownSeat
	}
	seat := game.Seats[seatIndex]
	seat.Delegated = enabled
	seat.Mode = mode
	return []Event{{
		Kind:    EventDelegationChanged,
		Payload: DelegationChangedPayload{Seat: seatIndex, Enabled: enabled, Mode: mode},
	}}, nil
}

// RemapSeat rewires a seat from an old transport identity to a new one.
// Game state is untouched; the seat index stays the durable identity. The
// turn timer is deliberately not reset.
func (s *Service) RemapSeat(game *domain.Game, oldOwnerID, newOwnerID string) ([]Event, error) {
	seat := game.SeatByOwner(oldOwnerID)
	if seat == nil {
		return nil, ErrUnknownOwner
	}
	seat.OwnerID = newOwnerID
	for i := range game.History {
		for j := range game.History[i].Lines {
			if game.History[i].Lines[j].OwnerID == oldOwnerID {
				game.History[i].Lines[j].OwnerID = newOwnerID
			}
		}
	}
	return []Event{{
		Kind:       EventSeatRemapped,
		Payload:    SeatRemappedPayload{Seat: seat.Index},
		Recipients: []string{newOwnerID},
	}}, nil
}

func actingSeat(game *domain.Game, seatIndex int) (*domain.Seat, error) {
	if game.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	if seatIndex < 0 || seatIndex >= len(game.Seats) {
		return nil, ErrUnknownSeat
	}
	if seatIndex != game.CurrentTurn {
		return nil, ErrNotYourTurn
	}
	seat := game.Seats[seatIndex]
	if seat.Finished {
		return nil, ErrSeatFinished
	}
	return seat, nil
}

// grantObserverVisibility gives a freshly finished seat the right to watch
// the still-active hands it is entitled to: teammates' hands in team mode,
// everyone's otherwise.
func (s *Service) grantObserverVisibility(game *domain.Game, finished *domain.Seat) []Event {
	var events []Event
	for _, target := range game.Seats {
		if target.Index == finished.Index || target.Finished || len(target.Hand) == 0 {
			continue
		}
		if game.Config.TeamMode && !game.Teammates(finished.Index, target.Index) {
			continue
		}
		finished.Observing = append(finished.Observing, target.Index)
		events = append(events, Event{
			Kind:       EventObserverReveal,
			Payload:    ObserverRevealPayload{TargetSeat: target.Index, Hand: target.Hand},
			Recipients: []string{finished.OwnerID},
		})
	}
	return events
}

// settleTrick awards the pending pot to the trick winner and opens the next
// trick, or concludes the round if the final lap is running.
func (s *Service) settleTrick(game *domain.Game) []Event {
	winner := game.TrickWinner
	pot := game.Pot
	if winner >= 0 {
		game.Seats[winner].RoundScore += pot
	}
	game.Pot = 0

	if game.FinalLap {
		return append([]Event{{
			Kind:    EventTrickSettled,
			Payload: TrickSettledPayload{WinnerSeat: winner, Pot: pot, LeaderSeat: -1},
		}}, s.concludeRound(game)...)
	}

	leader := s.nextLeader(game, winner)
	game.LastPlay = domain.Play{}
	game.LastPlaySeat = -1
	game.Passes = 0
	game.TrickWinner = -1
	game.CurrentTurn = leader

	return []Event{{
		Kind:    EventTrickSettled,
		Payload: TrickSettledPayload{WinnerSeat: winner, Pot: pot, LeaderSeat: leader},
	}}
}

// nextLeader picks who opens the next trick when the winner may be out of
// cards: the winner itself while active; otherwise the next teammate in
// seat order still holding cards (team mode), falling back to the next
// active seat.
func (s *Service) nextLeader(game *domain.Game, winner int) int {
	if winner < 0 {
		return game.NextActiveSeat(0)
	}
	w := game.Seats[winner]
	if !w.Finished && len(w.Hand) > 0 {
		return winner
	}
	if game.Config.TeamMode {
		n := len(game.Seats)
		for i := 1; i <= n; i++ {
			seat := game.Seats[(winner+i)%n]
			if game.Teammates(winner, seat.Index) && !seat.Finished && len(seat.Hand) > 0 {
				return seat.Index
			}
		}
	}
	return game.NextActiveSeat(winner)
}
