package app

import "fivetenking/internal/domain"

// EventKind identifies emitted match events for transport dispatch.
type EventKind string

const (
	EventSeatDrawn         EventKind = "seat_drawn"
	EventSeatingFinal      EventKind = "seating_final"
	EventRoundStarted      EventKind = "round_started"
	EventHandDealt         EventKind = "hand_dealt"
	EventCardPlayed        EventKind = "card_played"
	EventTurnPassed        EventKind = "turn_passed"
	EventTrickSettled      EventKind = "trick_settled"
	EventSeatFinished      EventKind = "seat_finished"
	EventObserverReveal    EventKind = "observer_reveal"
	EventRoundSettled      EventKind = "round_settled"
	EventMatchEnded        EventKind = "match_ended"
	EventDelegationChanged EventKind = "delegation_changed"
	EventSeatRemapped      EventKind = "seat_remapped"
)

// Event is a match event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // owner ids; empty means broadcast
}

type SeatDrawnPayload struct {
	Seat      int         `json:"seat"`
	PoolIndex int         `json:"pool_index"`
	Card      domain.Card `json:"card"`
}

type SeatingFinalPayload struct {
	// Order lists the original seat indexes in final seating order.
	Order    []int `json:"order"`
	TeamMode bool  `json:"team_mode"`
}

type RoundStartedPayload struct {
	Round         int   `json:"round"`
	FirstTurnSeat int   `json:"first_turn_seat"`
	HandSizes     []int `json:"hand_sizes"`
}

type HandDealtPayload struct {
	Seat int           `json:"seat"`
	Hand []domain.Card `json:"hand"`
}

type CardPlayedPayload struct {
	Seat         int             `json:"seat"`
	Cards        []domain.Card   `json:"cards"`
	PlayType     domain.PlayType `json:"play_type"`
	Pot          int32           `json:"pot"`
	NextTurnSeat int             `json:"next_turn_seat"`
}

type TurnPassedPayload struct {
	Seat         int `json:"seat"`
	NextTurnSeat int `json:"next_turn_seat"`
}

type TrickSettledPayload struct {
	WinnerSeat int   `json:"winner_seat"`
	Pot        int32 `json:"pot"`
	LeaderSeat int   `json:"leader_seat"`
}

type SeatFinishedPayload struct {
	Seat  int `json:"seat"`
	Place int `json:"place"` // 1-based finish position
}

type ObserverRevealPayload struct {
	TargetSeat int           `json:"target_seat"`
	Hand       []domain.Card `json:"hand"`
}

type RoundSettledPayload struct {
	Result domain.RoundResult `json:"result"`
}

type MatchEndedPayload struct {
	FinalScores []int32 `json:"final_scores"`
	WinnerSeats []int   `json:"winner_seats"`
}

type DelegationChangedPayload struct {
	Seat    int                   `json:"seat"`
	Enabled bool                  `json:"enabled"`
	Mode    domain.DelegationMode `json:"mode"`
}

type SeatRemappedPayload struct {
	Seat int `json:"seat"`
}
