package domain

// Phase represents the lifecycle stage of a match.
type Phase string

const (
	// PhaseSeatDraw is the pre-game lottery assigning seat order.
	PhaseSeatDraw Phase = "seat_draw"
	// PhasePlaying is an active round.
	PhasePlaying Phase = "playing"
	// PhaseRoundOver sits between settlement and the next deal.
	PhaseRoundOver Phase = "round_over"
	// PhaseEnded means the target score was reached; the match is done.
	PhaseEnded Phase = "ended"
)

// Seat holds the per-seat state for one match participant. The seat index
// is the durable identity; OwnerID is the transport-level alias currently
// attached to it and may change on reconnect.
type Seat struct {
	Index    int
	OwnerID  string
	Hand     []Card
	Finished bool

	Delegated bool
	Mode      DelegationMode

	// Score is cumulative across rounds; RoundScore resets per round.
	Score      int32
	RoundScore int32

	// Observing lists still-active seats this seat may watch after
	// finishing its own hand.
	Observing []int
}

// Game is the aggregate root for one room's live match.
type Game struct {
	Phase  Phase
	Config MatchConfig
	Seats  []*Seat
	Draw   *SeatDraw // nil once seating is final

	Round int

	CurrentTurn  int
	LastPlay     Play
	LastPlaySeat int // -1 on a free lead
	Passes       int
	Pot          int32
	TrickWinner  int // -1 until the first play of a trick
	FinishOrder  []int
	FinalLap     bool

	// DeadlineTick is the loop tick at which the current turn times out.
	// The match loop owns the clock; the state machine only stores the
	// deadline so transitions stay synchronous and testable.
	DeadlineTick int64

	History []RoundResult
}

// RoundResult records one settled round for history and summaries.
type RoundResult struct {
	ID          string `json:"id"`
	Round       int    `json:"round"`
	FinishOrder []int  `json:"finish_order"`
	// Lines maps seat index to the settled breakdown for that seat.
	Lines  []SettlementLine `json:"lines"`
	Detail []string         `json:"detail,omitempty"`
}

// SettlementLine is a per-seat settlement row.
type SettlementLine struct {
	Seat       int    `json:"seat"`
	OwnerID    string `json:"owner_id"`
	TrickScore int32  `json:"trick_score"` // pots claimed during the round
	Leftover   int32  `json:"leftover"`    // scoring cards collected from unfinished hands
	Penalty    int32  `json:"penalty"`     // rank-penalty exchange, signed
	RoundTotal int32  `json:"round_total"`
	Cumulative int32  `json:"cumulative"`
}

// SeatByOwner finds the seat currently mapped to the given owner alias.
func (g *Game) SeatByOwner(ownerID string) *Seat {
	for _, s := range g.Seats {
		if s.OwnerID == ownerID {
			return s
		}
	}
	return nil
}

// ActiveSeats counts seats still holding cards.
func (g *Game) ActiveSeats() int {
	n := 0
	for _, s := range g.Seats {
		if !s.Finished && len(s.Hand) > 0 {
			n++
		}
	}
	return n
}

// ActiveParties counts the contending sides still holding cards: teams in
// team mode, individual seats otherwise.
func (g *Game) ActiveParties() int {
	if !g.Config.TeamMode {
		return g.ActiveSeats()
	}
	teams := map[int]bool{}
	for _, s := range g.Seats {
		if !s.Finished && len(s.Hand) > 0 {
			teams[g.TeamOf(s.Index)] = true
		}
	}
	return len(teams)
}

// TeamOf returns the team id of a seat. Teams follow seat parity, which is
// how the seat-draw interleave splits the drawn-strength halves.
func (g *Game) TeamOf(seat int) int {
	return seat % 2
}

// Teammates reports whether two seats share a team. Always false outside
// team mode.
func (g *Game) Teammates(a, b int) bool {
	return g.Config.TeamMode && g.TeamOf(a) == g.TeamOf(b)
}

// NextActiveSeat returns the next seat after from (wrapping) that still
// holds cards, or -1 if none do.
func (g *Game) NextActiveSeat(from int) int {
	n := len(g.Seats)
	for i := 1; i <= n; i++ {
		seat := g.Seats[(from+i)%n]
		if !seat.Finished && len(seat.Hand) > 0 {
			return seat.Index
		}
	}
	return -1
}

// SeatHolds reports whether the seat's hand contains every given card,
// counting duplicates.
func SeatHolds(hand []Card, cards []Card) bool {
	held := map[Card]int{}
	for _, c := range hand {
		held[c]++
	}
	for _, c := range cards {
		if held[c] == 0 {
			return false
		}
		held[c]--
	}
	return true
}

// RemoveCards returns hand minus the given cards, matching by exact id.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	removing := map[Card]int{}
	for _, c := range toRemove {
		removing[c]++
	}
	out := make([]Card, 0, len(hand))
	for _, c := range hand {
		if removing[c] > 0 {
			removing[c]--
			continue
		}
		out = append(out, c)
	}
	return out
}
