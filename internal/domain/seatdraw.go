package domain

import (
	"errors"
	"math/rand"
	"sort"
)

var (
	ErrDrawTaken    = errors.New("draw index already taken")
	ErrAlreadyDrawn = errors.New("seat already drew a card")
	ErrBadDrawIndex = errors.New("draw index out of range")
	ErrDrawPending  = errors.New("not every seat has drawn")
)

// SeatDraw is the pre-game lottery assigning final seat order (and teams)
// by card draw. Each seat claims exactly one pool index.
type SeatDraw struct {
	pool    []Card
	taken   map[int]int // pool index -> seat
	drawn   map[int]int // seat -> pool index
	seats   int
}

// NewSeatDraw builds a draw pool of seatCount cards, preferring mutually
// distinct points so draws compare cleanly; leftovers fill in when the seat
// count exceeds the distinct points available.
func NewSeatDraw(seatCount, deckCount int, rng *rand.Rand) *SeatDraw {
	shoe := NewShoe(deckCount)
	rng.Shuffle(len(shoe), func(i, j int) { shoe[i], shoe[j] = shoe[j], shoe[i] })

	pool := make([]Card, 0, seatCount)
	seen := map[int32]bool{}
	var leftovers []Card
	for _, c := range shoe {
		if len(pool) == seatCount {
			break
		}
		if seen[c.Point()] {
			leftovers = append(leftovers, c)
			continue
		}
		seen[c.Point()] = true
		pool = append(pool, c)
	}
	for len(pool) < seatCount {
		pool = append(pool, leftovers[0])
		leftovers = leftovers[1:]
	}

	return &SeatDraw{
		pool:  pool,
		taken: make(map[int]int, seatCount),
		drawn: make(map[int]int, seatCount),
		seats: seatCount,
	}
}

// PoolSize returns the number of draw slots.
func (d *SeatDraw) PoolSize() int {
	return len(d.pool)
}

// Claim records that seat takes the pool index and returns the drawn card.
func (d *SeatDraw) Claim(seat, index int) (Card, error) {
	if index < 0 || index >= len(d.pool) {
		return 0, ErrBadDrawIndex
	}
	if _, ok := d.drawn[seat]; ok {
		return 0, ErrAlreadyDrawn
	}
	if _, ok := d.taken[index]; ok {
		return 0, ErrDrawTaken
	}
	d.taken[index] = seat
	d.drawn[seat] = index
	return d.pool[index], nil
}

// DrawnCard returns the card a seat drew, if it has drawn.
func (d *SeatDraw) DrawnCard(seat int) (Card, bool) {
	idx, ok := d.drawn[seat]
	if !ok {
		return 0, false
	}
	return d.pool[idx], true
}

// Complete reports whether every seat has claimed a card.
func (d *SeatDraw) Complete() bool {
	return len(d.drawn) == d.seats
}

// Order returns the original seat indexes in their final seating order.
// Seats sort descending by drawn point, suit weight breaking ties. In team
// mode the sorted list splits into an upper and lower half (upper takes the
// extra seat when odd) interleaved upper[0], lower[0], upper[1], ... so
// adjacent seats alternate between the two drawn-strength halves and team
// membership follows seat parity.
func (d *SeatDraw) Order(teamMode bool) ([]int, error) {
	if !d.Complete() {
		return nil, ErrDrawPending
	}

	order := make([]int, 0, d.seats)
	for seat := 0; seat < d.seats; seat++ {
		order = append(order, seat)
	}
	sort.Slice(order, func(i, j int) bool {
		a := d.pool[d.drawn[order[i]]]
		b := d.pool[d.drawn[order[j]]]
		if a.Point() != b.Point() {
			return a.Point() > b.Point()
		}
		return a.SuitWeight() > b.SuitWeight()
	})

	if !teamMode {
		return order, nil
	}

	split := (d.seats + 1) / 2
	upper, lower := order[:split], order[split:]
	interleaved := make([]int, 0, d.seats)
	for i := range upper {
		interleaved = append(interleaved, upper[i])
		if i < len(lower) {
			interleaved = append(interleaved, lower[i])
		}
	}
	return interleaved, nil
}
