package domain

import "sort"

// PlayType classifies a set of cards put on the table.
type PlayType int

const (
	Invalid PlayType = iota
	Single
	Pair
	Triple
	ConsecutivePairs   // two or more pairs with consecutive points
	ConsecutiveTriples // two or more triples with consecutive points
	MixedTrioBomb      // 5-10-K of mixed suits
	SuitedTrioBomb     // 5-10-K of one suit
	StandardBomb       // four or more of one point
	JokerBomb          // every joker in the shoe
	MaxBomb            // every copy of one rank in the shoe
)

// Level returns the bomb-ladder tier of the type. Ordinary types are 0;
// any higher level beats any lower one regardless of shape.
func (t PlayType) Level() int {
	switch t {
	case MixedTrioBomb:
		return 1
	case SuitedTrioBomb:
		return 2
	case StandardBomb:
		return 3
	case JokerBomb:
		return 4
	case MaxBomb:
		return 5
	default:
		return 0
	}
}

// String names the type for logs and settlement detail rows.
func (t PlayType) String() string {
	switch t {
	case Single:
		return "single"
	case Pair:
		return "pair"
	case Triple:
		return "triple"
	case ConsecutivePairs:
		return "consecutive_pairs"
	case ConsecutiveTriples:
		return "consecutive_triples"
	case MixedTrioBomb:
		return "mixed_trio_bomb"
	case SuitedTrioBomb:
		return "suited_trio_bomb"
	case StandardBomb:
		return "standard_bomb"
	case JokerBomb:
		return "joker_bomb"
	case MaxBomb:
		return "max_bomb"
	default:
		return "invalid"
	}
}

// Play is a classified set of cards.
type Play struct {
	Type   PlayType
	Cards  []Card // sorted by point
	Value  int32  // comparison value within the type
	Length int    // card count, kept for run comparisons
}

// IsBomb reports whether the play sits on the bomb ladder.
func (p Play) IsBomb() bool {
	return p.Type.Level() > 0
}

// Empty reports whether the play represents a free lead (no incumbent).
func (p Play) Empty() bool {
	return p.Type == Invalid && len(p.Cards) == 0
}

// Classify sorts the cards and assigns exactly one play type.
// deckCount distinguishes a standard bomb from the max bomb (all deckCount*4
// copies of a rank) and sizes the joker bomb (all deckCount*2 jokers).
func Classify(cards []Card, deckCount int) Play {
	if len(cards) == 0 {
		return Play{Type: Invalid}
	}

	sorted := append([]Card(nil), cards...)
	SortByPoint(sorted)
	n := len(sorted)

	counts := map[int32]int{}
	points := make([]int32, 0, n)
	for _, c := range sorted {
		if counts[c.Point()] == 0 {
			points = append(points, c.Point())
		}
		counts[c.Point()]++
	}
	sort.Slice(points, func(i, j int) bool { return points[i] < points[j] })

	if n == 1 {
		return Play{Type: Single, Cards: sorted, Value: sorted[0].Point(), Length: 1}
	}
	if n == 2 && len(points) == 1 {
		return Play{Type: Pair, Cards: sorted, Value: points[0], Length: 2}
	}
	if n == 3 && len(points) == 1 {
		return Play{Type: Triple, Cards: sorted, Value: points[0], Length: 3}
	}
	if n >= 4 && n%2 == 0 && uniformRun(points, counts, 2, n) {
		return Play{Type: ConsecutivePairs, Cards: sorted, Value: points[0], Length: n}
	}
	if n >= 6 && n%3 == 0 && uniformRun(points, counts, 3, n) {
		return Play{Type: ConsecutiveTriples, Cards: sorted, Value: points[0], Length: n}
	}
	if n == 3 && isTrioBombPoints(points) {
		if suit := commonSuit(sorted); suit >= 0 {
			return Play{Type: SuitedTrioBomb, Cards: sorted, Value: suit, Length: 3}
		}
		return Play{Type: MixedTrioBomb, Cards: sorted, Value: 0, Length: 3}
	}
	if len(points) == 1 && n >= 4 {
		t := StandardBomb
		if n == deckCount*4 {
			t = MaxBomb
		}
		return Play{Type: t, Cards: sorted, Value: points[0], Length: n}
	}
	if allJokers(sorted) && n == deckCount*2 {
		return Play{Type: JokerBomb, Cards: sorted, Value: 0, Length: n}
	}

	return Play{Type: Invalid, Cards: sorted, Length: n}
}

// CanBeat decides whether candidate legally beats incumbent. An empty
// incumbent means a free lead: any valid classification may open.
func CanBeat(candidate, incumbent Play, deckCount int) bool {
	if candidate.Type == Invalid {
		return false
	}
	if incumbent.Empty() {
		return true
	}

	cl, il := candidate.Type.Level(), incumbent.Type.Level()
	if cl != il {
		return cl > il
	}

	if cl > 0 {
		// Same tier on the bomb ladder.
		switch candidate.Type {
		case SuitedTrioBomb, MaxBomb:
			return candidate.Type == incumbent.Type && candidate.Value > incumbent.Value
		case StandardBomb:
			if incumbent.Type != StandardBomb {
				return false
			}
			if candidate.Length != incumbent.Length {
				return candidate.Length > incumbent.Length
			}
			return candidate.Value > incumbent.Value
		default:
			// Mixed trios never beat their own tier; there is only one
			// joker bomb, so a second one always loses the tie.
			return false
		}
	}

	// Ordinary against ordinary: identical shape, higher value.
	if candidate.Type != incumbent.Type {
		return false
	}
	if candidate.Length != incumbent.Length {
		return false
	}
	return candidate.Value > incumbent.Value
}

// uniformRun reports whether points form a consecutive run below Two with
// the same multiplicity everywhere (2 for pair runs, 3 for triple runs).
func uniformRun(points []int32, counts map[int32]int, multiplicity, total int) bool {
	if len(points)*multiplicity != total {
		return false
	}
	if len(points) < 2 {
		return false
	}
	for i, p := range points {
		if p >= PointTwo {
			return false
		}
		if counts[p] != multiplicity {
			return false
		}
		if i > 0 && p != points[i-1]+1 {
			return false
		}
	}
	return true
}

func isTrioBombPoints(points []int32) bool {
	return len(points) == 3 && points[0] == PointFive && points[1] == PointTen && points[2] == PointKing
}

// commonSuit returns the shared suit weight of the cards, or -1.
func commonSuit(cards []Card) int32 {
	w := cards[0].SuitWeight()
	if w < 0 {
		return -1
	}
	for _, c := range cards[1:] {
		if c.SuitWeight() != w {
			return -1
		}
	}
	return w
}

func allJokers(cards []Card) bool {
	for _, c := range cards {
		if !c.IsJoker() {
			return false
		}
	}
	return true
}
