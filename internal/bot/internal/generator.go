package internal

import (
	"sort"

	"fivetenking/internal/domain"
)

// ValidMove is one legal response candidate with its classification.
type ValidMove struct {
	Cards []domain.Card
	Play  domain.Play
}

// handGroups indexes a hand by point for combination building.
type handGroups struct {
	points []int32
	cards  map[int32][]domain.Card
}

func groupHand(hand []domain.Card) handGroups {
	g := handGroups{cards: map[int32][]domain.Card{}}
	for _, c := range hand {
		if len(g.cards[c.Point()]) == 0 {
			g.points = append(g.points, c.Point())
		}
		g.cards[c.Point()] = append(g.cards[c.Point()], c)
	}
	sort.Slice(g.points, func(i, j int) bool { return g.points[i] < g.points[j] })
	return g
}

// GetValidMoves returns every combination that may legally answer last, or
// every free-lead combination when last is empty: one single per held rank,
// one pair per pair-eligible rank, one triple per triple-eligible rank, all
// maximal consecutive-pair and consecutive-triple runs, and every held bomb.
func GetValidMoves(hand []domain.Card, last domain.Play, deckCount int) []ValidMove {
	sorted := append([]domain.Card(nil), hand...)
	domain.SortByPoint(sorted)
	g := groupHand(sorted)

	if last.Empty() {
		var moves []ValidMove
		moves = append(moves, leadSingles(g, deckCount)...)
		moves = append(moves, leadSets(g, 2, deckCount)...)
		moves = append(moves, leadSets(g, 3, deckCount)...)
		moves = append(moves, maximalRuns(g, 2, deckCount)...)
		moves = append(moves, maximalRuns(g, 3, deckCount)...)
		moves = append(moves, heldBombs(sorted, g, deckCount)...)
		return moves
	}

	var moves []ValidMove
	if !last.IsBomb() {
		switch last.Type {
		case domain.Single:
			for _, move := range leadSingles(g, deckCount) {
				if move.Play.Value > last.Value {
					moves = append(moves, move)
				}
			}
		case domain.Pair:
			for _, move := range leadSets(g, 2, deckCount) {
				if move.Play.Value > last.Value {
					moves = append(moves, move)
				}
			}
		case domain.Triple:
			for _, move := range leadSets(g, 3, deckCount) {
				if move.Play.Value > last.Value {
					moves = append(moves, move)
				}
			}
		case domain.ConsecutivePairs:
			moves = append(moves, runWindows(g, 2, last, deckCount)...)
		case domain.ConsecutiveTriples:
			moves = append(moves, runWindows(g, 3, last, deckCount)...)
		}
	}

	// Bombs answer anything they outrank.
	for _, move := range heldBombs(sorted, g, deckCount) {
		if domain.CanBeat(move.Play, last, deckCount) {
			moves = append(moves, move)
		}
	}
	return moves
}

func leadSingles(g handGroups, deckCount int) []ValidMove {
	var moves []ValidMove
	for _, p := range g.points {
		cards := []domain.Card{g.cards[p][0]}
		moves = append(moves, ValidMove{Cards: cards, Play: domain.Classify(cards, deckCount)})
	}
	return moves
}

// leadSets emits one pair (size 2) or triple (size 3) per eligible rank.
func leadSets(g handGroups, size, deckCount int) []ValidMove {
	var moves []ValidMove
	for _, p := range g.points {
		if len(g.cards[p]) < size {
			continue
		}
		cards := append([]domain.Card(nil), g.cards[p][:size]...)
		moves = append(moves, ValidMove{Cards: cards, Play: domain.Classify(cards, deckCount)})
	}
	return moves
}

// maximalRuns emits each maximal run of consecutive points that can supply
// multiplicity cards per point (2 for pair runs, 3 for triple runs).
func maximalRuns(g handGroups, multiplicity, deckCount int) []ValidMove {
	eligible := runEligiblePoints(g, multiplicity)
	var moves []ValidMove
	for start := 0; start < len(eligible); {
		end := start
		for end+1 < len(eligible) && eligible[end+1] == eligible[end]+1 {
			end++
		}
		if end > start {
			var cards []domain.Card
			for i := start; i <= end; i++ {
				cards = append(cards, g.cards[eligible[i]][:multiplicity]...)
			}
			moves = append(moves, ValidMove{Cards: cards, Play: domain.Classify(cards, deckCount)})
		}
		start = end + 1
	}
	return moves
}

// runWindows emits every run of exactly last's length whose low point beats
// last's value.
func runWindows(g handGroups, multiplicity int, last domain.Play, deckCount int) []ValidMove {
	width := last.Length / multiplicity
	eligible := runEligiblePoints(g, multiplicity)
	var moves []ValidMove
	for start := 0; start+width <= len(eligible); start++ {
		if eligible[start] <= last.Value {
			continue
		}
		consecutive := true
		for i := 1; i < width; i++ {
			if eligible[start+i] != eligible[start]+int32(i) {
				consecutive = false
				break
			}
		}
		if !consecutive {
			continue
		}
		var cards []domain.Card
		for i := 0; i < width; i++ {
			cards = append(cards, g.cards[eligible[start+i]][:multiplicity]...)
		}
		moves = append(moves, ValidMove{Cards: cards, Play: domain.Classify(cards, deckCount)})
	}
	return moves
}

func runEligiblePoints(g handGroups, multiplicity int) []int32 {
	var eligible []int32
	for _, p := range g.points {
		if p >= domain.PointTwo {
			continue
		}
		if len(g.cards[p]) >= multiplicity {
			eligible = append(eligible, p)
		}
	}
	return eligible
}

// heldBombs emits every bomb currently in the hand: one rank bomb per rank
// with four or more copies (all copies, since longer outranks shorter), the
// mixed and suited 5-10-K trios, and the joker bomb when every joker is held.
func heldBombs(hand []domain.Card, g handGroups, deckCount int) []ValidMove {
	var moves []ValidMove
	for _, p := range g.points {
		if len(g.cards[p]) >= 4 {
			cards := append([]domain.Card(nil), g.cards[p]...)
			moves = append(moves, ValidMove{Cards: cards, Play: domain.Classify(cards, deckCount)})
		}
	}
	moves = append(moves, trioBombs(g, deckCount)...)

	var jokers []domain.Card
	for _, c := range hand {
		if c.IsJoker() {
			jokers = append(jokers, c)
		}
	}
	if len(jokers) == deckCount*2 {
		moves = append(moves, ValidMove{Cards: jokers, Play: domain.Classify(jokers, deckCount)})
	}
	return moves
}

func trioBombs(g handGroups, deckCount int) []ValidMove {
	fives, tens, kings := g.cards[domain.PointFive], g.cards[domain.PointTen], g.cards[domain.PointKing]
	if len(fives) == 0 || len(tens) == 0 || len(kings) == 0 {
		return nil
	}

	var moves []ValidMove
	for weight := int32(0); weight < 4; weight++ {
		five, okF := cardWithWeight(fives, weight)
		ten, okT := cardWithWeight(tens, weight)
		king, okK := cardWithWeight(kings, weight)
		if okF && okT && okK {
			cards := []domain.Card{five, ten, king}
			moves = append(moves, ValidMove{Cards: cards, Play: domain.Classify(cards, deckCount)})
		}
	}

	// One mixed trio from the cheapest copies; skip it if those three
	// happen to share a suit (then it is the suited trio above).
	cards := []domain.Card{fives[0], tens[0], kings[0]}
	play := domain.Classify(cards, deckCount)
	if play.Type == domain.MixedTrioBomb {
		moves = append(moves, ValidMove{Cards: cards, Play: play})
	}
	return moves
}

func cardWithWeight(cards []domain.Card, weight int32) (domain.Card, bool) {
	for _, c := range cards {
		if c.SuitWeight() == weight {
			return c, true
		}
	}
	return 0, false
}
