package domain

import (
	"fmt"
	"math/rand"
)

// DealStrategy selects how the shoe is partitioned into hands.
type DealStrategy int

const (
	// DealClassic is a uniform shuffle sliced contiguously per seat.
	DealClassic DealStrategy = iota
	// DealFair spreads rank-bomb material evenly before randomizing
	// within-hand order.
	DealFair
)

// ParseDealStrategy maps a configuration name to a strategy, rejecting
// unknown names so bad config fails at load time rather than at deal time.
func ParseDealStrategy(name string) (DealStrategy, error) {
	switch name {
	case "", "classic":
		return DealClassic, nil
	case "fair":
		return DealFair, nil
	default:
		return 0, fmt.Errorf("unknown deal strategy %q", name)
	}
}

func (s DealStrategy) String() string {
	switch s {
	case DealFair:
		return "fair"
	default:
		return "classic"
	}
}

// HandSizes returns the per-seat hand sizes for the shoe: near-equal
// contiguous slices with the last seat absorbing the remainder.
func HandSizes(deckCount, seatCount int) []int {
	total := deckCount * CardsPerDeck
	sizes := make([]int, seatCount)
	for i := range sizes {
		sizes[i] = total / seatCount
	}
	sizes[seatCount-1] += total % seatCount
	return sizes
}

// Deal builds one shoe of deckCount decks and partitions it into seatCount
// hands under the given strategy. Every card of the shoe appears in exactly
// one hand.
func Deal(deckCount, seatCount int, strategy DealStrategy, rng *rand.Rand) ([][]Card, error) {
	if deckCount < 1 || seatCount < 2 {
		return nil, fmt.Errorf("cannot deal %d decks to %d seats", deckCount, seatCount)
	}
	switch strategy {
	case DealClassic:
		return dealClassic(deckCount, seatCount, rng), nil
	case DealFair:
		hands, _ := dealFair(deckCount, seatCount, rng)
		return hands, nil
	default:
		return nil, fmt.Errorf("unknown deal strategy %d", strategy)
	}
}

func dealClassic(deckCount, seatCount int, rng *rand.Rand) [][]Card {
	shoe := NewShoe(deckCount)
	rng.Shuffle(len(shoe), func(i, j int) { shoe[i], shoe[j] = shoe[j], shoe[i] })

	sizes := HandSizes(deckCount, seatCount)
	hands := make([][]Card, seatCount)
	offset := 0
	for i, size := range sizes {
		hands[i] = append([]Card(nil), shoe[offset:offset+size]...)
		offset += size
	}
	return hands
}

// dealFair groups the shoe by point, slices every point group of four or
// more cards into bomb-chunks of randomized size 4..6 (remainders under
// four join a loose pool), hands the shuffled chunks out round-robin, then
// fills seats card-by-card from the shuffled loose pool. The second return
// value counts bomb-chunks per seat, which differ by at most one.
func dealFair(deckCount, seatCount int, rng *rand.Rand) ([][]Card, []int) {
	shoe := NewShoe(deckCount)

	groups := map[int32][]Card{}
	for _, c := range shoe {
		groups[c.Point()] = append(groups[c.Point()], c)
	}

	var chunks [][]Card
	var loose []Card
	for p := int32(3); p <= PointHighJoker; p++ {
		group := groups[p]
		for len(group) >= 4 {
			size := 4 + rng.Intn(3)
			if size > len(group) {
				size = len(group)
			}
			chunks = append(chunks, group[:size])
			group = group[size:]
		}
		loose = append(loose, group...)
	}

	rng.Shuffle(len(chunks), func(i, j int) { chunks[i], chunks[j] = chunks[j], chunks[i] })
	rng.Shuffle(len(loose), func(i, j int) { loose[i], loose[j] = loose[j], loose[i] })

	buckets := make([][]Card, seatCount)
	chunkCounts := make([]int, seatCount)
	for i, chunk := range chunks {
		seat := i % seatCount
		buckets[seat] = append(buckets[seat], chunk...)
		chunkCounts[seat]++
	}

	// Round-robin the loose pool, skipping seats already at their classic
	// slice size so hand sizes come out the same as DealClassic whenever
	// the chunk assignment left room.
	sizes := HandSizes(deckCount, seatCount)
	next := 0
	for _, c := range loose {
		placed := false
		for k := 0; k < seatCount; k++ {
			seat := (next + k) % seatCount
			if len(buckets[seat]) < sizes[seat] {
				buckets[seat] = append(buckets[seat], c)
				next = seat + 1
				placed = true
				break
			}
		}
		if !placed {
			buckets[next%seatCount] = append(buckets[next%seatCount], c)
			next++
		}
	}

	for _, bucket := range buckets {
		rng.Shuffle(len(bucket), func(i, j int) { bucket[i], bucket[j] = bucket[j], bucket[i] })
	}
	return buckets, chunkCounts
}
