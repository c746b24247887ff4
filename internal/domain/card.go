package domain

import (
	"fmt"
	"sort"
)

// Card is a single card identified by an integer in [0, 54*deckCount).
// The id modulo 54 selects the face: 0..51 are the four suits of thirteen
// ranks, 52 is the low joker, 53 is the high joker. Duplicate faces from
// extra decks carry distinct ids so multiset bookkeeping stays exact.
type Card int32

// CardsPerDeck is the face count of one deck including both jokers.
const CardsPerDeck = 54

// Suit of a card. Weights run spade > heart > club > diamond.
type Suit int32

const (
	SuitSpades Suit = iota
	SuitHearts
	SuitClubs
	SuitDiamonds
	suitCount
)

// Point values of the notable ranks.
const (
	PointFive      int32 = 5
	PointTen       int32 = 10
	PointKing      int32 = 13
	PointAce       int32 = 14
	PointTwo       int32 = 15
	PointLowJoker  int32 = 16
	PointHighJoker int32 = 17
)

// normalized folds a multi-deck id back onto a single deck face.
func (c Card) normalized() int32 {
	return int32(c) % CardsPerDeck
}

// IsJoker reports whether the card is either joker.
func (c Card) IsJoker() bool {
	return c.normalized() >= 52
}

// Suit returns the card's suit. Jokers have no suit and return -1.
func (c Card) Suit() Suit {
	n := c.normalized()
	if n >= 52 {
		return -1
	}
	return Suit(n / 13)
}

// RankIndex returns the rank slot 0..12 (0=Ace, 1=Two, 2=Three ... 12=King).
// Jokers return -1.
func (c Card) RankIndex() int32 {
	n := c.normalized()
	if n >= 52 {
		return -1
	}
	return n % 13
}

// Point is the derived comparison rank: 3..13 for number cards and K,
// 14 for Ace, 15 for Two, 16/17 for the jokers.
func (c Card) Point() int32 {
	n := c.normalized()
	switch n {
	case 52:
		return PointLowJoker
	case 53:
		return PointHighJoker
	}
	switch idx := n % 13; idx {
	case 0:
		return PointAce
	case 1:
		return PointTwo
	default:
		return idx + 1
	}
}

// ScoreValue is the counting value of the card: fives are worth 5,
// tens and kings 10, everything else 0.
func (c Card) ScoreValue() int32 {
	switch c.Point() {
	case PointFive:
		return 5
	case PointTen, PointKing:
		return 10
	default:
		return 0
	}
}

// SuitWeight orders suits for tie-breaks: spade 3, heart 2, club 1,
// diamond 0. Jokers return -1.
func (c Card) SuitWeight() int32 {
	s := c.Suit()
	if s < 0 {
		return -1
	}
	return int32(suitCount) - 1 - int32(s)
}

// String renders the face for logs and test failures, e.g. "5s", "Kh".
func (c Card) String() string {
	n := c.normalized()
	switch n {
	case 52:
		return "jk"
	case 53:
		return "JK"
	}
	ranks := [...]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
	suits := [...]string{"s", "h", "c", "d"}
	return fmt.Sprintf("%s%s", ranks[n%13], suits[n/13])
}

// NewShoe returns the ordered shoe of deckCount*54 cards.
func NewShoe(deckCount int) []Card {
	shoe := make([]Card, 0, deckCount*CardsPerDeck)
	for i := 0; i < deckCount*CardsPerDeck; i++ {
		shoe = append(shoe, Card(i))
	}
	return shoe
}

// SortByPoint orders cards ascending by point, suit weight breaking ties.
func SortByPoint(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Point() != cards[j].Point() {
			return cards[i].Point() < cards[j].Point()
		}
		return cards[i].SuitWeight() < cards[j].SuitWeight()
	})
}

// ScoreSum totals the counting value of the given cards.
func ScoreSum(cards []Card) int32 {
	total := int32(0)
	for _, c := range cards {
		total += c.ScoreValue()
	}
	return total
}
