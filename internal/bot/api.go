package bot

import (
	"fivetenking/internal/domain"
)

// Move is the decision produced for a seat.
type Move struct {
	Pass  bool
	Cards []domain.Card
}

// Brain decides moves for one delegation mode. Implementations must be
// stateless with respect to the game; they see the full public state plus
// the acting seat's hand.
type Brain interface {
	CalculateMove(game *domain.Game, seat *domain.Seat) (Move, error)
}
