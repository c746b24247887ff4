package bot

import "fivetenking/internal/domain"

// Agent binds a brain to a delegated seat for the duration of a match.
type Agent struct {
	brain Brain
	mode  domain.DelegationMode
}

// NewAgent creates an agent for the given delegation mode.
func NewAgent(mode domain.DelegationMode) (*Agent, error) {
	brain, err := NewBrain(mode)
	if err != nil {
		return nil, err
	}
	return &Agent{brain: brain, mode: mode}, nil
}

// Mode returns the delegation mode this agent was built with.
func (a *Agent) Mode() domain.DelegationMode {
	return a.mode
}

// Play calculates the move for the agent's seat.
func (a *Agent) Play(game *domain.Game, seat *domain.Seat) (Move, error) {
	return a.brain.CalculateMove(game, seat)
}
