package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create an
	// open room.
	RpcQuickMatch = "quick_match"

	// RpcReconnectToken is the Nakama RPC id clients call to obtain a seat
	// reclaim token for a match they occupy.
	RpcReconnectToken = "reconnect_token"

	// MatchName is the authoritative match handler name registered with
	// Nakama.
	MatchName = "fivetenking_match"

	// MatchLabelGame tags rooms of this module in the match listing index.
	MatchLabelGame = "fivetenking"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartMatch    int64 = 1
	OpDrawSeat      int64 = 2
	OpPlayCards     int64 = 3
	OpPassTurn      int64 = 4
	OpSetDelegation int64 = 5

	// Server -> Client events
	OpLobbyState        int64 = 101
	OpSeatDrawn         int64 = 102
	OpSeatingFinal      int64 = 103
	OpRoundStarted      int64 = 104
	OpHandDealt         int64 = 105 // sent privately
	OpCardPlayed        int64 = 106
	OpTurnPassed        int64 = 107
	OpTrickSettled      int64 = 108
	OpSeatFinished      int64 = 109
	OpObserverReveal    int64 = 110 // sent privately
	OpRoundSettled      int64 = 111
	OpMatchEnded        int64 = 112
	OpDelegationChanged int64 = 113
	OpSeatRemapped      int64 = 114 // sent privately
	OpGameError         int64 = 115
)
