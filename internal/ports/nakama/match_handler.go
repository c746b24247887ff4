package nakama

import (
	"context"
	"database/sql"
	"math/rand"
	"strconv"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"fivetenking/internal/app"
	"fivetenking/internal/bot"
	"fivetenking/internal/config"
	"fivetenking/internal/domain"
	"fivetenking/internal/ports"
)

// roundStartDelaySeconds is the pause between settlement (or final seating)
// and the next deal, so clients can show the summary.
const roundStartDelaySeconds = 3

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Config    domain.MatchConfig          `json:"config"`
	Joined    []string                    `json:"joined"` // user ids in pre-draw join order
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"` // map user id -> presence for targeted messaging
	App       *app.Service                `json:"-"`
	Game      *domain.Game                `json:"-"` // nil while the lobby is open

	AutoMinDelay  int   `json:"auto_min_delay"`  // min seconds a delegated seat waits
	AutoMaxDelay  int   `json:"auto_max_delay"`  // max seconds a delegated seat waits
	AutoWaitUntil int64 `json:"auto_wait_until"` // tick when the delegated seat acts
	NextRoundTick int64 `json:"next_round_tick"` // tick when the next round deals, 0 if none scheduled

	Agents     map[int]*bot.Agent   `json:"-"` // seat index -> auto-play agent
	Scoreboard ports.ScoreboardPort `json:"-"`

	// PendingRemaps maps a joining user id to the seat owner id its
	// reconnect token authorizes it to replace.
	PendingRemaps map[string]string `json:"-"`
}

func (ms *MatchState) GetOpenSeatsCount() int {
	if ms.Game != nil {
		return 0
	}
	open := ms.Config.MaxSeats - len(ms.Joined)
	if open < 0 {
		open = 0
	}
	return open
}

func (ms *MatchState) phaseLabel() string {
	if ms.Game == nil {
		return "lobby"
	}
	return string(ms.Game.Phase)
}

// seatOfUser returns the seat index currently mapped to the user, or -1.
func seatOfUser(game *domain.Game, userID string) int {
	if game == nil {
		return -1
	}
	if seat := game.SeatByOwner(userID); seat != nil {
		return seat.Index
	}
	return -1
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// Client request payloads.
type startMatchRequest struct {
	// Reserved for future per-match overrides; currently empty on purpose
	// so a malformed body is still caught early.
}

type drawSeatRequest struct {
	PoolIndex int `json:"pool_index"`
}

type playCardsRequest struct {
	Cards []int32 `json:"cards"`
}

type setDelegationRequest struct {
	Enabled bool   `json:"enabled"`
	Mode    string `json:"mode"`
}

type lobbyStatePayload struct {
	Joined    []string `json:"joined"`
	OwnerID   string   `json:"owner_id"`
	OpenSeats int      `json:"open_seats"`
	Phase     string   `json:"phase"`
}

type gameErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := config.LoadGameDefaults("data/game_defaults.json"); err != nil {
		logger.Warn("MatchInit: Could not load game defaults: %v", err)
	}

	cfg, err := config.ParseMatchConfig(params)
	if err != nil {
		logger.Error("MatchInit: Invalid match parameters: %v", err)
		return nil, 0, ""
	}

	defaults := config.GetGameDefaults()
	state := &MatchState{
		Config:        cfg,
		Tick:          time.Now().Unix(),
		Presences:     make(map[string]runtime.Presence),
		App:           app.NewService(nil),
		AutoMinDelay:  defaults.AutoMinDelaySeconds,
		AutoMaxDelay:  defaults.AutoMaxDelaySeconds,
		Agents:        make(map[int]*bot.Agent),
		Scoreboard:    NewNakamaScoreboardAdapter(nk),
		PendingRemaps: make(map[string]string),
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["fivetenking_auto_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.AutoMinDelay = i
		}
	}
	if val, ok := env["fivetenking_auto_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.AutoMaxDelay = i
		}
	}
	if state.AutoMinDelay <= 0 {
		state.AutoMinDelay = 1
	}
	if state.AutoMaxDelay < state.AutoMinDelay {
		state.AutoMaxDelay = state.AutoMinDelay
	}

	label, err := marshalLabel(state.GetOpenSeatsCount(), state.phaseLabel())
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // seconds double as ticks
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Lobby joins take any open seat.
	if matchState.Game == nil {
		if matchState.GetOpenSeatsCount() <= 0 {
			return state, false, "Match full"
		}
		return matchState, true, ""
	}

	// Mid-game joins require a reconnect token bound to a seat here.
	token := metadata["reconnect_token"]
	if token == "" {
		return state, false, "Match in progress"
	}
	reconnect := reconnectServiceFromEnv(ctx)
	claims, err := reconnect.VerifyToken(token)
	if err != nil {
		logger.Warn("MatchJoinAttempt: Rejecting reconnect from %s: %v", presence.GetUserId(), err)
		return state, false, "Invalid reconnect token"
	}
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	if claims.MatchID != matchID {
		return state, false, "Token is for another match"
	}
	if matchState.Game.SeatByOwner(claims.OwnerID) == nil {
		return state, false, "No seat bound to that token"
	}

	matchState.PendingRemaps[presence.GetUserId()] = claims.OwnerID
	return matchState, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p

		if oldOwner, pending := matchState.PendingRemaps[userID]; pending {
			delete(matchState.PendingRemaps, userID)
			events, err := matchState.App.RemapSeat(matchState.Game, oldOwner, userID)
			if err != nil {
				logger.Error("MatchJoin: Seat remap for %s failed: %v", userID, err)
				continue
			}
			logger.Info("MatchJoin: User %s reclaimed the seat of %s.", userID, oldOwner)
			mh.broadcastEvents(ctx, matchState, dispatcher, logger, events)
			mh.resendSeatState(matchState, dispatcher, logger, userID)
			continue
		}

		if matchState.Game != nil {
			// Token-less joins were already rejected in MatchJoinAttempt.
			continue
		}

		already := false
		for _, joined := range matchState.Joined {
			if joined == userID {
				already = true
				break
			}
		}
		if !already {
			matchState.Joined = append(matchState.Joined, userID)
			logger.Debug("MatchJoin: User %s joined the lobby.", userID)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastLobbyState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)

		if matchState.Game == nil {
			for i, joined := range matchState.Joined {
				if joined == userID {
					matchState.Joined = append(matchState.Joined[:i], matchState.Joined[i+1:]...)
					logger.Debug("MatchLeave: User %s left the lobby.", userID)
					break
				}
			}
			continue
		}

		// Mid-game drops keep their seat; auto-play covers it until the
		// player reclaims the seat with a reconnect token.
		seatIndex := seatOfUser(matchState.Game, userID)
		if seatIndex < 0 {
			continue
		}
		events, err := matchState.App.SetDelegation(matchState.Game, seatIndex, true, domain.DelegationDefault)
		if err != nil {
			logger.Error("MatchLeave: Failed to delegate seat %d: %v", seatIndex, err)
			continue
		}
		mh.ensureAgent(matchState, logger, seatIndex, domain.DelegationDefault)
		logger.Info("MatchLeave: User %s dropped, seat %d switched to auto-play.", userID, seatIndex)
		mh.broadcastEvents(ctx, matchState, dispatcher, logger, events)
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating empty match.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastLobbyState(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartMatch:
			mh.handleStartMatch(ctx, matchState, dispatcher, logger, msg)
		case OpDrawSeat:
			mh.handleDrawSeat(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCards:
			mh.handlePlayCards(ctx, matchState, dispatcher, logger, msg)
		case OpPassTurn:
			mh.handlePassTurn(ctx, matchState, dispatcher, logger, msg)
		case OpSetDelegation:
			mh.handleSetDelegation(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.processScheduled(ctx, matchState, dispatcher, logger)

	return matchState
}

// processScheduled drives the clock-owned transitions: scheduled deals,
// auto-play pacing and turn timeouts.
func (mh *matchHandler) processScheduled(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	game := state.Game
	if game == nil {
		return
	}

	if game.Phase == domain.PhaseRoundOver && state.NextRoundTick > 0 && state.Tick >= state.NextRoundTick {
		state.NextRoundTick = 0
		events, err := state.App.StartRound(game)
		if err != nil {
			logger.Error("processScheduled: Failed to start round: %v", err)
			return
		}
		mh.resetTurnDeadline(state)
		mh.updateLabel(state, dispatcher, logger)
		mh.broadcastEvents(ctx, state, dispatcher, logger, events)
		return
	}

	if game.Phase != domain.PhasePlaying {
		return
	}

	if game.DeadlineTick == 0 {
		mh.resetTurnDeadline(state)
	}

	seat := game.Seats[game.CurrentTurn]

	if seat.Delegated {
		if state.AutoWaitUntil == 0 {
			delay := rand.Intn(state.AutoMaxDelay-state.AutoMinDelay+1) + state.AutoMinDelay
			state.AutoWaitUntil = state.Tick + int64(delay)
			logger.Debug("processScheduled: Seat %d auto-plays at tick %d (current %d)", seat.Index, state.AutoWaitUntil, state.Tick)
		}
		if state.Tick >= state.AutoWaitUntil {
			mh.playDelegated(ctx, state, dispatcher, logger, seat)
		}
		return
	}
	state.AutoWaitUntil = 0

	if state.Tick >= game.DeadlineTick {
		logger.Info("processScheduled: Seat %d timed out, applying fallback move.", seat.Index)
		events, err := state.App.ResolveTimeout(game)
		if err != nil {
			logger.Error("processScheduled: Timeout resolution failed: %v", err)
			return
		}
		mh.resetTurnDeadline(state)
		mh.broadcastEvents(ctx, state, dispatcher, logger, events)
	}
}

// playDelegated lets the seat's agent act, falling back to the timeout move
// when the agent cannot produce one.
func (mh *matchHandler) playDelegated(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, seat *domain.Seat) {
	game := state.Game
	agent := mh.ensureAgent(state, logger, seat.Index, seat.Mode)

	var move bot.Move
	if agent != nil {
		var err error
		move, err = agent.Play(game, seat)
		if err != nil {
			logger.Error("playDelegated: Agent for seat %d failed: %v", seat.Index, err)
			move = bot.FallbackMove(game, seat)
		}
	} else {
		move = bot.FallbackMove(game, seat)
	}

	var events []app.Event
	var err error
	if move.Pass {
		events, err = state.App.SubmitPass(game, seat.Index)
	} else {
		events, err = state.App.SubmitPlay(game, seat.Index, move.Cards)
	}
	if err != nil {
		// The agent produced an illegal move; the fallback is always legal.
		logger.Warn("playDelegated: Seat %d move rejected (%v), using fallback.", seat.Index, err)
		fallback := bot.FallbackMove(game, seat)
		if fallback.Pass {
			events, err = state.App.SubmitPass(game, seat.Index)
		} else {
			events, err = state.App.SubmitPlay(game, seat.Index, fallback.Cards)
		}
		if err != nil {
			logger.Error("playDelegated: Fallback for seat %d rejected: %v", seat.Index, err)
			return
		}
	}

	mh.resetTurnDeadline(state)
	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
}

// ensureAgent returns the agent for a seat, creating it on first use.
func (mh *matchHandler) ensureAgent(state *MatchState, logger runtime.Logger, seatIndex int, mode domain.DelegationMode) *bot.Agent {
	if agent, ok := state.Agents[seatIndex]; ok && agent.Mode() == mode {
		return agent
	}
	agent, err := bot.NewAgent(mode)
	if err != nil {
		logger.Error("ensureAgent: Failed to create agent for seat %d: %v", seatIndex, err)
		return nil
	}
	state.Agents[seatIndex] = agent
	return agent
}

func (mh *matchHandler) resetTurnDeadline(state *MatchState) {
	state.AutoWaitUntil = 0
	if state.Game == nil || state.Game.Phase != domain.PhasePlaying {
		return
	}
	state.Game.DeadlineTick = state.Tick + int64(state.Config.TurnSeconds)
}

func (mh *matchHandler) handleStartMatch(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	request := &startMatchRequest{}
	if err := unmarshalRequest(msg.GetData(), request); err != nil {
		logger.Warn("handleStartMatch: Invalid request from %s: %v", senderID, err)
		return
	}

	if state.Game != nil {
		mh.sendError(state, dispatcher, logger, senderID, 409, "match already started")
		return
	}
	if len(state.Joined) == 0 || state.Joined[0] != senderID {
		logger.Warn("handleStartMatch: User %s tried to start but is not the room owner.", senderID)
		mh.sendError(state, dispatcher, logger, senderID, 403, "only the room owner can start")
		return
	}

	game, err := state.App.CreateMatch(state.Config, state.Joined)
	if err != nil {
		logger.Warn("handleStartMatch: Cannot start with %d players: %v", len(state.Joined), err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	state.Game = game

	logger.Info("handleStartMatch: Seat draw opened with %d players.", len(state.Joined))
	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastLobbyState(state, dispatcher, logger)
}

func (mh *matchHandler) handleDrawSeat(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, "seat draw is not open")
		return
	}

	request := &drawSeatRequest{}
	if err := unmarshalRequest(msg.GetData(), request); err != nil {
		logger.Warn("handleDrawSeat: Invalid request from %s: %v", senderID, err)
		return
	}

	seatIndex := seatOfUser(state.Game, senderID)
	events, err := state.App.DrawSeat(state.Game, seatIndex, request.PoolIndex)
	if err != nil {
		logger.Warn("handleDrawSeat: User %s (seat %d) draw rejected: %v", senderID, seatIndex, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	if state.Game.Phase == domain.PhaseRoundOver {
		// Seating is final; the first deal follows after a short pause.
		state.NextRoundTick = state.Tick + roundStartDelaySeconds
		mh.updateLabel(state, dispatcher, logger)
	}
	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handlePlayCards(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		logger.Warn("handlePlayCards: Match not started.")
		return
	}

	request := &playCardsRequest{}
	if err := unmarshalRequest(msg.GetData(), request); err != nil {
		logger.Warn("handlePlayCards: Invalid request from %s: %v", senderID, err)
		return
	}

	cards := make([]domain.Card, len(request.Cards))
	for i, id := range request.Cards {
		cards[i] = domain.Card(id)
	}

	seatIndex := seatOfUser(state.Game, senderID)
	events, err := state.App.SubmitPlay(state.Game, seatIndex, cards)
	if err != nil {
		logger.Warn("handlePlayCards: User %s (seat %d) play rejected: %v. Cards: %v", senderID, seatIndex, err, cards)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	mh.resetTurnDeadline(state)
	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handlePassTurn(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		logger.Warn("handlePassTurn: Match not started.")
		return
	}

	seatIndex := seatOfUser(state.Game, senderID)
	events, err := state.App.SubmitPass(state.Game, seatIndex)
	if err != nil {
		logger.Warn("handlePassTurn: User %s (seat %d) pass rejected: %v", senderID, seatIndex, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	mh.resetTurnDeadline(state)
	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handleSetDelegation(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, "match not started")
		return
	}

	request := &setDelegationRequest{}
	if err := unmarshalRequest(msg.GetData(), request); err != nil {
		logger.Warn("handleSetDelegation: Invalid request from %s: %v", senderID, err)
		return
	}

	mode := domain.DelegationDefault
	if request.Mode != "" {
		var err error
		mode, err = domain.ParseDelegationMode(request.Mode)
		if err != nil {
			mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
			return
		}
	}

	seatIndex := seatOfUser(state.Game, senderID)
	events, err := state.App.SetDelegation(state.Game, seatIndex, request.Enabled, mode)
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	if request.Enabled {
		mh.ensureAgent(state, logger, seatIndex, mode)
	} else {
		delete(state.Agents, seatIndex)
		state.AutoWaitUntil = 0
	}
	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
}

// eventOpCode maps an app event kind to its wire opcode, or -1 when the
// event has no client-facing message.
func eventOpCode(kind app.EventKind) int64 {
	switch kind {
	case app.EventSeatDrawn:
		return OpSeatDrawn
	case app.EventSeatingFinal:
		return OpSeatingFinal
	case app.EventRoundStarted:
		return OpRoundStarted
	case app.EventHandDealt:
		return OpHandDealt
	case app.EventCardPlayed:
		return OpCardPlayed
	case app.EventTurnPassed:
		return OpTurnPassed
	case app.EventTrickSettled:
		return OpTrickSettled
	case app.EventSeatFinished:
		return OpSeatFinished
	case app.EventObserverReveal:
		return OpObserverReveal
	case app.EventRoundSettled:
		return OpRoundSettled
	case app.EventMatchEnded:
		return OpMatchEnded
	case app.EventDelegationChanged:
		return OpDelegationChanged
	case app.EventSeatRemapped:
		return OpSeatRemapped
	default:
		return -1
	}
}

func (mh *matchHandler) broadcastEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// broadcastEvent handles the conversion and dispatching of app events to
// Nakama, plus the side effects bound to specific kinds.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode := eventOpCode(ev.Kind)
	if opCode < 0 {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	switch ev.Kind {
	case app.EventRoundSettled:
		p := ev.Payload.(app.RoundSettledPayload)
		mh.recordScores(ctx, state, logger, p.Result)
		// Schedule the next deal; a following match_ended event cancels it.
		state.NextRoundTick = state.Tick + roundStartDelaySeconds
		mh.updateLabel(state, dispatcher, logger)
	case app.EventMatchEnded:
		state.NextRoundTick = 0
		mh.updateLabel(state, dispatcher, logger)
	}

	bytes, err := marshalPayload(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast).
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// Intended recipients who are not connected (dropped seats under
		// auto-play) must not cause a broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// recordScores pushes one settled round to the scoreboard port.
func (mh *matchHandler) recordScores(ctx context.Context, state *MatchState, logger runtime.Logger, result domain.RoundResult) {
	if state.Scoreboard == nil {
		return
	}
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	updates := make([]ports.ScoreUpdate, 0, len(result.Lines))
	for _, line := range result.Lines {
		updates = append(updates, ports.ScoreUpdate{
			UserID: line.OwnerID,
			Points: int64(line.RoundTotal),
			Metadata: map[string]interface{}{
				"match_id": matchID,
				"round_id": result.ID,
				"reason":   "round_settlement",
			},
		})
	}
	if err := state.Scoreboard.RecordScores(ctx, updates); err != nil {
		logger.Error("Failed to record scores: %v", err)
	}
}

// resendSeatState replays the private per-seat view to a reconnected user:
// its hand and any observer reveals it is entitled to.
func (mh *matchHandler) resendSeatState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	game := state.Game
	if game == nil {
		return
	}
	seat := game.SeatByOwner(userID)
	if seat == nil {
		return
	}
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	target := []runtime.Presence{presence}

	if len(seat.Hand) > 0 {
		if bytes, err := marshalPayload(app.HandDealtPayload{Seat: seat.Index, Hand: seat.Hand}); err == nil {
			dispatcher.BroadcastMessage(OpHandDealt, bytes, target, nil, true)
		}
	}
	for _, observed := range seat.Observing {
		other := game.Seats[observed]
		if other.Finished || len(other.Hand) == 0 {
			continue
		}
		if bytes, err := marshalPayload(app.ObserverRevealPayload{TargetSeat: other.Index, Hand: other.Hand}); err == nil {
			dispatcher.BroadcastMessage(OpObserverReveal, bytes, target, nil, true)
		}
	}
	logger.Debug("resendSeatState: Replayed private state to seat %d.", seat.Index)
}

func (mh *matchHandler) broadcastLobbyState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	owner := ""
	if len(state.Joined) > 0 {
		owner = state.Joined[0]
	}
	payload := lobbyStatePayload{
		Joined:    state.Joined,
		OwnerID:   owner,
		OpenSeats: state.GetOpenSeatsCount(),
		Phase:     state.phaseLabel(),
	}
	bytes, err := marshalPayload(payload)
	if err != nil {
		logger.Error("Failed to marshal lobby state: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpLobbyState, bytes, nil, nil, true)
}

// sendError sends a rejection to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := marshalPayload(gameErrorPayload{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal error payload: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := marshalLabel(state.GetOpenSeatsCount(), state.phaseLabel())
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
