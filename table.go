package holdem

import (
	"errors"
	"math"
	"sync"

	"github.com/rs/zerolog"
	"github.com/weedbox/holdem/open_game_manager"
)

var (
	ErrTableClosed    = errors.New("table: table is closed")
	ErrInvalidRequest = errors.New("table: invalid request payload")
)

// table is the actor owning one engine. Every request, including timer
// callbacks, is handled on the run goroutine so the engine never sees
// concurrent calls.
type table struct {
	engine    *Engine
	executor  *executor
	gate      open_game_manager.OpenGameManager
	callbacks *TableCallbacks
	incoming  chan *Request
	done      chan struct{}
	closing   bool
	closeOnce sync.Once
	logger    zerolog.Logger
}

func newTable(engine *Engine, callbacks *TableCallbacks, persister Persister, logger zerolog.Logger) *table {
	if callbacks == nil {
		callbacks = NewTableCallbacks()
	}

	t := &table{
		engine:    engine,
		callbacks: callbacks,
		incoming:  make(chan *Request, 64),
		done:      make(chan struct{}),
		logger:    logger.With().Str("game_id", engine.GameID()).Logger(),
	}

	t.gate = open_game_manager.NewOpenGameManager(open_game_manager.OpenGameOption{
		Timeout: gateTimeout(engine.options),
		OnOpenGameReady: func(state open_game_manager.OpenGameState) {
			// 可能在 Ready 內同步觸發, 不可直接寫回 actor
			go t.post(RequestAction_OpenGameReady, Payload{Param: state.HandNumber})
		},
	})
	t.executor = newExecutor(t, persister)

	go t.run()
	return t
}

func gateTimeout(options *EngineOptions) int {
	return int(math.Ceil(options.NextHandDelay.Seconds()))
}

func (t *table) run() {
	for {
		select {
		case req := <-t.incoming:
			t.requestHandler(req)
			if t.closing {
				t.shutdown()
				return
			}
		case <-t.done:
			return
		}
	}
}

// incomingRequest blocks until the actor has handled the request.
func (t *table) incomingRequest(action RequestAction, payload Payload) (*Response, error) {
	req := &Request{
		Action:  action,
		Payload: payload,
		Reply:   make(chan *Response, 1),
	}

	select {
	case t.incoming <- req:
	case <-t.done:
		return nil, ErrTableClosed
	}

	select {
	case resp := <-req.Reply:
		return resp, nil
	case <-t.done:
		return nil, ErrTableClosed
	}
}

// post enqueues a request nobody waits on. Used by timers.
func (t *table) post(action RequestAction, payload Payload) {
	select {
	case t.incoming <- &Request{Action: action, Payload: payload}:
	case <-t.done:
	}
}

func (t *table) requestHandler(req *Request) {
	if req.Action == RequestAction_Snapshot {
		t.reply(req, &Response{
			Result: Result{Success: true},
			View:   Project(t.engine.Context(), req.Payload.PlayerID),
		})
		return
	}

	if req.Action == RequestAction_Close {
		t.closing = true
		t.reply(req, &Response{Result: Result{Success: true}})
		return
	}

	handlers := map[RequestAction]func(Payload) Result{
		RequestAction_PlayerAction:     t.handlePlayerAction,
		RequestAction_AdminAction:      t.handleAdminAction,
		RequestAction_AddPlayers:       t.handleAddPlayers,
		RequestAction_RequestSeat:      t.handleRequestSeat,
		RequestAction_AddSpectator:     t.handleAddSpectator,
		RequestAction_PlayerLeave:      t.handlePlayerLeave,
		RequestAction_PlayerDisconnect: t.handlePlayerDisconnect,
		RequestAction_PlayerReconnect:  t.handlePlayerReconnect,
		RequestAction_PlayerReady:      t.handlePlayerReady,
		RequestAction_Transition:       t.handleTransition,
		RequestAction_ActionTimeout:    t.handleActionTimeout,
		RequestAction_ReconnectExpired: t.handleReconnectExpired,
		RequestAction_OpenGameReady:    t.handleOpenGameReady,
		RequestAction_Recover:          t.handleRecover,
	}

	handler, ok := handlers[req.Action]
	if !ok {
		t.reply(req, &Response{Result: Result{Error: ErrInvalidRequest}})
		return
	}

	result := handler(req.Payload)
	t.apply(result, req.Reply == nil)

	t.reply(req, &Response{
		Result: result,
		View:   Project(t.engine.Context(), req.Payload.PlayerID),
	})
}

func (t *table) reply(req *Request, resp *Response) {
	if req.Reply != nil {
		req.Reply <- resp
	}
}

// apply runs the effects of a committed call, then notifies observers.
// Rejections raised by timers are expected (stale hands, pauses) and are
// only logged.
func (t *table) apply(result Result, internal bool) {
	gameID := t.engine.GameID()

	if !result.Success {
		if internal {
			t.logger.Debug().Err(result.Error).Msg("timer request dropped")
			return
		}
		if len(result.Events) > 0 {
			t.callbacks.OnEvents(gameID, result.Events)
		}
		t.callbacks.OnError(gameID, result.Error)
		return
	}

	t.executor.Execute(result.Effects)

	if ev := t.logger.Debug(); ev.Enabled() {
		ev.Msg("state updated\n" + t.engine.Context().DebugString())
	}

	if len(result.Events) > 0 {
		t.callbacks.OnEvents(gameID, result.Events)
	}
	t.callbacks.OnStateUpdated(t.engine.Context())
}

func (t *table) close() {
	t.closeOnce.Do(func() {
		t.executor.Stop()
		t.gate.Stop()
		close(t.done)
		t.callbacks.OnClosed(t.engine.GameID())
	})
}

func (t *table) shutdown() {
	t.logger.Info().Msg("table closed")
	t.close()
}

func (t *table) handlePlayerAction(payload Payload) Result {
	action, ok := payload.Param.(Action)
	if !ok {
		return t.engine.reject(payload.PlayerID, ErrInvalidRequest)
	}

	// 只能替自己的座位動作
	if payload.PlayerID == "" {
		return t.engine.reject(payload.PlayerID, ErrInvalidPlayer)
	}
	if p := t.engine.Context().PlayerBySeat(action.Seat); p != nil && p.ID != payload.PlayerID {
		return t.engine.reject(payload.PlayerID, ErrNotYourTurn)
	}
	return t.engine.ProcessAction(action)
}

func (t *table) handleAdminAction(payload Payload) Result {
	action, ok := payload.Param.(AdminAction)
	if !ok {
		return t.engine.reject(payload.PlayerID, ErrInvalidRequest)
	}
	return t.engine.ProcessAdminAction(action)
}

func (t *table) handleAddPlayers(payload Payload) Result {
	players, ok := payload.Param.([]PlayerSeat)
	if !ok {
		return t.engine.reject(payload.PlayerID, ErrInvalidRequest)
	}
	return t.engine.AddPlayers(players)
}

func (t *table) handleRequestSeat(payload Payload) Result {
	req, ok := payload.Param.(SeatRequest)
	if !ok {
		return t.engine.reject(payload.PlayerID, ErrInvalidRequest)
	}
	return t.engine.RequestSeat(req)
}

func (t *table) handleAddSpectator(payload Payload) Result {
	return t.engine.AddSpectator(payload.PlayerID)
}

func (t *table) handlePlayerLeave(payload Payload) Result {
	return t.engine.HandleLeave(payload.PlayerID)
}

func (t *table) handlePlayerDisconnect(payload Payload) Result {
	result := t.engine.HandleDisconnect(payload.PlayerID)
	if result.Success && t.gate.IsOpen() {
		// 斷線玩家不等待
		_ = t.gate.Ready(payload.PlayerID)
	}
	return result
}

func (t *table) handlePlayerReconnect(payload Payload) Result {
	return t.engine.HandleReconnect(payload.PlayerID)
}

func (t *table) handlePlayerReady(payload Payload) Result {
	if err := t.gate.Ready(payload.PlayerID); err != nil {
		return t.engine.reject(payload.PlayerID, err)
	}
	return Result{Success: true}
}

func (t *table) handleTransition(payload Payload) Result {
	param, ok := payload.Param.(TransitionParam)
	if !ok {
		return t.engine.reject(payload.PlayerID, ErrInvalidRequest)
	}
	return t.engine.ExecuteScheduledTransition(param.Target, param.HandNumber)
}

func (t *table) handleActionTimeout(payload Payload) Result {
	param, ok := payload.Param.(ActionTimeoutParam)
	if !ok {
		return t.engine.reject(payload.PlayerID, ErrInvalidRequest)
	}
	return t.engine.HandleTimeout(param.Seat, param.HandNumber)
}

func (t *table) handleReconnectExpired(payload Payload) Result {
	return t.engine.HandleReconnectExpired(payload.PlayerID)
}

func (t *table) handleOpenGameReady(payload Payload) Result {
	handNumber, ok := payload.Param.(int)
	if !ok {
		return t.engine.reject(payload.PlayerID, ErrInvalidRequest)
	}
	return t.engine.ExecuteScheduledTransition(Phase_Preflop, handNumber)
}

func (t *table) handleRecover(Payload) Result {
	return t.engine.Recover()
}
