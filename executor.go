package holdem

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/thoas/go-funk"
	"github.com/weedbox/timebank"
)

// Persister stores committed contexts. Implementations live in store.
type Persister interface {
	SaveGame(ctx context.Context, game *GameContext) error
}

// executor carries out the effects a table's engine requests. Timers fire
// back into the table actor as requests; they never touch the engine.
type executor struct {
	table        *table
	persister    Persister
	transitionTB *timebank.TimeBank
	actionTB     *timebank.TimeBank
	reconnectTBs map[string]*timebank.TimeBank
	logger       zerolog.Logger
}

func newExecutor(t *table, persister Persister) *executor {
	return &executor{
		table:        t,
		persister:    persister,
		transitionTB: timebank.NewTimeBank(),
		actionTB:     timebank.NewTimeBank(),
		reconnectTBs: make(map[string]*timebank.TimeBank),
		logger:       t.logger,
	}
}

func (ex *executor) Execute(effects []*Effect) {
	for _, ef := range effects {
		switch ef.Type {
		case EffectType_PersistState:
			ex.persist()
		case EffectType_ScheduleTransition:
			ex.scheduleTransition(ef)
		case EffectType_StartActionTimer:
			ex.startActionTimer(ef)
		case EffectType_CancelActionTimer:
			ex.actionTB.Cancel()
		case EffectType_StartReconnectTimer:
			ex.startReconnectTimer(ef)
		case EffectType_CancelReconnectTimer:
			ex.cancelReconnectTimer(ef.PlayerID)
		case EffectType_EndGame:
			ex.table.closing = true
		default:
			ex.logger.Warn().Str("effect", string(ef.Type)).Msg("unknown effect")
		}
	}
}

func (ex *executor) persist() {
	if ex.persister == nil {
		return
	}

	timeout := ex.table.engine.options.PersistTimeout
	if timeout <= 0 {
		timeout = DefaultPersistTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := ex.persister.SaveGame(ctx, ex.table.engine.Context()); err != nil {
		ex.logger.Error().Err(err).Msg("failed to persist game")
	}
}

/*
	scheduleTransition 排程下一個階段
	  - 一手結束後開下一手: 開啟準備閘門, 全員準備或逾時才開始
	  - 其餘: 直接計時
*/
func (ex *executor) scheduleTransition(ef *Effect) {
	ex.transitionTB.Cancel()

	ctx := ex.table.engine.Context()
	if ef.Target == Phase_Preflop && ctx.CurrentPhase == Phase_Complete && ef.Delay >= time.Second {
		ex.openGate(ctx, ef.HandNumber)
		return
	}

	ex.table.gate.Stop()

	target := ef.Target
	handNumber := ef.HandNumber
	if err := ex.transitionTB.NewTask(ef.Delay, func(isCancelled bool) {
		if isCancelled {
			return
		}

		ex.table.post(RequestAction_Transition, Payload{
			Param: TransitionParam{
				Target:     target,
				HandNumber: handNumber,
			},
		})
	}); err != nil {
		ex.logger.Error().Err(err).Str("target", string(target)).Msg("failed to schedule transition")
	}
}

func (ex *executor) openGate(ctx *GameContext, handNumber int) {
	participants := make(map[string]int)
	autoReady := make([]string, 0)
	for _, p := range ctx.FundedPlayers() {
		participants[p.ID] = p.Seat
		if p.IsBot || p.IsOffline {
			autoReady = append(autoReady, p.ID)
		}
	}

	ex.logger.Debug().
		Int("hand", handNumber).
		Strs("participants", funk.Keys(participants).([]string)).
		Msg("open game gate")

	ex.table.gate.Setup(handNumber, participants, autoReady)
}

func (ex *executor) startActionTimer(ef *Effect) {
	ex.actionTB.Cancel()

	if ef.Deadline == nil {
		return
	}

	seat := ef.Seat
	handNumber := ef.HandNumber
	if err := ex.actionTB.NewTaskWithDeadline(*ef.Deadline, func(isCancelled bool) {
		if isCancelled {
			return
		}

		ex.table.post(RequestAction_ActionTimeout, Payload{
			Param: ActionTimeoutParam{
				Seat:       seat,
				HandNumber: handNumber,
			},
		})
	}); err != nil {
		ex.logger.Error().Err(err).Int("seat", seat).Msg("failed to start action timer")
	}
}

func (ex *executor) startReconnectTimer(ef *Effect) {
	ex.cancelReconnectTimer(ef.PlayerID)

	tb := timebank.NewTimeBank()
	ex.reconnectTBs[ef.PlayerID] = tb

	playerID := ef.PlayerID
	if err := tb.NewTask(ef.Delay, func(isCancelled bool) {
		if isCancelled {
			return
		}

		ex.table.post(RequestAction_ReconnectExpired, Payload{PlayerID: playerID})
	}); err != nil {
		ex.logger.Error().Err(err).Str("player_id", playerID).Msg("failed to start reconnect timer")
	}
}

func (ex *executor) cancelReconnectTimer(playerID string) {
	tb, ok := ex.reconnectTBs[playerID]
	if !ok {
		return
	}

	tb.Cancel()
	delete(ex.reconnectTBs, playerID)
}

func (ex *executor) Stop() {
	ex.transitionTB.Cancel()
	ex.actionTB.Cancel()
	for playerID := range ex.reconnectTBs {
		ex.cancelReconnectTimer(playerID)
	}
}
