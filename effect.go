package holdem

import (
	"time"
)

type EffectType string

const (
	EffectType_PersistState         EffectType = "PERSIST_STATE"
	EffectType_ScheduleTransition   EffectType = "SCHEDULE_TRANSITION"
	EffectType_StartActionTimer     EffectType = "START_ACTION_TIMER"
	EffectType_CancelActionTimer    EffectType = "CANCEL_ACTION_TIMER"
	EffectType_StartReconnectTimer  EffectType = "START_RECONNECT_TIMER"
	EffectType_CancelReconnectTimer EffectType = "CANCEL_RECONNECT_TIMER"
	EffectType_EndGame              EffectType = "END_GAME"
)

// Effect is a side effect requested by the engine. The engine never performs
// I/O itself; an Executor carries effects out.
type Effect struct {
	Type       EffectType    `json:"type"`
	Target     Phase         `json:"target,omitempty"`
	Delay      time.Duration `json:"delay,omitempty"`
	HandNumber int           `json:"handNumber,omitempty"`
	Seat       int           `json:"seat,omitempty"`
	Deadline   *time.Time    `json:"deadline,omitempty"`
	PlayerID   string        `json:"playerId,omitempty"`
}

func (e *Engine) addEffect(ef *Effect) {
	e.effects = append(e.effects, ef)
}

// scheduleTransition replaces any transition requested earlier in the same call.
func (e *Engine) scheduleTransition(target Phase, delay time.Duration) {
	kept := e.effects[:0]
	for _, ef := range e.effects {
		if ef.Type != EffectType_ScheduleTransition {
			kept = append(kept, ef)
		}
	}
	e.effects = kept

	e.debug().
		Str("target", string(target)).
		Dur("delay", delay).
		Msg("schedule transition")

	e.addEffect(&Effect{
		Type:       EffectType_ScheduleTransition,
		Target:     target,
		Delay:      delay,
		HandNumber: e.ctx.HandNumber,
	})
}

func (e *Engine) startActionTimer() {
	if e.ctx.IsPaused {
		e.ctx.ActionDeadline = nil
		return
	}

	deadline := e.now().Add(e.options.ActionTimeout)
	e.ctx.ActionDeadline = &deadline

	e.addEffect(&Effect{
		Type:       EffectType_StartActionTimer,
		Seat:       e.ctx.CurrentActorSeat,
		Deadline:   &deadline,
		HandNumber: e.ctx.HandNumber,
	})
}

func (e *Engine) cancelActionTimer() {
	e.ctx.ActionDeadline = nil
	e.addEffect(&Effect{Type: EffectType_CancelActionTimer})
}
