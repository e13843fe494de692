package holdem

import (
	"time"
)

type EngineOptions struct {
	ActionTimeout    time.Duration // 玩家動作思考時間
	StreetDelay      time.Duration // 一輪下注結束到發下一條街
	RunoutDelay      time.Duration // 全下後自動發牌的間隔
	ShowdownDelay    time.Duration // 攤牌停留時間
	NextHandDelay    time.Duration // 下一手開始前的等待
	ReconnectTimeout time.Duration // 斷線保留座位時間
	PersistTimeout   time.Duration // 單次存檔上限
}

const DefaultPersistTimeout = 5 * time.Second

func NewEngineOptions() *EngineOptions {
	return &EngineOptions{
		ActionTimeout:    30 * time.Second,
		StreetDelay:      1 * time.Second,
		RunoutDelay:      2 * time.Second,
		ShowdownDelay:    5 * time.Second,
		NextHandDelay:    3 * time.Second,
		ReconnectTimeout: 60 * time.Second,
		PersistTimeout:   DefaultPersistTimeout,
	}
}

// TableCallbacks observe a table actor after each committed engine call.
type TableCallbacks struct {
	OnEvents       func(gameID string, events []*Event)
	OnStateUpdated func(ctx *GameContext)
	OnError        func(gameID string, err error)
	OnClosed       func(gameID string)
}

func NewTableCallbacks() *TableCallbacks {
	return &TableCallbacks{
		OnEvents:       func(string, []*Event) {},
		OnStateUpdated: func(*GameContext) {},
		OnError:        func(string, error) {},
		OnClosed:       func(string) {},
	}
}
