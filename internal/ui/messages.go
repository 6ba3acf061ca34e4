package ui

import (
	"github.com/palemoky/whist/internal/game/card"
	"github.com/palemoky/whist/internal/game/session"
	"github.com/palemoky/whist/internal/game/strategy"
)

// 会话 goroutine 通过 Program.Send 发给界面的消息

type statusMsg string

type scoreMsg struct {
	seat  int
	value int
}

type trumpMsg card.Suit

type handMsg struct {
	seat int
	hand card.Hand
}

type playMsg struct {
	seat int
	card card.Card
}

type clearTrickMsg struct{}

// awaitCardMsg 请求人类玩家选牌，结果写入 reply（容量为 1）
type awaitCardMsg struct {
	seat  int
	hand  card.Hand
	state strategy.GameState
	reply chan<- card.Card
}

type rejectMsg struct {
	seat   int
	card   card.Card
	reason string
}

type gameOverMsg struct {
	result *session.Result
	err    error
}
