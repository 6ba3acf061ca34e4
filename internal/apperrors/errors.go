package apperrors

// 错误码
const (
	CodeInvalidConfig = iota + 1
	CodeUnknownStrategy
	CodeRuleViolation
	CodeInvalidPlay
)

// GameError 游戏错误
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrInvalidConfig   = &GameError{Code: CodeInvalidConfig, Message: "invalid configuration"}
	ErrUnknownStrategy = &GameError{Code: CodeUnknownStrategy, Message: "unknown strategy kind"}
	ErrRuleViolation   = &GameError{Code: CodeRuleViolation, Message: "follow rule broken"}
	ErrInvalidPlay     = &GameError{Code: CodeInvalidPlay, Message: "strategy returned a card not in hand"}
)
