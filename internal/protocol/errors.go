package protocol

// 错误码
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001
	ErrCodeRateLimit  = 1002 // 速率限制

	ErrCodeRoomNotFound = 2001
	ErrCodeRoomFull     = 2002
	ErrCodeNotInRoom    = 2003
	ErrCodeGameStarted  = 2004 // 游戏已开始

	ErrCodeGameNotStart    = 3001
	ErrCodeNotYourTurn     = 3002
	ErrCodeCardNotInHand   = 3003
	ErrCodeNotOwner        = 3004
	ErrCodeNotChooser      = 3005
	ErrCodeInvalidContract = 3006
	ErrCodeGameEnded       = 3007
	ErrCodeNeedFourPlayers = 3008

	ErrCodeServerMaintenance = 5003 // 服务器维护中
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:           "未知错误",
	ErrCodeInvalidMsg:        "无效的消息格式",
	ErrCodeRateLimit:         "请求过于频繁",
	ErrCodeRoomNotFound:      "房间不存在",
	ErrCodeRoomFull:          "房间已满",
	ErrCodeNotInRoom:         "您不在房间中",
	ErrCodeGameStarted:       "游戏已开始",
	ErrCodeGameNotStart:      "游戏尚未开始",
	ErrCodeNotYourTurn:       "还没轮到您",
	ErrCodeCardNotInHand:     "手牌中没有这张牌",
	ErrCodeNotOwner:          "只有房主可以开始游戏",
	ErrCodeNotChooser:        "还没轮到您选择合约",
	ErrCodeInvalidContract:   "无效的合约",
	ErrCodeGameEnded:         "游戏已结束",
	ErrCodeNeedFourPlayers:   "需要 4 名玩家才能开始",
	ErrCodeServerMaintenance: "服务器维护中",
}
