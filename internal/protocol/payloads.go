package protocol

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// CreateRoomPayload 创建房间请求
type CreateRoomPayload struct {
	Nickname string `json:"nickname"`
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	RoomCode string `json:"room_code"`
	Nickname string `json:"nickname"`
}

// StartGamePayload 开始游戏请求（仅房主）
type StartGamePayload struct {
	RoomCode string `json:"room_code"`
}

// ChooseContractPayload 选择合约请求
// Doubles 仅对 Queens / King of Hearts 合约有意义
type ChooseContractPayload struct {
	RoomCode string          `json:"room_code"`
	Contract string          `json:"contract"`
	Doubles  map[string]bool `json:"doubles,omitempty"`
}

// PlayCardPayload 出牌请求，Card 形如 "10-D"
type PlayCardPayload struct {
	RoomCode string `json:"room_code"`
	Card     string `json:"card"`
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID string `json:"player_id"`
	Nickname string `json:"nickname"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// RoomCreatedPayload 房间创建成功响应
type RoomCreatedPayload struct {
	RoomCode string     `json:"room_code"`
	Player   PlayerInfo `json:"player"`
}

// JoinedRoomPayload 加入房间成功响应
type JoinedRoomPayload struct {
	RoomCode string       `json:"room_code"`
	Player   PlayerInfo   `json:"player"`
	Players  []PlayerInfo `json:"players"` // 房间内所有玩家
}

// UpdatePlayersPayload 房间成员变化通知
type UpdatePlayersPayload struct {
	Players []PlayerInfo `json:"players"` // 按座位顺序排列
}

// ChooseContractTurnPayload 轮到选择合约通知
type ChooseContractTurnPayload struct {
	PlayerID string `json:"player_id"`
	Kingdom  int    `json:"kingdom"`        // 当前王国 0-3
	Index    int    `json:"contract_index"` // 王国内第几个合约 0-4
}

// NewContractPayload 新合约开始通知
// Hand 按接收者单独下发，每个玩家只能看到自己的 13 张手牌
type NewContractPayload struct {
	Contract string          `json:"contract"`
	Hand     []string        `json:"hand"`
	Doubles  map[string]bool `json:"doubles"`
}

// TurnChangedPayload 轮到出牌通知
type TurnChangedPayload struct {
	PlayerID string `json:"player_id"`
}

// CardPlayedPayload 出牌通知
type CardPlayedPayload struct {
	PlayerID string `json:"player_id"`
	Card     string `json:"card"`
}

// UpdateScoresPayload 分数更新通知
type UpdateScoresPayload struct {
	Scores map[string]int `json:"scores"` // 玩家 ID → 累计分数
}

// GameEndedPayload 游戏结束通知，四个王国全部打完后广播一次
type GameEndedPayload struct {
	Scores map[string]int `json:"scores"`
}

// RoomListResultPayload 房间列表结果
type RoomListResultPayload struct {
	Rooms []RoomListItem `json:"rooms"`
}

// RoomListItem 房间列表项
type RoomListItem struct {
	RoomCode    string `json:"room_code"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// --- 通用数据结构 ---

// PlayerInfo 玩家信息
type PlayerInfo struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Seat     int    `json:"seat"`     // 座位号 0-3，等于加入顺序
	IsOwner  bool   `json:"is_owner"` // 是否是房主
}
