package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
// 事件名沿用连字符风格，与既有客户端的线上协议保持一致
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing MessageType = "ping" // 心跳 ping

	// 房间操作
	MsgCreateRoom  MessageType = "create-room"   // 创建房间
	MsgJoinRoom    MessageType = "join-room"     // 加入房间
	MsgGetRoomList MessageType = "get-room-list" // 获取房间列表

	// 游戏操作
	MsgStartGame      MessageType = "start-game"      // 房主开始游戏
	MsgChooseContract MessageType = "choose-contract" // 选择合约
	MsgPlayCard       MessageType = "play-card"       // 出牌
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected MessageType = "connected" // 连接成功
	MsgPong      MessageType = "pong"      // 心跳 pong

	// 房间相关
	MsgRoomCreated    MessageType = "room-created"     // 房间创建成功
	MsgJoinedRoom     MessageType = "joined-room"      // 加入房间成功
	MsgRoomNotFound   MessageType = "room-not-found"   // 房间不存在或已满
	MsgUpdatePlayers  MessageType = "update-players"   // 房间成员变化
	MsgRoomListResult MessageType = "room-list-result" // 房间列表结果

	// 游戏流程
	MsgChooseContractTurn MessageType = "choose-contract-turn" // 轮到选择合约
	MsgNewContract        MessageType = "new-contract"         // 新合约开始（含私有手牌）
	MsgTurnChanged        MessageType = "turn-changed"         // 轮到出牌
	MsgCardPlayed         MessageType = "card-played"          // 有人出牌
	MsgUpdateScores       MessageType = "update-scores"        // 分数更新
	MsgGameEnded          MessageType = "game-ended"           // 游戏结束

	// 错误
	MsgError MessageType = "error" // 错误消息
)

// Encode 将消息编码为 JSON 字节
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode 从 JSON 字节解码消息
func Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
