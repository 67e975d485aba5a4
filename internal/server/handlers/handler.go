package handlers

import (
	"log"

	"github.com/palemoky/trix-online/internal/protocol"
	"github.com/palemoky/trix-online/internal/types"
)

// Handler 消息处理器
type Handler struct {
	server types.ServerContext
}

// NewHandler 创建处理器
func NewHandler(s types.ServerContext) *Handler {
	return &Handler{server: s}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	switch msg.Type {
	// 连接操作
	case protocol.MsgPing:
		h.handlePing(client, msg)

	// 房间操作
	case protocol.MsgCreateRoom:
		h.handleCreateRoom(client, msg)
	case protocol.MsgJoinRoom:
		h.handleJoinRoom(client, msg)
	case protocol.MsgGetRoomList:
		h.handleGetRoomList(client)

	// 游戏操作
	case protocol.MsgStartGame:
		h.handleStartGame(client, msg)
	case protocol.MsgChooseContract:
		h.handleChooseContract(client, msg)
	case protocol.MsgPlayCard:
		h.handlePlayCard(client, msg)

	default:
		log.Printf("⚠️ 未知消息类型: %q (来自玩家: %s, ID: %s)", msg.Type, client.GetNickname(), client.GetID())
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
	}
}

// dropSilently 记录被丢弃的动作
// 鉴权/时序类违规按协议不给任何回包，但内部必须可观测
func dropSilently(client types.ClientInterface, action string, err error) {
	log.Printf("🙈 丢弃 %s: 玩家 %s (%s): %v", action, client.GetNickname(), client.GetID(), err)
}
