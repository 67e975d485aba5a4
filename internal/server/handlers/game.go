package handlers

import (
	"github.com/palemoky/trix-online/internal/game/room"
	"github.com/palemoky/trix-online/internal/protocol"
	"github.com/palemoky/trix-online/internal/types"
)

// handleStartGame 处理开始游戏
// 非房主、人数不足等违规一律静默丢弃
func (h *Handler) handleStartGame(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.StartGamePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r := h.server.GetRoomManager().GetRoom(payload.RoomCode)
	if r == nil {
		dropSilently(client, "start-game", room.ErrRoomNotFound)
		return
	}

	if err := r.StartGame(client.GetID()); err != nil {
		dropSilently(client, "start-game", err)
	}
}

// handleChooseContract 处理选择合约
func (h *Handler) handleChooseContract(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ChooseContractPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r := h.server.GetRoomManager().GetRoom(payload.RoomCode)
	if r == nil {
		dropSilently(client, "choose-contract", room.ErrRoomNotFound)
		return
	}

	if err := r.ChooseContract(client.GetID(), payload.Contract, payload.Doubles); err != nil {
		dropSilently(client, "choose-contract", err)
	}
}

// handlePlayCard 处理出牌
// 不轮到自己或牌不在手里都不回错误，只记日志
func (h *Handler) handlePlayCard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PlayCardPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r := h.server.GetRoomManager().GetRoom(payload.RoomCode)
	if r == nil {
		dropSilently(client, "play-card", room.ErrRoomNotFound)
		return
	}

	if err := r.PlayCard(client.GetID(), payload.Card); err != nil {
		dropSilently(client, "play-card", err)
	}
}
