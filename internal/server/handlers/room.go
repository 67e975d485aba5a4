package handlers

import (
	"errors"

	"github.com/palemoky/trix-online/internal/protocol"
	"github.com/palemoky/trix-online/internal/types"
)

// handleCreateRoom 处理创建房间
func (h *Handler) handleCreateRoom(client types.ClientInterface, msg *protocol.Message) {
	if h.server.IsMaintenanceMode() {
		client.SendMessage(protocol.NewErrorMessageWithText(
			protocol.ErrCodeServerMaintenance, "服务器维护中，暂停创建房间"))
		return
	}

	payload, err := protocol.ParsePayload[protocol.CreateRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 如果已在房间中，先离开
	if client.GetRoom() != "" {
		h.server.GetRoomManager().RemovePlayer(client)
	}

	r, err := h.server.GetRoomManager().CreateRoom(client, payload.Nickname)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		RoomCode: r.GetCode(),
		Player:   r.PlayerInfo(client.GetID()),
	}))
}

// handleJoinRoom 处理加入房间
// 房间不存在和房间已满对外统一回 room-not-found，不区分原因
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	if h.server.IsMaintenanceMode() {
		client.SendMessage(protocol.NewErrorMessageWithText(
			protocol.ErrCodeServerMaintenance, "服务器维护中，暂停加入房间"))
		return
	}

	payload, err := protocol.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 如果已在房间中，先离开
	if client.GetRoom() != "" {
		h.server.GetRoomManager().RemovePlayer(client)
	}

	r, err := h.server.GetRoomManager().JoinRoom(client, payload.RoomCode, payload.Nickname)
	if err != nil {
		var gameErr *types.GameError
		if errors.As(err, &gameErr) {
			client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomNotFound, nil))
		} else {
			client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
		}
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgJoinedRoom, protocol.JoinedRoomPayload{
		RoomCode: r.GetCode(),
		Player:   r.PlayerInfo(client.GetID()),
		Players:  r.AllPlayersInfo(),
	}))
}

// handleGetRoomList 处理获取房间列表
func (h *Handler) handleGetRoomList(client types.ClientInterface) {
	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomListResult, protocol.RoomListResultPayload{
		Rooms: h.server.GetRoomManager().GetRoomList(),
	}))
}
