package handlers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/trix-online/internal/protocol"
	"github.com/palemoky/trix-online/internal/testutil"
)

// createRoomVia 通过处理器创建房间并返回房间号
func createRoomVia(t *testing.T, h *Handler, c *testutil.SimpleClient) string {
	t.Helper()
	h.Handle(c, protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{}))

	msgs := c.MessagesOfType(protocol.MsgRoomCreated)
	require.Len(t, msgs, 1)
	payload, err := protocol.ParsePayload[protocol.RoomCreatedPayload](msgs[0])
	require.NoError(t, err)
	return payload.RoomCode
}

func TestHandleCreateRoom(t *testing.T) {
	h, _ := newTestHandler()
	c := newClient("p1")

	h.Handle(c, protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{Nickname: "张三"}))

	msgs := c.MessagesOfType(protocol.MsgRoomCreated)
	require.Len(t, msgs, 1)
	payload, err := protocol.ParsePayload[protocol.RoomCreatedPayload](msgs[0])
	require.NoError(t, err)
	assert.Len(t, payload.RoomCode, 5)
	assert.Equal(t, "p1", payload.Player.ID)
	assert.Equal(t, "张三", payload.Player.Nickname)
	assert.True(t, payload.Player.IsOwner)
	assert.Equal(t, payload.RoomCode, c.RoomCode)
}

func TestHandleCreateRoom_Maintenance(t *testing.T) {
	h, s := newTestHandler()
	s.maintenance = true
	c := newClient("p1")

	h.Handle(c, protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{}))

	assert.Empty(t, c.MessagesOfType(protocol.MsgRoomCreated))
	last := c.LastMessage()
	require.NotNil(t, last)
	require.Equal(t, protocol.MsgError, last.Type)
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](last)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeServerMaintenance, payload.Code)
}

func TestHandleCreateRoom_InvalidPayload(t *testing.T) {
	h, _ := newTestHandler()
	c := newClient("p1")

	h.Handle(c, &protocol.Message{Type: protocol.MsgCreateRoom, Payload: []byte(`"oops"`)})

	last := c.LastMessage()
	require.NotNil(t, last)
	assert.Equal(t, protocol.MsgError, last.Type)
}

func TestHandleJoinRoom(t *testing.T) {
	h, _ := newTestHandler()
	owner := newClient("p1")
	code := createRoomVia(t, h, owner)

	joiner := newClient("p2")
	h.Handle(joiner, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		RoomCode: code,
		Nickname: "李四",
	}))

	msgs := joiner.MessagesOfType(protocol.MsgJoinedRoom)
	require.Len(t, msgs, 1)
	payload, err := protocol.ParsePayload[protocol.JoinedRoomPayload](msgs[0])
	require.NoError(t, err)
	assert.Equal(t, code, payload.RoomCode)
	assert.Equal(t, 1, payload.Player.Seat)
	assert.False(t, payload.Player.IsOwner)
	require.Len(t, payload.Players, 2)
	assert.Equal(t, "p1", payload.Players[0].ID)
	assert.Equal(t, "p2", payload.Players[1].ID)
}

func TestHandleJoinRoom_NotFound(t *testing.T) {
	h, _ := newTestHandler()
	c := newClient("p1")

	h.Handle(c, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: "NOPE1"}))

	// 对外只有一个笼统的 room-not-found
	require.Len(t, c.MessagesOfType(protocol.MsgRoomNotFound), 1)
	assert.Empty(t, c.MessagesOfType(protocol.MsgError))
	assert.Empty(t, c.MessagesOfType(protocol.MsgJoinedRoom))
}

func TestHandleJoinRoom_FullLooksLikeNotFound(t *testing.T) {
	h, _ := newTestHandler()
	owner := newClient("p1")
	code := createRoomVia(t, h, owner)

	for i := 2; i <= 4; i++ {
		c := newClient(fmt.Sprintf("p%d", i))
		h.Handle(c, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: code}))
		require.Len(t, c.MessagesOfType(protocol.MsgJoinedRoom), 1)
	}

	// 满员房间与不存在的房间对外不可区分
	late := newClient("p5")
	h.Handle(late, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: code}))
	require.Len(t, late.MessagesOfType(protocol.MsgRoomNotFound), 1)
	assert.Empty(t, late.MessagesOfType(protocol.MsgJoinedRoom))
}

func TestHandleJoinRoom_LeavesCurrentRoomFirst(t *testing.T) {
	h, s := newTestHandler()
	owner := newClient("p1")
	first := createRoomVia(t, h, owner)

	other := newClient("p2")
	second := createRoomVia(t, h, other)

	h.Handle(owner, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: second}))

	require.Len(t, owner.MessagesOfType(protocol.MsgJoinedRoom), 1)
	assert.Equal(t, second, owner.RoomCode)
	// 旧房间空了应被销毁
	assert.Nil(t, s.rm.GetRoom(first))
}

func TestHandleGetRoomList(t *testing.T) {
	h, _ := newTestHandler()
	owner := newClient("p1")
	code := createRoomVia(t, h, owner)

	c := newClient("p2")
	h.Handle(c, &protocol.Message{Type: protocol.MsgGetRoomList})

	msgs := c.MessagesOfType(protocol.MsgRoomListResult)
	require.Len(t, msgs, 1)
	payload, err := protocol.ParsePayload[protocol.RoomListResultPayload](msgs[0])
	require.NoError(t, err)
	require.Len(t, payload.Rooms, 1)
	assert.Equal(t, code, payload.Rooms[0].RoomCode)
	assert.Equal(t, 1, payload.Rooms[0].PlayerCount)
}
