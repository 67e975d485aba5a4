package room

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/trix-online/internal/protocol"
	"github.com/palemoky/trix-online/internal/testutil"
	"github.com/palemoky/trix-online/internal/types"
)

func newTestManager() *Manager {
	return NewManager(nil, 0)
}

func newTestClient(id string) *testutil.SimpleClient {
	return &testutil.SimpleClient{ID: id, Nickname: "玩家" + id}
}

func TestCreateRoom(t *testing.T) {
	m := newTestManager()
	owner := newTestClient("p1")

	ri, err := m.CreateRoom(owner, "张三")
	require.NoError(t, err)
	r := ri.(*Room)

	// 房间号格式
	assert.Len(t, r.Code, roomCodeLength)
	for _, ch := range r.Code {
		assert.Contains(t, roomCodeChars, string(ch))
	}

	assert.Equal(t, "p1", r.Owner)
	assert.Equal(t, types.RoomStateWaiting, r.State)
	assert.Equal(t, "张三", owner.Nickname)
	assert.Equal(t, r.Code, owner.RoomCode)
	assert.Equal(t, 0, r.Players["p1"].Seat)
	assert.Equal(t, 0, r.Scores["p1"])

	// 创建者收到成员列表
	updates := owner.MessagesOfType(protocol.MsgUpdatePlayers)
	require.Len(t, updates, 1)
}

func TestCreateRoom_BlankNicknameKeepsDefault(t *testing.T) {
	m := newTestManager()
	owner := newTestClient("p1")
	owner.Nickname = "默认昵称"

	_, err := m.CreateRoom(owner, "   ")
	require.NoError(t, err)
	assert.Equal(t, "默认昵称", owner.Nickname)
}

func TestJoinRoom(t *testing.T) {
	m := newTestManager()
	owner := newTestClient("p1")
	ri, err := m.CreateRoom(owner, "房主")
	require.NoError(t, err)
	r := ri.(*Room)

	joiner := newTestClient("p2")
	_, err = m.JoinRoom(joiner, r.Code, "李四")
	require.NoError(t, err)

	assert.Equal(t, 1, r.Players["p2"].Seat)
	assert.Equal(t, []string{"p1", "p2"}, r.PlayerOrder)
	assert.Equal(t, r.Code, joiner.RoomCode)

	// 双方都收到最新成员列表
	assert.NotEmpty(t, joiner.MessagesOfType(protocol.MsgUpdatePlayers))
	assert.Len(t, owner.MessagesOfType(protocol.MsgUpdatePlayers), 2)
}

func TestJoinRoom_NotFound(t *testing.T) {
	m := newTestManager()
	joiner := newTestClient("p1")

	_, err := m.JoinRoom(joiner, "NOPE1", "李四")
	assert.Equal(t, ErrRoomNotFound, err)
}

func TestJoinRoom_Full(t *testing.T) {
	m := newTestManager()
	owner := newTestClient("p1")
	ri, err := m.CreateRoom(owner, "房主")
	require.NoError(t, err)
	code := ri.GetCode()

	for i := 2; i <= MaxPlayers; i++ {
		_, err := m.JoinRoom(newTestClient(fmt.Sprintf("p%d", i)), code, "")
		require.NoError(t, err)
	}

	_, err = m.JoinRoom(newTestClient("p5"), code, "")
	assert.Equal(t, ErrRoomFull, err)
}

func TestScoresMatchPlayers(t *testing.T) {
	m := newTestManager()
	owner := newTestClient("p1")
	ri, _ := m.CreateRoom(owner, "")
	r := ri.(*Room)

	p2 := newTestClient("p2")
	p3 := newTestClient("p3")
	_, err := m.JoinRoom(p2, r.Code, "")
	require.NoError(t, err)
	_, err = m.JoinRoom(p3, r.Code, "")
	require.NoError(t, err)

	m.RemovePlayer(p2)

	assert.Len(t, r.Scores, len(r.Players))
	for id := range r.Players {
		_, ok := r.Scores[id]
		assert.True(t, ok, "玩家 %s 缺少分数条目", id)
	}
	assert.NotContains(t, r.Scores, "p2")
	assert.Equal(t, []string{"p1", "p3"}, r.PlayerOrder)
}

func TestRemovePlayer_LastPlayerDestroysRoom(t *testing.T) {
	m := newTestManager()
	owner := newTestClient("p1")
	ri, _ := m.CreateRoom(owner, "")
	code := ri.GetCode()

	m.RemovePlayer(owner)

	assert.Nil(t, m.GetRoom(code))
	assert.Empty(t, owner.RoomCode)

	// 解散后再加入同号房间必须失败
	_, err := m.JoinRoom(newTestClient("p2"), code, "")
	assert.Equal(t, ErrRoomNotFound, err)
}

func TestRemovePlayer_NotInAnyRoom(t *testing.T) {
	m := newTestManager()
	stranger := newTestClient("px")

	// 不应 panic，也不应有副作用
	m.RemovePlayer(stranger)
	assert.Empty(t, stranger.Messages)
}

func TestGetRoomList(t *testing.T) {
	m := newTestManager()

	ri1, _ := m.CreateRoom(newTestClient("p1"), "")
	ri2, _ := m.CreateRoom(newTestClient("p2"), "")

	list := m.GetRoomList()
	assert.Len(t, list, 2)

	// 满员房间不再出现在列表中
	for i := 3; i <= 5; i++ {
		_, err := m.JoinRoom(newTestClient(fmt.Sprintf("p%d", i)), ri1.GetCode(), "")
		require.NoError(t, err)
	}

	list = m.GetRoomList()
	require.Len(t, list, 1)
	assert.Equal(t, ri2.GetCode(), list[0].RoomCode)
	assert.Equal(t, 1, list[0].PlayerCount)
	assert.Equal(t, MaxPlayers, list[0].MaxPlayers)
}

func TestGetActiveGamesCount(t *testing.T) {
	m := newTestManager()
	ri, _ := m.CreateRoom(newTestClient("p1"), "")
	r := ri.(*Room)

	assert.Equal(t, 0, m.GetActiveGamesCount())

	r.mu.Lock()
	r.State = types.RoomStateChoosingContract
	r.mu.Unlock()
	assert.Equal(t, 1, m.GetActiveGamesCount())

	r.mu.Lock()
	r.State = types.RoomStateEnded
	r.mu.Unlock()
	assert.Equal(t, 0, m.GetActiveGamesCount())
}

func TestCleanup_StaleWaitingRoom(t *testing.T) {
	m := NewManager(nil, 1) // 1ns 超时，任何等待中的房间都立即过期
	owner := newTestClient("p1")
	ri, _ := m.CreateRoom(owner, "")
	code := ri.GetCode()

	m.cleanup()

	assert.Nil(t, m.GetRoom(code))
	assert.Empty(t, owner.RoomCode)
}

func TestCleanup_SkipsActiveGames(t *testing.T) {
	m := NewManager(nil, 1)
	ri, _ := m.CreateRoom(newTestClient("p1"), "")
	r := ri.(*Room)

	r.mu.Lock()
	r.State = types.RoomStatePlaying
	r.mu.Unlock()

	m.cleanup()
	assert.NotNil(t, m.GetRoom(r.Code))
}
