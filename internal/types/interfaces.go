package types

import (
	"context"

	"github.com/palemoky/trix-online/internal/protocol"
)

// ServerContext 服务器上下文接口 - 避免循环依赖
type ServerContext interface {
	GetRoomManager() RoomManagerInterface
	GetStore() StoreInterface
	IsMaintenanceMode() bool
	GetOnlineCount() int
	GetClientByID(id string) ClientInterface
}

// ClientInterface 客户端接口，身份即传输层连接，断开后不可恢复
type ClientInterface interface {
	GetID() string
	GetNickname() string
	SetNickname(name string)
	GetRoom() string
	SetRoom(roomCode string)
	SendMessage(msg *protocol.Message)
	Close()
}

// RoomManagerInterface 房间管理器接口
type RoomManagerInterface interface {
	CreateRoom(client ClientInterface, nickname string) (RoomInterface, error)
	JoinRoom(client ClientInterface, code, nickname string) (RoomInterface, error)
	RemovePlayer(client ClientInterface)
	GetRoom(code string) RoomInterface
	GetRoomList() []protocol.RoomListItem
	GetActiveGamesCount() int
}

// RoomInterface 房间接口 - Handler 依赖的状态机入口
type RoomInterface interface {
	GetCode() string
	PlayerInfo(id string) protocol.PlayerInfo
	AllPlayersInfo() []protocol.PlayerInfo

	StartGame(callerID string) error
	ChooseContract(callerID, contract string, doubles map[string]bool) error
	PlayCard(callerID, card string) error
}

// StoreInterface 存储接口，所有写入都是尽力而为，失败不阻塞对局
type StoreInterface interface {
	SaveRoom(ctx context.Context, code string, snapshot any) error
	DeleteRoom(ctx context.Context, code string) error
	RecordGameResult(ctx context.Context, playerID, nickname string, score int) error
}

// GameError 游戏错误（房间和状态机共享）
// 鉴权/时序类错误不会回传给客户端，但以类型化结果暴露给日志和测试
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// RoomState 房间状态
type RoomState int

const (
	RoomStateWaiting          RoomState = iota // 等待玩家加入
	RoomStateChoosingContract                  // 等待合约选择
	RoomStatePlaying                           // 出牌中
	RoomStateEnded                             // 游戏结束，房间只等待玩家全部离开
)
