package room

import (
	"context"
	"sync"
	"time"

	"github.com/palemoky/trix-online/internal/game/card"
	"github.com/palemoky/trix-online/internal/game/contract"
	"github.com/palemoky/trix-online/internal/protocol"
	"github.com/palemoky/trix-online/internal/types"
)

// 预定义错误
// 能力/查找类错误会回传给发起方，鉴权/时序类错误只记日志
var (
	ErrRoomNotFound    = &types.GameError{Code: protocol.ErrCodeRoomNotFound, Message: "房间不存在"}
	ErrRoomFull        = &types.GameError{Code: protocol.ErrCodeRoomFull, Message: "房间已满"}
	ErrNotInRoom       = &types.GameError{Code: protocol.ErrCodeNotInRoom, Message: "您不在房间中"}
	ErrGameStarted     = &types.GameError{Code: protocol.ErrCodeGameStarted, Message: "游戏已开始"}
	ErrGameNotStart    = &types.GameError{Code: protocol.ErrCodeGameNotStart, Message: "游戏尚未开始"}
	ErrNotOwner        = &types.GameError{Code: protocol.ErrCodeNotOwner, Message: "只有房主可以开始游戏"}
	ErrNeedFourPlayers = &types.GameError{Code: protocol.ErrCodeNeedFourPlayers, Message: "需要 4 名玩家才能开始"}
	ErrNotChooser      = &types.GameError{Code: protocol.ErrCodeNotChooser, Message: "还没轮到您选择合约"}
	ErrInvalidContract = &types.GameError{Code: protocol.ErrCodeInvalidContract, Message: "无效的合约"}
	ErrNotYourTurn     = &types.GameError{Code: protocol.ErrCodeNotYourTurn, Message: "还没轮到您"}
	ErrCardNotInHand   = &types.GameError{Code: protocol.ErrCodeCardNotInHand, Message: "手牌中没有这张牌"}
	ErrGameEnded       = &types.GameError{Code: protocol.ErrCodeGameEnded, Message: "游戏已结束"}
)

// MaxPlayers Trix 固定四人局
const MaxPlayers = 4

// RoomPlayer 房间中的玩家
type RoomPlayer struct {
	Client types.ClientInterface
	Seat   int // 座位号 0-3，等于加入顺序
}

// PlayedCard 当前墩中的一张牌
type PlayedCard struct {
	PlayerID string `json:"player_id"`
	Card     string `json:"card"`
}

// Room 游戏房间，一个房间就是一个互斥域
// 所有对局状态的读写都在 mu 保护下进行，跨房间操作互不协调
type Room struct {
	Code        string                 // 房间号
	Owner       string                 // 房主玩家 ID，只有房主能开始游戏
	State       types.RoomState        // 房间状态
	Players     map[string]*RoomPlayer // 玩家列表
	PlayerOrder []string               // 玩家顺序（按座位）
	Hands       map[string][]card.Card // 玩家 ID → 剩余手牌
	Scores      map[string]int         // 玩家 ID → 累计分数（只减不增）

	CurrentContract contract.Contract // 当前合约，空表示尚未选择
	Doubles         map[string]bool   // 当前合约生效的翻倍标记
	CurrentTurn     string            // 轮到行动的玩家 ID
	PlayedCards     []PlayedCard      // 当前墩，最多 4 张
	Tricks          [][]PlayedCard    // 当前合约已完成的墩（仅诊断用）
	ContractOrder   []string          // 整局固定的选合约顺序
	ContractIndex   int               // 当前王国内第几个合约 [0,5)
	CurrentKingdom  int               // 当前王国 [0,4)

	CreatedAt time.Time

	store types.StoreInterface
	mu    sync.Mutex
}

// broadcast 广播消息给房间内所有玩家
func (r *Room) broadcast(msg *protocol.Message) {
	for _, player := range r.Players {
		player.Client.SendMessage(msg)
	}
}

// sendTo 发送消息给指定玩家
func (r *Room) sendTo(playerID string, msg *protocol.Message) {
	if player, ok := r.Players[playerID]; ok {
		player.Client.SendMessage(msg)
	}
}

// GetCode 返回房间号
func (r *Room) GetCode() string {
	return r.Code
}

// PlayerInfo 获取玩家信息
func (r *Room) PlayerInfo(playerID string) protocol.PlayerInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playerInfoLocked(playerID)
}

func (r *Room) playerInfoLocked(playerID string) protocol.PlayerInfo {
	player, ok := r.Players[playerID]
	if !ok {
		return protocol.PlayerInfo{}
	}
	return protocol.PlayerInfo{
		ID:       playerID,
		Nickname: player.Client.GetNickname(),
		Seat:     player.Seat,
		IsOwner:  playerID == r.Owner,
	}
}

// AllPlayersInfo 获取所有玩家信息，按座位顺序
func (r *Room) AllPlayersInfo() []protocol.PlayerInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.allPlayersInfoLocked()
}

func (r *Room) allPlayersInfoLocked() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, 0, len(r.PlayerOrder))
	for _, id := range r.PlayerOrder {
		infos = append(infos, r.playerInfoLocked(id))
	}
	return infos
}

// broadcastPlayers 广播最新成员列表
func (r *Room) broadcastPlayers() {
	r.broadcast(protocol.MustNewMessage(protocol.MsgUpdatePlayers, protocol.UpdatePlayersPayload{
		Players: r.allPlayersInfoLocked(),
	}))
}

// scoresCopy 复制分数表用于广播，避免 payload 持有内部 map
func (r *Room) scoresCopy() map[string]int {
	scores := make(map[string]int, len(r.Scores))
	for id, score := range r.Scores {
		scores[id] = score
	}
	return scores
}

// saveSnapshot 异步写入 Redis 快照，失败不影响对局
// 必须在持有 r.mu 时调用，快照在锁内构建，写入在锁外进行
func (r *Room) saveSnapshot() {
	if r.store == nil {
		return
	}
	snap := r.snapshotLocked()
	go func() { _ = r.store.SaveRoom(context.Background(), snap.Code, snap) }()
}
