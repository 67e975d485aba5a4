package room

import (
	"context"
	"log"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/palemoky/trix-online/internal/game/card"
	"github.com/palemoky/trix-online/internal/protocol"
	"github.com/palemoky/trix-online/internal/types"
)

const (
	// 房间号长度
	roomCodeLength = 5
	// 房间号字符集
	roomCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// 生成房间号的最大尝试次数，耗尽视为致命配置错误
	roomCodeMaxAttempts = 10000
)

// Manager 房间管理器，持有房间号到房间的唯一映射
type Manager struct {
	store       types.StoreInterface
	rooms       map[string]*Room
	mu          sync.RWMutex
	roomTimeout time.Duration
}

// NewManager 创建房间管理器
func NewManager(store types.StoreInterface, roomTimeout time.Duration) *Manager {
	m := &Manager{
		store:       store,
		rooms:       make(map[string]*Room),
		roomTimeout: roomTimeout,
	}

	// 启动房间清理协程
	go m.cleanupLoop()

	return m
}

// CreateRoom 创建房间，创建者即房主
func (m *Manager) CreateRoom(client types.ClientInterface, nickname string) (types.RoomInterface, error) {
	if nickname = strings.TrimSpace(nickname); nickname != "" {
		client.SetNickname(nickname)
	}

	m.mu.Lock()
	code := m.generateRoomCode()

	r := &Room{
		Code:        code,
		Owner:       client.GetID(),
		State:       types.RoomStateWaiting,
		Players:     make(map[string]*RoomPlayer),
		PlayerOrder: make([]string, 0, MaxPlayers),
		Hands:       make(map[string][]card.Card),
		Scores:      make(map[string]int),
		Doubles:     make(map[string]bool),
		CreatedAt:   time.Now(),
		store:       m.store,
	}

	r.Players[client.GetID()] = &RoomPlayer{Client: client, Seat: 0}
	r.PlayerOrder = append(r.PlayerOrder, client.GetID())
	r.Scores[client.GetID()] = 0
	client.SetRoom(code)

	m.rooms[code] = r
	m.mu.Unlock()

	r.mu.Lock()
	r.broadcastPlayers()
	r.saveSnapshot()
	r.mu.Unlock()

	log.Printf("🏠 房间 %s 已创建，房主 %s (%s)", code, client.GetNickname(), client.GetID())

	return r, nil
}

// JoinRoom 加入房间
// 房间不存在与房间已满返回不同的内部错误，但对外只回一个通用的 room-not-found
func (m *Manager) JoinRoom(client types.ClientInterface, code, nickname string) (types.RoomInterface, error) {
	m.mu.RLock()
	r, exists := m.rooms[code]
	m.mu.RUnlock()
	if !exists {
		return nil, ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Players) >= MaxPlayers {
		return nil, ErrRoomFull
	}

	if nickname = strings.TrimSpace(nickname); nickname != "" {
		client.SetNickname(nickname)
	}

	seat := len(r.Players)
	r.Players[client.GetID()] = &RoomPlayer{Client: client, Seat: seat}
	r.PlayerOrder = append(r.PlayerOrder, client.GetID())
	r.Scores[client.GetID()] = 0
	client.SetRoom(code)

	log.Printf("👤 玩家 %s 加入房间 %s (座位 %d)", client.GetNickname(), code, seat)

	r.broadcastPlayers()
	r.saveSnapshot()

	return r, nil
}

// RemovePlayer 将玩家从其所在房间移除，房间空了立即销毁
// 不做回合转移：如果掉线玩家正持有回合，剩余玩家将无法继续推进
func (m *Manager) RemovePlayer(client types.ClientInterface) {
	code := client.GetRoom()

	m.mu.Lock()
	r, exists := m.rooms[code]
	if !exists {
		// 找到第一个包含该玩家的房间
		for _, candidate := range m.rooms {
			candidate.mu.Lock()
			_, in := candidate.Players[client.GetID()]
			candidate.mu.Unlock()
			if in {
				r, code, exists = candidate, candidate.Code, true
				break
			}
		}
	}
	if !exists {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	r.mu.Lock()

	playerID := client.GetID()
	if _, in := r.Players[playerID]; !in {
		r.mu.Unlock()
		return
	}

	delete(r.Players, playerID)
	delete(r.Hands, playerID)
	delete(r.Scores, playerID)
	for i, id := range r.PlayerOrder {
		if id == playerID {
			r.PlayerOrder = append(r.PlayerOrder[:i], r.PlayerOrder[i+1:]...)
			break
		}
	}
	client.SetRoom("")

	log.Printf("👋 玩家 %s 离开房间 %s", client.GetNickname(), code)

	empty := len(r.Players) == 0
	if !empty {
		r.broadcastPlayers()
		r.saveSnapshot()
	}
	r.mu.Unlock()

	if empty {
		m.mu.Lock()
		delete(m.rooms, code)
		m.mu.Unlock()
		if m.store != nil {
			go func() { _ = m.store.DeleteRoom(context.Background(), code) }()
		}
		log.Printf("🏠 房间 %s 已解散", code)
	}
}

// GetRoom 获取房间，不存在返回 nil
func (m *Manager) GetRoom(code string) types.RoomInterface {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, exists := m.rooms[code]
	if !exists {
		return nil
	}
	return r
}

// GetRoomList 获取可加入的房间列表
func (m *Manager) GetRoomList() []protocol.RoomListItem {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var rooms []protocol.RoomListItem
	for code, r := range m.rooms {
		r.mu.Lock()
		// 只返回等待中且未满的房间
		if r.State == types.RoomStateWaiting && len(r.Players) < MaxPlayers {
			rooms = append(rooms, protocol.RoomListItem{
				RoomCode:    code,
				PlayerCount: len(r.Players),
				MaxPlayers:  MaxPlayers,
			})
		}
		r.mu.Unlock()
	}
	return rooms
}

// GetActiveGamesCount 获取进行中的对局数量
func (m *Manager) GetActiveGamesCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, r := range m.rooms {
		r.mu.Lock()
		switch r.State {
		case types.RoomStateChoosingContract, types.RoomStatePlaying:
			count++
		}
		r.mu.Unlock()
	}
	return count
}

// generateRoomCode 生成唯一房间号，调用方必须持有 m.mu
func (m *Manager) generateRoomCode() string {
	for range roomCodeMaxAttempts {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[rand.IntN(len(roomCodeChars))]
		}
		codeStr := string(code)
		if _, exists := m.rooms[codeStr]; !exists {
			return codeStr
		}
	}
	// 36^5 的号段被打满在实践中不可能发生
	panic("房间号空间耗尽")
}

// cleanupLoop 定期清理长时间无人开局的房间
func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.cleanup()
	}
}

// cleanup 清理超时房间
func (m *Manager) cleanup() {
	if m.roomTimeout <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for code, r := range m.rooms {
		r.mu.Lock()
		stale := r.State == types.RoomStateWaiting && now.Sub(r.CreatedAt) > m.roomTimeout
		if stale {
			r.broadcast(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, "房间超时已关闭"))
			for _, p := range r.Players {
				p.Client.SetRoom("")
			}
		}
		r.mu.Unlock()

		if stale {
			delete(m.rooms, code)
			if m.store != nil {
				go func(code string) { _ = m.store.DeleteRoom(context.Background(), code) }(code)
			}
			log.Printf("🏠 房间 %s 超时已清理", code)
		}
	}
}
