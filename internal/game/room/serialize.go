package room

// Snapshot 房间快照，用于 Redis 写穿存储
// 只含可观测状态，手牌只导出张数，不落盘具体牌面
type Snapshot struct {
	Code            string            `json:"code"`
	State           int               `json:"state"`
	Owner           string            `json:"owner"`
	Players         []SnapshotPlayer  `json:"players"`
	Scores          map[string]int    `json:"scores"`
	CurrentContract string            `json:"current_contract,omitempty"`
	Doubles         map[string]bool   `json:"doubles,omitempty"`
	CurrentTurn     string            `json:"current_turn,omitempty"`
	HandCounts      map[string]int    `json:"hand_counts,omitempty"`
	TrickCount      int               `json:"trick_count"`
	ContractIndex   int               `json:"contract_index"`
	CurrentKingdom  int               `json:"current_kingdom"`
	CreatedAt       int64             `json:"created_at"`
}

// SnapshotPlayer 快照中的玩家
type SnapshotPlayer struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Seat     int    `json:"seat"`
}

// snapshotLocked 构建快照，调用方必须持有 r.mu
func (r *Room) snapshotLocked() *Snapshot {
	snap := &Snapshot{
		Code:            r.Code,
		State:           int(r.State),
		Owner:           r.Owner,
		Players:         make([]SnapshotPlayer, 0, len(r.PlayerOrder)),
		Scores:          r.scoresCopy(),
		CurrentContract: string(r.CurrentContract),
		CurrentTurn:     r.CurrentTurn,
		TrickCount:      len(r.Tricks),
		ContractIndex:   r.ContractIndex,
		CurrentKingdom:  r.CurrentKingdom,
		CreatedAt:       r.CreatedAt.Unix(),
	}

	for _, id := range r.PlayerOrder {
		snap.Players = append(snap.Players, SnapshotPlayer{
			ID:       id,
			Nickname: r.Players[id].Client.GetNickname(),
			Seat:     r.Players[id].Seat,
		})
	}

	if len(r.Doubles) > 0 {
		doubles := make(map[string]bool, len(r.Doubles))
		for k, v := range r.Doubles {
			doubles[k] = v
		}
		snap.Doubles = doubles
	}

	if len(r.Hands) > 0 {
		snap.HandCounts = make(map[string]int, len(r.Hands))
		for id, hand := range r.Hands {
			snap.HandCounts[id] = len(hand)
		}
	}

	return snap
}
