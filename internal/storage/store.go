// Package storage 提供 Redis 写穿存储。
// 内存中的房间注册表才是权威状态，这里只做运维可见性：
// 房间快照带 TTL，对局结束后累计每位玩家的战绩。
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	roomKeyPrefix   = "trix:room:"
	playerKeyPrefix = "trix:player:"
	hallOfFameKey   = "trix:hall-of-fame"

	// 房间快照过期时间
	roomExpiration = 2 * time.Hour
)

// PlayerRecord 玩家累计战绩
type PlayerRecord struct {
	PlayerID     string `json:"player_id"`
	Nickname     string `json:"nickname"`
	Games        int    `json:"games"`
	TotalScore   int    `json:"total_score"`
	BestScore    int    `json:"best_score"` // 单局最高分（Trix 计分为负，越接近 0 越好）
	LastPlayedAt int64  `json:"last_played_at"`
}

// HallOfFameEntry 排行榜条目
type HallOfFameEntry struct {
	Rank       int    `json:"rank"`
	PlayerID   string `json:"player_id"`
	Nickname   string `json:"nickname"`
	TotalScore int    `json:"total_score"`
	Games      int    `json:"games"`
}

// Store Redis 存储
type Store struct {
	client *redis.Client
}

// NewStore 创建 Redis 存储
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// --- 房间快照 ---

// SaveRoom 保存房间快照
func (s *Store) SaveRoom(ctx context.Context, code string, snapshot any) error {
	if snapshot == nil {
		return nil
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("序列化房间快照失败: %w", err)
	}

	return s.client.Set(ctx, roomKeyPrefix+code, data, roomExpiration).Err()
}

// LoadRoom 加载房间快照，不存在返回 nil
func (s *Store) LoadRoom(ctx context.Context, code string) (json.RawMessage, error) {
	data, err := s.client.Get(ctx, roomKeyPrefix+code).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// DeleteRoom 删除房间快照
func (s *Store) DeleteRoom(ctx context.Context, code string) error {
	return s.client.Del(ctx, roomKeyPrefix+code).Err()
}

// --- 战绩 ---

// RecordGameResult 记录一局终分并更新排行榜
func (s *Store) RecordGameResult(ctx context.Context, playerID, nickname string, score int) error {
	record, err := s.getOrCreateRecord(ctx, playerID, nickname)
	if err != nil {
		return err
	}

	record.Nickname = nickname
	record.Games++
	record.TotalScore += score
	if record.Games == 1 || score > record.BestScore {
		record.BestScore = score
	}
	record.LastPlayedAt = time.Now().Unix()

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, playerKeyPrefix+playerID, data, 0).Err(); err != nil {
		return err
	}

	// 排行榜按累计分数排序，分数越高（越接近 0）越靠前
	return s.client.ZAdd(ctx, hallOfFameKey, redis.Z{
		Score:  float64(record.TotalScore),
		Member: playerID,
	}).Err()
}

// GetPlayerRecord 获取玩家战绩，不存在返回 nil
func (s *Store) GetPlayerRecord(ctx context.Context, playerID string) (*PlayerRecord, error) {
	data, err := s.client.Get(ctx, playerKeyPrefix+playerID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var record PlayerRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("反序列化玩家战绩失败: %w", err)
	}
	return &record, nil
}

// GetHallOfFame 获取排行榜前 limit 名
func (s *Store) GetHallOfFame(ctx context.Context, limit int) ([]HallOfFameEntry, error) {
	ids, err := s.client.ZRevRange(ctx, hallOfFameKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]HallOfFameEntry, 0, len(ids))
	for i, id := range ids {
		record, err := s.GetPlayerRecord(ctx, id)
		if err != nil || record == nil {
			continue
		}
		entries = append(entries, HallOfFameEntry{
			Rank:       i + 1,
			PlayerID:   record.PlayerID,
			Nickname:   record.Nickname,
			TotalScore: record.TotalScore,
			Games:      record.Games,
		})
	}
	return entries, nil
}

// getOrCreateRecord 获取或创建玩家战绩
func (s *Store) getOrCreateRecord(ctx context.Context, playerID, nickname string) (*PlayerRecord, error) {
	record, err := s.GetPlayerRecord(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		record = &PlayerRecord{
			PlayerID: playerID,
			Nickname: nickname,
		}
	}
	return record, nil
}
