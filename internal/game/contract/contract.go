// Package contract 定义 Trix 的五种合约及每墩的罚分规则。
package contract

import "github.com/palemoky/trix-online/internal/game/card"

// Contract 一种计分合约
type Contract string

const (
	Queens       Contract = "Queens"
	KingOfHearts Contract = "King of Hearts"
	Diamonds     Contract = "Diamonds"
	Slaps        Contract = "Slaps"
	Trix         Contract = "Trix" // 无罚分的安全轮
)

// All 按选择界面顺序排列的全部合约
var All = []Contract{Queens, KingOfHearts, Diamonds, Slaps, Trix}

// 翻倍标记名，只在对应合约下生效
const (
	DoubleQueens       = "Q"
	DoubleKingOfHearts = "K-H"
)

// Valid 判断合约名是否合法
func Valid(c Contract) bool {
	switch c {
	case Queens, KingOfHearts, Diamonds, Slaps, Trix:
		return true
	}
	return false
}

// FilterDoubles 只保留当前合约认可的翻倍标记
func FilterDoubles(c Contract, doubles map[string]bool) map[string]bool {
	filtered := make(map[string]bool)
	if doubles == nil {
		return filtered
	}
	switch c {
	case Queens:
		if doubles[DoubleQueens] {
			filtered[DoubleQueens] = true
		}
	case KingOfHearts:
		if doubles[DoubleKingOfHearts] {
			filtered[DoubleKingOfHearts] = true
		}
	}
	return filtered
}

// 罚分常量，负值直接累加到赢墩玩家的分数上
const (
	queenPenalty        = -25
	kingOfHeartsPenalty = -75
	diamondPenalty      = -10
	slapsPenalty        = -15
)

// TrickPoints 计算一墩四张牌在指定合约下的罚分。
// 罚分一次性记到墩的赢家头上；赢家是该墩的领出者，不做牌力比较。
func TrickPoints(c Contract, doubles map[string]bool, cards []card.Card) int {
	points := 0

	switch c {
	case Queens:
		for _, cd := range cards {
			if cd.Value == "Q" {
				points += queenPenalty
				if doubles[DoubleQueens] {
					points += queenPenalty
				}
			}
		}
	case KingOfHearts:
		for _, cd := range cards {
			if cd.Value == "K" && cd.Suit == card.Heart {
				points += kingOfHeartsPenalty
				if doubles[DoubleKingOfHearts] {
					points += kingOfHeartsPenalty
				}
			}
		}
	case Diamonds:
		for _, cd := range cards {
			if cd.Suit == card.Diamond {
				points += diamondPenalty
			}
		}
	case Slaps:
		// 与牌面无关，每墩固定罚分
		points = slapsPenalty
	case Trix:
		points = 0
	}

	return points
}
