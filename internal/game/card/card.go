package card

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Suit 定义花色
type Suit string

// Value 定义牌面值
type Value string

const (
	Heart   Suit = "H" // 红心
	Diamond Suit = "D" // 方块
	Club    Suit = "C" // 梅花
	Spade   Suit = "S" // 黑桃
)

// suits 发牌用的花色顺序
var suits = []Suit{Heart, Diamond, Club, Spade}

// values 牌面值顺序，Trix 不使用大小王
var values = []Value{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

var validValues = func() map[Value]bool {
	m := make(map[Value]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}()

// Card 定义一张牌
type Card struct {
	Value Value
	Suit  Suit
}

// String 返回线上协议使用的编码，形如 "10-D"
func (c Card) String() string {
	return string(c.Value) + "-" + string(c.Suit)
}

// Parse 解析 "<value>-<suit>" 编码
func Parse(code string) (Card, error) {
	idx := strings.LastIndex(code, "-")
	if idx <= 0 || idx != len(code)-2 {
		return Card{}, fmt.Errorf("无法识别的牌: %q", code)
	}

	value := Value(code[:idx])
	suit := Suit(code[idx+1:])
	if !validValues[value] {
		return Card{}, fmt.Errorf("无法识别的牌面值: %q", code)
	}
	switch suit {
	case Heart, Diamond, Club, Spade:
	default:
		return Card{}, fmt.Errorf("无法识别的花色: %q", code)
	}

	return Card{Value: value, Suit: suit}, nil
}

// Deck 定义一副牌
type Deck []Card

// NewDeck 创建标准 52 张牌
func NewDeck() Deck {
	deck := make(Deck, 0, 52)
	for _, s := range suits {
		for _, v := range values {
			deck = append(deck, Card{Value: v, Suit: s})
		}
	}
	return deck
}

// Shuffle 洗牌
func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}
