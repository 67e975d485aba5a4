package room

import (
	"context"
	"log"

	"github.com/palemoky/trix-online/internal/game/card"
	"github.com/palemoky/trix-online/internal/game/contract"
	"github.com/palemoky/trix-online/internal/protocol"
	"github.com/palemoky/trix-online/internal/types"
)

// 每位玩家每个合约的手牌数，52 / 4
const handSize = 13

// StartGame 开始游戏：锁定选合约顺序并进入第一个王国
// 只有房主可以触发，且必须恰好 4 人
func (r *Room) StartGame(callerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.State {
	case types.RoomStateWaiting:
	case types.RoomStateEnded:
		return ErrGameEnded
	default:
		return ErrGameStarted
	}
	if callerID != r.Owner {
		return ErrNotOwner
	}
	if len(r.Players) != MaxPlayers {
		return ErrNeedFourPlayers
	}

	r.CurrentKingdom = 0
	r.ContractIndex = 0
	// 选合约顺序固定为开局时的座位顺序，整局不再变化
	r.ContractOrder = append([]string(nil), r.PlayerOrder...)
	r.State = types.RoomStateChoosingContract

	log.Printf("🎮 房间 %s 开局，选合约顺序: %v", r.Code, r.ContractOrder)

	r.askContractChoice()
	r.saveSnapshot()
	return nil
}

// askContractChoice 通知当前王国的选择者挑选合约
// 同一王国内的 5 个合约由同一位玩家选择，王国切换时选择者随之切换
func (r *Room) askContractChoice() {
	chooser := r.ContractOrder[r.CurrentKingdom]
	r.broadcast(protocol.MustNewMessage(protocol.MsgChooseContractTurn, protocol.ChooseContractTurnPayload{
		PlayerID: chooser,
		Kingdom:  r.CurrentKingdom,
		Index:    r.ContractIndex,
	}))
}

// ChooseContract 选择合约并发牌
func (r *Room) ChooseContract(callerID, contractName string, doubles map[string]bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.State {
	case types.RoomStateChoosingContract:
	case types.RoomStateEnded:
		return ErrGameEnded
	default:
		return ErrGameNotStart
	}
	if callerID != r.ContractOrder[r.CurrentKingdom] {
		return ErrNotChooser
	}

	c := contract.Contract(contractName)
	if !contract.Valid(c) {
		return ErrInvalidContract
	}

	r.CurrentContract = c
	r.Doubles = contract.FilterDoubles(c, doubles)
	r.startContract()
	r.saveSnapshot()
	return nil
}

// startContract 洗牌、发牌并进入出牌阶段
func (r *Room) startContract() {
	r.PlayedCards = nil
	r.Tricks = nil

	deck := card.NewDeck()
	deck.Shuffle()

	// 按座位顺序每人 13 张，恰好瓜分整副牌
	for i, id := range r.PlayerOrder {
		hand := make([]card.Card, handSize)
		copy(hand, deck[i*handSize:(i+1)*handSize])
		r.Hands[id] = hand
	}

	r.CurrentTurn = r.PlayerOrder[0]
	r.State = types.RoomStatePlaying

	log.Printf("🃏 房间 %s 合约 %q 开始 (王国 %d/%d，翻倍 %v)",
		r.Code, r.CurrentContract, r.CurrentKingdom+1, 4, r.Doubles)

	// 手牌按接收者单独下发，每人只能看到自己的牌
	for _, id := range r.PlayerOrder {
		hand := make([]string, 0, handSize)
		for _, cd := range r.Hands[id] {
			hand = append(hand, cd.String())
		}
		r.sendTo(id, protocol.MustNewMessage(protocol.MsgNewContract, protocol.NewContractPayload{
			Contract: string(r.CurrentContract),
			Hand:     hand,
			Doubles:  r.Doubles,
		}))
	}

	r.broadcast(protocol.MustNewMessage(protocol.MsgTurnChanged, protocol.TurnChangedPayload{
		PlayerID: r.CurrentTurn,
	}))
}

// PlayCard 出一张牌
// 非当前回合玩家或手牌中不存在的牌都会被拒绝，调用方决定是否静默
func (r *Room) PlayCard(callerID, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.State {
	case types.RoomStatePlaying:
	case types.RoomStateEnded:
		return ErrGameEnded
	default:
		return ErrGameNotStart
	}
	if callerID != r.CurrentTurn {
		return ErrNotYourTurn
	}

	hand := r.Hands[callerID]
	idx := -1
	for i, cd := range hand {
		if cd.String() == code {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrCardNotInHand
	}

	r.Hands[callerID] = append(hand[:idx], hand[idx+1:]...)
	r.PlayedCards = append(r.PlayedCards, PlayedCard{PlayerID: callerID, Card: code})

	r.broadcast(protocol.MustNewMessage(protocol.MsgCardPlayed, protocol.CardPlayedPayload{
		PlayerID: callerID,
		Card:     code,
	}))

	if len(r.PlayedCards) == MaxPlayers {
		r.resolveTrick()
	} else {
		r.nextTurn()
	}
	return nil
}

// nextTurn 回合顺时针轮转到下一个座位
func (r *Room) nextTurn() {
	idx := -1
	for i, id := range r.PlayerOrder {
		if id == r.CurrentTurn {
			idx = i
			break
		}
	}
	r.CurrentTurn = r.PlayerOrder[(idx+1)%len(r.PlayerOrder)]

	r.broadcast(protocol.MustNewMessage(protocol.MsgTurnChanged, protocol.TurnChangedPayload{
		PlayerID: r.CurrentTurn,
	}))
}

// resolveTrick 结算一墩
// 赢家定义为该墩的领出者，罚分按当前合约一次性记到赢家头上
func (r *Room) resolveTrick() {
	winner := r.PlayedCards[0].PlayerID

	cards := make([]card.Card, 0, len(r.PlayedCards))
	for _, pc := range r.PlayedCards {
		cd, err := card.Parse(pc.Card)
		if err != nil {
			// 牌来自服务端发出的手牌，解析失败不应出现
			log.Printf("⚠️ 房间 %s 墩中出现非法牌 %q: %v", r.Code, pc.Card, err)
			continue
		}
		cards = append(cards, cd)
	}

	points := contract.TrickPoints(r.CurrentContract, r.Doubles, cards)
	r.Scores[winner] += points

	r.Tricks = append(r.Tricks, r.PlayedCards)
	r.PlayedCards = nil

	log.Printf("🪙 房间 %s 第 %d 墩结算，赢家 %s，罚分 %d", r.Code, len(r.Tricks), winner, points)

	if len(r.Hands[winner]) == 0 {
		r.finishContract()
		return
	}

	// 赢家领出下一墩
	r.CurrentTurn = winner
	r.broadcast(protocol.MustNewMessage(protocol.MsgTurnChanged, protocol.TurnChangedPayload{
		PlayerID: winner,
	}))
	r.saveSnapshot()
}

// finishContract 当前合约打完，推进合约与王国计数
func (r *Room) finishContract() {
	r.ContractIndex++

	if r.ContractIndex >= len(contract.All) {
		r.ContractIndex = 0
		r.CurrentKingdom++

		if r.CurrentKingdom >= MaxPlayers {
			r.endGame()
			return
		}
	}

	r.broadcast(protocol.MustNewMessage(protocol.MsgUpdateScores, protocol.UpdateScoresPayload{
		Scores: r.scoresCopy(),
	}))

	r.State = types.RoomStateChoosingContract
	r.CurrentTurn = ""
	r.askContractChoice()
	r.saveSnapshot()
}

// endGame 四个王国全部结束，广播终分并冻结房间
// 房间保留在内存中直到所有玩家断开
func (r *Room) endGame() {
	r.State = types.RoomStateEnded
	r.CurrentTurn = ""

	scores := r.scoresCopy()
	r.broadcast(protocol.MustNewMessage(protocol.MsgGameEnded, protocol.GameEndedPayload{
		Scores: scores,
	}))

	log.Printf("🏁 房间 %s 游戏结束，终分: %v", r.Code, scores)

	if r.store != nil {
		records := make(map[string]string, len(r.Players))
		for id, p := range r.Players {
			records[id] = p.Client.GetNickname()
		}
		go func() {
			ctx := context.Background()
			for id, nickname := range records {
				if err := r.store.RecordGameResult(ctx, id, nickname, scores[id]); err != nil {
					log.Printf("记录对局结果失败: %v", err)
				}
			}
		}()
	}

	r.saveSnapshot()
}
