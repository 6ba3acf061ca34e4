package card

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Suit 定义花色
type Suit int

// Rank 定义点数
//
// 注意：点数按强弱倒序编号，A 为 0 且最大，2 为 12 且最小。
type Rank int

// Card 定义一张牌
type Card struct {
	Suit Suit
	Rank Rank
}

const (
	Spades   Suit = iota // 黑桃
	Hearts               // 红心
	Diamonds             // 方块
	Clubs                // 梅花
)

// Suits 花色枚举顺序
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Spades:   "♠",
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
}

var suitNames = map[Suit]string{
	Spades:   "SPADES",
	Hearts:   "HEARTS",
	Diamonds: "DIAMONDS",
	Clubs:    "CLUBS",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return "?"
}

// Name 返回花色的英文名
func (s Suit) Name() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsRed 红心和方块为红色
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

const (
	Ace Rank = iota
	King
	Queen
	Jack
	Ten
	Nine
	Eight
	Seven
	Six
	Five
	Four
	Three
	Two
)

// NumRanks 每种花色的牌数
const NumRanks = 13

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	Ace:   "A",
	King:  "K",
	Queen: "Q",
	Jack:  "J",
	Ten:   "10",
	Nine:  "9",
	Eight: "8",
	Seven: "7",
	Six:   "6",
	Five:  "5",
	Four:  "4",
	Three: "3",
	Two:   "2",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "?"
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// RankGreater 判断 a 的点数是否大于 b（编号越小越大）
func RankGreater(a, b Card) bool {
	return a.Rank < b.Rank
}

// charToRank 用于快速查找字符对应的 Rank
var charToRank = map[rune]Rank{
	'A': Ace,
	'K': King,
	'Q': Queen,
	'J': Jack,
	'T': Ten,
	'9': Nine,
	'8': Eight,
	'7': Seven,
	'6': Six,
	'5': Five,
	'4': Four,
	'3': Three,
	'2': Two,
}

var charToSuit = map[rune]Suit{
	'S': Spades,
	'H': Hearts,
	'D': Diamonds,
	'C': Clubs,
	'♠': Spades,
	'♥': Hearts,
	'♦': Diamonds,
	'♣': Clubs,
}

// Parse 把 "QH"、"10h"、"Q♥"、"TS" 之类的文本解析为一张牌
func Parse(text string) (Card, error) {
	clean := strings.ToUpper(strings.TrimSpace(text))
	clean = strings.ReplaceAll(clean, "10", "T")
	runes := []rune(clean)
	if len(runes) != 2 {
		return Card{}, fmt.Errorf("无法识别的牌: %q", text)
	}
	rank, ok := charToRank[runes[0]]
	if !ok {
		return Card{}, fmt.Errorf("无法识别的点数: %c", runes[0])
	}
	suit, ok := charToSuit[runes[1]]
	if !ok {
		return Card{}, fmt.Errorf("无法识别的花色: %c", runes[1])
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// Deck 定义一副牌
type Deck []Card

// NewDeck 按花色枚举顺序生成 52 张牌，同花色内 A 在前
func NewDeck() Deck {
	deck := make(Deck, 0, len(Suits)*NumRanks)
	for _, s := range Suits {
		for r := Ace; r <= Two; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// OfSuit 返回该花色的全部牌（从大到小）
func (d Deck) OfSuit(s Suit) []Card {
	var cards []Card
	for _, c := range d {
		if c.Suit == s {
			cards = append(cards, c)
		}
	}
	return cards
}

// Shuffle 使用给定的随机源洗牌
func (d Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// DealOut 洗牌后依次给每个座位发 cardsPerSeat 张牌。
// 返回 numSeats+1 手牌，最后一手为剩余的底牌，不参与游戏。
func DealOut(deck Deck, rng *rand.Rand, numSeats, cardsPerSeat int) []Hand {
	shuffled := make(Deck, len(deck))
	copy(shuffled, deck)
	shuffled.Shuffle(rng)

	hands := make([]Hand, numSeats+1)
	next := 0
	for seat := range numSeats {
		hands[seat] = make(Hand, 0, cardsPerSeat)
		for range cardsPerSeat {
			hands[seat] = append(hands[seat], shuffled[next])
			next++
		}
	}
	hands[numSeats] = append(Hand{}, shuffled[next:]...)
	return hands
}
