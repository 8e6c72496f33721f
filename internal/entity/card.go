package entity

import "strconv"

type CardType string

const (
	CardStart1  CardType = "START_1"
	CardTwo     CardType = "2"
	CardThree   CardType = "3"
	CardBack4   CardType = "BACK_4"
	CardFive    CardType = "5"
	CardSix     CardType = "6"
	CardSplit7  CardType = "SPLIT_7"
	CardEight   CardType = "8"
	CardNine    CardType = "9"
	CardStart10 CardType = "START_10"
	CardTwelve  CardType = "12"
	CardSwap    CardType = "SWAP"
	CardJoker   CardType = "JOKER"
)

// CardTypes lists every card type in deck order.
var CardTypes = []CardType{
	CardStart1, CardTwo, CardThree, CardBack4, CardFive, CardSix, CardSplit7,
	CardEight, CardNine, CardStart10, CardTwelve, CardSwap, CardJoker,
}

type Card struct {
	ID   string   `json:"id"`
	Type CardType `json:"type"`
}

func (that CardType) Valid() bool {
	for _, t := range CardTypes {
		if t == that {
			return true
		}
	}

	return false
}

func (that CardType) IsStart() bool {
	return that == CardStart1 || that == CardStart10
}

func (that CardType) IsJoker() bool {
	return that == CardJoker
}

// Steps returns the forward value of a plain numeric card.
func (that CardType) Steps() (int, bool) {
	switch that {
	case CardTwo, CardThree, CardFive, CardSix, CardEight, CardNine, CardTwelve:
		n, err := strconv.Atoi(string(that))
		if err != nil {
			return 0, false
		}
		return n, true
	case CardStart1, CardBack4, CardSplit7, CardStart10, CardSwap, CardJoker:
		return 0, false
	default:
		return 0, false
	}
}
