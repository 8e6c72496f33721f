package tock

import "github.com/rocketscienceinc/tock-backend/internal/entity"

// Action is one player command applied by Engine.Apply.
type Action interface {
	action()
}

// PlayCard plays CardID from Seat's hand on PawnIDs. ImpliedType is the
// type a joker stands for.
type PlayCard struct {
	Seat        int
	CardID      string
	PawnIDs     []int
	ImpliedType entity.CardType
}

// DiscardCards returns the named cards from Seat's hand to the draw pile.
type DiscardCards struct {
	Seat    int
	CardIDs []string
}

// EndTurn passes the turn to the next seat.
type EndTurn struct {
	Seat int
}

func (PlayCard) action()     {}
func (DiscardCards) action() {}
func (EndTurn) action()      {}
