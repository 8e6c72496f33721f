package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tock-backend/internal/apperror"
)

type Phase string

const (
	PhaseSetup   Phase = "SETUP"
	PhasePlaying Phase = "PLAYING"
	// PhaseFinished is reserved; no win condition moves a game there yet.
	PhaseFinished Phase = "FINISHED"
)

const CardsPerDeal = 4

type Player struct {
	ID    int     `json:"id"`
	Pawns []*Pawn `json:"pawns"`
	Hand  []Card  `json:"hand"`
}

// Game is the authoritative state of one table. It is owned by exactly one room.
type Game struct {
	Board            BoardConfig `json:"board"`
	Players          []*Player   `json:"players"`
	DrawPile         []Card      `json:"drawPile"`
	TurnIndex        int         `json:"turnIndex"`
	FirstPlayerIndex int         `json:"firstPlayerIndex"`
	Phase            Phase       `json:"phase"`
}

// NewGame builds a game in SETUP with every pawn at base and deck as the draw pile.
func NewGame(playerCount int, deck []Card) *Game {
	players := make([]*Player, playerCount)
	for seat := range players {
		pawns := make([]*Pawn, PawnsPerPlayer)
		for i := range pawns {
			pawns[i] = &Pawn{
				ID:       PawnID(seat, i),
				OwnerID:  seat,
				Location: AtBase(),
			}
		}

		players[seat] = &Player{
			ID:    seat,
			Pawns: pawns,
			Hand:  []Card{},
		}
	}

	return &Game{
		Board:    NewBoardConfig(playerCount),
		Players:  players,
		DrawPile: deck,
		Phase:    PhaseSetup,
	}
}

func (that *Game) PlayerCount() int {
	return len(that.Players)
}

func (that *Game) IsPlaying() bool {
	return that.Phase == PhasePlaying
}

func (that *Game) Player(seat int) (*Player, error) {
	if seat < 0 || seat >= len(that.Players) {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidSeat, seat)
	}

	return that.Players[seat], nil
}

func (that *Game) AllPawns() []*Pawn {
	pawns := make([]*Pawn, 0, len(that.Players)*PawnsPerPlayer)
	for _, player := range that.Players {
		pawns = append(pawns, player.Pawns...)
	}

	return pawns
}

func (that *Game) FindPawn(id int) (*Pawn, error) {
	for _, player := range that.Players {
		for _, pawn := range player.Pawns {
			if pawn.ID == id {
				return pawn, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %d", apperror.ErrPawnNotFound, id)
}

func (that *Game) PawnAtTrackIndex(index int) *Pawn {
	for _, player := range that.Players {
		for _, pawn := range player.Pawns {
			if pawn.Location.IsTrack() && pawn.Location.Index == index {
				return pawn
			}
		}
	}

	return nil
}

// HandIndex returns the position of cardID in the hand, or -1.
func (that *Player) HandIndex(cardID string) int {
	for i, card := range that.Hand {
		if card.ID == cardID {
			return i
		}
	}

	return -1
}

// RemoveCard takes the card at index i out of the hand, keeping order.
func (that *Player) RemoveCard(i int) Card {
	card := that.Hand[i]
	that.Hand = append(that.Hand[:i], that.Hand[i+1:]...)

	return card
}

func (that *Player) PawnsOnTrack() int {
	n := 0
	for _, pawn := range that.Pawns {
		if pawn.Location.IsTrack() {
			n++
		}
	}

	return n
}
