package tock

import (
	"github.com/rocketscienceinc/tock-backend/internal/entity"
)

// newTestGame returns a PLAYING game with all pawns at base and no cards anywhere.
func newTestGame(players int) *entity.Game {
	game := entity.NewGame(players, []entity.Card{})
	game.Phase = entity.PhasePlaying

	return game
}

func pawn(game *entity.Game, seat, i int) *entity.Pawn {
	return game.Players[seat].Pawns[i]
}

func place(p *entity.Pawn, loc entity.Location, pieu bool) *entity.Pawn {
	p.Location = loc
	p.IsPieu = pieu

	return p
}

func card(id string, cardType entity.CardType) entity.Card {
	return entity.Card{ID: id, Type: cardType}
}
