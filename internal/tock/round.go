package tock

import (
	"fmt"

	"github.com/rocketscienceinc/tock-backend/internal/apperror"
	"github.com/rocketscienceinc/tock-backend/internal/entity"
)

// DrawCards deals CardsPerDeal rounds, one card per seat per round, starting
// at FirstPlayerIndex. Nothing is dealt when the pile cannot cover the full deal.
func DrawCards(game *entity.Game) error {
	playerCount := game.PlayerCount()

	if need := entity.CardsPerDeal * playerCount; len(game.DrawPile) < need {
		return fmt.Errorf("%w: need %d cards, have %d", apperror.ErrDrawPileEmpty, need, len(game.DrawPile))
	}

	seat := game.FirstPlayerIndex
	for range entity.CardsPerDeal {
		for range playerCount {
			card := game.DrawPile[0]
			game.DrawPile = game.DrawPile[1:]

			player := game.Players[seat]
			player.Hand = append(player.Hand, card)

			seat = (seat + 1) % playerCount
		}
	}

	return nil
}

// EndRound rotates the first player, hands them the turn and deals again.
// The pointers are restored if the deal fails.
func EndRound(game *entity.Game) error {
	prevFirst, prevTurn := game.FirstPlayerIndex, game.TurnIndex

	game.FirstPlayerIndex = (game.FirstPlayerIndex + 1) % game.PlayerCount()
	game.TurnIndex = game.FirstPlayerIndex

	if err := DrawCards(game); err != nil {
		game.FirstPlayerIndex, game.TurnIndex = prevFirst, prevTurn
		return fmt.Errorf("failed to deal new round: %w", err)
	}

	return nil
}

// RoundOver is true once every hand is empty.
func RoundOver(game *entity.Game) bool {
	for _, player := range game.Players {
		if len(player.Hand) > 0 {
			return false
		}
	}

	return true
}
