package tock

import (
	"fmt"

	"github.com/rocketscienceinc/tock-backend/internal/apperror"
	"github.com/rocketscienceinc/tock-backend/internal/entity"
)

// Apply runs a single action against game. Every id the action references
// is checked before anything changes, so a failing action leaves game as it was.
func (that *Engine) Apply(game *entity.Game, action Action) error {
	if !game.IsPlaying() {
		return apperror.ErrGameIsNotStarted
	}

	switch act := action.(type) {
	case PlayCard:
		return that.playCard(game, act)
	case DiscardCards:
		return that.discardCards(game, act)
	case EndTurn:
		return that.endTurn(game, act)
	default:
		return fmt.Errorf("%w: %T", apperror.ErrUnknownAction, action)
	}
}

// playPlan is a fully validated PLAY_CARD, ready to commit.
type playPlan struct {
	player    *entity.Player
	cardIndex int
	cardType  entity.CardType
	pawns     []*entity.Pawn
}

func (that *Engine) playCard(game *entity.Game, act PlayCard) error {
	plan, err := that.validatePlay(game, act)
	if err != nil {
		return fmt.Errorf("invalid play: %w", err)
	}

	switch plan.cardType {
	case entity.CardStart1, entity.CardStart10:
		if err = StartPawn(game, plan.pawns[0]); err != nil {
			return fmt.Errorf("failed to start pawn: %w", err)
		}

	case entity.CardBack4:
		pawn := plan.pawns[0]
		if pawn.Location.IsTrack() {
			pawn.Location = entity.OnTrack(Retreat(pawn.Location.Index, 4, game.Board.TrackLength))
		}

	case entity.CardSwap:
		a, b := plan.pawns[0], plan.pawns[1]
		a.Location, b.Location = b.Location, a.Location

	case entity.CardSplit7:
		// the remainder of 7 / len(pawns) is dropped
		stepsPerPawn := 7 / len(plan.pawns)
		for _, pawn := range plan.pawns {
			if !that.canMoveForward(game, pawn, stepsPerPawn) {
				continue
			}
			if loc, ok := ResolveForwardMove(game, pawn, stepsPerPawn); ok {
				pawn.Location = loc
			}
		}

	case entity.CardTwo, entity.CardThree, entity.CardFive, entity.CardSix,
		entity.CardEight, entity.CardNine, entity.CardTwelve:
		steps, _ := plan.cardType.Steps()
		pawn := plan.pawns[0]
		if loc, ok := ResolveForwardMove(game, pawn, steps); ok {
			pawn.Location = loc
		}

	case entity.CardJoker:
		return apperror.ErrInvalidImpliedType
	}

	card := plan.player.RemoveCard(plan.cardIndex)
	game.DrawPile = append(game.DrawPile, card)

	return nil
}

func (that *Engine) validatePlay(game *entity.Game, act PlayCard) (*playPlan, error) {
	player, err := that.actingPlayer(game, act.Seat)
	if err != nil {
		return nil, err
	}

	cardIndex := player.HandIndex(act.CardID)
	if cardIndex == -1 {
		return nil, fmt.Errorf("%w: %s", apperror.ErrCardNotInHand, act.CardID)
	}

	card := player.Hand[cardIndex]
	cardType := resolveType(card, act.ImpliedType)

	if card.Type.IsJoker() && (!cardType.Valid() || cardType.IsJoker()) {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidImpliedType, act.ImpliedType)
	}

	pawns := make([]*entity.Pawn, 0, len(act.PawnIDs))
	for _, id := range act.PawnIDs {
		pawn, findErr := game.FindPawn(id)
		if findErr != nil {
			return nil, findErr
		}
		pawns = append(pawns, pawn)
	}

	if need := pawnsNeeded(cardType); len(pawns) < need {
		return nil, fmt.Errorf("%w: %s needs %d, got %d", apperror.ErrMissingPawns, cardType, need, len(pawns))
	}

	if cardType.IsStart() {
		if err = CanStartPawn(game, pawns[0]); err != nil {
			return nil, err
		}
	}

	if steps, ok := cardType.Steps(); ok && that.rules.EnforcePieuBlocking {
		pawn := pawns[0]
		if IsPathBlocked(game, ForwardPath(game, pawn, steps), pawn) {
			return nil, fmt.Errorf("%w: pawn %d", apperror.ErrPathBlocked, pawn.ID)
		}
	}

	return &playPlan{
		player:    player,
		cardIndex: cardIndex,
		cardType:  cardType,
		pawns:     pawns,
	}, nil
}

func pawnsNeeded(cardType entity.CardType) int {
	if cardType == entity.CardSwap {
		return 2
	}

	return 1
}

func (that *Engine) discardCards(game *entity.Game, act DiscardCards) error {
	player, err := that.actingPlayer(game, act.Seat)
	if err != nil {
		return fmt.Errorf("invalid discard: %w", err)
	}

	for _, id := range act.CardIDs {
		if i := player.HandIndex(id); i != -1 {
			game.DrawPile = append(game.DrawPile, player.RemoveCard(i))
		}
	}

	return nil
}

func (that *Engine) endTurn(game *entity.Game, act EndTurn) error {
	if that.rules.EnforceTurnOrder && act.Seat != game.TurnIndex {
		return apperror.ErrNotYourTurn
	}

	game.TurnIndex = (game.TurnIndex + 1) % game.PlayerCount()

	return nil
}

func (that *Engine) actingPlayer(game *entity.Game, seat int) (*entity.Player, error) {
	player, err := game.Player(seat)
	if err != nil {
		return nil, err
	}

	if that.rules.EnforceTurnOrder && seat != game.TurnIndex {
		return nil, apperror.ErrNotYourTurn
	}

	return player, nil
}
