package tock

import (
	"github.com/samber/lo"

	"github.com/rocketscienceinc/tock-backend/internal/entity"
)

// LegalMove names a pawn and the card that can move it. ImpliedType is set
// only when CardID is a joker.
type LegalMove struct {
	PawnID      int             `json:"pawnId"`
	CardID      string          `json:"cardId"`
	ImpliedType entity.CardType `json:"asCardType,omitempty"`
}

type Engine struct {
	rules Rules
}

func New(rules Rules) *Engine {
	return &Engine{rules: rules}
}

func (that *Engine) Rules() Rules {
	return that.rules
}

// resolveType returns the type a card is played as; jokers take implied.
func resolveType(card entity.Card, implied entity.CardType) entity.CardType {
	if card.Type.IsJoker() {
		return implied
	}

	return card.Type
}

// CanPlay reports whether pawn satisfies card's per-pawn precondition.
func (that *Engine) CanPlay(game *entity.Game, pawn *entity.Pawn, card entity.Card, implied entity.CardType) bool {
	cardType := resolveType(card, implied)

	switch cardType {
	case entity.CardStart1, entity.CardStart10:
		return pawn.Location.IsBase()
	case entity.CardBack4, entity.CardSplit7:
		return pawn.Location.IsTrack()
	case entity.CardSwap, entity.CardJoker:
		return false
	case entity.CardTwo, entity.CardThree, entity.CardFive, entity.CardSix,
		entity.CardEight, entity.CardNine, entity.CardTwelve:
		steps, _ := cardType.Steps()
		return that.canMoveForward(game, pawn, steps)
	default:
		return false
	}
}

func (that *Engine) canMoveForward(game *entity.Game, pawn *entity.Pawn, steps int) bool {
	if !pawn.Location.IsTrack() {
		return false
	}

	if _, ok := ResolveForwardMove(game, pawn, steps); !ok {
		return false
	}

	if that.rules.EnforcePieuBlocking {
		return !IsPathBlocked(game, ForwardPath(game, pawn, steps), pawn)
	}

	return true
}

// GenerateLegalMoves enumerates every playable (pawn, card) pair for seat.
// A joker is tried as each other non-joker card type in the hand.
func (that *Engine) GenerateLegalMoves(game *entity.Game, seat int) []LegalMove {
	player, err := game.Player(seat)
	if err != nil {
		return nil
	}

	var moves []LegalMove

	for _, card := range player.Hand {
		if !card.Type.IsJoker() {
			for _, pawn := range player.Pawns {
				if that.CanPlay(game, pawn, card, "") {
					moves = append(moves, LegalMove{PawnID: pawn.ID, CardID: card.ID})
				}
			}
			continue
		}

		for _, mimic := range mimicTypes(player.Hand) {
			for _, pawn := range player.Pawns {
				if that.CanPlay(game, pawn, card, mimic) {
					moves = append(moves, LegalMove{PawnID: pawn.ID, CardID: card.ID, ImpliedType: mimic})
				}
			}
		}
	}

	return moves
}

// mimicTypes lists the distinct non-joker types in hand, in hand order.
func mimicTypes(hand []entity.Card) []entity.CardType {
	types := lo.FilterMap(hand, func(c entity.Card, _ int) (entity.CardType, bool) {
		return c.Type, !c.Type.IsJoker()
	})

	return lo.Uniq(types)
}

// ForcedDiscard returns the cards seat must throw away, or nil when a move exists.
// With pawns on the track but nothing playable the first card in hand order
// is the one discarded.
func (that *Engine) ForcedDiscard(game *entity.Game, seat int) []entity.Card {
	player, err := game.Player(seat)
	if err != nil {
		return nil
	}

	onTrack := player.PawnsOnTrack()
	hasStart := lo.ContainsBy(player.Hand, func(c entity.Card) bool { return c.Type.IsStart() })

	if onTrack == 0 && !hasStart {
		return append([]entity.Card(nil), player.Hand...)
	}

	if onTrack > 0 && len(player.Hand) > 0 && len(that.GenerateLegalMoves(game, seat)) == 0 {
		return []entity.Card{player.Hand[0]}
	}

	return nil
}
