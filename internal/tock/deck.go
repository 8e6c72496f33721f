package tock

import (
	"math/rand"

	"github.com/rocketscienceinc/tock-backend/internal/entity"
	"github.com/rocketscienceinc/tock-backend/internal/pkg"
)

const (
	copiesPerType = 4
	jokerCopies   = 1
	DeckSize      = (len(deckOrder)-1)*copiesPerType + jokerCopies
)

var deckOrder = [...]entity.CardType{
	entity.CardStart1, entity.CardTwo, entity.CardThree, entity.CardBack4,
	entity.CardFive, entity.CardSix, entity.CardSplit7, entity.CardEight,
	entity.CardNine, entity.CardStart10, entity.CardTwelve, entity.CardSwap,
	entity.CardJoker,
}

// NewDeck returns the 49 card multiset in type order, each card with a fresh id.
func NewDeck() []entity.Card {
	deck := make([]entity.Card, 0, DeckSize)
	for _, cardType := range deckOrder {
		copies := copiesPerType
		if cardType.IsJoker() {
			copies = jokerCopies
		}

		for range copies {
			deck = append(deck, entity.Card{ID: pkg.GenerateCardID(), Type: cardType})
		}
	}

	return deck
}

// Shuffle returns a uniformly permuted copy of deck (single Fisher-Yates pass).
// A nil rng uses the global source.
func Shuffle(deck []entity.Card, rng *rand.Rand) []entity.Card {
	intn := rand.Intn //nolint: gosec // game shuffle, not crypto
	if rng != nil {
		intn = rng.Intn
	}

	out := make([]entity.Card, len(deck))
	copy(out, deck)

	for i := len(out) - 1; i > 0; i-- {
		j := intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}

	return out
}
