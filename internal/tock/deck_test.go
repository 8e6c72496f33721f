package tock

import (
	"math/rand"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tock-backend/internal/entity"
)

func countByType(deck []entity.Card) map[entity.CardType]int {
	return lo.CountValuesBy(deck, func(c entity.Card) entity.CardType { return c.Type })
}

func TestNewDeck(t *testing.T) {
	// When: building a fresh deck
	deck := NewDeck()

	// Then: 12 types appear 4 times and the joker once
	require.Len(t, deck, 49)
	require.Equal(t, DeckSize, len(deck))

	counts := countByType(deck)
	for _, cardType := range entity.CardTypes {
		if cardType.IsJoker() {
			assert.Equal(t, 1, counts[cardType])
			continue
		}
		assert.Equal(t, 4, counts[cardType], "type %s", cardType)
	}

	// And: every card id is unique
	ids := lo.Map(deck, func(c entity.Card, _ int) string { return c.ID })
	assert.Len(t, lo.Uniq(ids), len(deck))
}

func TestShuffle(t *testing.T) {
	t.Run("Preserves the card multiset", func(t *testing.T) {
		// Given: a fresh deck
		deck := NewDeck()

		// When: shuffling it
		shuffled := Shuffle(deck, rand.New(rand.NewSource(7))) //nolint: gosec // test

		// Then: the same cards are present in some order
		require.Len(t, shuffled, len(deck))
		assert.Equal(t, countByType(deck), countByType(shuffled))
		assert.ElementsMatch(t, deck, shuffled)
	})

	t.Run("Does not reorder the input", func(t *testing.T) {
		deck := NewDeck()
		before := append([]entity.Card(nil), deck...)

		_ = Shuffle(deck, rand.New(rand.NewSource(1))) //nolint: gosec // test

		assert.Equal(t, before, deck)
	})

	t.Run("Same seed gives the same order", func(t *testing.T) {
		deck := NewDeck()

		a := Shuffle(deck, rand.New(rand.NewSource(42))) //nolint: gosec // test
		b := Shuffle(deck, rand.New(rand.NewSource(42))) //nolint: gosec // test

		assert.Equal(t, a, b)
	})

	t.Run("Every card can reach the top", func(t *testing.T) {
		// Given: a small deck shuffled many times
		deck := []entity.Card{card("a", entity.CardTwo), card("b", entity.CardThree), card("c", entity.CardFive)}
		rng := rand.New(rand.NewSource(3)) //nolint: gosec // test
		tops := map[string]int{}

		for range 3000 {
			tops[Shuffle(deck, rng)[0].ID]++
		}

		// Then: each card leads roughly a third of the time
		for _, c := range deck {
			assert.InDelta(t, 1000, tops[c.ID], 150, "card %s", c.ID)
		}
	})
}
