package tock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tock-backend/internal/entity"
)

func TestGenerateLegalMoves(t *testing.T) {
	engine := New(DefaultRules())

	t.Run("Start card with only a track pawn", func(t *testing.T) {
		// Given: seat 0 has every pawn out of base and only a start card
		game := newTestGame(4)
		for i := range entity.PawnsPerPlayer {
			place(pawn(game, 0, i), entity.OnTrack(20+i), false)
		}
		game.Players[0].Hand = []entity.Card{card("s1", entity.CardStart1)}

		// When: generating moves
		moves := engine.GenerateLegalMoves(game, 0)

		// Then: the start card has nowhere to go
		assert.Empty(t, moves)
	})

	t.Run("Start card with base pawns", func(t *testing.T) {
		game := newTestGame(4)
		game.Players[0].Hand = []entity.Card{card("s10", entity.CardStart10)}

		moves := engine.GenerateLegalMoves(game, 0)

		assert.Len(t, moves, entity.PawnsPerPlayer)
		for _, move := range moves {
			assert.Equal(t, "s10", move.CardID)
			assert.Empty(t, move.ImpliedType)
		}
	})

	t.Run("Numeric card only moves track pawns", func(t *testing.T) {
		game := newTestGame(4)
		place(pawn(game, 0, 2), entity.OnTrack(5), false)
		game.Players[0].Hand = []entity.Card{card("c5", entity.CardFive)}

		moves := engine.GenerateLegalMoves(game, 0)

		assert.Equal(t, []LegalMove{{PawnID: entity.PawnID(0, 2), CardID: "c5"}}, moves)
	})

	t.Run("Swap never appears", func(t *testing.T) {
		game := newTestGame(4)
		place(pawn(game, 0, 0), entity.OnTrack(5), false)
		game.Players[0].Hand = []entity.Card{card("sw", entity.CardSwap)}

		assert.Empty(t, engine.GenerateLegalMoves(game, 0))
	})

	t.Run("Joker mimics each distinct type in hand", func(t *testing.T) {
		// Given: a base pawn, a track pawn, a joker and two copies of a start card
		game := newTestGame(4)
		place(pawn(game, 0, 0), entity.OnTrack(5), false)
		game.Players[0].Pawns = game.Players[0].Pawns[:2]
		game.Players[0].Hand = []entity.Card{
			card("j", entity.CardJoker),
			card("s1a", entity.CardStart1),
			card("s1b", entity.CardStart1),
			card("b4", entity.CardBack4),
		}

		// When: generating moves
		moves := engine.GenerateLegalMoves(game, 0)

		// Then: the joker appears once per mimicked type and legal pawn
		var jokerMoves []LegalMove
		for _, move := range moves {
			if move.CardID == "j" {
				jokerMoves = append(jokerMoves, move)
			}
		}
		assert.ElementsMatch(t, []LegalMove{
			{PawnID: entity.PawnID(0, 1), CardID: "j", ImpliedType: entity.CardStart1},
			{PawnID: entity.PawnID(0, 0), CardID: "j", ImpliedType: entity.CardBack4},
		}, jokerMoves)
	})

	t.Run("Lonely joker has no moves", func(t *testing.T) {
		game := newTestGame(4)
		game.Players[0].Hand = []entity.Card{card("j", entity.CardJoker)}

		assert.Empty(t, engine.GenerateLegalMoves(game, 0))
	})

	t.Run("Unknown seat", func(t *testing.T) {
		assert.Nil(t, engine.GenerateLegalMoves(newTestGame(2), 5))
	})
}

func TestGenerateLegalMovesBlocking(t *testing.T) {
	// Given: a pieu two cells ahead of seat 0's pawn
	game := newTestGame(4)
	place(pawn(game, 0, 0), entity.OnTrack(5), false)
	place(pawn(game, 1, 0), entity.OnTrack(7), true)
	game.Players[0].Hand = []entity.Card{card("c3", entity.CardThree)}

	t.Run("Blocking off", func(t *testing.T) {
		assert.Len(t, New(DefaultRules()).GenerateLegalMoves(game, 0), 1)
	})

	t.Run("Blocking on", func(t *testing.T) {
		engine := New(Rules{EnforcePieuBlocking: true})

		assert.Empty(t, engine.GenerateLegalMoves(game, 0))
	})
}

func TestForcedDiscard(t *testing.T) {
	engine := New(DefaultRules())

	t.Run("No track pawns and no start card", func(t *testing.T) {
		// Given: a hand holding a single 2
		game := newTestGame(4)
		game.Players[0].Hand = []entity.Card{card("c2", entity.CardTwo)}

		// When: asking for the forced discard
		discard := engine.ForcedDiscard(game, 0)

		// Then: the whole hand goes
		require.Len(t, discard, 1)
		assert.Equal(t, "c2", discard[0].ID)
	})

	t.Run("Returned slice is a copy", func(t *testing.T) {
		game := newTestGame(4)
		game.Players[0].Hand = []entity.Card{card("c2", entity.CardTwo), card("c3", entity.CardThree)}

		discard := engine.ForcedDiscard(game, 0)
		discard[0] = card("x", entity.CardNine)

		assert.Equal(t, "c2", game.Players[0].Hand[0].ID)
	})

	t.Run("Start card in hand", func(t *testing.T) {
		game := newTestGame(4)
		game.Players[0].Hand = []entity.Card{card("c2", entity.CardTwo), card("s1", entity.CardStart1)}

		assert.Nil(t, engine.ForcedDiscard(game, 0))
	})

	t.Run("Track pawn with a playable card", func(t *testing.T) {
		game := newTestGame(4)
		place(pawn(game, 0, 0), entity.OnTrack(5), false)
		game.Players[0].Hand = []entity.Card{card("c2", entity.CardTwo)}

		assert.Nil(t, engine.ForcedDiscard(game, 0))
	})

	t.Run("Track pawn and nothing playable", func(t *testing.T) {
		// Given: every pawn out of base and only start cards and a swap
		game := newTestGame(4)
		for i := range entity.PawnsPerPlayer {
			place(pawn(game, 0, i), entity.OnTrack(30+i), false)
		}
		game.Players[0].Hand = []entity.Card{card("sw", entity.CardSwap), card("s1", entity.CardStart1)}

		// When
		discard := engine.ForcedDiscard(game, 0)

		// Then: only the first card is thrown away
		assert.Equal(t, []entity.Card{card("sw", entity.CardSwap)}, discard)
	})
}
