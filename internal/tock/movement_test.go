package tock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tock-backend/internal/apperror"
	"github.com/rocketscienceinc/tock-backend/internal/entity"
)

func TestAdvance(t *testing.T) {
	assert.Equal(t, 5, Advance(2, 3, 64))
	assert.Equal(t, 1, Advance(62, 3, 64))
	assert.Equal(t, 62, Retreat(2, 4, 64))
	assert.Equal(t, 0, Retreat(4, 4, 64))
}

func TestCanCapture(t *testing.T) {
	game := newTestGame(4)
	attacker := pawn(game, 0, 0)

	t.Run("Opposing non-pieu pawn", func(t *testing.T) {
		assert.True(t, CanCapture(attacker, place(pawn(game, 1, 0), entity.OnTrack(10), false)))
	})

	t.Run("Opposing pieu pawn", func(t *testing.T) {
		assert.False(t, CanCapture(attacker, place(pawn(game, 1, 1), entity.OnTrack(11), true)))
	})

	t.Run("Own pawn", func(t *testing.T) {
		assert.False(t, CanCapture(attacker, place(pawn(game, 0, 1), entity.OnTrack(12), false)))
	})
}

func TestStartPawn(t *testing.T) {
	t.Run("Empty start cell", func(t *testing.T) {
		// Given: a 4-player game with seat 1's pawn at base
		game := newTestGame(4)
		p := pawn(game, 1, 0)

		// When: starting it
		require.NoError(t, StartPawn(game, p))

		// Then: it sits on seat 1's start cell as a pieu
		assert.Equal(t, entity.OnTrack(16), p.Location)
		assert.True(t, p.IsPieu)
	})

	t.Run("Captures an opposing non-pieu occupant", func(t *testing.T) {
		// Given: seat 2 resting on seat 1's start cell
		game := newTestGame(4)
		occupant := place(pawn(game, 2, 0), entity.OnTrack(16), false)
		p := pawn(game, 1, 0)

		// When: seat 1 starts a pawn
		require.NoError(t, StartPawn(game, p))

		// Then: the occupant goes back to base
		assert.Equal(t, entity.OnTrack(16), p.Location)
		assert.Equal(t, entity.AtBase(), occupant.Location)
		assert.False(t, occupant.IsPieu)
	})

	t.Run("Pieu occupant blocks the start", func(t *testing.T) {
		game := newTestGame(4)
		occupant := place(pawn(game, 2, 0), entity.OnTrack(16), true)
		p := pawn(game, 1, 0)

		err := StartPawn(game, p)

		require.ErrorIs(t, err, apperror.ErrStartBlocked)
		assert.Equal(t, entity.AtBase(), p.Location)
		assert.Equal(t, entity.OnTrack(16), occupant.Location)
	})

	t.Run("Own occupant blocks the start", func(t *testing.T) {
		game := newTestGame(4)
		place(pawn(game, 1, 1), entity.OnTrack(16), false)

		err := StartPawn(game, pawn(game, 1, 0))

		require.ErrorIs(t, err, apperror.ErrStartBlocked)
	})

	t.Run("Pawn already out of base", func(t *testing.T) {
		game := newTestGame(4)
		p := place(pawn(game, 1, 0), entity.OnTrack(20), false)

		err := StartPawn(game, p)

		require.ErrorIs(t, err, apperror.ErrStartBlocked)
		assert.Equal(t, entity.OnTrack(20), p.Location)
	})
}

func TestResolveForwardMove(t *testing.T) {
	t.Run("Plain track move", func(t *testing.T) {
		// Given: seat 0 (home entry 0) at index 15
		game := newTestGame(4)
		p := place(pawn(game, 0, 0), entity.OnTrack(15), false)

		// When: resolving one step
		loc, ok := ResolveForwardMove(game, p, 1)

		// Then: it lands on TRACK(16)
		require.True(t, ok)
		assert.Equal(t, entity.OnTrack(16), loc)
	})

	t.Run("Wraps around the track", func(t *testing.T) {
		game := newTestGame(4)
		p := place(pawn(game, 1, 0), entity.OnTrack(62), false)

		loc, ok := ResolveForwardMove(game, p, 5)

		require.True(t, ok)
		assert.Equal(t, entity.OnTrack(3), loc)
	})

	t.Run("Enters home with remaining steps", func(t *testing.T) {
		// Given: seat 1 (home entry 16) two cells before its entry
		game := newTestGame(4)
		p := place(pawn(game, 1, 0), entity.OnTrack(14), false)

		// When: moving 5 steps
		loc, ok := ResolveForwardMove(game, p, 5)

		// Then: entry is reached after 2 steps, 3 remain
		require.True(t, ok)
		assert.Equal(t, entity.AtHome(3), loc)
	})

	t.Run("Exact landing on the entry goes home at 0", func(t *testing.T) {
		game := newTestGame(4)
		p := place(pawn(game, 1, 0), entity.OnTrack(15), false)

		loc, ok := ResolveForwardMove(game, p, 1)

		require.True(t, ok)
		assert.Equal(t, entity.AtHome(0), loc)
	})

	t.Run("Too many steps passes the entry", func(t *testing.T) {
		game := newTestGame(4)
		p := place(pawn(game, 1, 0), entity.OnTrack(14), false)

		loc, ok := ResolveForwardMove(game, p, 8)

		require.True(t, ok)
		assert.Equal(t, entity.OnTrack(22), loc)
	})

	t.Run("Not on the track", func(t *testing.T) {
		game := newTestGame(4)

		_, ok := ResolveForwardMove(game, pawn(game, 0, 0), 3)

		assert.False(t, ok)
	})
}

func TestForwardPath(t *testing.T) {
	t.Run("Track destination", func(t *testing.T) {
		game := newTestGame(4)
		p := place(pawn(game, 1, 0), entity.OnTrack(62), false)

		assert.Equal(t, []int{63, 0, 1}, ForwardPath(game, p, 3))
	})

	t.Run("Home destination stops at the entry", func(t *testing.T) {
		game := newTestGame(4)
		p := place(pawn(game, 1, 0), entity.OnTrack(14), false)

		assert.Equal(t, []int{15, 16}, ForwardPath(game, p, 5))
	})

	t.Run("Base pawn has no path", func(t *testing.T) {
		game := newTestGame(4)

		assert.Empty(t, ForwardPath(game, pawn(game, 0, 0), 3))
	})
}

func TestIsPathBlocked(t *testing.T) {
	game := newTestGame(4)
	mover := place(pawn(game, 0, 0), entity.OnTrack(2), true)
	place(pawn(game, 1, 0), entity.OnTrack(4), false)

	assert.False(t, IsPathBlocked(game, []int{3, 4, 5}, mover))

	place(pawn(game, 2, 0), entity.OnTrack(5), true)
	assert.True(t, IsPathBlocked(game, []int{3, 4, 5}, mover))

	assert.False(t, IsPathBlocked(game, []int{2}, mover))
}
