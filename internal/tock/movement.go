package tock

import (
	"fmt"

	"github.com/rocketscienceinc/tock-backend/internal/apperror"
	"github.com/rocketscienceinc/tock-backend/internal/entity"
)

func Advance(index, steps, trackLength int) int {
	return ((index+steps)%trackLength + trackLength) % trackLength
}

func Retreat(index, steps, trackLength int) int {
	return Advance(index, -steps, trackLength)
}

// ResolveForwardMove reports where pawn would land after steps, without
// applying blocking or capture. ok is false when the pawn is not on the track.
func ResolveForwardMove(game *entity.Game, pawn *entity.Pawn, steps int) (entity.Location, bool) {
	if !pawn.Location.IsTrack() {
		return entity.Location{}, false
	}

	trackLength := game.Board.TrackLength
	homeEntry := game.Board.HomeEntryIndices[pawn.OwnerID]
	current := pawn.Location.Index

	for i := 1; i <= steps; i++ {
		next := Advance(current, 1, trackLength)

		if next == homeEntry {
			if remaining := steps - i; remaining < game.Board.HomeLength {
				return entity.AtHome(remaining), true
			}
		}

		current = next
	}

	return entity.OnTrack(current), true
}

// ForwardPath lists the track cells a forward move passes through, excluding
// the starting cell. A move that ends in the home path stops at the home entry.
func ForwardPath(game *entity.Game, pawn *entity.Pawn, steps int) []int {
	if !pawn.Location.IsTrack() {
		return nil
	}

	dest, ok := ResolveForwardMove(game, pawn, steps)
	if !ok {
		return nil
	}

	trackLength := game.Board.TrackLength
	cells := make([]int, 0, steps)
	current := pawn.Location.Index

	for range steps {
		current = Advance(current, 1, trackLength)
		cells = append(cells, current)

		if dest.Kind == entity.LocationHome && current == game.Board.HomeEntryIndices[pawn.OwnerID] {
			break
		}
	}

	return cells
}

// IsPathBlocked is true when any cell holds a pieu pawn other than except.
func IsPathBlocked(game *entity.Game, cells []int, except *entity.Pawn) bool {
	for _, idx := range cells {
		pawn := game.PawnAtTrackIndex(idx)
		if pawn != nil && pawn != except && pawn.IsPieu {
			return true
		}
	}

	return false
}

func CanCapture(attacker, target *entity.Pawn) bool {
	if target.IsPieu {
		return false
	}

	return target.OwnerID != attacker.OwnerID
}

func CapturePawn(target *entity.Pawn) {
	target.Location = entity.AtBase()
	target.IsPieu = false
}

// CanStartPawn checks StartPawn's preconditions without touching the game.
func CanStartPawn(game *entity.Game, pawn *entity.Pawn) error {
	if !pawn.Location.IsBase() {
		return fmt.Errorf("%w: pawn %d is at %s", apperror.ErrStartBlocked, pawn.ID, pawn.Location)
	}

	startIndex := game.Board.StartIndices[pawn.OwnerID]

	if occupant := game.PawnAtTrackIndex(startIndex); occupant != nil && !CanCapture(pawn, occupant) {
		return fmt.Errorf("%w: cell %d held by pawn %d", apperror.ErrStartBlocked, startIndex, occupant.ID)
	}

	return nil
}

// StartPawn moves a base pawn onto its owner's start cell as a pieu, capturing
// an opposing non-pieu occupant.
func StartPawn(game *entity.Game, pawn *entity.Pawn) error {
	if err := CanStartPawn(game, pawn); err != nil {
		return err
	}

	startIndex := game.Board.StartIndices[pawn.OwnerID]

	if occupant := game.PawnAtTrackIndex(startIndex); occupant != nil {
		CapturePawn(occupant)
	}

	pawn.Location = entity.OnTrack(startIndex)
	pawn.IsPieu = true

	return nil
}
