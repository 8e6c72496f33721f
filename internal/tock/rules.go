package tock

// Rules holds the table options that are left open by the base game.
type Rules struct {
	// EnforcePieuBlocking rejects forward moves that would pass a pieu pawn.
	EnforcePieuBlocking bool
	// EnforceTurnOrder only lets the seat at TurnIndex play, discard or end the turn.
	EnforceTurnOrder bool
}

// DefaultRules matches the classic table: no blocking, no turn gate.
func DefaultRules() Rules {
	return Rules{}
}
