package entity

const (
	// BasePlayers is the geometric unit: start cells are spaced as if 4 seats shared the track.
	BasePlayers    = 4
	TrackPerPart   = 32
	HomePathLength = 4
)

// BoardConfig is computed once per game and never changes after that.
type BoardConfig struct {
	PlayerCount      int   `json:"playerCount"`
	TrackLength      int   `json:"trackLength"`
	HomeLength       int   `json:"homeLength"`
	StartIndices     []int `json:"startIndices"`
	HomeEntryIndices []int `json:"homeEntryIndices"`
}

// TrackLength grows by whole 32-cell segments, one per pair of extra seats.
func TrackLength(playerCount int) int {
	if playerCount <= BasePlayers {
		return TrackPerPart * 2
	}

	extensions := (playerCount - BasePlayers + 1) / 2

	return TrackPerPart * (2 + extensions)
}

// StartIndices spaces seats a quarter track apart up to 4 seats; larger tables
// divide the extended track evenly so every start stays inside [0, trackLength).
func StartIndices(playerCount, trackLength int) []int {
	unit := max(playerCount, BasePlayers)

	indices := make([]int, playerCount)
	for i := range indices {
		indices[i] = i * trackLength / unit
	}

	return indices
}

// NewBoardConfig - home entry cells coincide with start cells.
func NewBoardConfig(playerCount int) BoardConfig {
	trackLength := TrackLength(playerCount)

	return BoardConfig{
		PlayerCount:      playerCount,
		TrackLength:      trackLength,
		HomeLength:       HomePathLength,
		StartIndices:     StartIndices(playerCount, trackLength),
		HomeEntryIndices: StartIndices(playerCount, trackLength),
	}
}
