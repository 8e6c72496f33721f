package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

const PawnsPerPlayer = 4

var ErrUnknownLocation = errors.New("unknown pawn location")

type LocationKind string

const (
	LocationBase     LocationKind = "BASE"
	LocationStart    LocationKind = "START"
	LocationTrack    LocationKind = "TRACK"
	LocationHome     LocationKind = "HOME"
	LocationFinished LocationKind = "FINISHED"
)

// Location is exactly one of BASE, START, TRACK(index), HOME(index) or FINISHED.
// Index is meaningful only for TRACK and HOME.
type Location struct {
	Kind  LocationKind
	Index int
}

func AtBase() Location {
	return Location{Kind: LocationBase}
}

func AtStart() Location {
	return Location{Kind: LocationStart}
}

func OnTrack(index int) Location {
	return Location{Kind: LocationTrack, Index: index}
}

func AtHome(index int) Location {
	return Location{Kind: LocationHome, Index: index}
}

func AtFinish() Location {
	return Location{Kind: LocationFinished}
}

func (that Location) IsBase() bool {
	return that.Kind == LocationBase
}

func (that Location) IsTrack() bool {
	return that.Kind == LocationTrack
}

func (that Location) String() string {
	switch that.Kind {
	case LocationTrack, LocationHome:
		return fmt.Sprintf("%s(%d)", that.Kind, that.Index)
	case LocationBase, LocationStart, LocationFinished:
		return string(that.Kind)
	default:
		return "UNKNOWN"
	}
}

type locationJSON struct {
	Type  LocationKind `json:"type"`
	Index *int         `json:"index,omitempty"`
}

func (that Location) MarshalJSON() ([]byte, error) {
	out := locationJSON{Type: that.Kind}

	switch that.Kind {
	case LocationTrack, LocationHome:
		idx := that.Index
		out.Index = &idx
	case LocationBase, LocationStart, LocationFinished:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocation, that.Kind)
	}

	return json.Marshal(out)
}

func (that *Location) UnmarshalJSON(data []byte) error {
	var in locationJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("failed to unmarshal location: %w", err)
	}

	switch in.Type {
	case LocationTrack, LocationHome:
		if in.Index == nil {
			return fmt.Errorf("%w: %s without index", ErrUnknownLocation, in.Type)
		}
		*that = Location{Kind: in.Type, Index: *in.Index}
	case LocationBase, LocationStart, LocationFinished:
		*that = Location{Kind: in.Type}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLocation, in.Type)
	}

	return nil
}

// Pawn - a seat's token. IsPieu marks a pawn that left base via a start card.
type Pawn struct {
	ID       int      `json:"id"`
	OwnerID  int      `json:"ownerId"`
	Location Location `json:"location"`
	IsPieu   bool     `json:"isPieu"`
}

// PawnID - pawn ids are seat*10 + i.
func PawnID(seat, i int) int {
	return seat*10 + i
}
