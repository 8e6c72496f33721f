package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tock-backend/internal/entity"
)

type roomLister interface {
	ListOpenRooms(ctx context.Context) ([]entity.RoomListing, error)
}

type RoomsHandler interface {
	ListRooms(w http.ResponseWriter, r *http.Request)
}

type roomsHandler struct {
	logger *slog.Logger
	rooms  roomLister
}

type roomsResponse struct {
	Rooms []entity.RoomListing `json:"rooms"`
}

func NewRoomsHandler(logger *slog.Logger, rooms roomLister) RoomsHandler {
	return &roomsHandler{
		logger: logger.With("component", "rest"),
		rooms:  rooms,
	}
}

// ListRooms answers with every public room that has not started and still has free seats.
func (that *roomsHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ListRooms")

	rooms, err := that.rooms.ListOpenRooms(r.Context())
	if err != nil {
		log.Error("failed to list rooms", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if rooms == nil {
		rooms = []entity.RoomListing{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)

	if err = json.NewEncoder(w).Encode(roomsResponse{Rooms: rooms}); err != nil {
		log.Error("failed to write response", "error", err)
	}
}
