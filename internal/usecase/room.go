package usecase

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/tock-backend/internal/apperror"
	"github.com/rocketscienceinc/tock-backend/internal/entity"
)

// Connection is the outbound side of one client socket.
type Connection interface {
	Send(data []byte) error
}

// RoomDefaults seeds every newly created room.
type RoomDefaults struct {
	Settings entity.RoomSettings
	Private  bool
}

// room is guarded by mu; every field below it is only touched while mu is held.
type room struct {
	mu sync.Mutex

	id            string
	adminClientID string
	sockets       map[string]Connection
	players       map[int]string
	spectators    []string
	settings      entity.RoomSettings
	private       bool
	game          *entity.Game

	// closed is set, under mu, once the last socket leaves. The registry
	// reads it without mu to replace a dying room.
	closed atomic.Bool
}

func newRoom(id, adminClientID string, defaults RoomDefaults) *room {
	return &room{
		id:            id,
		adminClientID: adminClientID,
		sockets:       make(map[string]Connection),
		players:       make(map[int]string),
		spectators:    []string{},
		settings:      defaults.Settings,
		private:       defaults.Private,
	}
}

func (that *room) started() bool {
	return that.game != nil
}

func (that *room) seatOf(clientID string) (int, bool) {
	for seat, id := range that.players {
		if id == clientID {
			return seat, true
		}
	}

	return 0, false
}

// seats returns the occupied seat indices in ascending order.
func (that *room) seats() []int {
	seats := lo.Keys(that.players)
	sort.Ints(seats)

	return seats
}

// nextFreeSeat is the lowest seat index below MaxPlayers nobody holds.
func (that *room) nextFreeSeat() (int, bool) {
	for seat := range that.settings.MaxPlayers {
		if _, taken := that.players[seat]; !taken {
			return seat, true
		}
	}

	return 0, false
}

func (that *room) addSpectator(clientID string) {
	if !lo.Contains(that.spectators, clientID) {
		that.spectators = append(that.spectators, clientID)
	}
}

func (that *room) removeSpectator(clientID string) {
	that.spectators = lo.Without(that.spectators, clientID)
}

func (that *room) seat(seat int, clientID string) {
	that.players[seat] = clientID
	that.removeSpectator(clientID)
}

func (that *room) releaseSeat(clientID string) {
	if seat, ok := that.seatOf(clientID); ok {
		delete(that.players, seat)
	}
}

// compactSeats renumbers seated clients 0..n-1 keeping their order and
// returns the clients whose seat changed.
func (that *room) compactSeats() map[string]int {
	moved := make(map[string]int)
	players := make(map[int]string, len(that.players))

	for i, seat := range that.seats() {
		clientID := that.players[seat]
		players[i] = clientID
		if i != seat {
			moved[clientID] = i
		}
	}

	that.players = players

	return moved
}

// nextAdmin picks the lowest seated client, falling back to the oldest spectator.
func (that *room) nextAdmin() string {
	if seats := that.seats(); len(seats) > 0 {
		return that.players[seats[0]]
	}

	if len(that.spectators) > 0 {
		return that.spectators[0]
	}

	return ""
}

func (that *room) applySettings(patch entity.SettingsPatch) error {
	settings := that.settings
	if patch.MaxPlayers != nil {
		settings.MaxPlayers = *patch.MaxPlayers
	}
	if patch.TeamsEnabled != nil {
		settings.TeamsEnabled = *patch.TeamsEnabled
	}

	if !settings.Valid() {
		return apperror.ErrInvalidSettings
	}

	if settings.MaxPlayers < len(that.players) {
		return fmt.Errorf("%w: %d players already seated", apperror.ErrInvalidSettings, len(that.players))
	}

	that.settings = settings
	if patch.Private != nil {
		that.private = *patch.Private
	}

	return nil
}

// listable is the public lobby filter: not private, not started, seats left.
func (that *room) listable() bool {
	return !that.private && !that.started() && len(that.players) < that.settings.MaxPlayers
}

func (that *room) listing() entity.RoomListing {
	return entity.RoomListing{
		ID:          that.id,
		PlayerCount: len(that.players),
		MaxPlayers:  that.settings.MaxPlayers,
		Settings:    that.settings,
	}
}

func (that *room) info(names func(clientID string) string) entity.RoomInfo {
	players := make([]entity.PlayerInfo, 0, len(that.players))
	for _, seat := range that.seats() {
		clientID := that.players[seat]
		players = append(players, entity.PlayerInfo{
			PlayerID: seat,
			ClientID: clientID,
			Name:     names(clientID),
		})
	}

	return entity.RoomInfo{
		RoomID:        that.id,
		AdminClientID: that.adminClientID,
		Players:       players,
		Spectators:    append([]string{}, that.spectators...),
		Settings:      that.settings,
		Private:       that.private,
		GameStarted:   that.started(),
	}
}

// send delivers msg to a single client. Failures are logged and dropped.
func (that *room) send(logger *slog.Logger, clientID string, msg entity.ServerMessage) {
	conn, ok := that.sockets[clientID]
	if !ok {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error("failed to marshal message", "type", msg.Type, "error", err)
		return
	}

	if err = conn.Send(data); err != nil {
		logger.Debug("dropped message", "client", clientID, "type", msg.Type, "error", err)
	}
}

// broadcast delivers msg to every socket in the room except the listed ones.
// The payload is marshalled once while the room lock is held.
func (that *room) broadcast(logger *slog.Logger, msg entity.ServerMessage, except ...string) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error("failed to marshal message", "type", msg.Type, "error", err)
		return
	}

	for clientID, conn := range that.sockets {
		if lo.Contains(except, clientID) {
			continue
		}

		if err = conn.Send(data); err != nil {
			logger.Debug("dropped message", "client", clientID, "type", msg.Type, "error", err)
		}
	}
}
