package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/tock-backend/internal/apperror"
	"github.com/rocketscienceinc/tock-backend/internal/entity"
	"github.com/rocketscienceinc/tock-backend/internal/pkg"
	"github.com/rocketscienceinc/tock-backend/internal/tock"
)

const maxRoomIDAttempts = 16

type lobbyDirectory interface {
	Upsert(ctx context.Context, listing entity.RoomListing) error
	Remove(ctx context.Context, roomID string) error
}

// Coordinator owns every live room. The registry lock is never held across
// lobby calls; it may be taken before a room lock, never after one. names
// has its own leaf lock.
type Coordinator struct {
	logger   *slog.Logger
	engine   *tock.Engine
	lobby    lobbyDirectory
	defaults RoomDefaults
	newDeck  func() []entity.Card

	mu          sync.Mutex
	rooms       map[string]*room
	clientRooms map[string]string

	namesMu sync.RWMutex
	names   map[string]string
}

// NewCoordinator - lobby may be nil when the open-room listing is served from memory.
func NewCoordinator(logger *slog.Logger, engine *tock.Engine, lobby lobbyDirectory, defaults RoomDefaults) *Coordinator {
	return &Coordinator{
		logger:   logger.With("component", "coordinator"),
		engine:   engine,
		lobby:    lobby,
		defaults: defaults,
		newDeck: func() []entity.Card {
			return tock.Shuffle(tock.NewDeck(), nil)
		},

		rooms:       make(map[string]*room),
		clientRooms: make(map[string]string),
		names:       make(map[string]string),
	}
}

// Join puts clientID into roomID, creating the room when it does not exist.
// An empty roomID asks for a fresh room code. The id of the joined room is returned.
func (that *Coordinator) Join(ctx context.Context, roomID, clientID, name string, conn Connection) (string, error) {
	log := that.logger.With("method", "Join", "client", clientID)

	that.mu.Lock()
	currentID, inRoom := that.clientRooms[clientID]
	that.mu.Unlock()

	if inRoom && currentID != roomID {
		that.leaveRoom(ctx, log, clientID)
	}

	that.setName(clientID, name)

	for {
		current, err := that.lookupOrCreate(log, roomID, clientID)
		if err != nil {
			return "", err
		}
		roomID = current.id

		current.mu.Lock()
		if current.closed.Load() {
			// emptied between the registry lookup and here; the next lookup replaces it
			current.mu.Unlock()
			continue
		}

		that.enter(ctx, log, current, clientID, conn)
		current.mu.Unlock()

		return roomID, nil
	}
}

// lookupOrCreate registers clientID with roomID under the registry lock only.
func (that *Coordinator) lookupOrCreate(log *slog.Logger, roomID, clientID string) (*room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if roomID == "" {
		var err error
		if roomID, err = that.freeRoomID(); err != nil {
			return nil, err
		}
	}

	current, ok := that.rooms[roomID]
	if !ok || current.closed.Load() {
		current = newRoom(roomID, clientID, that.defaults)
		that.rooms[roomID] = current
		log.Info("room created", "room", roomID)
	}

	that.clientRooms[clientID] = roomID

	return current, nil
}

// enter must be called with the room lock held.
func (that *Coordinator) enter(ctx context.Context, log *slog.Logger, current *room, clientID string, conn Connection) {
	current.sockets[clientID] = conn

	role := entity.RoleSpectator
	var seat *int

	if existing, seated := current.seatOf(clientID); seated {
		role, seat = entity.RolePlayer, &existing
	} else if len(current.sockets) == 1 && len(current.players) == 0 {
		current.seat(0, clientID)
		zero := 0
		role, seat = entity.RolePlayer, &zero
	} else {
		current.addSpectator(clientID)
	}

	if current.adminClientID == "" {
		current.adminClientID = clientID
	}

	log.Info("client joined", "room", current.id, "role", role)

	current.send(log, clientID, entity.NewRoomStateMessage(current.game, current.info(that.name)))
	current.send(log, clientID, entity.NewRoleAssignedMessage(role, seat))
	current.broadcast(log, entity.NewRoomStateMessage(current.game, current.info(that.name)), clientID)
	that.syncLobby(ctx, log, current)
}

// BecomePlayer seats the client at the lowest free seat.
func (that *Coordinator) BecomePlayer(ctx context.Context, clientID, name string) error {
	log := that.logger.With("method", "BecomePlayer", "client", clientID)

	that.setName(clientID, name)

	return that.withClientRoom(clientID, func(current *room) error {
		if current.started() {
			return apperror.ErrGameAlreadyStarted
		}

		seat, seated := current.seatOf(clientID)
		if !seated {
			var free bool
			if seat, free = current.nextFreeSeat(); !free {
				return fmt.Errorf("%w: max %d", apperror.ErrPlayerLimitReached, current.settings.MaxPlayers)
			}
			current.seat(seat, clientID)
			log.Info("client seated", "room", current.id, "seat", seat)
		}

		current.send(log, clientID, entity.NewRoleAssignedMessage(entity.RolePlayer, &seat))
		that.broadcastState(ctx, log, current)

		return nil
	})
}

func (that *Coordinator) SetSettings(ctx context.Context, clientID string, patch entity.SettingsPatch) error {
	log := that.logger.With("method", "SetSettings", "client", clientID)

	return that.withClientRoom(clientID, func(current *room) error {
		if err := requireAdminInLobby(current, clientID); err != nil {
			return err
		}

		if err := current.applySettings(patch); err != nil {
			return fmt.Errorf("failed to apply settings: %w", err)
		}

		that.broadcastState(ctx, log, current)

		return nil
	})
}

// StartGame deals a fresh shuffled deck to the seated clients. Seats are
// renumbered 0..n-1 first so they line up with the game's players.
func (that *Coordinator) StartGame(ctx context.Context, clientID string) error {
	log := that.logger.With("method", "StartGame", "client", clientID)

	return that.withClientRoom(clientID, func(current *room) error {
		if err := requireAdminInLobby(current, clientID); err != nil {
			return err
		}

		playerCount := len(current.players)
		if playerCount < entity.MinPlayers {
			return fmt.Errorf("%w: have %d", apperror.ErrNotEnoughPlayers, playerCount)
		}

		game := entity.NewGame(playerCount, that.newDeck())
		game.Phase = entity.PhasePlaying
		if err := tock.DrawCards(game); err != nil {
			return fmt.Errorf("failed to deal: %w", err)
		}

		for movedID, seat := range current.compactSeats() {
			current.send(log, movedID, entity.NewRoleAssignedMessage(entity.RolePlayer, &seat))
		}

		current.game = game
		log.Info("game started", "room", current.id, "players", playerCount)

		that.broadcastState(ctx, log, current)

		return nil
	})
}

func (that *Coordinator) PlayCard(ctx context.Context, clientID string, act tock.PlayCard) error {
	log := that.logger.With("method", "PlayCard", "client", clientID)

	return that.withSeat(clientID, func(current *room, seat int) error {
		act.Seat = seat
		if err := that.engine.Apply(current.game, act); err != nil {
			return fmt.Errorf("failed to play card: %w", err)
		}

		that.broadcastState(ctx, log, current)

		return nil
	})
}

func (that *Coordinator) DiscardCards(ctx context.Context, clientID string, cardIDs []string) error {
	log := that.logger.With("method", "DiscardCards", "client", clientID)

	return that.withSeat(clientID, func(current *room, seat int) error {
		if err := that.engine.Apply(current.game, tock.DiscardCards{Seat: seat, CardIDs: cardIDs}); err != nil {
			return fmt.Errorf("failed to discard: %w", err)
		}

		that.broadcastState(ctx, log, current)

		return nil
	})
}

// EndTurn passes the turn and starts the next round once every hand is empty.
func (that *Coordinator) EndTurn(ctx context.Context, clientID string) error {
	log := that.logger.With("method", "EndTurn", "client", clientID)

	return that.withSeat(clientID, func(current *room, seat int) error {
		game := current.game
		prevTurn := game.TurnIndex

		if err := that.engine.Apply(game, tock.EndTurn{Seat: seat}); err != nil {
			return fmt.Errorf("failed to end turn: %w", err)
		}

		if tock.RoundOver(game) {
			if err := tock.EndRound(game); err != nil {
				game.TurnIndex = prevTurn
				return fmt.Errorf("failed to end round: %w", err)
			}
			log.Debug("new round dealt", "room", current.id, "first", game.FirstPlayerIndex)
		}

		that.broadcastState(ctx, log, current)

		return nil
	})
}

// Leave disconnects the client: its name is forgotten and its socket and
// seat are dropped. A room without sockets is torn down.
func (that *Coordinator) Leave(ctx context.Context, clientID string) {
	log := that.logger.With("method", "Leave", "client", clientID)

	that.namesMu.Lock()
	delete(that.names, clientID)
	that.namesMu.Unlock()

	that.leaveRoom(ctx, log, clientID)
}

func (that *Coordinator) leaveRoom(ctx context.Context, log *slog.Logger, clientID string) {
	that.mu.Lock()
	roomID, ok := that.clientRooms[clientID]
	delete(that.clientRooms, clientID)
	current := that.rooms[roomID]
	that.mu.Unlock()

	if !ok || current == nil {
		return
	}

	current.mu.Lock()

	delete(current.sockets, clientID)
	current.removeSpectator(clientID)
	current.releaseSeat(clientID)

	if len(current.sockets) > 0 {
		if current.adminClientID == clientID {
			current.adminClientID = current.nextAdmin()
			log.Info("admin reassigned", "room", roomID, "admin", current.adminClientID)
		}

		that.broadcastState(ctx, log, current)
		current.mu.Unlock()

		return
	}

	current.closed.Store(true)
	that.removeFromLobby(ctx, log, roomID)
	current.mu.Unlock()

	that.mu.Lock()
	if that.rooms[roomID] == current {
		delete(that.rooms, roomID)
	}
	that.mu.Unlock()

	log.Info("room closed", "room", roomID)
}

// RefreshLobby re-publishes every listable room so idle entries outlive the lobby TTL.
func (that *Coordinator) RefreshLobby(ctx context.Context) {
	if that.lobby == nil {
		return
	}

	log := that.logger.With("method", "RefreshLobby")

	for _, current := range that.snapshotRooms() {
		current.mu.Lock()
		if !current.closed.Load() && current.listable() {
			if err := that.lobby.Upsert(ctx, current.listing()); err != nil {
				log.Warn("failed to refresh room", "room", current.id, "error", err)
			}
		}
		current.mu.Unlock()
	}
}

// RunLobbyRefresher calls RefreshLobby every interval until ctx is done.
func (that *Coordinator) RunLobbyRefresher(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			that.RefreshLobby(ctx)
		}
	}
}

// ListOpenRooms returns the public rooms that still accept players, ordered by id.
func (that *Coordinator) ListOpenRooms(_ context.Context) ([]entity.RoomListing, error) {
	rooms := that.snapshotRooms()

	listings := make([]entity.RoomListing, 0, len(rooms))
	for _, current := range rooms {
		current.mu.Lock()
		if !current.closed.Load() && current.listable() {
			listings = append(listings, current.listing())
		}
		current.mu.Unlock()
	}

	sort.Slice(listings, func(i, j int) bool { return listings[i].ID < listings[j].ID })

	return listings, nil
}

// RoomInfo returns the projection of the client's current room.
func (that *Coordinator) RoomInfo(clientID string) (entity.RoomInfo, error) {
	var info entity.RoomInfo

	err := that.withClientRoom(clientID, func(current *room) error {
		info = current.info(that.name)
		return nil
	})

	return info, err
}

func (that *Coordinator) snapshotRooms() []*room {
	that.mu.Lock()
	defer that.mu.Unlock()

	return lo.Values(that.rooms)
}

func (that *Coordinator) withClientRoom(clientID string, fn func(current *room) error) error {
	that.mu.Lock()
	roomID, ok := that.clientRooms[clientID]
	current := that.rooms[roomID]
	that.mu.Unlock()

	if !ok {
		return apperror.ErrNotInRoom
	}
	if current == nil {
		return fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, roomID)
	}

	current.mu.Lock()
	defer current.mu.Unlock()

	if current.closed.Load() {
		return fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, roomID)
	}

	return fn(current)
}

// withSeat runs fn for a seated client of a started game.
func (that *Coordinator) withSeat(clientID string, fn func(current *room, seat int) error) error {
	return that.withClientRoom(clientID, func(current *room) error {
		if !current.started() {
			return apperror.ErrGameIsNotStarted
		}

		seat, ok := current.seatOf(clientID)
		if !ok {
			return apperror.ErrNotAPlayer
		}

		return fn(current, seat)
	})
}

func requireAdminInLobby(current *room, clientID string) error {
	if current.adminClientID != clientID {
		return apperror.ErrAdminRequired
	}

	if current.started() {
		return apperror.ErrGameAlreadyStarted
	}

	return nil
}

// broadcastState sends ROOM_STATE to the whole room and refreshes the lobby entry.
func (that *Coordinator) broadcastState(ctx context.Context, log *slog.Logger, current *room) {
	current.broadcast(log, entity.NewRoomStateMessage(current.game, current.info(that.name)))
	that.syncLobby(ctx, log, current)
}

func (that *Coordinator) syncLobby(ctx context.Context, log *slog.Logger, current *room) {
	if that.lobby == nil {
		return
	}

	if !current.listable() {
		that.removeFromLobby(ctx, log, current.id)
		return
	}

	if err := that.lobby.Upsert(ctx, current.listing()); err != nil {
		log.Warn("failed to publish room", "room", current.id, "error", err)
	}
}

func (that *Coordinator) removeFromLobby(ctx context.Context, log *slog.Logger, roomID string) {
	if that.lobby == nil {
		return
	}

	if err := that.lobby.Remove(ctx, roomID); err != nil {
		log.Warn("failed to unpublish room", "room", roomID, "error", err)
	}
}

// freeRoomID must be called with the registry lock held.
func (that *Coordinator) freeRoomID() (string, error) {
	for range maxRoomIDAttempts {
		id := pkg.GenerateRoomID()
		if _, taken := that.rooms[id]; id != "" && !taken {
			return id, nil
		}
	}

	return "", fmt.Errorf("failed to generate room id after %d attempts", maxRoomIDAttempts)
}

func (that *Coordinator) setName(clientID, name string) {
	if name == "" {
		return
	}

	that.namesMu.Lock()
	that.names[clientID] = name
	that.namesMu.Unlock()
}

func (that *Coordinator) name(clientID string) string {
	that.namesMu.RLock()
	defer that.namesMu.RUnlock()

	return that.names[clientID]
}
