package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tock-backend/internal/entity"
)

const (
	lobbyRoomsKey   = "lobby:rooms"
	lobbyRoomPrefix = "lobby:room:"
)

// LobbyRepository is the shared directory of rooms open to the public.
type LobbyRepository interface {
	Upsert(ctx context.Context, listing entity.RoomListing) error
	Remove(ctx context.Context, roomID string) error
	List(ctx context.Context) ([]entity.RoomListing, error)
	ListOpenRooms(ctx context.Context) ([]entity.RoomListing, error)
}

type dbLobby struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLobbyRepository - entries expire after ttl unless refreshed; zero keeps them forever.
func NewLobbyRepository(client *redis.Client, ttl time.Duration) LobbyRepository {
	return &dbLobby{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbLobby) Upsert(ctx context.Context, listing entity.RoomListing) error {
	listingJSON, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("could not marshal listing: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, lobbyRoomPrefix+listing.ID, listingJSON, that.ttl)
		pipe.SAdd(ctx, lobbyRoomsKey, listing.ID)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set listing: %w", err)
	}

	return nil
}

func (that *dbLobby) Remove(ctx context.Context, roomID string) error {
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, lobbyRoomPrefix+roomID)
		pipe.SRem(ctx, lobbyRoomsKey, roomID)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete listing by ID: %w", err)
	}

	return nil
}

// List returns every live listing ordered by room id. Ids whose entry has
// expired are dropped from the index on the way.
func (that *dbLobby) List(ctx context.Context) ([]entity.RoomListing, error) {
	ids, err := that.client.SMembers(ctx, lobbyRoomsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	listings := make([]entity.RoomListing, 0, len(ids))
	if len(ids) == 0 {
		return listings, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = lobbyRoomPrefix + id
	}

	values, err := that.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get listings: %w", err)
	}

	var expired []any
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			expired = append(expired, ids[i])
			continue
		}

		var listing entity.RoomListing
		if err = json.Unmarshal([]byte(raw), &listing); err != nil {
			return nil, fmt.Errorf("failed to unmarshal listing: %w", err)
		}
		listings = append(listings, listing)
	}

	if len(expired) > 0 {
		if err = that.client.SRem(ctx, lobbyRoomsKey, expired...).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune expired rooms: %w", err)
		}
	}

	sort.Slice(listings, func(i, j int) bool { return listings[i].ID < listings[j].ID })

	return listings, nil
}

// ListOpenRooms lets the repository stand in for the in-memory room listing.
func (that *dbLobby) ListOpenRooms(ctx context.Context) ([]entity.RoomListing, error) {
	return that.List(ctx)
}
