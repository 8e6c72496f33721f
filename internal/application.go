package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tock-backend/internal/config"
	"github.com/rocketscienceinc/tock-backend/internal/entity"
	"github.com/rocketscienceinc/tock-backend/internal/repository"
	"github.com/rocketscienceinc/tock-backend/internal/repository/storage"
	"github.com/rocketscienceinc/tock-backend/internal/tock"
	"github.com/rocketscienceinc/tock-backend/internal/usecase"
	"github.com/rocketscienceinc/tock-backend/transport/rest"
	"github.com/rocketscienceinc/tock-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

type roomLister interface {
	ListOpenRooms(ctx context.Context) ([]entity.RoomListing, error)
}

type lobbyDirectory interface {
	roomLister
	Upsert(ctx context.Context, listing entity.RoomListing) error
	Remove(ctx context.Context, roomID string) error
}

// RunApp - runs the application until SIGINT/SIGTERM or a server fails.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lobby, closeLobby, err := openLobby(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeLobby()

	engine := tock.New(tock.Rules{
		EnforcePieuBlocking: conf.Rules.EnforcePieuBlocking,
		EnforceTurnOrder:    conf.Rules.EnforceTurnOrder,
	})

	defaults := usecase.RoomDefaults{
		Settings: entity.RoomSettings{
			MaxPlayers:   conf.Room.MaxPlayers,
			TeamsEnabled: conf.Room.TeamsEnabled,
		},
		Private: conf.Room.Private,
	}

	coordinator := usecase.NewCoordinator(logger, engine, lobby, defaults)

	var rooms roomLister = coordinator
	if lobby != nil {
		rooms = lobby
	}

	group, groupCtx := errgroup.WithContext(ctx)

	// run HTTP server
	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(groupCtx, logger, conf.HTTPPort, rooms); httpErr != nil {
			return fmt.Errorf("HTTP server error: %w", httpErr)
		}

		return nil
	})

	// run Websocket server
	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, coordinator, conf.AllowedOrigins)
		if wsErr := wsServer.Start(groupCtx, conf.SocketPort); wsErr != nil {
			return fmt.Errorf("WebSocket server error: %w", wsErr)
		}

		return nil
	})

	// keep idle public rooms alive in the shared lobby
	if lobby != nil && conf.Lobby.TTL > 0 {
		group.Go(func() error {
			return coordinator.RunLobbyRefresher(groupCtx, conf.Lobby.TTL/2)
		})
	}

	// the servers only return on their own once ctx is done
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("Application context canceled, shutting down")

		return nil
	})

	if err = group.Wait(); err != nil {
		return err
	}

	return nil
}

// openLobby returns nil when the listing is kept in memory.
func openLobby(ctx context.Context, log *slog.Logger, conf *config.Config) (lobbyDirectory, func(), error) {
	if conf.Lobby.Backend != config.LobbyBackendRedis {
		return nil, func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	log.Info("Using redis lobby", "addr", redisAddrString)

	return repository.NewLobbyRepository(redisStorage, conf.Lobby.TTL), closeFn, nil
}
