package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tock-backend/internal/entity"
	"github.com/rocketscienceinc/tock-backend/internal/pkg"
	"github.com/rocketscienceinc/tock-backend/internal/tock"
	"github.com/rocketscienceinc/tock-backend/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type coordinator interface {
	Join(ctx context.Context, roomID, clientID, name string, conn usecase.Connection) (string, error)
	BecomePlayer(ctx context.Context, clientID, name string) error
	SetSettings(ctx context.Context, clientID string, patch entity.SettingsPatch) error
	StartGame(ctx context.Context, clientID string) error
	PlayCard(ctx context.Context, clientID string, act tock.PlayCard) error
	DiscardCards(ctx context.Context, clientID string, cardIDs []string) error
	EndTurn(ctx context.Context, clientID string) error
	Leave(ctx context.Context, clientID string)
}

type handlerFunc func(ctx context.Context, c *client, msg *ClientMessage) error

type Server struct {
	logger         *slog.Logger
	coordinator    coordinator
	allowedOrigins []string

	handlers map[entity.MessageType]handlerFunc
}

func New(logger *slog.Logger, coordinator coordinator, allowedOrigins []string) *Server {
	server := &Server{
		logger:         logger.With("component", "websocket"),
		coordinator:    coordinator,
		allowedOrigins: allowedOrigins,

		handlers: make(map[entity.MessageType]handlerFunc),
	}

	server.handlers[entity.MsgJoinRoom] = server.handleJoinRoom
	server.handlers[entity.MsgBecomePlayer] = server.handleBecomePlayer
	server.handlers[entity.MsgSetSettings] = server.handleSetSettings
	server.handlers[entity.MsgStartGame] = server.handleStartGame
	server.handlers[entity.MsgPlayCard] = server.handlePlayCard
	server.handlers[entity.MsgDiscardCards] = server.handleDiscardCards
	server.handlers[entity.MsgEndTurn] = server.handleEndTurn
	server.handlers[entity.MsgSendChat] = server.handleSendChat

	return server
}

// Handler exposes the websocket endpoint for mounting on any mux.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWS(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(ctx),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWS upgrades the request and runs the connection until either side stops.
func (that *Server) serveWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: that.allowedOrigins})
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}

	c := newClient(pkg.GenerateClientID(), conn)
	log = log.With("client", c.id)
	log.Info("WebSocket connection established")

	// either loop ending stops the other
	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, groupCtx := errgroup.WithContext(connCtx)
	group.Go(func() error {
		defer cancel()
		return c.writeLoop(groupCtx)
	})
	group.Go(func() error {
		defer cancel()
		return that.readLoop(groupCtx, c)
	})

	if err = group.Wait(); err != nil {
		log.Debug("connection ended", "error", err)
	}

	that.coordinator.Leave(context.WithoutCancel(ctx), c.id)

	if err = conn.Close(websocket.StatusNormalClosure, ""); err != nil {
		log.Debug("failed to close websocket", "error", err)
	}

	log.Info("WebSocket connection closed")
}

// readLoop - processes messages from the client.
func (that *Server) readLoop(ctx context.Context, c *client) error {
	log := that.logger.With("method", "readLoop", "client", c.id)

	for {
		msgType, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		if msgType != websocket.MessageText {
			sendError(log, c, errBinaryMessage.Error())
			continue
		}

		that.dispatch(ctx, c, data)
	}
}

// dispatch routes one payload to its handler; every failure goes back to c as ERROR.
func (that *Server) dispatch(ctx context.Context, c *client, data []byte) {
	log := that.logger.With("method", "dispatch", "client", c.id)

	msg, err := decodeMessage(data)
	if err != nil {
		log.Debug("bad message", "error", err)
		sendError(log, c, err.Error())
		return
	}

	handler, ok := that.handlers[msg.Type]
	if !ok {
		sendError(log, c, fmt.Sprintf("%s: %s", errUnknownMessage, msg.Type))
		return
	}

	if err = handler(ctx, c, msg); err != nil {
		log.Info("message rejected", "type", msg.Type, "error", err)
		sendError(log, c, err.Error())
	}
}
