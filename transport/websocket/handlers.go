package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tock-backend/internal/tock"
)

var (
	errMissingType     = errors.New("message type is required")
	errUnknownMessage  = errors.New("unknown message type")
	errBinaryMessage   = errors.New("only text messages are supported")
	errChatUnsupported = errors.New("chat is not supported")
	errCardRequired    = errors.New("cardId is required")
)

func (that *Server) handleJoinRoom(ctx context.Context, c *client, msg *ClientMessage) error {
	log := that.logger.With("method", "handleJoinRoom", "client", c.id)

	roomID, err := that.coordinator.Join(ctx, msg.RoomID, c.id, msg.PlayerName, c)
	if err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}

	log.Info("joined room", "room", roomID)

	return nil
}

func (that *Server) handleBecomePlayer(ctx context.Context, c *client, msg *ClientMessage) error {
	return that.coordinator.BecomePlayer(ctx, c.id, msg.PlayerName)
}

func (that *Server) handleSetSettings(ctx context.Context, c *client, msg *ClientMessage) error {
	return that.coordinator.SetSettings(ctx, c.id, msg.settingsPatch())
}

func (that *Server) handleStartGame(ctx context.Context, c *client, _ *ClientMessage) error {
	return that.coordinator.StartGame(ctx, c.id)
}

func (that *Server) handlePlayCard(ctx context.Context, c *client, msg *ClientMessage) error {
	if msg.CardID == "" {
		return errCardRequired
	}

	return that.coordinator.PlayCard(ctx, c.id, tock.PlayCard{
		CardID:      msg.CardID,
		PawnIDs:     msg.PawnIDs,
		ImpliedType: msg.AsCardType,
	})
}

func (that *Server) handleDiscardCards(ctx context.Context, c *client, msg *ClientMessage) error {
	return that.coordinator.DiscardCards(ctx, c.id, msg.CardIDs)
}

func (that *Server) handleEndTurn(ctx context.Context, c *client, _ *ClientMessage) error {
	return that.coordinator.EndTurn(ctx, c.id)
}

func (that *Server) handleSendChat(_ context.Context, _ *client, _ *ClientMessage) error {
	return errChatUnsupported
}
