package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tock-backend/internal/entity"
)

// ClientMessage is a flat union of every client variant; Type picks which fields matter.
type ClientMessage struct {
	Type entity.MessageType `json:"type"`

	// JOIN_ROOM, BECOME_PLAYER
	RoomID     string `json:"roomId,omitempty"`
	PlayerName string `json:"playerName,omitempty"`

	// SET_SETTINGS
	MaxPlayers   *int  `json:"maxPlayers,omitempty"`
	TeamsEnabled *bool `json:"teamsEnabled,omitempty"`
	Private      *bool `json:"private,omitempty"`

	// PLAY_CARD
	CardID     string          `json:"cardId,omitempty"`
	PawnIDs    []int           `json:"pawnIds,omitempty"`
	AsCardType entity.CardType `json:"asCardType,omitempty"`

	// DISCARD_CARDS
	CardIDs []string `json:"cardIds,omitempty"`
}

func decodeMessage(data []byte) (*ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}

	if msg.Type == "" {
		return nil, errMissingType
	}

	return &msg, nil
}

func (that *ClientMessage) settingsPatch() entity.SettingsPatch {
	return entity.SettingsPatch{
		MaxPlayers:   that.MaxPlayers,
		TeamsEnabled: that.TeamsEnabled,
		Private:      that.Private,
	}
}

// sendError queues an ERROR for c alone.
func sendError(logger *slog.Logger, c *client, message string) {
	data, err := json.Marshal(entity.NewErrorMessage(message))
	if err != nil {
		logger.Error("failed to marshal error message", "error", err)
		return
	}

	if err = c.Send(data); err != nil {
		logger.Debug("dropped error message", "client", c.id, "error", err)
	}
}
