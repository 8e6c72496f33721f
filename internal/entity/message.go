package entity

import "encoding/json"

type MessageType string

// client -> server.
const (
	MsgJoinRoom     MessageType = "JOIN_ROOM"
	MsgBecomePlayer MessageType = "BECOME_PLAYER"
	MsgSetSettings  MessageType = "SET_SETTINGS"
	MsgStartGame    MessageType = "START_GAME"
	MsgPlayCard     MessageType = "PLAY_CARD"
	MsgDiscardCards MessageType = "DISCARD_CARDS"
	MsgEndTurn      MessageType = "END_TURN"
	MsgSendChat     MessageType = "SEND_CHAT"
)

// server -> client.
const (
	MsgRoomState    MessageType = "ROOM_STATE"
	MsgRoleAssigned MessageType = "ROLE_ASSIGNED"
	MsgError        MessageType = "ERROR"
)

// ServerMessage is a flat union of every server variant.
type ServerMessage struct {
	Type MessageType

	// ROOM_STATE
	State *Game
	Room  *RoomInfo

	// ROLE_ASSIGNED
	Role     Role
	PlayerID *int

	// ERROR
	Message string
}

type roomStateJSON struct {
	Type  MessageType `json:"type"`
	State *Game       `json:"state"`
	Room  *RoomInfo   `json:"room"`
}

type roleAssignedJSON struct {
	Type     MessageType `json:"type"`
	Role     Role        `json:"role"`
	PlayerID *int        `json:"playerId,omitempty"`
}

type errorJSON struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// MarshalJSON writes only the fields of the message's own variant; a lobby
// ROOM_STATE carries "state": null.
func (that ServerMessage) MarshalJSON() ([]byte, error) {
	switch that.Type {
	case MsgRoomState:
		return json.Marshal(roomStateJSON{Type: that.Type, State: that.State, Room: that.Room})
	case MsgRoleAssigned:
		return json.Marshal(roleAssignedJSON{Type: that.Type, Role: that.Role, PlayerID: that.PlayerID})
	default:
		return json.Marshal(errorJSON{Type: MsgError, Message: that.Message})
	}
}

func NewRoomStateMessage(game *Game, room RoomInfo) ServerMessage {
	return ServerMessage{Type: MsgRoomState, State: game, Room: &room}
}

func NewRoleAssignedMessage(role Role, seat *int) ServerMessage {
	return ServerMessage{Type: MsgRoleAssigned, Role: role, PlayerID: seat}
}

func NewErrorMessage(message string) ServerMessage {
	return ServerMessage{Type: MsgError, Message: message}
}
