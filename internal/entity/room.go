package entity

const (
	MinPlayers = 2
	MaxPlayers = 8
)

type RoomSettings struct {
	MaxPlayers   int  `json:"maxPlayers"`
	TeamsEnabled bool `json:"teamsEnabled"`
}

func (that RoomSettings) Valid() bool {
	return that.MaxPlayers >= MinPlayers && that.MaxPlayers <= MaxPlayers
}

// SettingsPatch carries the optional fields of a SET_SETTINGS request.
type SettingsPatch struct {
	MaxPlayers   *int
	TeamsEnabled *bool
	Private      *bool
}

type PlayerInfo struct {
	PlayerID int    `json:"playerId"`
	ClientID string `json:"clientId"`
	Name     string `json:"name,omitempty"`
}

// RoomInfo is the only room metadata exposed to clients.
type RoomInfo struct {
	RoomID        string       `json:"roomId"`
	AdminClientID string       `json:"adminClientId"`
	Players       []PlayerInfo `json:"players"`
	Spectators    []string     `json:"spectators"`
	Settings      RoomSettings `json:"settings"`
	Private       bool         `json:"private"`
	GameStarted   bool         `json:"gameStarted"`
}

// RoomListing is one entry of the public lobby.
type RoomListing struct {
	ID          string       `json:"id"`
	PlayerCount int          `json:"playerCount"`
	MaxPlayers  int          `json:"maxPlayers"`
	Settings    RoomSettings `json:"settings"`
}

type Role string

const (
	RolePlayer    Role = "PLAYER"
	RoleSpectator Role = "SPECTATOR"
)
