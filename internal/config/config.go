package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	LobbyBackendMemory = "memory"
	LobbyBackendRedis  = "redis"
)

type Config struct {
	LogLevel       string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort       string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort     string   `yaml:"socket-port" env:"SOCKET_PORT" env-default:"3001"`
	AllowedOrigins []string `yaml:"allowed-origins" env:"ALLOWED_ORIGINS" env-separator:","`
	Lobby          Lobby    `yaml:"lobby"`
	Redis          Redis    `yaml:"redis"`
	Room           Room     `yaml:"room"`
	Rules          Rules    `yaml:"rules"`
}

// Lobby picks where the public room listing lives.
type Lobby struct {
	Backend string        `yaml:"backend" env:"LOBBY_BACKEND" env-default:"memory"`
	TTL     time.Duration `yaml:"ttl" env:"LOBBY_TTL" env-default:"10m"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Room holds the defaults every new room starts with. The booleans default to
// true in MustLoad since cleanenv would overwrite an explicit false with env-default.
type Room struct {
	MaxPlayers   int  `yaml:"max-players" env-default:"4"`
	TeamsEnabled bool `yaml:"teams-enabled"`
	Private      bool `yaml:"private"`
}

type Rules struct {
	EnforcePieuBlocking bool `yaml:"enforce-pieu-blocking" env:"ENFORCE_PIEU_BLOCKING" env-default:"false"`
	EnforceTurnOrder    bool `yaml:"enforce-turn-order" env:"ENFORCE_TURN_ORDER" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{
		Room: Room{TeamsEnabled: true, Private: true},
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err := config.Validate(); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	return config
}

func (that *Config) Validate() error {
	switch that.Lobby.Backend {
	case LobbyBackendMemory, LobbyBackendRedis:
	default:
		return fmt.Errorf("unknown lobby backend %q", that.Lobby.Backend)
	}

	if that.Room.MaxPlayers < 2 || that.Room.MaxPlayers > 8 {
		return fmt.Errorf("room max-players must be in [2, 8], got %d", that.Room.MaxPlayers)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
