package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	FrontendServer   = "server"
	FrontendTerminal = "terminal"

	StorageFile  = "file"
	StorageRedis = "redis"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile    string `yaml:"log-file" env:"LOG_FILE" env-default:""`
	Frontend   string `yaml:"frontend" env:"FRONTEND" env-default:"terminal"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Game       Game   `yaml:"game"`
	Save       Save   `yaml:"save"`
	Redis      Redis  `yaml:"redis"`
}

type Game struct {
	Mode           string `yaml:"mode" env:"GAME_MODE" env-default:"ai"`
	AILevel        int    `yaml:"ai-level" env:"GAME_AI_LEVEL" env-default:"1"`
	ParallelSearch bool   `yaml:"parallel-search" env:"GAME_PARALLEL_SEARCH" env-default:"false"`
	Seed           int64  `yaml:"seed" env:"GAME_SEED" env-default:"0"`
}

type Save struct {
	Storage string `yaml:"storage" env:"SAVE_STORAGE" env-default:"file"`
	Dir     string `yaml:"dir" env:"SAVE_DIR" env-default:"./saves"`
	Slot    string `yaml:"slot" env:"SAVE_SLOT" env-default:"savegame"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port int    `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads path, applies env overrides and checks the values.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Config) validate() error {
	switch that.Frontend {
	case FrontendServer, FrontendTerminal:
	default:
		return fmt.Errorf("unknown frontend %q", that.Frontend)
	}

	switch that.Save.Storage {
	case StorageFile, StorageRedis:
	default:
		return fmt.Errorf("unknown save storage %q", that.Save.Storage)
	}

	if that.Game.Mode != "ai" && that.Game.Mode != "pvp" {
		return fmt.Errorf("unknown game mode %q", that.Game.Mode)
	}

	if that.Game.AILevel < 0 {
		return fmt.Errorf("ai level must not be negative, got %d", that.Game.AILevel)
	}

	return nil
}
