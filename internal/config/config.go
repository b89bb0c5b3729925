package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	MemoryStorage = "memory"
	RedisStorage  = "redis"
)

type Config struct {
	LogLevel    string      `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort    string      `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort  string      `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Game        Game        `yaml:"game"`
	Leaderboard Leaderboard `yaml:"leaderboard"`
	Redis       Redis       `yaml:"redis"`
}

type Game struct {
	ComputerMoveDelay time.Duration `yaml:"computer-move-delay" env:"COMPUTER_MOVE_DELAY" env-default:"500ms"`
	ComputerName      string        `yaml:"computer-name" env-default:"Computer"`
}

type Leaderboard struct {
	Storage string `yaml:"storage" env:"LEADERBOARD_STORAGE" env-default:"memory"`
	Key     string `yaml:"key" env-default:"leaderboard"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Leaderboard) UsesRedis() bool {
	return that.Storage == RedisStorage
}
