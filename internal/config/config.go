package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat         string `yaml:"log-format" env:"LOG_FORMAT" env-default:"text"`
	HTTPPort          string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort        string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Redis             Redis  `yaml:"redis" env-prefix:"REDIS_"`
	Engine            Engine `yaml:"engine" env-prefix:"ENGINE_"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"tictactoe.db"`
}

type Redis struct {
	Host string `yaml:"host" env:"HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"PORT" env-default:"6379"`
}

type Engine struct {
	AIMark     string `yaml:"ai-mark" env:"AI_MARK" env-default:"O"`
	Difficulty string `yaml:"difficulty" env:"DIFFICULTY" env-default:"hard"`
	Seed       int64  `yaml:"seed" env:"SEED" env-default:"0"`
	AIFirst    bool   `yaml:"ai-first" env:"AI_FIRST" env-default:"false"`
}

// Load reads path when it exists and falls back to the environment and defaults otherwise.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the engine section.
func (that *Config) Validate() error {
	if _, err := that.Engine.Mark(); err != nil {
		return fmt.Errorf("invalid engine.ai-mark: %w", err)
	}

	if _, err := that.Engine.Level(); err != nil {
		return fmt.Errorf("invalid engine.difficulty: %w", err)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// Mark returns the parsed AI mark.
func (that *Engine) Mark() (entity.Mark, error) {
	return entity.ParseMark(that.AIMark)
}

// Level returns the parsed default difficulty.
func (that *Engine) Level() (entity.Difficulty, error) {
	return entity.ParseDifficulty(that.Difficulty)
}
