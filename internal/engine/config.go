package engine

import (
	"errors"
	"fmt"
	"os"

	"station-core/internal/domain"

	"gopkg.in/yaml.v3"
)

// Config хранит параметры запуска симуляции
type Config struct {
	// TickRateHz - сколько тиков в секунду делает Run.
	TickRateHz int `yaml:"tick_rate_hz"`

	// InteractionRange - дальность взаимодействия по умолчанию.
	InteractionRange float32 `yaml:"interaction_range"`

	// Prototypes - дополнительные YAML-файлы прототипов поверх встроенных.
	Prototypes []string `yaml:"prototypes"`

	// CommandBuffer - ёмкость очереди входящих команд.
	CommandBuffer int `yaml:"command_buffer"`

	// Maps - сколько пустых карт создать при старте.
	Maps int `yaml:"maps"`

	SentryDSN   string `yaml:"sentry_dsn"`
	Environment string `yaml:"environment"`
}

// DefaultConfig создает конфиг по умолчанию
func DefaultConfig() Config {
	return Config{
		TickRateHz:       10,
		InteractionRange: domain.InteractionRange,
		CommandBuffer:    100,
		Maps:             1,
		Environment:      "development",
	}
}

// LoadConfig читает YAML поверх значений по умолчанию. Пустой путь - только умолчания.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate проверяет значения, которые нельзя молча исправить.
func (c Config) Validate() error {
	if c.TickRateHz <= 0 {
		return errors.New("tick_rate_hz must be positive")
	}
	if c.InteractionRange <= 0 {
		return errors.New("interaction_range must be positive")
	}
	if c.CommandBuffer <= 0 {
		return errors.New("command_buffer must be positive")
	}
	if c.Maps < 0 {
		return errors.New("maps cannot be negative")
	}
	return nil
}
