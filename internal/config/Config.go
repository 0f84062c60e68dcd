package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/Mshel/tetrad/internal/game"
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
)

const (
	GeneratorUniform = "uniform"
	GeneratorBag     = "bag"

	// DefaultStrategy names the built-in search strategy rather than a Lua script.
	DefaultStrategy = "default"
)

var ErrInvalidConfig = errors.New("invalid host config")

// Config is what the hosts read from the environment.
type Config struct {
	Host                string        `env:"TETRAD_HOST"                   envDefault:"0.0.0.0"`
	Port                string        `env:"TETRAD_PORT"                   envDefault:"6996"`
	PrivateKeyPath      string        `env:"TETRAD_PRIVATE_KEY_PATH"       envDefault:".ssh/tetrad_ed25519"`
	MaxConnectionsPerIP int           `env:"TETRAD_MAX_CONNECTIONS_PER_IP" envDefault:"2"`
	LogLevel            string        `env:"TETRAD_LOG_LEVEL"              envDefault:"info"`
	FrameInterval       time.Duration `env:"TETRAD_FRAME_INTERVAL"         envDefault:"16ms"`
	Generator           string        `env:"TETRAD_GENERATOR"              envDefault:"uniform"`
	// 0 seeds from the clock.
	Seed        int64  `env:"TETRAD_SEED"         envDefault:"0"`
	Strategy    string `env:"TETRAD_STRATEGY"     envDefault:"default"`
	StrategyDir string `env:"TETRAD_STRATEGY_DIR"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the host config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxConnectionsPerIP < 1 {
		return fmt.Errorf("%w: max connections per ip must be at least 1, got %d", ErrInvalidConfig, c.MaxConnectionsPerIP)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("%w: frame interval must be positive, got %s", ErrInvalidConfig, c.FrameInterval)
	}
	if c.Generator != GeneratorUniform && c.Generator != GeneratorBag {
		return fmt.Errorf("%w: unknown generator %q", ErrInvalidConfig, c.Generator)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Level is the parsed log level, info when unparseable.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// NewGenerator builds the piece generator for one game.
func (c Config) NewGenerator() game.Generator {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if c.Generator == GeneratorBag {
		return game.NewBagGenerator(seed)
	}
	return game.NewUniformGenerator(seed)
}

// NewStrategy resolves the autoplay strategy by name: the built-in search,
// a script from StrategyDir, or a bundled Lua script, in that order. The
// returned release func frees any Lua state and must be called once the
// strategy is no longer used.
func (c Config) NewStrategy() (game.Strategy, func(), error) {
	if c.Strategy == "" || c.Strategy == DefaultStrategy {
		return &game.DefaultStrategy{}, func() {}, nil
	}

	if c.StrategyDir != "" {
		strategies, err := game.LoadLuaStrategies(c.StrategyDir)
		if err != nil {
			return nil, nil, err
		}

		selected, found := strategies[c.Strategy]
		for name, strategy := range strategies {
			if name != c.Strategy {
				strategy.Close()
			}
		}
		if found {
			return selected, selected.Close, nil
		}
	}

	strategy, err := game.BuiltinLuaStrategy(c.Strategy)
	if err != nil {
		return nil, nil, err
	}
	return strategy, strategy.Close, nil
}
