package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/1siamBot/townmap/engine/terrain"
)

// EnvServerAddr overrides Config.ServerAddr when set.
const EnvServerAddr = "TOWNMAP_ADDR"

// Config holds renderer and command settings
type Config struct {
	Terrain    terrain.Params `json:"terrain"`
	Workers    int            `json:"workers"`     // cache build goroutines, 0 = GOMAXPROCS
	LayoutSeed int64          `json:"layout_seed"` // 0 = time-seeded
	SpritePath string         `json:"sprite_path"` // empty = procedural sprite
	SpriteSize int            `json:"sprite_size"`
	OutDir     string         `json:"out_dir"`
	ServerAddr string         `json:"server_addr"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Terrain:    terrain.DefaultParams(),
		SpriteSize: 50,
		OutDir:     "frames",
		ServerAddr: ":8080",
	}
}

// Load reads a JSON file on top of the defaults. An empty path skips the
// file. The environment is applied last.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if addr := os.Getenv(EnvServerAddr); addr != "" {
		cfg.ServerAddr = addr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the renderer cannot use
func (c *Config) Validate() error {
	if c.Terrain.Octaves < 1 {
		return fmt.Errorf("config: terrain.octaves must be >= 1, got %d", c.Terrain.Octaves)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must be >= 0, got %d", c.Workers)
	}
	if c.SpriteSize < 1 {
		return fmt.Errorf("config: sprite_size must be >= 1, got %d", c.SpriteSize)
	}
	return nil
}
