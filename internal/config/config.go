package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the app-level settings: where the configuration tables live,
// how the starting colony looks, and where the server listens.
type Config struct {
	BuildingsPath string       `yaml:"buildings_path" json:"buildings_path"`
	CommandsPath  string       `yaml:"commands_path" json:"commands_path"`
	ListenAddr    string       `yaml:"listen_addr" json:"listen_addr"`
	Player        PlayerConfig `yaml:"player" json:"player"`
}

type PlayerConfig struct {
	Name    string   `yaml:"name" json:"name"`
	Planets []string `yaml:"planets" json:"planets"`
}

// Default returns the settings used when no config file is present.
func Default() Config {
	return Config{
		BuildingsPath: "data/buildings.yml",
		CommandsPath:  "data/commands.yml",
		ListenAddr:    ":8420",
		Player: PlayerConfig{
			Name:    "Commander",
			Planets: []string{"alpha"},
		},
	}
}

func (c *Config) ApplyDefaults() {
	def := Default()
	if c.BuildingsPath == "" {
		c.BuildingsPath = def.BuildingsPath
	}
	if c.CommandsPath == "" {
		c.CommandsPath = def.CommandsPath
	}
	if c.ListenAddr == "" {
		c.ListenAddr = def.ListenAddr
	}
	if c.Player.Name == "" {
		c.Player.Name = def.Player.Name
	}
	if len(c.Player.Planets) == 0 {
		c.Player.Planets = def.Player.Planets
	}
}

// Load reads a yaml config file and fills in defaults.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	c.ApplyDefaults()
	return c, nil
}

// FromEnv loads the config file named by TERMINAL_COLONY_CONFIG when set,
// falling back to defaults, then applies per-setting env overrides.
func FromEnv() (Config, error) {
	cfg := Default()
	if path := os.Getenv("TERMINAL_COLONY_CONFIG"); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if v := os.Getenv("TERMINAL_COLONY_BUILDINGS"); v != "" {
		cfg.BuildingsPath = v
	}
	if v := os.Getenv("TERMINAL_COLONY_COMMANDS"); v != "" {
		cfg.CommandsPath = v
	}
	if v := os.Getenv("TERMINAL_COLONY_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("TERMINAL_COLONY_PLAYER"); v != "" {
		cfg.Player.Name = v
	}
	return cfg, nil
}
