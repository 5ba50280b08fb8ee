package wick

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds defaults for new projects and settings for the tools built on
// the package. It is read from and written to YAML.
type Config struct {
	Project      ProjectConfig   `yaml:"project"`
	OnionSkin    OnionSkinConfig `yaml:"onionSkin"`
	HistoryLimit int             `yaml:"historyLimit"`
	StorePath    string          `yaml:"storePath"`
	LogLevel     string          `yaml:"logLevel"`
	WindowScale  float64         `yaml:"windowScale"`
	Debug        bool            `yaml:"debug"`
}

// ProjectConfig holds the settings given to new projects.
type ProjectConfig struct {
	Name       string `yaml:"name"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Framerate  int    `yaml:"framerate"`
	Background string `yaml:"background"`
}

// OnionSkinConfig holds the onion skin defaults of new projects.
type OnionSkinConfig struct {
	Enabled       bool `yaml:"enabled"`
	SeekBackwards int  `yaml:"seekBackwards"`
	SeekForwards  int  `yaml:"seekForwards"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Project: ProjectConfig{
			Name:       DefaultProjectName,
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Framerate:  DefaultFramerate,
			Background: ColorWhite.Hex(),
		},
		OnionSkin:    OnionSkinConfig{SeekBackwards: 1, SeekForwards: 1},
		HistoryLimit: 100,
		StorePath:    "wick.db",
		LogLevel:     "info",
		WindowScale:  1,
	}
}

// LoadConfig reads a YAML config from path. Fields missing from the file keep
// their defaults; a missing file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports settings that cannot produce a project.
func (c Config) Validate() error {
	if c.Project.Framerate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFramerate, c.Project.Framerate)
	}
	if c.Project.Width <= 0 || c.Project.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", c.Project.Width, c.Project.Height)
	}
	if _, err := ParseHexColor(c.Project.Background); err != nil {
		return err
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// NewProject creates a project with the configured defaults.
func (c Config) NewProject() (*Project, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	bg, _ := ParseHexColor(c.Project.Background)

	p := NewProject()
	p.Name = c.Project.Name
	p.Width = c.Project.Width
	p.Height = c.Project.Height
	p.BackgroundColor = bg
	p.framerate = c.Project.Framerate
	p.OnionSkinEnabled = c.OnionSkin.Enabled
	p.OnionSkinSeekBackwards = c.OnionSkin.SeekBackwards
	p.OnionSkinSeekForwards = c.OnionSkin.SeekForwards
	p.history.Limit = c.HistoryLimit
	if err := p.history.Reset(); err != nil {
		return nil, err
	}
	return p, nil
}
