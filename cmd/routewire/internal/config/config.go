// Package config loads the routewire CLI configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mveldt/routewire/memrouter"
	"github.com/mveldt/routewire/route"
)

// Config represents a routewire.yaml configuration file.
type Config struct {
	Router RouterConfig `yaml:"router"`
	Log    LogConfig    `yaml:"log"`
}

// RouterConfig describes the route table the CLI serves.
type RouterConfig struct {
	BaseURL      string        `yaml:"base_url,omitempty"`
	DefaultRoute string        `yaml:"default_route,omitempty"`
	Autostart    *bool         `yaml:"autostart,omitempty"`
	Routes       []RouteConfig `yaml:"routes"`
}

// RouteConfig is a single route table entry.
type RouteConfig struct {
	Name   string            `yaml:"name"`
	Path   string            `yaml:"path"`
	Params map[string]string `yaml:"params,omitempty"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	Trace bool   `yaml:"trace,omitempty"`
}

// Resolved contains validated configuration ready to wire up.
type Resolved struct {
	Routes        []memrouter.Route
	BaseURL       string
	DefaultRoute  route.Name
	DefaultParams route.Params
	Autostart     bool
	LogLevel      slog.Level
	Trace         bool
}

// LoadOptional reads the file at path if present. A missing file yields an
// empty configuration, not an error.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Resolve loads the file (if present) and validates it into usable values.
func Resolve(path string) (*Resolved, error) {
	cfg, err := LoadOptional(path)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve()
}

// Resolve validates the raw configuration and applies defaults.
func (c *Config) Resolve() (*Resolved, error) {
	res := &Resolved{
		BaseURL:   strings.TrimSpace(c.Router.BaseURL),
		Autostart: true,
		LogLevel:  slog.LevelInfo,
		Trace:     c.Log.Trace,
	}
	if c.Router.Autostart != nil {
		res.Autostart = *c.Router.Autostart
	}

	if lvl := strings.TrimSpace(c.Log.Level); lvl != "" {
		level, err := parseLevel(lvl)
		if err != nil {
			return nil, err
		}
		res.LogLevel = level
	}

	seen := make(map[route.Name]bool)
	for i, rc := range c.Router.Routes {
		name := route.Name(strings.TrimSpace(rc.Name))
		if !name.IsValid() {
			return nil, fmt.Errorf("routes[%d]: invalid route name %q", i, rc.Name)
		}
		if seen[name] {
			return nil, fmt.Errorf("routes[%d]: duplicate route %q", i, name)
		}
		seen[name] = true

		path := strings.TrimSpace(rc.Path)
		if path == "" || !strings.HasPrefix(path, "/") {
			return nil, fmt.Errorf("routes[%d] (%s): path must start with /", i, name)
		}
		res.Routes = append(res.Routes, memrouter.Route{Name: name, Path: path})

		if def := route.Name(strings.TrimSpace(c.Router.DefaultRoute)); def != "" && def == name {
			res.DefaultRoute = def
			res.DefaultParams = route.Params(rc.Params).Clone()
		}
	}
	if len(res.Routes) == 0 {
		return nil, errors.New("no routes configured")
	}

	if def := strings.TrimSpace(c.Router.DefaultRoute); def != "" && res.DefaultRoute == "" {
		return nil, fmt.Errorf("default_route %q is not in the route table", def)
	}

	return res, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
