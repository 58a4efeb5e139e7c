// Package config loads the optional ember.yaml application configuration
// and resolves defaults from the enclosing Go module.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// Config represents the optional ember.yaml configuration.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Display DisplayConfig `yaml:"display"`
	Engine  EngineConfig  `yaml:"engine"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
	ID   string `yaml:"id,omitempty"`
}

// DisplayConfig describes the target display.
type DisplayConfig struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
	// Scale is the integer pixel scale used when presenting on a host window.
	Scale int `yaml:"scale,omitempty"`
}

// EngineConfig bounds the engine's fixed-capacity pools.
type EngineConfig struct {
	WidgetCapacity int `yaml:"widget_capacity,omitempty"`
	TimerCapacity  int `yaml:"timer_capacity,omitempty"`
}

// Resolved contains resolved configuration values with defaults applied.
type Resolved struct {
	Root           string
	ModulePath     string
	AppName        string
	AppID          string
	DisplayWidth   int
	DisplayHeight  int
	DisplayScale   int
	WidgetCapacity int
	TimerCapacity  int
}

// LoadOptional reads ember.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "ember.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read ember.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse ember.yaml: %w", err)
	}

	return &cfg, nil
}

// Resolve loads ember.yaml (if present) and resolves defaults, deriving
// the app name and ID from the enclosing go.mod when unset.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	appID := strings.TrimSpace(cfg.App.ID)
	if appID == "" {
		appID = fmt.Sprintf("com.example.%s", appName)
	}
	if err := validateAppID(appID); err != nil {
		return nil, err
	}

	r := &Resolved{
		Root:           dir,
		ModulePath:     modulePath,
		AppName:        appName,
		AppID:          appID,
		DisplayWidth:   cfg.Display.Width,
		DisplayHeight:  cfg.Display.Height,
		DisplayScale:   cfg.Display.Scale,
		WidgetCapacity: cfg.Engine.WidgetCapacity,
		TimerCapacity:  cfg.Engine.TimerCapacity,
	}
	if r.DisplayWidth <= 0 {
		r.DisplayWidth = 480
	}
	if r.DisplayHeight <= 0 {
		r.DisplayHeight = 272
	}
	if r.DisplayScale <= 0 {
		r.DisplayScale = 1
	}
	if r.WidgetCapacity <= 0 {
		r.WidgetCapacity = 64
	}
	if r.TimerCapacity <= 0 {
		r.TimerCapacity = 16
	}
	return r, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok {
		parts := strings.Split(modName, "/")
		if len(parts) > 0 {
			base = parts[len(parts)-1]
		}
	}
	if base == "" {
		return "ember_app"
	}
	return sanitizeName(base)
}

func sanitizeName(name string) string {
	var out []rune
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		}
	}
	if len(out) == 0 {
		return "ember_app"
	}
	return string(out)
}

func validateAppID(appID string) error {
	if !strings.Contains(appID, ".") {
		return fmt.Errorf("app.id must contain at least one '.' (got %q)", appID)
	}
	for _, segment := range strings.Split(appID, ".") {
		if segment == "" {
			return fmt.Errorf("app.id contains an empty segment (%q)", appID)
		}
		if segment[0] >= '0' && segment[0] <= '9' {
			return fmt.Errorf("app.id segments cannot start with a digit (%q)", appID)
		}
		for _, r := range segment {
			if !(r == '_' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
				return fmt.Errorf("app.id contains invalid character %q in %q", r, appID)
			}
		}
	}
	return nil
}
