package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Default locations mirror the layout the daemon has always used.
const (
	DefaultPath   = "/workspace/gsocket-monitor/config/settings.json"
	DefaultLogDir = "/workspace/gsocket-monitor/logs"
)

// Settings is the flat record persisted at the settings path. Values are
// taken as-is; degenerate ones (zero interval, zero retries) simply produce
// degenerate timing, they are not clamped.
type Settings struct {
	MonitorInterval    int    `json:"monitor_interval"`
	GSocketEndpoint    string `json:"gsocket_endpoint"`
	MaxRetries         int    `json:"max_retries"`
	Timeout            int    `json:"timeout"`
	MaintenanceEnabled bool   `json:"maintenance_enabled"`
}

// ConfigError reports a settings file that exists but cannot be parsed.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("settings file %s is not valid JSON: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Default returns the record written on first run.
func Default() Settings {
	return Settings{
		MonitorInterval:    60,
		GSocketEndpoint:    "localhost:8080",
		MaxRetries:         3,
		Timeout:            10,
		MaintenanceEnabled: true,
	}
}

// Load parses the record at path. A present but unparsable file surfaces as
// a *ConfigError.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, &ConfigError{Path: path, Err: err}
	}
	return s, nil
}

// LoadOrCreate loads the record at path, persisting the defaults first when
// no file exists yet.
func LoadOrCreate(path string) (Settings, error) {
	s, err := Load(path)
	if err == nil {
		return s, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		defaults := Default()
		if saveErr := Save(defaults, path); saveErr != nil {
			return Settings{}, saveErr
		}
		return defaults, nil
	}
	return Settings{}, err
}

// Save serializes the record with two-space indentation, creating the parent
// directory when missing.
func Save(s Settings, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure settings directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
