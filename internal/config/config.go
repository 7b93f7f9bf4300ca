// Package config loads and persists the CLI's configuration: the
// federation description, the wallet key, and tuning for the execution
// coordinator.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/fedwallet/pkg/types"
)

type Config struct {
	DataDir    string `json:"data_dir"`
	LogLevel   string `json:"log_level"`
	PrivateKey string `json:"private_key"`
	Federation struct {
		ID              string   `json:"id"`
		LightningDomain string   `json:"lightning_domain"`
		Gateway         string   `json:"gateway"`
		Relays          []string `json:"relays"`
		Modules         struct {
			Card   string `json:"card"`
			Ledger string `json:"ledger"`
			Urlx   string `json:"urlx"`
		} `json:"modules"`
	} `json:"federation"`
	Execute struct {
		PreDelayMS     int `json:"pre_delay_ms"`
		QueryTimeoutMS int `json:"query_timeout_ms"`
	} `json:"execute"`
}

// FederationConfig converts the file representation into the explicit
// configuration value the SDK entry points take.
func (c *Config) FederationConfig() types.FederationConfig {
	return types.FederationConfig{
		ID: c.Federation.ID,
		Endpoints: types.Endpoints{
			LightningDomain: c.Federation.LightningDomain,
			Gateway:         c.Federation.Gateway,
		},
		Modules: types.ModulePubkeys{
			Card:   c.Federation.Modules.Card,
			Ledger: c.Federation.Modules.Ledger,
			Urlx:   c.Federation.Modules.Urlx,
		},
		Relays: c.Federation.Relays,
	}
}

func defaults() *Config {
	cfg := &Config{
		DataDir:  filepath.Join(os.Getenv("HOME"), ".fedwallet"),
		LogLevel: "info",
	}
	cfg.Federation.ID = "lawallet.ar"
	cfg.Federation.LightningDomain = "https://lawallet.ar"
	cfg.Federation.Gateway = "https://api.lawallet.ar"
	cfg.Federation.Relays = []string{"wss://relay.damus.io", "wss://relay.lawallet.ar"}
	cfg.Execute.PreDelayMS = 500
	cfg.Execute.QueryTimeoutMS = 10000
	return cfg
}

// Load reads the config file at path, writing defaults first if it does
// not exist. Environment variables take highest precedence:
// FEDWALLET_PRIVATE_KEY, FEDWALLET_RELAYS (comma separated), and
// FEDWALLET_GATEWAY.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if os.IsNotExist(err) {
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
	}

	if key := os.Getenv("FEDWALLET_PRIVATE_KEY"); key != "" {
		cfg.PrivateKey = key
	}
	if relays := os.Getenv("FEDWALLET_RELAYS"); relays != "" {
		cfg.Federation.Relays = splitList(relays)
	}
	if gateway := os.Getenv("FEDWALLET_GATEWAY"); gateway != "" {
		cfg.Federation.Gateway = gateway
	}

	return cfg, nil
}

// Save writes the config atomically, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// ToMap converts a Config into a nested map via its JSON encoding.
func ToMap(cfg *Config) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// ListValues returns the config as a flat dot-separated map, masking
// secrets when mask is true.
func ListValues(cfg *Config, mask bool) (map[string]any, error) {
	m, err := ToMap(cfg)
	if err != nil {
		return nil, err
	}
	flat := Flatten(m)
	if mask {
		flat = MaskSecrets(flat)
	}
	return flat, nil
}

// GetValue reads a single dot-separated key from the config file at
// path.
func GetValue(path, key string) (any, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	flat, err := ListValues(cfg, false)
	if err != nil {
		return nil, err
	}
	v, ok := flat[key]
	if !ok {
		return nil, fmt.Errorf("unknown config key %q", key)
	}
	return v, nil
}

// SetValue writes a single dot-separated key into the config file at
// path, coercing the value to bool or number when it parses as one.
func SetValue(path, key, value string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	m, err := ToMap(cfg)
	if err != nil {
		return err
	}

	flat := Flatten(m)
	flat[key] = coerce(value)

	nested := Unflatten(flat)
	data, err := json.Marshal(nested)
	if err != nil {
		return err
	}
	updated := &Config{}
	if err := json.Unmarshal(data, updated); err != nil {
		return fmt.Errorf("apply %s: %w", key, err)
	}
	return Save(path, updated)
}

func coerce(value string) any {
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	var n float64
	if _, err := fmt.Sscanf(value, "%g", &n); err == nil && fmt.Sprintf("%g", n) == value {
		return n
	}
	return value
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
