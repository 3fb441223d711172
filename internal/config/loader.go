package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader loads configuration from an optional YAML file and environment
// variables. Tests can override Lookup and ReadFile to inject deterministic
// sources.
type Loader struct {
	Lookup   func(string) (string, bool)
	ReadFile func(string) ([]byte, error)
}

// Load retrieves the kiosk configuration and validates it. Sources apply in
// order: defaults, KIOSK_CONFIG_FILE (YAML), KIOSK_CONFIG (JSON), then
// individual KIOSK_* variables.
func (l Loader) Load() (Config, error) {
	if l.Lookup == nil {
		l.Lookup = os.LookupEnv
	}
	if l.ReadFile == nil {
		l.ReadFile = os.ReadFile
	}

	cfg := Config{
		ListenAddr: DefaultListenAddr,
	}

	if path, ok := l.Lookup("KIOSK_CONFIG_FILE"); ok && strings.TrimSpace(path) != "" {
		if err := l.applyYAML(strings.TrimSpace(path), &cfg); err != nil {
			return Config{}, err
		}
	}

	if raw, ok := l.Lookup("KIOSK_CONFIG"); ok && strings.TrimSpace(raw) != "" {
		if err := applyJSON(raw, &cfg); err != nil {
			return Config{}, err
		}
	}

	overrideString(l.Lookup, "KIOSK_LISTEN_ADDR", &cfg.ListenAddr)
	overrideString(l.Lookup, "KIOSK_LOG_LEVEL", &cfg.LogLevel)
	overrideString(l.Lookup, "KIOSK_LOG_FORMAT", &cfg.LogFormat)
	overrideString(l.Lookup, "KIOSK_BIBLE_PATH", &cfg.BiblePath)
	overrideString(l.Lookup, "KIOSK_LANGUAGE", &cfg.Language)
	if raw, ok := l.Lookup("KIOSK_WAKE_WORDS"); ok && strings.TrimSpace(raw) != "" {
		cfg.WakeWords = strings.Split(raw, ",")
	}
	if err := overrideBool(l.Lookup, "KIOSK_STUB_SYNTHESIZER", &cfg.StubSynthesizer); err != nil {
		return Config{}, err
	}
	if err := overrideBool(l.Lookup, "KIOSK_MASK_BOOK_NAMES", &cfg.MaskBookNames); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (l Loader) applyYAML(path string, cfg *Config) error {
	data, err := l.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var payload Config
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	merge(cfg, payload)
	return nil
}

func applyJSON(raw string, cfg *Config) error {
	var payload Config
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return fmt.Errorf("config: decode KIOSK_CONFIG: %w", err)
	}
	merge(cfg, payload)
	return nil
}

func merge(cfg *Config, payload Config) {
	if payload.ListenAddr != "" {
		cfg.ListenAddr = payload.ListenAddr
	}
	if payload.LogLevel != "" {
		cfg.LogLevel = payload.LogLevel
	}
	if payload.LogFormat != "" {
		cfg.LogFormat = payload.LogFormat
	}
	if payload.BiblePath != "" {
		cfg.BiblePath = payload.BiblePath
	}
	if payload.Language != "" {
		cfg.Language = payload.Language
	}
	if len(payload.WakeWords) > 0 {
		cfg.WakeWords = payload.WakeWords
	}
	if payload.StubSynthesizer {
		cfg.StubSynthesizer = true
	}
	if payload.MaskBookNames {
		cfg.MaskBookNames = true
	}
}

func overrideString(lookup func(string) (string, bool), key string, target *string) {
	if lookup == nil || target == nil {
		return
	}
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}

func overrideBool(lookup func(string) (string, bool), key string, target *bool) error {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*target = parsed
	return nil
}
