package config_test

import (
	"errors"
	"os"
	"testing"

	"github.com/heyeunseok/scripture-kiosk/internal/config"
)

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
}

func TestLoaderDefaults(t *testing.T) {
	loader := config.Loader{Lookup: mapLookup(nil)}
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	assertEqual(t, config.DefaultListenAddr, cfg.ListenAddr, "listen addr")
	assertEqual(t, config.DefaultLogLevel, cfg.LogLevel, "log level")
	assertEqual(t, config.DefaultLogFormat, cfg.LogFormat, "log format")
	assertEqual(t, config.DefaultBiblePath, cfg.BiblePath, "bible path")
	assertEqual(t, config.DefaultLanguage, cfg.Language, "language")
	if len(cfg.WakeWords) != 0 {
		t.Fatalf("expected no wake word override, got %v", cfg.WakeWords)
	}
	if cfg.StubSynthesizer {
		t.Fatalf("expected stub synthesizer disabled by default")
	}
	if cfg.MaskBookNames {
		t.Fatalf("expected book name masking disabled by default")
	}
}

func TestLoaderOverrides(t *testing.T) {
	files := map[string]string{
		"/etc/kiosk.yaml": `
listen_addr: 0.0.0.0:7000
log_level: debug
bible_path: /srv/bible.db
wake_words:
  - 헤이 은석
`,
	}
	env := map[string]string{
		"KIOSK_CONFIG_FILE":      "/etc/kiosk.yaml",
		"KIOSK_CONFIG":           `{"log_level":"error","log_format":"JSON","language":"ko"}`,
		"KIOSK_LISTEN_ADDR":      "0.0.0.0:6000",
		"KIOSK_WAKE_WORDS":       "hello kiosk, 안녕 키오스크",
		"KIOSK_STUB_SYNTHESIZER": "true",
		"KIOSK_MASK_BOOK_NAMES":  "1",
	}

	loader := config.Loader{
		Lookup: mapLookup(env),
		ReadFile: func(path string) ([]byte, error) {
			data, ok := files[path]
			if !ok {
				return nil, os.ErrNotExist
			}
			return []byte(data), nil
		},
	}

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	assertEqual(t, "0.0.0.0:6000", cfg.ListenAddr, "listen addr")
	assertEqual(t, "error", cfg.LogLevel, "log level")
	assertEqual(t, "json", cfg.LogFormat, "log format")
	assertEqual(t, "/srv/bible.db", cfg.BiblePath, "bible path")
	if len(cfg.WakeWords) != 2 || cfg.WakeWords[0] != "hello kiosk" || cfg.WakeWords[1] != "안녕 키오스크" {
		t.Fatalf("unexpected wake words: %q", cfg.WakeWords)
	}
	if !cfg.StubSynthesizer {
		t.Fatalf("expected stub synthesizer enabled")
	}
	if !cfg.MaskBookNames {
		t.Fatalf("expected book name masking enabled")
	}
}

func TestLoaderYAMLOnly(t *testing.T) {
	loader := config.Loader{
		Lookup: mapLookup(map[string]string{"KIOSK_CONFIG_FILE": "kiosk.yaml"}),
		ReadFile: func(string) ([]byte, error) {
			return []byte("wake_words: [\"헤이 은석\", \"  \"]\nstub_synthesizer: true\n"), nil
		},
	}
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if len(cfg.WakeWords) != 1 || cfg.WakeWords[0] != "헤이 은석" {
		t.Fatalf("unexpected wake words: %q", cfg.WakeWords)
	}
	if !cfg.StubSynthesizer {
		t.Fatalf("expected stub synthesizer from yaml")
	}
}

func TestLoaderErrors(t *testing.T) {
	cases := map[string]config.Loader{
		"missing file": {
			Lookup:   mapLookup(map[string]string{"KIOSK_CONFIG_FILE": "missing.yaml"}),
			ReadFile: func(string) ([]byte, error) { return nil, os.ErrNotExist },
		},
		"bad yaml": {
			Lookup:   mapLookup(map[string]string{"KIOSK_CONFIG_FILE": "bad.yaml"}),
			ReadFile: func(string) ([]byte, error) { return []byte("listen_addr: [unterminated"), nil },
		},
		"bad json": {
			Lookup: mapLookup(map[string]string{"KIOSK_CONFIG": "{"}),
		},
		"bad bool": {
			Lookup: mapLookup(map[string]string{"KIOSK_STUB_SYNTHESIZER": "maybe"}),
		},
		"bad format": {
			Lookup: mapLookup(map[string]string{"KIOSK_LOG_FORMAT": "xml"}),
		},
	}
	for name, loader := range cases {
		if _, err := loader.Load(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	loader := cases["missing file"]
	if _, err := loader.Load(); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestValidateRequiresListenAddr(t *testing.T) {
	cfg := config.Config{ListenAddr: "  "}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty listen addr")
	}
}

func assertEqual(t *testing.T, want, got, label string) {
	t.Helper()
	if want != got {
		t.Fatalf("unexpected %s: want %q, got %q", label, want, got)
	}
}
