package config

import (
	"fmt"
	"strings"
)

const (
	// DefaultListenAddr is used when no explicit address is configured.
	DefaultListenAddr = "127.0.0.1:50061"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
	DefaultBiblePath  = "bible_ko.json"
	DefaultLanguage   = "ko"
)

// Config captures bootstrap configuration extracted from a YAML file, an
// injected JSON payload (`KIOSK_CONFIG`) and environment variables.
type Config struct {
	ListenAddr      string   `yaml:"listen_addr" json:"listen_addr"`
	LogLevel        string   `yaml:"log_level" json:"log_level"`
	LogFormat       string   `yaml:"log_format" json:"log_format"`
	BiblePath       string   `yaml:"bible_path" json:"bible_path"`
	Language        string   `yaml:"language" json:"language"`
	WakeWords       []string `yaml:"wake_words" json:"wake_words"`
	StubSynthesizer bool     `yaml:"stub_synthesizer" json:"stub_synthesizer"`
	// MaskBookNames drops the matched book name before reading numerals.
	MaskBookNames   bool     `yaml:"mask_book_names" json:"mask_book_names"`
}

// Validate applies defaults, checks required fields, and rejects unknown
// values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("config: listen address is required")
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("config: log_format must be text or json, got %q", c.LogFormat)
	}
	if c.BiblePath == "" {
		c.BiblePath = DefaultBiblePath
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	words := c.WakeWords[:0:0]
	for _, w := range c.WakeWords {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	c.WakeWords = words
	return nil
}
