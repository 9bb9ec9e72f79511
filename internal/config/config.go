// Package config loads articlewriter settings from an optional TOML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/csheth/articlewriter/internal/llm"
	"github.com/csheth/articlewriter/internal/reveal"
)

const DefaultPath = "articlewriter.toml"

const (
	defaultProvider       = "gemini"
	defaultRequestTimeout = 3 * time.Minute
	defaultTypeInterval   = 10 * time.Millisecond
	defaultEraseInterval  = 5 * time.Millisecond
	defaultEditorHeight   = 12
)

// Duration decodes TOML strings such as "10ms" or "3m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Animation paces the reveal effect.
type Animation struct {
	TypeInterval  Duration `toml:"type_interval"`
	EraseInterval Duration `toml:"erase_interval"`
}

// Editor sizes the editor widget in terminal cells.
type Editor struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Config is the resolved application configuration.
type Config struct {
	Provider       string    `toml:"provider"`
	Model          string    `toml:"model"`
	Endpoint       string    `toml:"endpoint"`
	APIKeyEnv      string    `toml:"api_key_env"`
	RequestTimeout Duration  `toml:"request_timeout"`
	LogFile        string    `toml:"log_file"`
	Animation      Animation `toml:"animation"`
	Editor         Editor    `toml:"editor"`

	// APIKey is resolved from the environment, never read from the file.
	APIKey string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Provider:       defaultProvider,
		RequestTimeout: Duration{defaultRequestTimeout},
		Animation: Animation{
			TypeInterval:  Duration{defaultTypeInterval},
			EraseInterval: Duration{defaultEraseInterval},
		},
		Editor: Editor{Height: defaultEditorHeight},
	}
}

// Overrides carries command-line values; empty fields leave the loaded
// configuration untouched.
type Overrides struct {
	Provider string
	Model    string
	Endpoint string
	LogFile  string
}

// Load reads path over the defaults, then applies the environment and o.
// A missing file is not an error unless required is set.
func Load(path string, required bool, o Overrides) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !errors.Is(err, fs.ErrNotExist) || required {
				return Config{}, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}
	cfg.resolve(os.Getenv, o)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// resolve layers env over file values and o over env. Provider-specific
// variables are read once the provider is settled.
func (c *Config) resolve(getenv func(string) string, o Overrides) {
	if v := getenv("ARTICLEWRITER_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := getenv("ARTICLEWRITER_MODEL"); v != "" {
		c.Model = v
	}
	if o.Provider != "" {
		c.Provider = o.Provider
	}
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "ollama" {
		if v := getenv("OLLAMA_HOST"); v != "" && c.Endpoint == "" {
			c.Endpoint = strings.TrimRight(v, "/")
		}
		if v := getenv("OLLAMA_MODEL"); v != "" && c.Model == "" {
			c.Model = v
		}
	}
	if o.Model != "" {
		c.Model = o.Model
	}
	if o.Endpoint != "" {
		c.Endpoint = o.Endpoint
	}
	if o.LogFile != "" {
		c.LogFile = o.LogFile
	}
	if name := c.KeyEnv(); name != "" {
		c.APIKey = getenv(name)
	}
}

// KeyEnv names the environment variable holding the API key.
func (c Config) KeyEnv() string {
	if c.APIKeyEnv != "" {
		return c.APIKeyEnv
	}
	switch c.Provider {
	case "openai":
		return "OPENAI_API_KEY"
	case "ollama":
		return ""
	default:
		return "GOOGLE_API_KEY"
	}
}

// Validate rejects settings the program cannot run with.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini", "openai", "ollama":
	default:
		return fmt.Errorf("unknown provider %q (want gemini, openai or ollama)", c.Provider)
	}
	if c.Animation.TypeInterval.Duration <= 0 || c.Animation.EraseInterval.Duration <= 0 {
		return errors.New("animation intervals must be positive")
	}
	if c.RequestTimeout.Duration < 0 {
		return errors.New("request_timeout cannot be negative")
	}
	if c.Editor.Height < 0 || c.Editor.Width < 0 {
		return errors.New("editor size cannot be negative")
	}
	return nil
}

// LLM converts the backend settings for llm.New.
func (c Config) LLM() llm.Config {
	return llm.Config{
		Provider: c.Provider,
		Model:    c.Model,
		Endpoint: c.Endpoint,
		APIKey:   c.APIKey,
		Timeout:  c.RequestTimeout.Duration,
	}
}

// Reveal converts the animation pacing for reveal.New.
func (c Config) Reveal() reveal.Options {
	return reveal.Options{
		TypeInterval:  c.Animation.TypeInterval.Duration,
		EraseInterval: c.Animation.EraseInterval.Duration,
	}
}
