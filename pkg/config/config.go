package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/cbodonnell/digipet/pkg/log"
	"gopkg.in/yaml.v3"
)

// ErrFileNotFound is returned by LoadFromFile when path does not exist.
var ErrFileNotFound = errors.New("configuration file not found")

type TLSConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

type Config struct {
	Port        int    `yaml:"port"`
	LogLevel    string `yaml:"log_level"`
	AllowOrigin string `yaml:"allow_origin"`
	// DatabaseURL selects the journal backend: memory://, sqlite://path or postgresql://...
	DatabaseURL string `yaml:"database_url"`
	// JournalInterval is how often queued events are written to the journal
	JournalInterval  time.Duration `yaml:"journal_interval"`
	JournalQueueSize int           `yaml:"journal_queue_size"`
	TLS              *TLSConfig    `yaml:"tls,omitempty"`
}

func Default() Config {
	return Config{
		Port:             9090,
		LogLevel:         "info",
		AllowOrigin:      "*",
		DatabaseURL:      "memory://",
		JournalInterval:  10 * time.Second,
		JournalQueueSize: 1000,
	}
}

// LoadFromFile reads a YAML config file on top of Default().
func LoadFromFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %v", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields with the DIGIPET_* environment variables that are set.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("DIGIPET_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DIGIPET_PORT %q: %v", v, err)
		}
		c.Port = port
	}
	if v := getenv("DIGIPET_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("DIGIPET_ALLOW_ORIGIN"); v != "" {
		c.AllowOrigin = v
	}
	if v := getenv("DIGIPET_DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	certFile := getenv("DIGIPET_API_TLS_CERT_FILE")
	keyFile := getenv("DIGIPET_API_TLS_KEY_FILE")
	if certFile != "" && keyFile != "" {
		c.TLS = &TLSConfig{
			CertFile: certFile,
			KeyFile:  keyFile,
		}
	}
	return nil
}

func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if _, err := log.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url must be set")
	}
	if c.JournalInterval <= 0 {
		return fmt.Errorf("journal_interval must be positive, got %s", c.JournalInterval)
	}
	if c.JournalQueueSize <= 0 {
		return fmt.Errorf("journal_queue_size must be positive, got %d", c.JournalQueueSize)
	}
	if c.TLS != nil && (c.TLS.CertFile == "" || c.TLS.KeyFile == "") {
		return fmt.Errorf("tls requires both cert_file and key_file")
	}
	return nil
}
