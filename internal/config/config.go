// Package config loads the YAML configuration shared by the dipr binaries.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Fetch sources.
const (
	SourceTGFTP = "tgftp"
	SourceS3    = "s3"
	SourceGCS   = "gcs"
)

// LogConfig controls logrus and the optional rotating log file.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	MaxBackups int    `yaml:"maxBackups"`
	Compress   bool   `yaml:"compress"`
}

// FetchConfig selects where DPR files come from.
type FetchConfig struct {
	Source    string        `yaml:"source"`
	BaseURL   string        `yaml:"baseURL"`
	S3Bucket  string        `yaml:"s3Bucket"`
	GCSBucket string        `yaml:"gcsBucket"`
	StatusURL string        `yaml:"statusURL"`
	Timeout   time.Duration `yaml:"timeout"`
	CacheTTL  time.Duration `yaml:"cacheTTL"` // 0 turns the cache off
}

// HTTPConfig is the diprserv listener.
type HTTPConfig struct {
	Addr          string        `yaml:"addr"`
	ReadTimeout   time.Duration `yaml:"readTimeout"`
	WriteTimeout  time.Duration `yaml:"writeTimeout"`
	IdleTimeout   time.Duration `yaml:"idleTimeout"`
	WatchInterval time.Duration `yaml:"watchInterval"`
	MaxRenderSize int           `yaml:"maxRenderSize"`
}

// KafkaConfig is the scan publisher.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Config is the whole file.
type Config struct {
	Log       LogConfig   `yaml:"log"`
	Fetch     FetchConfig `yaml:"fetch"`
	HTTP      HTTPConfig  `yaml:"http"`
	Kafka     KafkaConfig `yaml:"kafka"`
	SkipZeros bool        `yaml:"skipZeros"`
	Workers   int         `yaml:"workers"`
}

const defaultCacheTTL = 2 * time.Minute

// Default returns the configuration used when no file is given.
func Default() Config {
	cfg := preset()
	cfg.applyDefaults()
	return cfg
}

// preset holds the defaults that have a meaningful zero value. They are set before decoding so an
// explicit zero in the file survives.
func preset() Config {
	return Config{Fetch: FetchConfig{CacheTTL: defaultCacheTTL}}
}

// Load reads the file at path. An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes YAML from r, fills in defaults and validates the result.
func Parse(r io.Reader) (Config, error) {
	cfg := preset()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = 25
	}
	if c.Log.MaxAgeDays <= 0 {
		c.Log.MaxAgeDays = 7
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = 5
	}

	if c.Fetch.Source == "" {
		c.Fetch.Source = SourceTGFTP
	}
	c.Fetch.Source = strings.ToLower(c.Fetch.Source)
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = 30 * time.Second
	}

	if c.HTTP.Addr == "" {
		c.HTTP.Addr = "0.0.0.0:8081"
	}
	if c.HTTP.ReadTimeout <= 0 {
		c.HTTP.ReadTimeout = 15 * time.Second
	}
	if c.HTTP.WriteTimeout <= 0 {
		c.HTTP.WriteTimeout = 60 * time.Second
	}
	if c.HTTP.IdleTimeout <= 0 {
		c.HTTP.IdleTimeout = 60 * time.Second
	}
	if c.HTTP.WatchInterval <= 0 {
		c.HTTP.WatchInterval = time.Minute
	}
	if c.HTTP.MaxRenderSize <= 0 {
		c.HTTP.MaxRenderSize = 2048
	}

	if len(c.Kafka.Brokers) == 0 {
		c.Kafka.Brokers = []string{"localhost:9092"}
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "dpr-scans"
	}

	if c.Workers <= 0 {
		c.Workers = 4
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "error", "warn", "info", "debug", "trace":
	default:
		return fmt.Errorf("log.level %q: must be one of error, warn, info, debug, trace", c.Log.Level)
	}
	switch c.Fetch.Source {
	case SourceTGFTP, SourceS3, SourceGCS:
	default:
		return fmt.Errorf("fetch.source %q: must be one of %s, %s, %s", c.Fetch.Source, SourceTGFTP, SourceS3, SourceGCS)
	}
	if c.Fetch.CacheTTL < 0 {
		return fmt.Errorf("fetch.cacheTTL must not be negative, got %s", c.Fetch.CacheTTL)
	}
	for _, b := range c.Kafka.Brokers {
		if strings.TrimSpace(b) == "" {
			return errors.New("kafka.brokers: empty broker address")
		}
	}
	return nil
}
