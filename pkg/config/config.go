package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/AAliKKhan/PassMeterX/pkg/logging"
	"gopkg.in/yaml.v3"
)

const (
	hostDefault         = "127.0.0.1"
	portDefault         = 8080
	readTimeoutDefault  = 300 * time.Second
	writeTimeoutDefault = 300 * time.Second
	shutdownWaitDefault = 5 * time.Second

	maxPort = 65535
)

// ErrInvalid is returned when a config value is out of range.
var ErrInvalid = errors.New("invalid config")

// Config represents the runtime configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	ShutdownWait time.Duration `yaml:"shutdown_wait"`
	OpenBrowser  bool          `yaml:"open_browser"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the config used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         hostDefault,
			Port:         portDefault,
			ReadTimeout:  readTimeoutDefault,
			WriteTimeout: writeTimeoutDefault,
			ShutdownWait: shutdownWaitDefault,
			OpenBrowser:  true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatCLI,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load reads the YAML file at path over the defaults.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return fmt.Errorf("%w: server host required", ErrInvalid)
	}
	if c.Server.Port < 1 || c.Server.Port > maxPort {
		return fmt.Errorf("%w: server port %d out of range", ErrInvalid, c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("%w: server timeouts must be positive", ErrInvalid)
	}
	if c.Server.ShutdownWait < 0 {
		return fmt.Errorf("%w: shutdown wait must not be negative", ErrInvalid)
	}
	if !logging.IsFormat(c.Log.Format) {
		return fmt.Errorf("%w: unsupported log format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// Address is the host:port the server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
