package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the panel.
type Config struct {
	Port    string        `mapstructure:"port"`
	Debug   bool          `mapstructure:"debug"`   // verbose logging only
	Testing bool          `mapstructure:"testing"` // suppress outbound commands
	Device  DeviceConfig  `mapstructure:"device"`
	Poll    PollConfig    `mapstructure:"poll"`
	View    ViewConfig    `mapstructure:"view"`
	History HistoryConfig `mapstructure:"history"`
}

type DeviceConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RateLimit      float64       `mapstructure:"rate_limit"` // requests per second, <= 0 disables
	RateBurst      int           `mapstructure:"rate_burst"`
}

type PollConfig struct {
	StatusInterval time.Duration `mapstructure:"status_interval"`
	TankInterval   time.Duration `mapstructure:"tank_interval"`
}

type ViewConfig struct {
	OffTimeLayout string `mapstructure:"offtime_layout"`
	Timezone      string `mapstructure:"timezone"` // IANA name, empty means local
	Durations     []int  `mapstructure:"durations"`
}

type HistoryConfig struct {
	Size int `mapstructure:"size"` // dispatch records kept in memory
}

const (
	envPrefix = "PANEL"

	defaultStatusInterval        = 3 * time.Second
	defaultTestingStatusInterval = 10 * time.Second
)

// keys without defaults still need binding so env overrides reach Unmarshal
var envOnlyKeys = []string{"device.base_url", "poll.status_interval", "view.timezone"}

// LoadDotEnv loads environment variables from the given .env files (default ".env").
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads path (or configs/config.yml when empty) and PANEL_* environment overrides.
// A missing default config file is not an error as long as the result validates.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range envOnlyKeys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", k, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Poll.StatusInterval == 0 {
		cfg.Poll.StatusInterval = defaultStatusInterval
		if cfg.Testing {
			cfg.Poll.StatusInterval = defaultTestingStatusInterval
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("debug", false)
	v.SetDefault("testing", false)

	v.SetDefault("device.request_timeout", "5s")
	v.SetDefault("device.rate_limit", 5.0)
	v.SetDefault("device.rate_burst", 10)

	v.SetDefault("poll.tank_interval", "600s")

	v.SetDefault("view.offtime_layout", "Mon Jan 02 2006 15:04:05 MST")
	v.SetDefault("view.durations", []int{30, 90, 120, 180})

	v.SetDefault("history.size", 64)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Device.BaseURL) == "":
		return errors.New("config: device.base_url is required")
	case c.Device.RequestTimeout <= 0:
		return fmt.Errorf("config: device.request_timeout must be > 0, got %s", c.Device.RequestTimeout)
	case c.Device.RateBurst < 0:
		return fmt.Errorf("config: device.rate_burst must be >= 0, got %d", c.Device.RateBurst)
	case c.Poll.StatusInterval <= 0:
		return fmt.Errorf("config: poll.status_interval must be > 0, got %s", c.Poll.StatusInterval)
	case c.Poll.TankInterval <= 0:
		return fmt.Errorf("config: poll.tank_interval must be > 0, got %s", c.Poll.TankInterval)
	case c.History.Size <= 0:
		return fmt.Errorf("config: history.size must be > 0, got %d", c.History.Size)
	}
	for _, m := range c.View.Durations {
		if m <= 0 {
			return fmt.Errorf("config: view.durations must all be > 0, got %d", m)
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves view.timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.View.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.View.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: view.timezone: %w", err)
	}
	return loc, nil
}

// LogLevel maps the debug flag onto a logger level name.
func (c *Config) LogLevel() string {
	if c.Debug {
		return "debug"
	}
	return "info"
}
