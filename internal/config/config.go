// Package config resolves bot settings from .env, an optional YAML file,
// the environment and command-line overrides, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vthunder/wabot/internal/logging"
	"github.com/vthunder/wabot/internal/types"
)

// Defaults
const (
	DefaultConfigFile     = "wabot.yaml"
	DefaultEnvFile        = ".env"
	DefaultSessionDir     = "session"
	DefaultLogFile        = "logs.txt"
	DefaultDeviceName     = "wabot"
	DefaultReconnectDelay = 3 * time.Second
)

// Config holds resolved settings
type Config struct {
	OwnerJID       string
	SessionDir     string
	LogFile        string
	DeviceName     string
	ReconnectDelay time.Duration
	ProfileLog     string // command timing JSONL, empty disables it
	Debug          bool
}

// Options select the sources Load reads. Empty override fields are ignored.
type Options struct {
	EnvFile    string // explicit .env path; missing is an error when set
	ConfigFile string // explicit YAML path; missing is an error when set

	Owner      string
	SessionDir string
	LogFile    string
}

type fileConfig struct {
	Owner          string `yaml:"owner"`
	SessionDir     string `yaml:"session_dir"`
	LogFile        string `yaml:"log_file"`
	DeviceName     string `yaml:"device_name"`
	ReconnectDelay string `yaml:"reconnect_delay"`
	ProfileLog     string `yaml:"profile_log"`
	Debug          bool   `yaml:"debug"`
}

// Load resolves the configuration and validates it
func Load(opts Options) (*Config, error) {
	if err := loadEnv(opts.EnvFile); err != nil {
		return nil, err
	}

	fc, err := loadFile(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	owner := pick(opts.Owner, os.Getenv("OWNER_JID"), fc.Owner)
	delay := pick(os.Getenv("WABOT_RECONNECT_DELAY"), fc.ReconnectDelay)

	cfg := &Config{
		SessionDir:     pick(opts.SessionDir, os.Getenv("WABOT_SESSION_DIR"), fc.SessionDir, DefaultSessionDir),
		LogFile:        pick(opts.LogFile, os.Getenv("WABOT_LOG_FILE"), fc.LogFile, DefaultLogFile),
		DeviceName:     pick(os.Getenv("WABOT_DEVICE_NAME"), fc.DeviceName, DefaultDeviceName),
		ReconnectDelay: DefaultReconnectDelay,
		ProfileLog:     pick(os.Getenv("WABOT_PROFILE_LOG"), fc.ProfileLog),
		Debug:          fc.Debug,
	}
	if owner != "" {
		cfg.OwnerJID = types.NormalizeParticipant(owner)
	}
	if delay != "" {
		d, err := time.ParseDuration(delay)
		if err != nil {
			return nil, fmt.Errorf("invalid reconnect delay %q: %w", delay, err)
		}
		cfg.ReconnectDelay = d
	}
	if v := os.Getenv("DEBUG"); v != "" {
		cfg.Debug, _ = strconv.ParseBool(v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings
func (c *Config) Validate() error {
	if c.OwnerJID == "" {
		return errors.New("OWNER_JID is required")
	}
	if types.IsGroup(c.OwnerJID) {
		return fmt.Errorf("owner %s is a group, expected a user id", c.OwnerJID)
	}
	if c.SessionDir == "" {
		return errors.New("session dir must not be empty")
	}
	if c.LogFile == "" {
		return errors.New("log file must not be empty")
	}
	if c.ReconnectDelay <= 0 {
		return fmt.Errorf("reconnect delay must be positive, got %s", c.ReconnectDelay)
	}
	return nil
}

func loadEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
		logging.Info("config", "Loaded %s", path)
		return nil
	}
	if err := godotenv.Load(DefaultEnvFile); err != nil {
		logging.Debug("config", "No .env file found, using environment variables")
		return nil
	}
	logging.Info("config", "Loaded .env file")
	return nil
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	explicit := path != ""
	if !explicit {
		path = pick(os.Getenv("WABOT_CONFIG"), DefaultConfigFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return fc, nil
		}
		return fc, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	logging.Info("config", "Loaded %s", path)
	return fc, nil
}

// pick returns the first non-empty value
func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
