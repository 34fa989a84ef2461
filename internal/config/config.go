// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"facebook-scorer/internal/scoring"
)

const defaultConfigPath = "configs/config.yaml"

type Config struct {
	Port string `yaml:"port"`

	//Facebook credentials, env only
	FacebookEmail    string `yaml:"-"`
	FacebookPassword string `yaml:"-"`

	//Paths
	CookiesPath string `yaml:"cookies_path"`
	CachePath   string `yaml:"cache_path"`

	//Browser
	Headless            bool          `yaml:"-"`
	NavigationTimeout   time.Duration `yaml:"-"`
	ShutdownGracePeriod time.Duration `yaml:"-"`

	//Scoring
	Weights  scoring.Weights `yaml:"weights"`
	CacheTTL time.Duration   `yaml:"-"`

	//API
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`

	//Optional integrations
	DatabaseURL    string `yaml:"-"`
	TelegramToken  string `yaml:"-"`
	TelegramChatID int64  `yaml:"-"`
}

// yamlConfig mirrors the YAML file layout. Durations are strings so the
// file can say "30s" instead of nanoseconds.
type yamlConfig struct {
	Port                string          `yaml:"port"`
	CookiesPath         string          `yaml:"cookies_path"`
	CachePath           string          `yaml:"cache_path"`
	Headless            *bool           `yaml:"headless"`
	NavigationTimeout   string          `yaml:"navigation_timeout"`
	ShutdownGracePeriod string          `yaml:"shutdown_grace_period"`
	CacheTTL            string          `yaml:"cache_ttl"`
	Weights             scoring.Weights `yaml:"weights"`
	RateLimitRPS        float64         `yaml:"rate_limit_rps"`
	RateLimitBurst      int             `yaml:"rate_limit_burst"`
}

// Load resolves configuration from .env, configs/config.yaml and the
// process environment. Env vars win over the YAML file.
func Load() (*Config, error) {
	return LoadFrom(defaultConfigPath)
}

func LoadFrom(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	//Load yaml config. A missing file is fine, the defaults carry.
	data, err := os.ReadFile(path)
	if err == nil {
		var yc yamlConfig
		if err := yaml.Unmarshal(data, &yc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		applyYAML(cfg, &yc)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	//Override with env vars
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	//Validate required fields
	if cfg.FacebookEmail == "" {
		return nil, fmt.Errorf("FACEBOOK_EMAIL is required")
	}
	if cfg.FacebookPassword == "" {
		return nil, fmt.Errorf("FACEBOOK_PASSWORD is required")
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Port:                "7070",
		CookiesPath:         "cookies",
		CachePath:           ".cache",
		Headless:            true,
		NavigationTimeout:   30 * time.Second,
		ShutdownGracePeriod: 10 * time.Second,
		CacheTTL:            6 * time.Hour,
		Weights:             scoring.DefaultWeights(),
		RateLimitRPS:        5,
		RateLimitBurst:      10,
	}
}

func applyYAML(cfg *Config, yc *yamlConfig) {
	if yc.Port != "" {
		cfg.Port = yc.Port
	}
	if yc.CookiesPath != "" {
		cfg.CookiesPath = yc.CookiesPath
	}
	if yc.CachePath != "" {
		cfg.CachePath = yc.CachePath
	}
	if yc.Headless != nil {
		cfg.Headless = *yc.Headless
	}
	if d, err := time.ParseDuration(yc.NavigationTimeout); err == nil && d > 0 {
		cfg.NavigationTimeout = d
	}
	if d, err := time.ParseDuration(yc.ShutdownGracePeriod); err == nil && d > 0 {
		cfg.ShutdownGracePeriod = d
	}
	if d, err := time.ParseDuration(yc.CacheTTL); err == nil && d > 0 {
		cfg.CacheTTL = d
	}
	if yc.Weights != (scoring.Weights{}) {
		cfg.Weights = yc.Weights
	}
	if yc.RateLimitRPS > 0 {
		cfg.RateLimitRPS = yc.RateLimitRPS
	}
	if yc.RateLimitBurst > 0 {
		cfg.RateLimitBurst = yc.RateLimitBurst
	}
}

func applyEnv(cfg *Config) error {
	cfg.FacebookEmail = os.Getenv("FACEBOOK_EMAIL")
	cfg.FacebookPassword = os.Getenv("FACEBOOK_PASSWORD")

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if path := os.Getenv("COOKIES_PATH"); path != "" {
		cfg.CookiesPath = path
	}
	if path := os.Getenv("CACHE_PATH"); path != "" {
		cfg.CachePath = path
	}
	if headless := os.Getenv("HEADLESS"); headless != "" {
		value, err := strconv.ParseBool(headless)
		if err != nil {
			return fmt.Errorf("invalid HEADLESS: %w", err)
		}
		cfg.Headless = value
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	return nil
}
