package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultJWTSecret = "dev-secret-change-me"

// Config agrupa toda la configuración del servicio.
// Orden de carga: defaults -> archivo YAML (opcional) -> variables de entorno.
type Config struct {
	Port string `yaml:"port"`
	Env  string `yaml:"env"`

	// DatabaseDSN vacío = stores in-memory.
	DatabaseDSN string `yaml:"database_dsn"`

	JWTSecret             string `yaml:"jwt_secret"`
	AccessTokenTTLMinutes int    `yaml:"access_token_ttl_minutes"`

	// DevAuth habilita el header X-Debug-User-ID.
	DevAuth bool `yaml:"dev_auth"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	AppName   string `yaml:"app_name"`

	PicturesDir string `yaml:"pictures_dir"`

	AllowAdoptionReversal bool `yaml:"allow_adoption_reversal"`

	OdinBaseURL string `yaml:"odin_base_url"`
	OdinAPIKey  string `yaml:"odin_api_key"`

	LoginRatePerMinute int `yaml:"login_rate_per_minute"`
	LoginRateBurst     int `yaml:"login_rate_burst"`
}

func Defaults() Config {
	return Config{
		Port:                  "8080",
		Env:                   "dev",
		JWTSecret:             defaultJWTSecret,
		AccessTokenTTLMinutes: 60 * 24,
		LogLevel:              "info",
		LogFormat:             "text",
		AppName:               "adote-facil",
		PicturesDir:           "data/pictures",
		AllowAdoptionReversal: true,
		LoginRatePerMinute:    30,
		LoginRateBurst:        10,
	}
}

// Load arma la config desde defaults + archivo (si path != "") + env.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Port = getenv("PORT", cfg.Port)
	cfg.Env = getenv("APP_ENV", cfg.Env)
	cfg.DatabaseDSN = getenv("DB_DSN", cfg.DatabaseDSN)
	cfg.JWTSecret = getenv("JWT_SECRET", cfg.JWTSecret)
	cfg.AccessTokenTTLMinutes = getenvInt("ACCESS_TOKEN_TTL_MINUTES", cfg.AccessTokenTTLMinutes)
	cfg.DevAuth = getenvBool("DEV_AUTH", cfg.DevAuth)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getenv("LOG_FORMAT", cfg.LogFormat)
	cfg.AppName = getenv("APP_NAME", cfg.AppName)
	cfg.PicturesDir = getenv("PICTURES_DIR", cfg.PicturesDir)
	cfg.AllowAdoptionReversal = getenvBool("ANIMALS_ALLOW_REVERSAL", cfg.AllowAdoptionReversal)
	cfg.OdinBaseURL = getenv("ODIN_BASE_URL", cfg.OdinBaseURL)
	cfg.OdinAPIKey = getenv("ODIN_API_KEY", cfg.OdinAPIKey)
	cfg.LoginRatePerMinute = getenvInt("LOGIN_RATE_PER_MINUTE", cfg.LoginRatePerMinute)
	cfg.LoginRateBurst = getenvInt("LOGIN_RATE_BURST", cfg.LoginRateBurst)
}

// Validate rechaza configuraciones que no deberían llegar a producción.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("config: port is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("config: jwt secret is required")
	}
	if c.Env != "dev" && c.JWTSecret == defaultJWTSecret {
		return errors.New("config: default jwt secret is only allowed in dev")
	}
	if c.Env != "dev" && c.DevAuth {
		return errors.New("config: dev auth is only allowed in dev")
	}
	if c.AccessTokenTTLMinutes <= 0 {
		return errors.New("config: access token ttl must be positive")
	}
	if c.LoginRatePerMinute <= 0 || c.LoginRateBurst <= 0 {
		return errors.New("config: login rate limit must be positive")
	}
	return nil
}

func (c Config) IsDev() bool {
	return c.Env == "dev"
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

// getenvInt ignora valores inválidos o no positivos.
func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
