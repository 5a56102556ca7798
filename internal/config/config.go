package config

import (
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration. It is loaded once in main and
// passed to the components that need it; there is no package-level state
// so tests can construct their own instances.
type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Storage struct {
		// Driver selects the store backend: "memory" (JSON-file backed)
		// or "postgres".
		Driver string `mapstructure:"driver"`
		URL    string `mapstructure:"url"`
	} `mapstructure:"storage"`
	Data struct {
		// Dir holds categories.json, terms.json and learning_paths.json.
		Dir string `mapstructure:"dir"`
		// Persist writes mutations back to the JSON files (dev mode).
		Persist bool `mapstructure:"persist"`
		// Watch reloads the memory store when the data files change.
		Watch bool `mapstructure:"watch"`
	} `mapstructure:"data"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
	JWT struct {
		SecretKey      string        `mapstructure:"secret_key"`
		AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	} `mapstructure:"jwt"`
	Admin struct {
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
	} `mapstructure:"admin"`
}

// Load reads config.yaml from path (and the working directory as a
// fallback), with APP_-prefixed environment variables taking precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.BindEnv("storage.url", "APP_DATABASE_URL")
	v.BindEnv("jwt.secret_key", "APP_SESSION_SECRET")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Warn("Config file not found, using defaults and environment variables")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg, v)
	return &cfg, nil
}

func applyDefaults(cfg *Config, v *viper.Viper) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "memory"
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	if !v.IsSet("data.persist") {
		// The original development workflow writes edits back to the
		// JSON files so they can be committed.
		cfg.Data.Persist = true
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Authorization", "Content-Type"}
	}
	if cfg.JWT.SecretKey == "" {
		slog.Warn("JWT secret key not set, using insecure development default")
		cfg.JWT.SecretKey = "dev-secret-key"
	}
	if cfg.JWT.AccessTokenTTL <= 0 {
		cfg.JWT.AccessTokenTTL = 24 * time.Hour
	}
	if cfg.Admin.Username == "" {
		cfg.Admin.Username = "admin"
	}
	if cfg.Admin.Password == "" {
		slog.Warn("Admin password not set, using insecure development default")
		cfg.Admin.Password = "admin123"
	}
}
