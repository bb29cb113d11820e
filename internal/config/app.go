package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Provider struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type CORS struct {
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

// Origins returns the configured cross-origin allow-list; an empty value
// means every origin is allowed.
func (c *CORS) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// Enabled reports whether the history primary tier is configured at all.
func (config *DbServer) Enabled() bool {
	return config.Host != ""
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type History struct {
	FallbackFile string `mapstructure:"fallback_file"`
}

type Catalog struct {
	RefreshMinutes int `mapstructure:"refresh_minutes"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Provider   Provider   `mapstructure:"provider"`
	CORS       CORS       `mapstructure:"cors"`
	DbServer   DbServer   `mapstructure:"db_server"`
	History    History    `mapstructure:"history"`
	Catalog    Catalog    `mapstructure:"catalog"`
	Logging    Logging    `mapstructure:"logging"`
}

func Init() (*AppConfig, error) {
	var cfg AppConfig

	// .env is optional; deployments set plain env vars
	_ = godotenv.Load()

	viper.SetDefault("http_server.port", "8080")
	viper.SetDefault("http_client.timeout_seconds", 5)
	viper.SetDefault("provider.api_key", "")
	viper.SetDefault("provider.base_url", "https://api.freecurrencyapi.com/v1")
	viper.SetDefault("cors.allowed_origins", "")
	viper.SetDefault("db_server.host", "")
	viper.SetDefault("db_server.port", "5432")
	viper.SetDefault("db_server.user", "")
	viper.SetDefault("db_server.pass", "")
	viper.SetDefault("db_server.name", "")
	viper.SetDefault("db_server.max_conns", 10)
	viper.SetDefault("history.fallback_file", "conversion-history.json")
	viper.SetDefault("catalog.refresh_minutes", 15)
	viper.SetDefault("logging.level", "info")

	// http server env vars
	_ = viper.BindEnv("http_server.port", "PORT")
	_ = viper.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// provider env vars
	_ = viper.BindEnv("provider.api_key", "FREE_CURRENCY_API_KEY")
	_ = viper.BindEnv("provider.base_url", "FREE_CURRENCY_API_BASE_URL")

	// cors env vars
	_ = viper.BindEnv("cors.allowed_origins", "ALLOWED_ORIGINS")

	// db server env vars
	_ = viper.BindEnv("db_server.host", "DB_HOST")
	_ = viper.BindEnv("db_server.port", "DB_PORT")
	_ = viper.BindEnv("db_server.user", "DB_USER")
	_ = viper.BindEnv("db_server.pass", "DB_PASS")
	_ = viper.BindEnv("db_server.name", "DB_NAME")
	_ = viper.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// history and catalog env vars
	_ = viper.BindEnv("history.fallback_file", "HISTORY_FALLBACK_FILE")
	_ = viper.BindEnv("catalog.refresh_minutes", "CATALOG_REFRESH_MINUTES")

	// logging env vars
	_ = viper.BindEnv("logging.level", "LOG_LEVEL")

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if cfg.Provider.APIKey == "" {
		return nil, fmt.Errorf("FREE_CURRENCY_API_KEY is required")
	}

	return &cfg, nil
}
