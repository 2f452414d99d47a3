package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig carries every setting the api, worker and CLI binaries need.
// Values come from config/config.yml when present and may always be
// overridden through the environment (SERVER_PORT, DATABASE_URL, ...).
type AppConfig struct {
	ServerName  string        `mapstructure:"server_name" yaml:"server_name"`
	Environment string        `mapstructure:"environment" yaml:"environment"`
	Port        int           `mapstructure:"server_port" yaml:"server_port"`
	LogLevel    string        `mapstructure:"log_level" yaml:"log_level"`
	DatabaseURL string        `mapstructure:"database_url" yaml:"database_url"`
	RedisURL    string        `mapstructure:"redis_url" yaml:"redis_url"`
	FrontendURL string        `mapstructure:"frontend_url" yaml:"frontend_url"`
	Auth        AuthConfig    `mapstructure:"auth" yaml:"auth"`
	SMTP        SMTPConfig    `mapstructure:"smtp" yaml:"smtp"`
	Worker      WorkerConfig  `mapstructure:"worker" yaml:"worker"`
}

type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	AccessExpiry  time.Duration `mapstructure:"access_expiry" yaml:"access_expiry"`
	RefreshExpiry time.Duration `mapstructure:"refresh_expiry" yaml:"refresh_expiry"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
	From     string `mapstructure:"from" yaml:"from"`
	SiteName string `mapstructure:"site_name" yaml:"site_name"`
}

type WorkerConfig struct {
	Concurrency int    `mapstructure:"concurrency" yaml:"concurrency"`
	Queues      string `mapstructure:"queues" yaml:"queues"`
}

// Load reads config/config.yml (optional) and the environment.
// DATABASE_URL and AUTH_JWT_SECRET are required; missing either aborts
// startup the same way the setup scripts abort on a missing .env.
func Load() (*AppConfig, error) {
	var config AppConfig

	viper.SetConfigFile("config/config.yml")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Every key needs a default so AutomaticEnv can bind it during Unmarshal.
	viper.SetDefault("server_name", "handshake-api")
	viper.SetDefault("environment", "development")
	viper.SetDefault("server_port", 8000)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("database_url", "")
	viper.SetDefault("redis_url", "redis://localhost:6379/0")
	viper.SetDefault("frontend_url", "http://localhost:3000")
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("auth.access_expiry", time.Hour)
	viper.SetDefault("auth.refresh_expiry", 7*24*time.Hour)
	viper.SetDefault("smtp.host", "")
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("smtp.username", "")
	viper.SetDefault("smtp.password", "")
	viper.SetDefault("smtp.from", "")
	viper.SetDefault("smtp.site_name", "Contractor Connect")
	viper.SetDefault("worker.concurrency", 10)
	viper.SetDefault("worker.queues", "critical=6,default=3,low=1")

	if err := viper.ReadInConfig(); err != nil {
		// The config file is optional; env-only deployments are fine.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isNotExist(err) {
			return nil, err
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.DatabaseURL == "" {
		return nil, errors.New("config: DATABASE_URL is not set")
	}
	if config.Auth.JWTSecret == "" {
		return nil, errors.New("config: AUTH_JWT_SECRET is not set")
	}
	return &config, nil
}

func isNotExist(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such file")
}
