package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env         string            `yaml:"env" env:"ENV" env-default:"local"`
	HTTP        HTTPConfig        `yaml:"http"`
	DataService DataServiceConfig `yaml:"data_service"`
	Storage     StorageConfig     `yaml:"storage"`
	Redis       RedisConf         `yaml:"redis"`
	Session     SessionConfig     `yaml:"session"`
	Profile     ProfileConfig     `yaml:"profile"`
	Site        SiteConfig        `yaml:"site"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	AllowOrigins    []string      `yaml:"allow_origins" env:"HTTP_ALLOW_ORIGINS" env-default:"*"`
}

// DataServiceConfig points at the hosted REST API. Leaving URL or APIKey
// empty is allowed: content reads then come back empty.
type DataServiceConfig struct {
	URL     string        `yaml:"url" env:"SUPABASE_URL"`
	APIKey  string        `yaml:"api_key" env:"SUPABASE_ANON_KEY"`
	Timeout time.Duration `yaml:"timeout" env:"SUPABASE_TIMEOUT" env-default:"10s"`
}

// StorageConfig is a direct Postgres connection, used when the REST API
// is not configured.
type StorageConfig struct {
	DSN string `yaml:"dsn" env:"DATABASE_DSN"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB" env-default:"0"`
}

type SessionConfig struct {
	Secret       string `yaml:"secret" env:"SESSION_SECRET"`
	CookieName   string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" env-default:"portfolio_session"`
	CookieSecure bool   `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE" env-default:"false"`
}

type ProfileConfig struct {
	Path string `yaml:"path" env:"PROFILE_PATH"`
}

type SiteConfig struct {
	Name        string `yaml:"name" env:"SITE_NAME" env-default:"Portfolio"`
	URL         string `yaml:"url" env:"SITE_URL" env-default:"http://localhost:8080"`
	Description string `yaml:"description" env:"SITE_DESCRIPTION"`
	Author      string `yaml:"author" env:"SITE_AUTHOR"`
}

type MetricsConfig struct {
	Username     string `yaml:"username" env:"METRICS_USERNAME" env-default:"metrics"`
	PasswordHash string `yaml:"password_hash" env:"METRICS_PASSWORD_HASH"`
}

// MustLoad reads the config file given by --config or CONFIG_PATH. Without
// either, the config comes from the environment alone.
func MustLoad() *Config {
	_ = godotenv.Load()

	path := fetchConfigPath()
	if path == "" {
		cfg, err := LoadEnv()
		if err != nil {
			panic("cannot read config from env: " + err.Error())
		}
		return cfg
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func LoadEnv() (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config.LoadEnv: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
