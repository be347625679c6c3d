package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds everything the process needs at startup. It is built once in
// main and passed down explicitly; nothing else reads viper.
type Config struct {
	Port          string
	DBPath        string
	SigningSecret string
	LogLevel      string
}

const defaultPort = "8080"

// Load reads config.yml from dir (default "configs") and returns the resolved
// configuration. The signing secret and database path are required; Load
// returns an error when either is absent so main can fail fast.
func Load(dir string) (Config, error) {
	if dir == "" {
		dir = "configs"
	}
	viper.AddConfigPath(dir)
	viper.SetConfigName("config")

	// The secret may also arrive via the environment, as in deployments
	// where the config file is checked in without it.
	_ = viper.BindEnv("auth.signing_secret", "JWT_SECRET")

	if err := viper.ReadInConfig(); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:          viper.GetString("port"),
		DBPath:        viper.GetString("db.path"),
		SigningSecret: viper.GetString("auth.signing_secret"),
		LogLevel:      viper.GetString("log.level"),
	}
	if cfg.SigningSecret == "" {
		return Config{}, errors.New("auth.signing_secret (or JWT_SECRET) is required")
	}
	if cfg.DBPath == "" {
		return Config{}, errors.New("db.path is required")
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	return cfg, nil
}
