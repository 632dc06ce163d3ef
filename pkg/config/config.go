// Package config loads server and CLI configuration from a TOML file,
// filling anything unspecified with defaults that work out of the box.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lingqianapp/lingqian/pkg/card"
	"github.com/lingqianapp/lingqian/pkg/errors"
	"github.com/lingqianapp/lingqian/pkg/i18n"
)

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Cache   CacheConfig   `toml:"cache"`
	History HistoryConfig `toml:"history"`
	Card    CardConfig    `toml:"card"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Addr is the listen address, host:port.
	Addr string `toml:"addr"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout duration `toml:"shutdown_timeout"`
}

// CacheConfig selects and configures the card cache backend. When
// RedisAddr is set the server uses Redis; otherwise Dir selects a file
// cache; with neither, caching is off.
type CacheConfig struct {
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	Namespace     string   `toml:"namespace"`
	TTL           duration `toml:"ttl"`
}

// HistoryConfig configures draw history persistence. An empty MongoURI
// keeps history in memory.
type HistoryConfig struct {
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// CardConfig configures rendering.
type CardConfig struct {
	// QRTarget overrides the URL encoded in the card's QR inset.
	QRTarget string `toml:"qr_target"`

	// SignDataDir points at a directory of sign data files overriding
	// the embedded set.
	SignDataDir string `toml:"sign_data_dir"`

	// DefaultLanguage applies when a request names no language.
	DefaultLanguage string `toml:"default_language"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8420",
			ShutdownTimeout: duration{10 * time.Second},
		},
		Cache: CacheConfig{
			TTL: duration{24 * time.Hour},
		},
		History: HistoryConfig{
			Database: "lingqian",
		},
		Card: CardConfig{
			QRTarget:        card.DefaultQRTarget,
			DefaultLanguage: string(i18n.DefaultLanguage),
		},
	}
}

// Load reads the TOML file at path over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing config %s", path)
	}

	if _, err := i18n.Parse(cfg.Card.DefaultLanguage); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// duration wraps time.Duration so TOML accepts strings like "24h".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}
