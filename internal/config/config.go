package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"seektam-backend/internal/catalog"
	"seektam-backend/internal/components/telemetry"
	"seektam-backend/internal/scrapers/koreafood"
	"seektam-backend/lib/configutil"
)

// EnvPath names the environment variable holding the config path.
const EnvPath = "SEEKTAM_CONFIG"

// DefaultName is searched for from the working directory upwards when no
// path is given.
const DefaultName = "config.json5"

type ServerConfig struct {
	Port int `json:"port"`
}

type SourceConfig struct {
	BaseUrl          string `json:"base_url"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
	CloudflareBypass bool   `json:"cloudflare_bypass"`
	// RefreshCron schedules a reload of the database while serving,
	// nothing is reloaded when empty.
	RefreshCron string `json:"refresh_cron"`
}

type Config struct {
	Database      string           `json:"database"`
	Server        ServerConfig     `json:"server"`
	Source        SourceConfig     `json:"source"`
	AlimentPolicy string           `json:"aliment_policy"`
	Telemetry     telemetry.Config `json:"telemetry"`
}

var Defaults = Config{
	Database: "seektam.db",
	Server: ServerConfig{
		Port: 8000,
	},
	Source: SourceConfig{
		BaseUrl:        koreafood.DefaultBaseUrl,
		TimeoutSeconds: 30,
	},
	AlimentPolicy: string(catalog.PolicyReuse),
}

// Load reads the config at path, falling back to the path in EnvPath and
// then to the closest DefaultName. Only the last one may be missing, in
// which case Defaults are used as is.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}

	var cfg Config
	var err error
	if path != "" {
		cfg, err = configutil.ReadConfig[Config](path)
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config %s does not exist", path)
		}
	} else {
		cfg, err = configutil.ReadRecursively[Config](DefaultName)
		if errors.Is(err, fs.ErrNotExist) {
			cfg, err = Config{}, nil
		}
	}
	if err != nil {
		return Config{}, err
	}

	cfg, err = configutil.WithDefaults(cfg, Defaults)
	if err != nil {
		return Config{}, err
	}
	_, err = cfg.Policy()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Policy() (catalog.Policy, error) {
	return catalog.ParsePolicy(c.AlimentPolicy)
}

func (c Config) ClientOptions() koreafood.ClientOptions {
	return koreafood.ClientOptions{
		BaseUrl:          c.Source.BaseUrl,
		Timeout:          time.Duration(c.Source.TimeoutSeconds) * time.Second,
		CloudflareBypass: c.Source.CloudflareBypass,
	}
}
