// Package config loads server configuration from a YAML file with an
// optional .env overlay for deployment-specific values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Redis holds connection settings for the Redis session store.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Config is the full server configuration.
type Config struct {
	Listen       string        `yaml:"listen"`
	TreePath     string        `yaml:"tree"`
	CorpusPath   string        `yaml:"corpus"`
	ArtifactPath string        `yaml:"artifact"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
	LogLevel     string        `yaml:"log_level"`
	Redis        Redis         `yaml:"redis"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:       ":8080",
		TreePath:     "data/symptom_tree.yaml",
		CorpusPath:   "data/intents.json",
		ArtifactPath: "data/intent_model.json",
		SessionTTL:   30 * time.Minute,
		LogLevel:     "info",
	}
}

// Load reads the YAML file at path on top of the defaults, then
// applies environment overrides. An empty path skips the file and
// returns defaults plus environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}
	// .env is optional; ignore a missing file but keep real errors
	// out of band by only loading when it exists.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return cfg, fmt.Errorf("loading .env: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MEDTRIAGE_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("MEDTRIAGE_TREE"); v != "" {
		c.TreePath = v
	}
	if v := os.Getenv("MEDTRIAGE_CORPUS"); v != "" {
		c.CorpusPath = v
	}
	if v := os.Getenv("MEDTRIAGE_ARTIFACT"); v != "" {
		c.ArtifactPath = v
	}
	if v := os.Getenv("MEDTRIAGE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("MEDTRIAGE_SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.SessionTTL = d
		}
	}
	if v := os.Getenv("MEDTRIAGE_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("MEDTRIAGE_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("MEDTRIAGE_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = db
		}
	}
}
