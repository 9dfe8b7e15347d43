package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// DefaultSourceURL is the UniProt entry ingested when nothing else is configured.
const DefaultSourceURL = "https://raw.githubusercontent.com/weavebio/data-engineering-coding-challenge/main/data/Q9Y261.xml"

type Neo4jConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
}

type SourceConfig struct {
	URL                string `toml:"url"`
	HTTPTimeoutSeconds int    `toml:"http_timeout_seconds"`
	CacheSize          int    `toml:"cache_size"`
	CacheTTLSeconds    int    `toml:"cache_ttl_seconds"`

	// AllowedHosts limits the http(s) sources the server accepts from callers.
	AllowedHosts []string `toml:"allowed_hosts"`
}

func (s SourceConfig) HTTPTimeout() time.Duration {
	return time.Duration(s.HTTPTimeoutSeconds) * time.Second
}

func (s SourceConfig) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLSeconds) * time.Second
}

type S3Config struct {
	Region    string `toml:"region"`
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
}

type ScheduleConfig struct {
	Cron       string `toml:"cron"`
	RunOnStart bool   `toml:"run_on_start"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type IngestConfig struct {
	Parallel     bool `toml:"parallel"`
	BuildIndices bool `toml:"build_indices"`
}

type Config struct {
	Neo4j    Neo4jConfig    `toml:"neo4j"`
	Source   SourceConfig   `toml:"source"`
	S3       S3Config       `toml:"s3"`
	Schedule ScheduleConfig `toml:"schedule"`
	Server   ServerConfig   `toml:"server"`
	Ingest   IngestConfig   `toml:"ingest"`
}

func Default() *Config {
	return &Config{
		Neo4j: Neo4jConfig{
			URI:  "bolt://localhost:7687",
			User: "neo4j",
		},
		Source: SourceConfig{
			URL:                DefaultSourceURL,
			HTTPTimeoutSeconds: 60,
			CacheSize:          64,
			CacheTTLSeconds:    3600,
			AllowedHosts:       []string{"rest.uniprot.org", "www.uniprot.org"},
		},
		Schedule: ScheduleConfig{Cron: "@daily"},
		Server:   ServerConfig{Port: "8080"},
		Ingest:   IngestConfig{Parallel: true, BuildIndices: true},
	}
}

// Load reads a TOML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// Resolve loads path when it exists (defaults otherwise) and applies
// environment overrides.
func Resolve(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type envOverrides struct {
	Neo4jURI      string `envconfig:"NEO4J_URI"`
	Neo4jUser     string `envconfig:"NEO4J_USER"`
	Neo4jPassword string `envconfig:"NEO4J_PASSWORD"`
	Neo4jDatabase string `envconfig:"NEO4J_DATABASE"`
	SourceURL     string `envconfig:"SOURCE_URL"`
	S3Region      string `envconfig:"S3_REGION"`
	S3Endpoint    string `envconfig:"S3_ENDPOINT"`
	S3AccessKey   string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey   string `envconfig:"S3_SECRET_KEY"`
	CronSchedule  string `envconfig:"CRON_SCHEDULE"`
	RunOnStart    *bool  `envconfig:"RUN_ON_START"`
	HTTPPort      string `envconfig:"HTTP_PORT"`
	Parallel      *bool  `envconfig:"INGEST_PARALLEL"`
}

// ApplyEnv overrides fields whose environment variable is set.
func (c *Config) ApplyEnv() error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	setString(&c.Neo4j.URI, env.Neo4jURI)
	setString(&c.Neo4j.User, env.Neo4jUser)
	setString(&c.Neo4j.Password, env.Neo4jPassword)
	setString(&c.Neo4j.Database, env.Neo4jDatabase)
	setString(&c.Source.URL, env.SourceURL)
	setString(&c.S3.Region, env.S3Region)
	setString(&c.S3.Endpoint, env.S3Endpoint)
	setString(&c.S3.AccessKey, env.S3AccessKey)
	setString(&c.S3.SecretKey, env.S3SecretKey)
	setString(&c.Schedule.Cron, env.CronSchedule)
	setString(&c.Server.Port, env.HTTPPort)
	if env.RunOnStart != nil {
		c.Schedule.RunOnStart = *env.RunOnStart
	}
	if env.Parallel != nil {
		c.Ingest.Parallel = *env.Parallel
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
