package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/turbolytics/neoarchive/internal/neows"
)

const dateLayout = "2006-01-02"

// Defaults reproduce the original fixed run.
const (
	DefaultStartDate  = "2019-01-02"
	DefaultEndDate    = "2019-01-05"
	DefaultAPIKeyFile = "NASA_API_key.json"
	DefaultOutputDir  = "../data"
)

var (
	repositoryTypes = []string{"local", "s3", "stdout"}
	preserverTypes  = []string{"json", "parquet"}
)

type Logger struct {
	Level string `yaml:"level"`
}

type Feed struct {
	URL        string        `yaml:"url"`
	StartDate  string        `yaml:"start_date"`
	EndDate    string        `yaml:"end_date"`
	APIKey     string        `yaml:"api_key"`
	APIKeyFile string        `yaml:"api_key_file"`
	Timeout    time.Duration `yaml:"timeout"`
}

type LocalConfig struct {
	Path   string `yaml:"path"`
	Prefix string `yaml:"prefix"`
}

type S3Config struct {
	Bucket         string `yaml:"bucket"`
	Region         string `yaml:"region"`
	Prefix         string `yaml:"prefix"`
	Endpoint       string `yaml:"endpoint"`
	ForcePathStyle bool   `yaml:"force_path_style"`
}

type Repository struct {
	Type        string      `yaml:"type"`
	LocalConfig LocalConfig `yaml:"local"`
	S3Config    S3Config    `yaml:"s3"`
}

type Preserver struct {
	Type   string `yaml:"type"`
	Indent string `yaml:"indent"`
}

type Config struct {
	Logger     Logger     `yaml:"logger"`
	Feed       Feed       `yaml:"feed"`
	Repository Repository `yaml:"repository"`
	Preserver  Preserver  `yaml:"preserver"`
}

func Default() *Config {
	return &Config{
		Logger: Logger{Level: "info"},
		Feed: Feed{
			URL:        neows.DefaultFeedURL,
			StartDate:  DefaultStartDate,
			EndDate:    DefaultEndDate,
			APIKeyFile: DefaultAPIKeyFile,
			Timeout:    30 * time.Second,
		},
		Repository: Repository{
			Type:        "local",
			LocalConfig: LocalConfig{Path: DefaultOutputDir},
		},
		Preserver: Preserver{
			Type:   "json",
			Indent: "  ",
		},
	}
}

// NewFromFile reads a YAML config. Keys absent from the file keep their
// defaults.
func NewFromFile(fpath string) (*Config, error) {
	bs, err := os.ReadFile(fpath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	c := Default()
	if err := yaml.Unmarshal(bs, c); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return c, nil
}

// Override applies flag and environment values that were explicitly set.
func (c *Config) Override(v *viper.Viper) {
	set := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	set("log-level", &c.Logger.Level)
	set("feed-url", &c.Feed.URL)
	set("start-date", &c.Feed.StartDate)
	set("end-date", &c.Feed.EndDate)
	set("api-key", &c.Feed.APIKey)
	set("api-key-file", &c.Feed.APIKeyFile)
	set("repository", &c.Repository.Type)
	set("output-dir", &c.Repository.LocalConfig.Path)
	set("preserver", &c.Preserver.Type)

	if v.IsSet("timeout") {
		c.Feed.Timeout = v.GetDuration("timeout")
	}
}

func (c *Config) Validate() error {
	from, err := time.Parse(dateLayout, c.Feed.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", c.Feed.StartDate)
	}
	to, err := time.Parse(dateLayout, c.Feed.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", c.Feed.EndDate)
	}
	if to.Before(from) {
		return fmt.Errorf("end date %s is before start date %s", c.Feed.EndDate, c.Feed.StartDate)
	}

	if !lo.Contains(repositoryTypes, c.Repository.Type) {
		return fmt.Errorf("unknown repository type: %s", c.Repository.Type)
	}
	if c.Repository.Type == "s3" && c.Repository.S3Config.Bucket == "" {
		return fmt.Errorf("repository.s3.bucket is required for the s3 repository")
	}

	if !lo.Contains(preserverTypes, c.Preserver.Type) {
		return fmt.Errorf("unknown preserver type: %s", c.Preserver.Type)
	}

	if _, err := zap.ParseAtomicLevel(c.Logger.Level); err != nil {
		return fmt.Errorf("invalid logger level: %w", err)
	}

	return nil
}

func (c *Config) DateRange() neows.DateRange {
	return neows.DateRange{
		From: c.Feed.StartDate,
		To:   c.Feed.EndDate,
	}
}

// APIKey returns the configured key, reading the key file when no key
// was given directly. The key file holds a single JSON string.
func (c *Config) APIKey() (string, error) {
	if c.Feed.APIKey != "" {
		return c.Feed.APIKey, nil
	}

	bs, err := os.ReadFile(c.Feed.APIKeyFile)
	if err != nil {
		return "", fmt.Errorf("reading api key file: %w", err)
	}

	var key string
	if err := json.Unmarshal(bs, &key); err != nil {
		return "", fmt.Errorf("parsing api key file %s: %w", c.Feed.APIKeyFile, err)
	}
	return key, nil
}

func NewLogger(c Logger) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = level
	return zc.Build()
}
