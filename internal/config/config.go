// Package config handles configuration loading and shared data structures.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/woozymasta/placefetch/internal/artifact"
	"github.com/woozymasta/placefetch/internal/nominatim"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default user facing messages (French).
const (
	DefaultEmptyQueryMessage = "Aucune chaine de caractère vide ne sera acceptée"
	DefaultFailureMessage    = "Une erreur est survenue lors du traitement de la demande"
)

// Config represents the root configuration file structure.
type Config struct {
	Storage         Storage       `yaml:"storage,omitempty"`
	Messages        Messages      `yaml:"messages,omitempty"`
	Endpoint        string        `yaml:"endpoint,omitempty" validate:"required,url"`
	UserAgent       string        `yaml:"user_agent,omitempty"`
	DefaultFilename string        `yaml:"default_filename,omitempty" validate:"required"`
	OutputDir       string        `yaml:"output_dir,omitempty"`
	Format          string        `yaml:"format,omitempty" validate:"oneof=json json-indent yaml"`
	Jobs            []Job         `yaml:"jobs,omitempty" validate:"dive"`
	Timeout         time.Duration `yaml:"timeout,omitempty" validate:"gte=0"`
}

// Messages are the fixed, localized texts shown to the user.
type Messages struct {
	EmptyQuery string `yaml:"empty_query,omitempty"`
	Failure    string `yaml:"failure,omitempty"`
}

// Storage configures the optional S3 compatible artifact sink.
type Storage struct {
	Endpoint  string `yaml:"endpoint,omitempty"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
	Bucket    string `yaml:"bucket,omitempty" validate:"required_with=Endpoint"`
	Prefix    string `yaml:"prefix,omitempty"`
	UseSSL    bool   `yaml:"use_ssl,omitempty"`
}

// Job is a single search processed by the batch loader.
type Job struct {
	Query    string         `yaml:"query" validate:"required"`
	Filename string         `yaml:"filename,omitempty"`
	Mode     nominatim.Mode `yaml:"mode"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the YAML configuration file from the specified path.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes YAML data, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// MinioConfig converts the storage section for the artifact package.
func (c *Config) MinioConfig() artifact.MinioConfig {
	return artifact.MinioConfig{
		Endpoint:  c.Storage.Endpoint,
		AccessKey: c.Storage.AccessKey,
		SecretKey: c.Storage.SecretKey,
		Bucket:    c.Storage.Bucket,
		Prefix:    c.Storage.Prefix,
		UseSSL:    c.Storage.UseSSL,
	}
}

func (c *Config) applyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = nominatim.DefaultEndpoint
	}
	if c.UserAgent == "" {
		c.UserAgent = nominatim.DefaultUserAgent
	}
	if c.DefaultFilename == "" {
		c.DefaultFilename = artifact.DefaultFilename
	}
	if c.Format == "" {
		c.Format = artifact.FormatJSON
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Messages.EmptyQuery == "" {
		c.Messages.EmptyQuery = DefaultEmptyQueryMessage
	}
	if c.Messages.Failure == "" {
		c.Messages.Failure = DefaultFailureMessage
	}
}
