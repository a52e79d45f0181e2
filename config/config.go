// Package config loads the blog engine settings from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	DriverBadger = "badger"
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Store   StoreConf   `yaml:"store"`
	Logging LoggingConf `yaml:"logging"`
}

type StoreConf struct {
	Driver string     `yaml:"driver" validate:"oneof=badger mongo memory"`
	Badger BadgerConf `yaml:"badger"`
	Mongo  MongoConf  `yaml:"mongo"`
}

type BadgerConf struct {
	Path      string `yaml:"path"`
	BackupDir string `yaml:"backup_dir"`
}

type MongoConf struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type LoggingConf struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Format  string `yaml:"format" validate:"oneof=json console"`
}

// Default returns the settings used when no file or flag says otherwise.
func Default() *Config {
	return &Config{
		Store: StoreConf{
			Driver: DriverBadger,
			Badger: BadgerConf{
				Path:      "data/badger",
				BackupDir: "data/backups",
			},
			Mongo: MongoConf{
				URI:      "mongodb://localhost:27017",
				Database: "blogDB",
			},
		},
		Logging: LoggingConf{
			Enabled: true,
			Level:   "warn",
			Format:  "console",
		},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
// The result is not validated, so flags can still override it.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("malformed config %s: %w", path, err)
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks the field rules and then the settings each driver needs.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var msgs []string
			for _, e := range validationErrors {
				msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("invalid config:\n- %s", strings.Join(msgs, "\n- "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	switch c.Store.Driver {
	case DriverBadger:
		if c.Store.Badger.Path == "" {
			return fmt.Errorf("invalid config: store.badger.path is required for the badger driver")
		}
	case DriverMongo:
		if c.Store.Mongo.URI == "" || c.Store.Mongo.Database == "" {
			return fmt.Errorf("invalid config: store.mongo.uri and store.mongo.database are required for the mongo driver")
		}
	}
	return nil
}
