package config

import (
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

const (
	CONFIG_PATH = "./res/config.yaml"

	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageBadger   = "badger"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"

	DefaultStorageKey = "users"
)

// ServiceConfig holds the configuration for the service.
type ServiceConfig struct {
	ServiceName string    `yaml:"service_name" validate:"required"`
	LogLevel    string    `yaml:"loglevel" validate:"required"`
	Host        string    `yaml:"host" validate:"required"`
	Port        string    `yaml:"port" validate:"required"`
	Storage     Storage   `yaml:"storage"`
	RateLimit   RateLimit `yaml:"rate_limit"`
}

// Storage selects the backend that holds the record list. Only the block
// matching Type is read.
type Storage struct {
	Type     string         `yaml:"type" validate:"required,oneof=memory file badger postgres mongo"`
	Key      string         `yaml:"key" validate:"omitempty,alphanum"`
	File     FileConfig     `yaml:"file_config"`
	Badger   BadgerConfig   `yaml:"badger_config"`
	Postgres PostgresConfig `yaml:"postgres_config"`
	MongoDB  MongoDBConfig  `yaml:"mongodb_config"`
}

type FileConfig struct {
	Dir string `yaml:"dir"`
}

type BadgerConfig struct {
	Path           string        `yaml:"path"`
	SyncWrites     bool          `yaml:"sync_writes"`
	GCInterval     time.Duration `yaml:"gc_interval"`
	GCDiscardRatio float64       `yaml:"gc_discard_ratio" validate:"gte=0,lte=1"`
}

type MongoDBConfig struct {
	DSN        string             `yaml:"dsn"`
	Collection string             `yaml:"collection"`
	Timeout    time.Duration      `yaml:"timeout"`
	Options    MongoServerOptions `yaml:"mongo_server_options"`
}

type PostgresConfig struct {
	DSN     string                `yaml:"dsn"`
	Table   string                `yaml:"table"`
	Options PostgresServerOptions `yaml:"postgres_server_options"`
}

type MongoServerOptions struct {
	APIVersion           string `yaml:"api_version"`
	SetStrict            bool   `yaml:"set_strict"`
	SetDeprecationErrors bool   `yaml:"set_deprecation_errors"`
}

type PostgresServerOptions struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// RateLimit configures the global token bucket. A zero RequestsPerSecond
// disables limiting.
type RateLimit struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gte=0"`
	Burst             int     `yaml:"burst" validate:"gte=0"`
}

// ReadLocalConfig reads the service configuration from a YAML file at the specified path.
// It unmarshals the YAML content into a ServiceConfig struct and returns it.
// If there is an error reading the file or unmarshaling the content, it returns an error.
func ReadLocalConfig(configPath string) (*ServiceConfig, error) {
	config := &ServiceConfig{}

	yamlFile, err := os.ReadFile(configPath) // #nosec G304
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, config)
	if err != nil {
		return nil, err
	}

	if config.Storage.Key == "" {
		config.Storage.Key = DefaultStorageKey
	}

	return config, nil
}

// BuildServerAPIOptions returns nil when no API version is configured so
// the driver negotiates one itself.
func BuildServerAPIOptions(cfg MongoServerOptions) *options.ServerAPIOptions {
	if cfg.APIVersion == "" {
		return nil
	}
	opts := options.ServerAPI(options.ServerAPIVersion(cfg.APIVersion))
	opts.SetStrict(cfg.SetStrict)
	opts.SetDeprecationErrors(cfg.SetDeprecationErrors)

	return opts
}
