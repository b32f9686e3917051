package config

import (
	"time"
)

// Default configuration values.
const (
	defaultServiceName     = "normalizer"
	defaultServiceVersion  = "1.0.0"
	defaultConcurrency     = 10
	defaultBatchSize       = 100
	defaultDBHost          = "localhost"
	defaultDBPort          = 5432
	defaultDBUser          = "postgres"
	defaultDBName          = "tenders"
	defaultDBSSLMode       = "disable"
	defaultDBMaxConns      = 25
	defaultDBMaxIdleConns  = 5
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultChunkSize       = 4500
	defaultMinQuality      = 0.3
	defaultProviderTimeout = 30 * time.Second
)

// Config holds all configuration for the normalization engine.
type Config struct {
	Service     ServiceConfig     `yaml:"service"`
	Database    DatabaseConfig    `yaml:"database"`
	Translation TranslationConfig `yaml:"translation"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ServiceConfig holds run-level configuration.
type ServiceConfig struct {
	Name           string        `yaml:"name"`
	Version        string        `yaml:"version"`
	Concurrency    int           `env:"NORMALIZER_CONCURRENCY"   yaml:"concurrency"`
	BatchSize      int           `env:"NORMALIZER_BATCH_SIZE"    yaml:"batch_size"`
	Limit          int           `env:"NORMALIZER_LIMIT"         yaml:"limit"`
	SkipNormalized bool          `yaml:"skip_normalized"`
	Tables         []string      `env:"NORMALIZER_TABLES"        yaml:"tables"`
	PollInterval   time.Duration `env:"NORMALIZER_POLL_INTERVAL" yaml:"poll_interval"` // 0 = single run
	FetchRPS       int           `env:"NORMALIZER_FETCH_RPS"     yaml:"fetch_rps"`     // 0 = unpaced
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
	Migrate         bool          `env:"POSTGRES_MIGRATE"  yaml:"migrate"`
}

// TranslationConfig holds translation provider settings.
type TranslationConfig struct {
	Enabled         bool          `env:"TRANSLATION_ENABLED"      yaml:"enabled"`
	ProviderURL     string        `env:"TRANSLATION_PROVIDER_URL" yaml:"provider_url"`
	ProviderTimeout time.Duration `yaml:"provider_timeout"`
	ChunkSize       int           `yaml:"chunk_size"`
	MinQuality      float64       `yaml:"min_quality"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return loadWithDefaults[Config](path, setDefaults)
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setTranslationDefaults(&cfg.Translation)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Concurrency == 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.BatchSize == 0 {
		s.BatchSize = defaultBatchSize
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = time.Hour
	}
}

func setTranslationDefaults(t *TranslationConfig) {
	if t.ProviderTimeout == 0 {
		t.ProviderTimeout = defaultProviderTimeout
	}
	if t.ChunkSize == 0 {
		t.ChunkSize = defaultChunkSize
	}
	if t.MinQuality == 0 {
		t.MinQuality = defaultMinQuality
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}
