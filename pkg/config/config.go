package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the envconfig prefix shared by every variable below.
const EnvPrefix = "FIREDOORS"

const (
	EnvDBDSN  = "FIREDOORS_DB_DSN"
	EnvDBHost = "FIREDOORS_DB_HOST"
	EnvDBUser = "FIREDOORS_DB_USER"
	EnvDBName = "FIREDOORS_DB_NAME"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Files        FilesConfig
	Ingest       IngestConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FIREDOORS_APP_ENV" required:"true"`
	Port         string `envconfig:"FIREDOORS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FIREDOORS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FIREDOORS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FIREDOORS_DB_DSN"`
	Driver string `envconfig:"FIREDOORS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FIREDOORS_DB_HOST"`
	LegacyPort     int    `envconfig:"FIREDOORS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FIREDOORS_DB_USER"`
	LegacyPassword string `envconfig:"FIREDOORS_DB_PASSWORD"`
	LegacyName     string `envconfig:"FIREDOORS_DB_NAME"`
	LegacySSLMode  string `envconfig:"FIREDOORS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FIREDOORS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FIREDOORS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FIREDOORS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FIREDOORS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FIREDOORS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FIREDOORS_REDIS_ADDR"`
	Password     string        `envconfig:"FIREDOORS_REDIS_PASSWORD"`
	DB           int           `envconfig:"FIREDOORS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FIREDOORS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FIREDOORS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FIREDOORS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FIREDOORS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FIREDOORS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// FilesConfig configures the local blob store for uploaded order forms.
type FilesConfig struct {
	Dir         string `envconfig:"FIREDOORS_FILES_DIR" default:"./data/files"`
	MaxUploadMB int    `envconfig:"FIREDOORS_MAX_UPLOAD_MB" default:"20"`
}

// IngestConfig tunes order-form ingestion.
type IngestConfig struct {
	LockTTL time.Duration `envconfig:"FIREDOORS_INGEST_LOCK_TTL" default:"30s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"FIREDOORS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"FIREDOORS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
