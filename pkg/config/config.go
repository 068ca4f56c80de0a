package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Data         DataConfig
	Churn        ChurnConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Data.Source == DataSourceDatabase {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if err := cfg.Churn.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DATAPULSE_APP_ENV" required:"true"`
	Port         string `envconfig:"DATAPULSE_APP_PORT" required:"true"`
	Version      string `envconfig:"DATAPULSE_APP_VERSION" default:"1.0.0"`
	LogLevel     string `envconfig:"DATAPULSE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DATAPULSE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DATAPULSE_DB_DSN"`
	Driver string `envconfig:"DATAPULSE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DATAPULSE_DB_HOST"`
	LegacyPort     int    `envconfig:"DATAPULSE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DATAPULSE_DB_USER"`
	LegacyPassword string `envconfig:"DATAPULSE_DB_PASSWORD"`
	LegacyName     string `envconfig:"DATAPULSE_DB_NAME"`
	LegacySSLMode  string `envconfig:"DATAPULSE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DATAPULSE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DATAPULSE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DATAPULSE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DATAPULSE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// DataConfig controls where the analytics snapshot is loaded from.
type DataConfig struct {
	Source string `envconfig:"DATAPULSE_DATA_SOURCE" default:"csv"`
	Dir    string `envconfig:"DATAPULSE_DATA_DIR" default:"data/raw"`
}

func (d DataConfig) IsCSV() bool {
	return strings.EqualFold(d.Source, DataSourceCSV)
}

// ChurnConfig carries the recency thresholds the churn analyzer classifies
// against.
type ChurnConfig struct {
	AtRiskDays int `envconfig:"DATAPULSE_CHURN_AT_RISK_DAYS" default:"60"`
	ChurnDays  int `envconfig:"DATAPULSE_CHURN_DAYS" default:"90"`
}

func (c ChurnConfig) validate() error {
	if c.AtRiskDays <= 0 || c.ChurnDays <= 0 {
		return fmt.Errorf("churn thresholds must be positive")
	}
	if c.AtRiskDays >= c.ChurnDays {
		return fmt.Errorf("%s must be below %s", EnvChurnAtRiskDays, EnvChurnDays)
	}
	return nil
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"DATAPULSE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"DATAPULSE_AUTO_MIGRATE" default:"false"`
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
