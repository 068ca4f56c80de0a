package config

// EnvPrefix is passed to envconfig; individual fields carry full env names.
const EnvPrefix = "datapulse"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	DataSourceCSV      = "csv"
	DataSourceDatabase = "database"
)

const (
	EnvAppEnv  = "DATAPULSE_APP_ENV"
	EnvPort    = "DATAPULSE_APP_PORT"
	EnvVersion = "DATAPULSE_APP_VERSION"

	EnvDBDSN    = "DATAPULSE_DB_DSN"
	EnvDBDriver = "DATAPULSE_DB_DRIVER"
	EnvDBHost   = "DATAPULSE_DB_HOST"
	EnvDBUser   = "DATAPULSE_DB_USER"
	EnvDBName   = "DATAPULSE_DB_NAME"

	EnvDataSource = "DATAPULSE_DATA_SOURCE"
	EnvDataDir    = "DATAPULSE_DATA_DIR"

	EnvChurnAtRiskDays = "DATAPULSE_CHURN_AT_RISK_DAYS"
	EnvChurnDays       = "DATAPULSE_CHURN_DAYS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
