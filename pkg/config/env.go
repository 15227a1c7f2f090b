package config

// EnvPrefix is passed to envconfig; every field carries its full variable name.
const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "STOREFRONT_APP_ENV"
	EnvPort     = "STOREFRONT_APP_PORT"
	EnvLogLevel = "STOREFRONT_LOG_LEVEL"

	EnvDBDSN    = "STOREFRONT_DB_DSN"
	EnvDBDriver = "STOREFRONT_DB_DRIVER"
	EnvDBHost   = "STOREFRONT_DB_HOST"
	EnvDBUser   = "STOREFRONT_DB_USER"
	EnvDBName   = "STOREFRONT_DB_NAME"

	EnvRedisURL = "STOREFRONT_REDIS_URL"

	EnvAdminLowStockThreshold = "STOREFRONT_ADMIN_LOW_STOCK_THRESHOLD"
	EnvAdminProgressStatuses  = "STOREFRONT_ADMIN_PROGRESS_STATUSES"
	EnvAdminTimezone          = "STOREFRONT_ADMIN_TIMEZONE"

	EnvGCPProjectID        = "STOREFRONT_GCP_PROJECT_ID"
	EnvPubSubActivityTopic = "STOREFRONT_PUBSUB_ACTIVITY_TOPIC"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
