package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "VOYAGE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv  = "VOYAGE_APP_ENV"
	EnvAppPort = "VOYAGE_APP_PORT"

	EnvDBDSN  = "VOYAGE_DB_DSN"
	EnvDBHost = "VOYAGE_DB_HOST"
	EnvDBUser = "VOYAGE_DB_USER"
	EnvDBName = "VOYAGE_DB_NAME"

	EnvRedisURL = "VOYAGE_REDIS_URL"

	EnvBookingBaseURL = "VOYAGE_BOOKING_BASE_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
