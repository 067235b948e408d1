package config

// EnvPrefix scopes every envconfig binding below.
const EnvPrefix = "STORESCOUT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "STORESCOUT_APP_ENV"
	EnvPort     = "STORESCOUT_APP_PORT"
	EnvDBDSN    = "STORESCOUT_DB_DSN"
	EnvDBHost   = "STORESCOUT_DB_HOST"
	EnvDBUser   = "STORESCOUT_DB_USER"
	EnvDBName   = "STORESCOUT_DB_NAME"
	EnvRedisURL = "STORESCOUT_REDIS_URL"

	EnvJWTSecret              = "STORESCOUT_JWT_SECRET"
	EnvJWTIssuer              = "STORESCOUT_JWT_ISSUER"
	EnvJWTExpMins             = "STORESCOUT_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "STORESCOUT_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
