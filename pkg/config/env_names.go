package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for fields without a tag.
const EnvPrefix = "OCEANO"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names shared with tests and tooling.
const (
	EnvAppEnv   = "OCEANO_APP_ENV"
	EnvPort     = "OCEANO_APP_PORT"
	EnvDBDSN    = "OCEANO_DB_DSN"
	EnvDBHost   = "OCEANO_DB_HOST"
	EnvDBUser   = "OCEANO_DB_USER"
	EnvDBName   = "OCEANO_DB_NAME"
	EnvRedisURL = "OCEANO_REDIS_URL"

	EnvJWTSecret = "OCEANO_JWT_SECRET"
	EnvJWTIssuer = "OCEANO_JWT_ISSUER"

	EnvOpenAIKey = "OCEANO_OPENAI_API_KEY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
