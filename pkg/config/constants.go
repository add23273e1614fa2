package config

// EnvPrefix is intentionally empty: every variable carries the full
// STOCKROOM_ prefix in its envconfig tag so grepping for a name finds it.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names shared with tests and tooling.
const (
	EnvAppEnv            = "STOCKROOM_APP_ENV"
	EnvPort              = "STOCKROOM_APP_PORT"
	EnvDBDSN             = "STOCKROOM_DB_DSN"
	EnvDBDriver          = "STOCKROOM_DB_DRIVER"
	EnvDBHost            = "STOCKROOM_DB_HOST"
	EnvDBUser            = "STOCKROOM_DB_USER"
	EnvDBName            = "STOCKROOM_DB_NAME"
	EnvRedisURL          = "STOCKROOM_REDIS_URL"
	EnvLowStockThreshold = "STOCKROOM_LOW_STOCK_THRESHOLD"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
