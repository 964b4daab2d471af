package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	OpenAI        OpenAIConfig
	Site          SiteConfig
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
	Env          string `envconfig:"OCEANO_APP_ENV" required:"true"`
	Port         string `envconfig:"OCEANO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"OCEANO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"OCEANO_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"OCEANO_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"OCEANO_DB_DSN"`
	Driver string `envconfig:"OCEANO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"OCEANO_DB_HOST"`
	LegacyPort     int    `envconfig:"OCEANO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"OCEANO_DB_USER"`
	LegacyPassword string `envconfig:"OCEANO_DB_PASSWORD"`
	LegacyName     string `envconfig:"OCEANO_DB_NAME"`
	LegacySSLMode  string `envconfig:"OCEANO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"OCEANO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"OCEANO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"OCEANO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"OCEANO_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	ConnectRetries int           `envconfig:"OCEANO_DB_CONNECT_RETRIES" default:"5"`
	ConnectBackoff time.Duration `envconfig:"OCEANO_DB_CONNECT_BACKOFF" default:"500ms"`
}

// RedisConfig is optional; login rate limiting is skipped when URL is empty.
type RedisConfig struct {
	URL          string        `envconfig:"OCEANO_REDIS_URL"`
	DialTimeout  time.Duration `envconfig:"OCEANO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"OCEANO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"OCEANO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type JWTConfig struct {
	Secret          string `envconfig:"OCEANO_JWT_SECRET" required:"true"`
	Issuer          string `envconfig:"OCEANO_JWT_ISSUER" required:"true"`
	AdminTTLHours   int    `envconfig:"OCEANO_JWT_ADMIN_TTL_HOURS" default:"24"`
	ClienteTTLHours int    `envconfig:"OCEANO_JWT_CLIENTE_TTL_HOURS" default:"72"`
}

// AdminTTL returns the lifetime of admin panel tokens.
func (j JWTConfig) AdminTTL() time.Duration {
	return time.Duration(j.AdminTTLHours) * time.Hour
}

// ClienteTTL returns the lifetime of customer portal tokens.
func (j JWTConfig) ClienteTTL() time.Duration {
	return time.Duration(j.ClienteTTLHours) * time.Hour
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"OCEANO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"OCEANO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"OCEANO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"OCEANO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"OCEANO_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow    time.Duration `envconfig:"OCEANO_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUserLimit int           `envconfig:"OCEANO_AUTH_RATE_LIMIT_LOGIN_USER_LIMIT" default:"5"`
	LoginIPLimit   int           `envconfig:"OCEANO_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type OpenAIConfig struct {
	APIKey         string        `envconfig:"OCEANO_OPENAI_API_KEY"`
	Model          string        `envconfig:"OCEANO_OPENAI_MODEL" default:"gpt-4o-mini"`
	RequestTimeout time.Duration `envconfig:"OCEANO_OPENAI_TIMEOUT" default:"45s"`
	MaxToolRounds  int           `envconfig:"OCEANO_OPENAI_MAX_TOOL_ROUNDS" default:"4"`
}

func (o OpenAIConfig) Enabled() bool {
	return strings.TrimSpace(o.APIKey) != ""
}

// SiteConfig points at the static storefront assets served behind the API.
type SiteConfig struct {
	StaticDir  string `envconfig:"OCEANO_STATIC_DIR" default:"."`
	ContatoZap string `envconfig:"OCEANO_WHATSAPP_NUMERO" default:""`
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
