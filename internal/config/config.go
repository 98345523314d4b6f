package config

import (
	"errors"
	"strings"

	"github.com/caarlos0/env/v9"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"

	AuthModeFirebase = "firebase"
	AuthModeJWT      = "jwt"
)

type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	GitSHA    string `env:"GIT_SHA" envDefault:"dev"`
	BuildTime string `env:"BUILD_TIME"`

	DBDriver               string `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseURL            string `env:"DATABASE_URL"`
	DBUser                 string `env:"DB_USER"`
	DBPassword             string `env:"DB_PASSWORD"`
	DBHost                 string `env:"DB_HOST" envDefault:"localhost"` // host, tcp(host:port), unix(/path) or /path
	DBName                 string `env:"DB_NAME"`
	DBPort                 string `env:"DB_PORT"`
	DBSSLMode              string `env:"DB_SSLMODE" envDefault:"disable"`
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`

	AuthMode                string `env:"AUTH_MODE" envDefault:"firebase"`
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE"`
	JWTSecret               string `env:"JWT_SECRET"`
	JWTIssuer               string `env:"JWT_ISSUER" envDefault:"skillswap"`

	RedisURL           string `env:"REDIS_URL"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`

	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	AdminUIDs      []string `env:"ADMIN_UIDS" envSeparator:","`
	SeedOnStart    bool     `env:"SEED_ON_START" envDefault:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validateDB(); err != nil {
		return nil, err
	}
	if err := cfg.validateAuth(); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute <= 0 {
		cfg.RateLimitPerMinute = 30
	}
	return &cfg, nil
}

// LoadDatabase is Load for tools that only talk to the database.
func LoadDatabase() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validateDB(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validateDB() error {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case DriverPostgres:
		if c.DBPort == "" {
			c.DBPort = "5432"
		}
	case DriverMySQL:
		if c.DBPort == "" {
			c.DBPort = "3306"
		}
	default:
		return errors.New("DB_DRIVER must be postgres or mysql")
	}
	if c.DatabaseURL == "" && (c.DBUser == "" || c.DBName == "") {
		return errors.New("DATABASE_URL or DB_USER and DB_NAME are required")
	}
	return nil
}

func (c *Config) validateAuth() error {
	c.AuthMode = strings.ToLower(strings.TrimSpace(c.AuthMode))
	switch c.AuthMode {
	case AuthModeFirebase:
		if c.FirebaseProjectID == "" {
			return errors.New("FIREBASE_PROJECT_ID is required when AUTH_MODE=firebase")
		}
	case AuthModeJWT:
		if len(c.JWTSecret) < 16 {
			return errors.New("JWT_SECRET of at least 16 bytes is required when AUTH_MODE=jwt")
		}
	default:
		return errors.New("AUTH_MODE must be firebase or jwt")
	}
	return nil
}

// IsAdmin reports whether uid is listed in ADMIN_UIDS.
func (c *Config) IsAdmin(uid string) bool {
	for _, a := range c.AdminUIDs {
		if strings.TrimSpace(a) == uid && uid != "" {
			return true
		}
	}
	return false
}
