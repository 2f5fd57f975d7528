package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// Config is the single configuration surface: every application (portal,
// back office, devserver, CLI) reads the same structure.
type Config struct {
	BaseURL  string `env:"ECODELI_BASE_URL, default=http://localhost:8080/api"`
	Env      string `env:"ECODELI_ENV,      default=development"`
	LogLevel string `env:"ECODELI_LOG_LEVEL, default=info"`

	// Session storage. Backend selects between the file and redis
	// implementations; StoragePath is the file backend's directory.
	StorageBackend string `env:"ECODELI_STORAGE_BACKEND, default=file"`
	StoragePath    string `env:"ECODELI_STORAGE_PATH, default=.ecodeli"`
	SessionPrefix  string `env:"ECODELI_SESSION_PREFIX, default=session"`

	// LogoutOnForbidden extends the forced-logout reaction to 403 answers.
	LogoutOnForbidden bool `env:"ECODELI_LOGOUT_ON_FORBIDDEN, default=false"`

	Redis     RedisConfig
	Devserver DevserverConfig
}

type RedisConfig struct {
	Addr     string `env:"ECODELI_REDIS_ADDR, default=localhost:6379"`
	Password string `env:"ECODELI_REDIS_PASSWORD"`
	DB       int    `env:"ECODELI_REDIS_DB, default=0"`
}

// DevserverConfig parameterizes the local development backend.
type DevserverConfig struct {
	Port      string `env:"ECODELI_DEV_PORT, default=8080"`
	JWTSecret string `env:"ECODELI_DEV_JWT_SECRET, default=dev-secret"`

	MongoURI string `env:"ECODELI_DEV_MONGO_URI, default=mongodb://localhost:27017"`
	MongoDB  string `env:"ECODELI_DEV_MONGO_DB, default=ecodeli"`
}

// Load reads configuration from the environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
