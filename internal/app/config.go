package app

import (
	"time"

	"github.com/dmitrymomot/lightsave/pkg/httpserver"
	"github.com/dmitrymomot/lightsave/pkg/mongo"
)

// Config is the complete process configuration, read from the environment.
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"lightsave"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`

	HTTP  httpserver.Config
	Mongo mongo.Config
	Auth  AuthConfig

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// AuthConfig holds token and password hashing settings.
type AuthConfig struct {
	JWTSecret   string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL      time.Duration `env:"JWT_TTL" envDefault:"24h"`
	JWTIssuer   string        `env:"JWT_ISSUER" envDefault:"lightsave"`
	BcryptCost  int           `env:"BCRYPT_COST" envDefault:"10"`
	HashWorkers int           `env:"HASH_WORKERS" envDefault:"0"`
}
