package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type Config struct {
	HTTP HTTP

	App      string   `env:"APP_NAME" envDefault:"dog-breeds-api"`
	Logger   Logger   `envPrefix:"LOG_"`
	Storage  Storage  `envPrefix:"DB_"`
	BreedAPI BreedAPI `envPrefix:"BREED_API_"`
}

type HTTP struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
}

// Address devuelve ":<port>".
func (h HTTP) Address() string {
	return ":" + h.Port
}

type Logger struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"`
}

type StorageDriver string

const (
	DriverMemory   StorageDriver = "memory"
	DriverPostgres StorageDriver = "postgres"
	DriverSQLite   StorageDriver = "sqlite"
)

type Storage struct {
	Driver StorageDriver `env:"DRIVER" envDefault:"memory"`
	DSN    string        `env:"DSN,expand"`
}

type BreedAPI struct {
	BaseURL string        `env:"BASE_URL" envDefault:"https://api.thedogapi.com/v1"`
	Key     string        `env:"KEY,unset"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

var ErrInvalidConfig = errors.New("invalid config")

// Parse lee la configuración desde variables de entorno.
func Parse() (*Config, error) {
	conf, err := env.ParseAs[Config]()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if c.Storage.DSN == "" {
			return errors.Wrapf(ErrInvalidConfig, "DB_DSN is required for driver %q", c.Storage.Driver)
		}
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown DB_DRIVER %q", c.Storage.Driver)
	}
	return nil
}
