package application

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	APIBaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:8080/api/v1"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"30s"`

	// TokenKey and CartKey name the persisted records, matching the
	// keys the web client used in browser local storage.
	TokenKey string `envconfig:"AUTH_TOKEN_KEY" default:"auth_token"`
	CartKey  string `envconfig:"CART_KEY" default:"cart"`

	// StateDir holds the file-backed record store. StateDSN, when set,
	// switches to the MySQL-backed store instead.
	StateDir string `envconfig:"STATE_DIR" default:".storefront"`
	StateDSN string `envconfig:"STATE_DSN"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogJSON  bool   `envconfig:"LOG_JSON"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("storefront", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to read environment configuration")
	}
	return cfg, nil
}

// ConfigureLogging applies the configured level and format to the
// process-wide logger.
func (c Config) ConfigureLogging() {
	if c.LogJSON {
		log.SetFormatter(&log.JSONFormatter{})
	}
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithError(err).Warn("invalid log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
