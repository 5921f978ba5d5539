package app

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config is read from SHOPFRONT_* environment variables; the CLI flags
// in main override individual fields.
type Config struct {
	Addr           string `envconfig:"ADDR" default:":8080"`
	DataFile       string `envconfig:"DATA_FILE" default:"shopfront.json"`
	TemplatesDir   string `envconfig:"TEMPLATES_DIR" default:"templates"`
	StorageDriver  string `envconfig:"STORAGE_DRIVER" default:"file"`
	MySQLDSN       string `envconfig:"MYSQL_DSN"`
	AllowEmptyCart bool   `envconfig:"ALLOW_EMPTY_CART" default:"true"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("shopfront", &cfg); err != nil {
		return nil, errors.Wrap(err, "process environment config")
	}
	return &cfg, nil
}
