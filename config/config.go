package config

import (
	"log"
	"sync"

	"github.com/kelseyhightower/envconfig"

	"github.com/tmurzenkov/circulation-service/pkg/logger"
	"github.com/tmurzenkov/circulation-service/pkg/postgres"
)

type Config struct {
	Database postgres.DB `yaml:"db"`
	Log      logger.Log  `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
	})

	return cfg
}
