package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Port      string `yaml:"port" env:"PORT" env-default:"8080"`
	StaticDir string `yaml:"static-dir" env:"STATIC_DIR" env-default:"./public"`
}

// MustLoad - load all configurations from the config file, with environment overrides.
// A missing file is not fatal: the defaults plus environment are enough to run the server.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to read environment: %w", err))
		}

		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}
