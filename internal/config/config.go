package config

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Host            string `mapstructure:"HOST"`
		Port            string `mapstructure:"PORT"`
		StorePath       string `mapstructure:"STORE_PATH"`
		CatalogBaseURL  string `mapstructure:"CATALOG_BASE_URL"`
		TemplateBaseURL string `mapstructure:"TEMPLATE_BASE_URL"`
	}
)

func NewConfig() (*Config, error) {
	viper.SetEnvPrefix("RECIPEBOOK")

	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "1323")
	viper.SetDefault("STORE_PATH", "recipebook.db")
	viper.SetDefault("CATALOG_BASE_URL", "https://www.themealdb.com/api/json/v1/1")
	viper.SetDefault("TEMPLATE_BASE_URL", "http://localhost:8080/templates")

	envs := []string{"HOST", "PORT", "STORE_PATH", "CATALOG_BASE_URL", "TEMPLATE_BASE_URL"}
	for _, key := range envs {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	for _, u := range []string{cfg.CatalogBaseURL, cfg.TemplateBaseURL} {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return errors.New(fmt.Sprintf("base URL is invalid: %s", u))
		}
	}
	if cfg.StorePath == "" {
		return errors.New("store path is empty")
	}
	return nil
}
