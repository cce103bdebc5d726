package config

import (
	"errors"
	"os"

	"bolsa-bot/internal/components/telemetry"
	"bolsa-bot/internal/failure"
	"bolsa-bot/internal/twitter"

	"dario.cat/mergo"
)

const (
	EnvConsumerKey       = "CONSUMER_KEY"
	EnvConsumerSecret    = "CONSUMER_SECRET"
	EnvAccessToken       = "ACCESS_TOKEN"
	EnvAccessTokenSecret = "ACCESS_TOKEN_SECRET"
)

type Config struct {
	Twitter twitter.Credentials  `json:"twitter"`
	Otlp    telemetry.OtlpConfig `json:"otlp"`
}

// Validate fails with a *failure.ConfigError naming every missing credential.
func (c Config) Validate() error {
	var missing []string
	if c.Twitter.ConsumerKey == "" {
		missing = append(missing, EnvConsumerKey)
	}
	if c.Twitter.ConsumerSecret == "" {
		missing = append(missing, EnvConsumerSecret)
	}
	if c.Twitter.AccessToken == "" {
		missing = append(missing, EnvAccessToken)
	}
	if c.Twitter.AccessTokenSecret == "" {
		missing = append(missing, EnvAccessTokenSecret)
	}
	if len(missing) > 0 {
		return &failure.ConfigError{Missing: missing}
	}
	return nil
}

func fromEnv(getenv func(string) string) Config {
	return Config{
		Twitter: twitter.Credentials{
			ConsumerKey:       getenv(EnvConsumerKey),
			ConsumerSecret:    getenv(EnvConsumerSecret),
			AccessToken:       getenv(EnvAccessToken),
			AccessTokenSecret: getenv(EnvAccessTokenSecret),
		},
	}
}

// Load reads the optional config file at `path` (an empty path skips it), overlays
// the credentials found in the environment and validates the result.
func Load(path string) (Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (Config, error) {
	var cfg Config
	if path != "" {
		var err error
		cfg, err = ReadFile[Config](path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	// empty env values leave the file's values untouched
	err := mergo.Merge(&cfg, fromEnv(getenv), mergo.WithOverride)
	if err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}
