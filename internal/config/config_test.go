package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bolsa-bot/internal/failure"
	"bolsa-bot/internal/twitter"

	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func writeFile(t *testing.T, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	require.NoError(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	cfg, err := load("", envOf(map[string]string{
		EnvConsumerKey:       "ck",
		EnvConsumerSecret:    "cs",
		EnvAccessToken:       "at",
		EnvAccessTokenSecret: "ats",
	}))
	require.NoError(t, err)
	require.Equal(t, twitter.Credentials{
		ConsumerKey:       "ck",
		ConsumerSecret:    "cs",
		AccessToken:       "at",
		AccessTokenSecret: "ats",
	}, cfg.Twitter)
}

func TestLoadMissing(t *testing.T) {
	testCases := []struct {
		env     map[string]string
		missing []string
	}{
		{
			env:     map[string]string{},
			missing: []string{EnvConsumerKey, EnvConsumerSecret, EnvAccessToken, EnvAccessTokenSecret},
		},
		{
			env: map[string]string{
				EnvConsumerKey:    "ck",
				EnvConsumerSecret: "cs",
				EnvAccessToken:    "at",
			},
			missing: []string{EnvAccessTokenSecret},
		},
		{
			env: map[string]string{
				EnvConsumerSecret:    "cs",
				EnvAccessToken:       "at",
				EnvAccessTokenSecret: "",
			},
			missing: []string{EnvConsumerKey, EnvAccessTokenSecret},
		},
	}

	for _, test := range testCases {
		_, err := load("", envOf(test.env))

		var configErr *failure.ConfigError
		require.True(t, errors.As(err, &configErr))
		require.Equal(t, test.missing, configErr.Missing)
	}
}

func TestLoadFileWithOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")

	writeFile(t, path, `{
		// checked in defaults
		"twitter": {
			"consumer_key": "file-ck",
			"consumer_secret": "file-cs",
			"access_token": "file-at",
		},
		"otlp": {
			"traces": { "http_endpoint": "http://localhost:4318/v1/traces" },
		},
	}`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{
		"twitter": { "access_token": "local-at" },
	}`)

	cfg, err := load(path, envOf(map[string]string{
		EnvConsumerSecret:    "env-cs",
		EnvAccessTokenSecret: "env-ats",
	}))
	require.NoError(t, err)
	require.Equal(t, twitter.Credentials{
		ConsumerKey:       "file-ck",
		ConsumerSecret:    "env-cs",
		AccessToken:       "local-at",
		AccessTokenSecret: "env-ats",
	}, cfg.Twitter)
	require.Equal(t, "http://localhost:4318/v1/traces", cfg.Otlp.Traces.HttpEndpoint)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")

	_, err := load(path, envOf(map[string]string{
		EnvConsumerKey:       "ck",
		EnvConsumerSecret:    "cs",
		EnvAccessToken:       "at",
		EnvAccessTokenSecret: "ats",
	}))
	require.NoError(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	writeFile(t, path, `{ "twitter": `)

	_, err := load(path, envOf(nil))
	require.Error(t, err)

	var configErr *failure.ConfigError
	require.False(t, errors.As(err, &configErr))
}

func TestSplitExt(t *testing.T) {
	name, ext := splitExt("config.json5")
	require.Equal(t, "config", name)
	require.Equal(t, "json5", ext)

	name, ext = splitExt("config")
	require.Equal(t, "config", name)
	require.Equal(t, "", ext)
}
