package bussystem

import (
	"os"
	"time"

	"github.com/starlines/starlines/pkg/util"
	"gopkg.in/yaml.v3"
)

const defaultBaseURL = "https://test-api.bussystem.eu/server/curl/"
const defaultAPIVersion = "1.1"
const defaultLanguage = "en"
const defaultTimeout = 15 * time.Second

// Config carries the dealer credentials and endpoint for the provider.
// Loaded from an optional YAML file with env-var overrides on top.
type Config struct {
	BaseURL  string `yaml:"base_url"`
	Login    string `yaml:"login"`
	Password string `yaml:"password"`
	Language string `yaml:"lang"`
	Version  string `yaml:"v"`

	Timeout time.Duration `yaml:"-"`

	// RequestsPerSecond/Burst bound the dealer-quota rate limiter.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

func LoadConfig() Config {
	config := Config{
		BaseURL:           defaultBaseURL,
		Language:          defaultLanguage,
		Version:           defaultAPIVersion,
		Timeout:           defaultTimeout,
		RequestsPerSecond: 10,
		Burst:             20,
	}

	env := util.GetEnvironmentVariables()

	if env["STARLINES_BUSSYSTEM_CONFIG"] != "" {
		configYaml, err := os.ReadFile(env["STARLINES_BUSSYSTEM_CONFIG"])
		if err == nil {
			yaml.Unmarshal(configYaml, &config)
		}
	}

	if env["STARLINES_BUSSYSTEM_BASE_URL"] != "" {
		config.BaseURL = env["STARLINES_BUSSYSTEM_BASE_URL"]
	}

	if env["STARLINES_BUSSYSTEM_LOGIN"] != "" {
		config.Login = env["STARLINES_BUSSYSTEM_LOGIN"]
	}

	if env["STARLINES_BUSSYSTEM_PASSWORD"] != "" {
		config.Password = env["STARLINES_BUSSYSTEM_PASSWORD"]
	}

	if env["STARLINES_BUSSYSTEM_LANG"] != "" {
		config.Language = env["STARLINES_BUSSYSTEM_LANG"]
	}

	return config
}
