package appconfig

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"text/template"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

// Config holds all configuration details
type Config struct {
	Host     string       `yaml:"host"`
	BasePath string       `yaml:"basePath"`
	Roblox   RobloxConfig `yaml:"roblox"`
}

// RobloxConfig defines where the upstream Roblox web APIs live and how long
// a single request may take. Empty URLs fall back to the production hosts;
// a zero timeout means the transport default. This is the only place the
// request timeout is configured.
type RobloxConfig struct {
	GroupsURL    string `yaml:"groupsUrl"`
	LegacyURL    string `yaml:"legacyUrl"`
	InventoryURL string `yaml:"inventoryUrl"`
	WWWURL       string `yaml:"wwwUrl"`
	Timeout      int    `yaml:"timeoutSeconds"`
}

// LoadConfig loads and parses the configuration from a given file path.
// The file is a YAML document run through text/template with the process
// environment as data, so values can reference {{ .SOME_ENV_VAR }}.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		err := errors.New("config file path is required")
		log.Error().Err(err).Msg("config file not provided")
		return nil, err
	}

	tmpl, err := template.ParseFiles(path)
	if err != nil {
		log.Error().Err(err).Msg("error parsing config file template")
		return nil, err
	}

	envVars := loadEnvVars()

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, envVars); err != nil {
		log.Error().Err(err).Msg("error executing config file template")
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(buf.Bytes(), &config); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal config YAML")
		return nil, err
	}

	return &config, nil
}

// loadEnvVars loads environment variables into a map
func loadEnvVars() map[string]string {
	envVars := make(map[string]string)
	for _, env := range os.Environ() {
		kv := strings.SplitN(env, "=", 2)
		if len(kv) == 2 {
			envVars[kv[0]] = kv[1]
		}
	}
	return envVars
}
