package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds environment-based configuration.
type EnvConfig struct {
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir defaults to ~/.splist.
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL defaults to sqlite:///{data_dir}/splist.db.
	DBURL string `envconfig:"DB_URL"`

	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is pretty or json.
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// Language is a BCP 47 tag for interface messages.
	Language string `envconfig:"CONTENT_LANGUAGE" default:"en"`

	// ArticlePath is the URL pattern for page links.
	ArticlePath string `envconfig:"ARTICLE_PATH" default:"/wiki/$1"`

	// PolicyFile is a YAML read policy. Unset allows every read.
	PolicyFile string `envconfig:"POLICY_FILE"`

	// CORSOrigins is a comma-separated list of allowed origins.
	CORSOrigins string `envconfig:"CORS_ORIGINS"`

	// Env: METRICS_ENABLED (default: true)
	MetricsEnabled bool `envconfig:"METRICS_ENABLED" default:"true"`

	// Env: MCP_ENABLED (default: true)
	MCPEnabled bool `envconfig:"MCP_ENABLED" default:"true"`
}

// LoadFromEnv loads configuration from unprefixed environment variables.
func LoadFromEnv() (EnvConfig, error) {
	return LoadFromEnvWithPrefix("")
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "SPLIST" reads SPLIST_DATA_DIR instead of DATA_DIR.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	opts := []AppConfigOption{
		WithMetricsEnabled(e.MetricsEnabled),
		WithMCPEnabled(e.MCPEnabled),
	}

	if e.Host != "" {
		opts = append(opts, WithHost(e.Host))
	}
	if e.Port != 0 {
		opts = append(opts, WithPort(e.Port))
	}
	if e.DataDir != "" {
		opts = append(opts, WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		opts = append(opts, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		opts = append(opts, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		opts = append(opts, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.Language != "" {
		opts = append(opts, WithLanguage(e.Language))
	}
	if e.ArticlePath != "" {
		opts = append(opts, WithArticlePath(e.ArticlePath))
	}
	if e.PolicyFile != "" {
		opts = append(opts, WithPolicyFile(e.PolicyFile))
	}
	if e.CORSOrigins != "" {
		opts = append(opts, WithCORSOrigins(ParseList(e.CORSOrigins)))
	}

	return NewAppConfigWithOptions(opts...)
}

func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
