package config

import (
	"os"
	"regexp"

	"github.com/amoylab/sessiongate/internal/common/cnst"
	"github.com/amoylab/sessiongate/pkg/helper"
	"github.com/amoylab/sessiongate/pkg/trace"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type (
	// GatewayConfig represents the sessiongate configuration
	GatewayConfig struct {
		Port     int            `yaml:"port"`
		PID      string         `yaml:"pid"`
		Logger   LoggerConfig   `yaml:"logger"`
		Auth     AuthConfig     `yaml:"auth"`
		Session  SessionConfig  `yaml:"session"`
		Metrics  MetricsConfig  `yaml:"metrics"`
		Tracing  trace.Config   `yaml:"tracing"`
		Upstream UpstreamConfig `yaml:"upstream"`
	}

	// AuthConfig controls how session keys are derived and how errors are worded
	AuthConfig struct {
		FilterName      string `yaml:"filter_name"`      // name the gateway route addresses the filter by
		Namespace       string `yaml:"namespace"`        // first segment of the session key
		LoginType       string `yaml:"login_type"`       // second segment of the session key
		Lang            string `yaml:"lang"`             // en or zh
		TranslationsDir string `yaml:"translations_dir"` // *.toml files overriding built-in messages
	}

	// LoggerConfig represents the logger configuration
	LoggerConfig struct {
		Level      string `yaml:"level"`       // debug, info, warn, error
		Format     string `yaml:"format"`      // json, console
		Output     string `yaml:"output"`      // stdout, file
		FilePath   string `yaml:"file_path"`   // path to log file when output is file
		MaxSize    int    `yaml:"max_size"`    // max size of log file in MB
		MaxBackups int    `yaml:"max_backups"` // max number of backup files
		MaxAge     int    `yaml:"max_age"`     // max age of backup files in days
		Compress   bool   `yaml:"compress"`    // whether to compress backup files
		Color      bool   `yaml:"color"`       // whether to use color in console output
		Stacktrace bool   `yaml:"stacktrace"`  // whether to include stacktrace in error logs
		TimeZone   string `yaml:"time_zone"`   // time zone for log timestamps, e.g., "UTC", default is local
		TimeFormat string `yaml:"time_format"` // time format for log timestamps, default is "2006-01-02 15:04:05"
	}

	// MetricsConfig represents the prometheus configuration
	MetricsConfig struct {
		Enabled   bool      `yaml:"enabled"`
		Path      string    `yaml:"path"`
		Namespace string    `yaml:"namespace"`
		Buckets   []float64 `yaml:"buckets"`
	}

	// UpstreamConfig enables proxy mode when URL is set
	UpstreamConfig struct {
		URL string `yaml:"url"`
	}
)

// LoadConfig loads configuration from a YAML file with environment variable support
func LoadConfig(filename string) (*GatewayConfig, string, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfgPath := helper.GetCfgPath(filename)
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, cfgPath, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, cfgPath, err
	}
	return cfg, cfgPath, nil
}

// Parse resolves env placeholders in data, unmarshals it and applies defaults
func Parse(data []byte) (*GatewayConfig, error) {
	data = resolveEnv(data)
	var cfg GatewayConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

func (c *GatewayConfig) setDefaults() {
	if c.Port == 0 {
		c.Port = cnst.DefaultPort
	}
	if c.Auth.FilterName == "" {
		c.Auth.FilterName = cnst.DefaultFilterName
	}
	if c.Auth.Namespace == "" {
		c.Auth.Namespace = cnst.DefaultNamespace
	}
	if c.Auth.LoginType == "" {
		c.Auth.LoginType = cnst.DefaultLoginType
	}
	if c.Auth.Lang == "" {
		c.Auth.Lang = cnst.LangDefault
	}
	if c.Session.Type == "" {
		c.Session.Type = cnst.SessionStoreRedis
	}
	if c.Session.Redis.ClusterType == "" {
		c.Session.Redis.ClusterType = cnst.RedisClusterTypeSingle
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = cnst.DefaultMetricsPath
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = cnst.AppName
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = cnst.AppName
	}
}

// resolveEnv replaces environment variable placeholders in YAML content
func resolveEnv(content []byte) []byte {
	regex := regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

	return regex.ReplaceAllFunc(content, func(match []byte) []byte {
		matches := regex.FindSubmatch(match)
		envKey := string(matches[1])
		var defaultValue string

		if len(matches) > 2 {
			defaultValue = string(matches[2])
		}

		if value, exists := os.LookupEnv(envKey); exists {
			return []byte(value)
		}
		return []byte(defaultValue)
	})
}
