// ABOUTME: LINTGATE_* environment settings, used both as overrides on top
// ABOUTME: of a YAML file and as a standalone file-less configuration mode.

package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

const envNamespace = "LINTGATE"

// envSettings lists every setting reachable through the environment.
// In file mode only non-empty values override the file; in FromEnv they
// are the whole configuration.
type envSettings struct {
	Transport       string `envconfig:"TRANSPORT"`
	HTTPAddr        string `envconfig:"HTTP_ADDR"`
	BaseURL         string `envconfig:"BASE_URL"`
	UpstreamURL     string `envconfig:"UPSTREAM_URL"`
	UpstreamToken   string `envconfig:"UPSTREAM_TOKEN"`
	UpstreamOrg     string `envconfig:"UPSTREAM_ORG"`
	UpstreamTimeout string `envconfig:"UPSTREAM_TIMEOUT"`
	JWTSecret       string `envconfig:"JWT_SECRET"`
	RulesPath       string `envconfig:"RULES_PATH"`
	CacheTTL        string `envconfig:"CACHE_TTL"`
	AuditPath       string `envconfig:"AUDIT_PATH"`
	LogLevel        string `envconfig:"LOG_LEVEL"`
	LogFormat       string `envconfig:"LOG_FORMAT"`
}

func readEnvSettings() (envSettings, error) {
	var env envSettings
	if err := envconfig.Process(envNamespace, &env); err != nil {
		return env, fmt.Errorf("reading environment: %w", err)
	}
	return env, nil
}

// apply overlays the non-empty settings onto cfg.
func (e envSettings) apply(cfg *Config) {
	if e.Transport != "" {
		cfg.Server.Transport = e.Transport
	}
	if e.HTTPAddr != "" {
		cfg.Server.HTTPAddr = e.HTTPAddr
	}
	if e.BaseURL != "" {
		cfg.Server.BaseURL = e.BaseURL
	}
	if e.UpstreamURL != "" {
		cfg.Upstream.URL = e.UpstreamURL
	}
	if e.UpstreamToken != "" {
		cfg.Upstream.Token = e.UpstreamToken
	}
	if e.UpstreamOrg != "" {
		cfg.Upstream.Organization = e.UpstreamOrg
	}
	if e.UpstreamTimeout != "" {
		cfg.Upstream.TimeoutRaw = e.UpstreamTimeout
	}
	if e.JWTSecret != "" {
		cfg.Auth.JWTSecret = e.JWTSecret
	}
	if e.RulesPath != "" {
		cfg.Permissions.RulesPath = e.RulesPath
	}
	if e.CacheTTL != "" {
		cfg.Permissions.CacheTTLRaw = e.CacheTTL
	}
	if e.AuditPath != "" {
		cfg.Audit.Path = e.AuditPath
	}
	if e.LogLevel != "" {
		cfg.Logging.Level = e.LogLevel
	}
	if e.LogFormat != "" {
		cfg.Logging.Format = e.LogFormat
	}
}

// applyEnvOverrides overlays non-empty LINTGATE_* values onto a
// file-loaded config.
func applyEnvOverrides(cfg *Config) error {
	env, err := readEnvSettings()
	if err != nil {
		return err
	}
	env.apply(cfg)
	return nil
}

// FromEnv builds a configuration purely from LINTGATE_* environment
// variables, for deployments that run without a config file. Setting
// LINTGATE_RULES_PATH names a YAML rules file and turns permission
// enforcement on; caching stays enabled with the default TTL unless
// LINTGATE_CACHE_TTL says otherwise.
func FromEnv() (*Config, error) {
	env, err := readEnvSettings()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	cfg.Server.Transport = TransportStdio
	env.apply(cfg)

	if cfg.Permissions.RulesPath != "" {
		cfg.Permissions.Enabled = true
		cfg.Permissions.CacheEnabled = true
		cfg.Permissions.AuditEnabled = true
		if err := cfg.loadExternalRules(); err != nil {
			return nil, err
		}
	}

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
