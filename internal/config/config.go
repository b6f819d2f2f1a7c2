// ABOUTME: Configuration loading and parsing for lintgate.
// ABOUTME: Supports YAML files with env var expansion and duration parsing.

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lintgate/lintgate/internal/auth"
	"github.com/lintgate/lintgate/internal/catalog"
	"github.com/lintgate/lintgate/internal/permission"
)

// Transport values accepted by server.transport.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config represents the complete lintgate configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Tailscale   TailscaleConfig   `yaml:"tailscale"`
	Upstream    UpstreamConfig    `yaml:"upstream"`
	Auth        AuthConfig        `yaml:"auth"`
	Permissions PermissionsConfig `yaml:"permissions"`
	Audit       AuditConfig       `yaml:"audit"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ServerConfig holds transport and address configuration.
type ServerConfig struct {
	Transport string `yaml:"transport"`
	HTTPAddr  string `yaml:"http_addr"`
	BaseURL   string `yaml:"base_url"`
}

// TailscaleConfig holds Tailscale tsnet configuration.
type TailscaleConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Hostname  string `yaml:"hostname"`
	AuthKey   string `yaml:"auth_key"`
	StateDir  string `yaml:"state_dir"`
	Ephemeral bool   `yaml:"ephemeral"`
}

// UpstreamConfig holds the connection settings for the code quality
// platform.
type UpstreamConfig struct {
	URL          string        `yaml:"url"`
	Token        string        `yaml:"token"`
	Organization string        `yaml:"organization"`
	Timeout      time.Duration `yaml:"-"`

	TimeoutRaw string `yaml:"timeout"`
}

// AuthConfig holds caller authentication configuration.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	Tokens    []TokenConfig `yaml:"tokens"`
}

// TokenConfig describes one static access token.
type TokenConfig struct {
	Token     string   `yaml:"token"`
	TokenHash string   `yaml:"token_hash"`
	UserID    string   `yaml:"user_id"`
	Groups    []string `yaml:"groups"`
	Scopes    []string `yaml:"scopes"`
}

// PermissionsConfig holds the permission rule set.
type PermissionsConfig struct {
	Enabled      bool          `yaml:"enabled"`
	CacheEnabled bool          `yaml:"cache_enabled"`
	CacheTTL     time.Duration `yaml:"-"`
	AuditEnabled bool          `yaml:"audit_enabled"`
	RulesPath    string        `yaml:"rules_path"`
	DefaultRule  *RuleConfig   `yaml:"default_rule"`
	Rules        []RuleConfig  `yaml:"rules"`

	CacheTTLRaw string `yaml:"cache_ttl"`
}

// RuleConfig describes one permission rule in YAML form.
type RuleConfig struct {
	Groups            []string `yaml:"groups"`
	AllowedProjects   []string `yaml:"allowed_projects"`
	AllowedTools      []string `yaml:"allowed_tools"`
	DeniedTools       []string `yaml:"denied_tools"`
	Readonly          *bool    `yaml:"readonly"`
	MaxSeverity       string   `yaml:"max_severity"`
	AllowedStatuses   []string `yaml:"allowed_statuses"`
	HideSensitiveData bool     `yaml:"hide_sensitive_data"`
	Priority          int      `yaml:"priority"`
}

// AuditConfig holds audit persistence configuration. An empty path
// keeps the audit trail in memory only.
type AuditConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// rulesFile is the shape of an external rules file referenced by
// permissions.rules_path.
type rulesFile struct {
	DefaultRule *RuleConfig  `yaml:"default_rule"`
	Rules       []RuleConfig `yaml:"rules"`
}

// Load reads a configuration file from the given path and returns a
// parsed Config. Environment variables in the format ${VAR_NAME} are
// expanded, LINTGATE_* overrides are applied, and duration strings are
// parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Strict decoding: a misspelled key is a startup error, not a
	// silently ignored setting.
	dec := yaml.NewDecoder(strings.NewReader(expandEnvVars(string(data))))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Server.Transport == "" {
		cfg.Server.Transport = TransportStdio
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.loadExternalRules(); err != nil {
		return nil, err
	}

	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables expand to the empty
// string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// loadExternalRules appends rules from permissions.rules_path, letting
// the rule set live in a separate file from deployment settings.
func (c *Config) loadExternalRules() error {
	if c.Permissions.RulesPath == "" {
		return nil
	}

	data, err := os.ReadFile(c.Permissions.RulesPath)
	if err != nil {
		return fmt.Errorf("reading rules file: %w", err)
	}

	dec := yaml.NewDecoder(strings.NewReader(expandEnvVars(string(data))))
	dec.KnownFields(true)

	var rf rulesFile
	if err := dec.Decode(&rf); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing rules file: %w", err)
	}

	// An explicitly empty rules list stays non-nil: it means "deny
	// everyone", not "no rules configured".
	if rf.Rules != nil && c.Permissions.Rules == nil {
		c.Permissions.Rules = []RuleConfig{}
	}
	c.Permissions.Rules = append(c.Permissions.Rules, rf.Rules...)
	if rf.DefaultRule != nil && c.Permissions.DefaultRule == nil {
		c.Permissions.DefaultRule = rf.DefaultRule
	}
	return nil
}

// parseDurations converts the raw duration strings into time.Duration
// values.
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Upstream.TimeoutRaw != "" {
		cfg.Upstream.Timeout, err = time.ParseDuration(cfg.Upstream.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing upstream.timeout %q: %w", cfg.Upstream.TimeoutRaw, err)
		}
	}

	if cfg.Permissions.CacheTTLRaw != "" {
		cfg.Permissions.CacheTTL, err = time.ParseDuration(cfg.Permissions.CacheTTLRaw)
		if err != nil {
			return fmt.Errorf("parsing permissions.cache_ttl %q: %w", cfg.Permissions.CacheTTLRaw, err)
		}
	}

	return nil
}

// Validate checks that all required configuration fields are present
// and valid. Returns an error describing the first validation failure
// encountered. Rule problems are startup errors here even though the
// permission service tolerates bad patterns at runtime.
func (c *Config) Validate() error {
	switch c.Server.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("server.transport must be %q or %q", TransportStdio, TransportHTTP)
	}

	if c.Server.Transport == TransportHTTP && !c.Tailscale.Enabled && c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required (or enable tailscale)")
	}

	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}

	if c.Upstream.URL == "" {
		return fmt.Errorf("upstream.url is required")
	}

	for i, tok := range c.Auth.Tokens {
		if tok.UserID == "" {
			return fmt.Errorf("auth.tokens[%d]: user_id is required", i)
		}
		if tok.Token == "" && tok.TokenHash == "" {
			return fmt.Errorf("auth.tokens[%d]: token or token_hash is required", i)
		}
	}

	if c.Permissions.Enabled {
		if c.Permissions.Rules == nil && c.Permissions.DefaultRule == nil {
			return fmt.Errorf("permissions.rules is required when permissions are enabled")
		}
		for i, rc := range c.Permissions.Rules {
			if err := validateRule(rc); err != nil {
				return fmt.Errorf("permissions.rules[%d]: %w", i, err)
			}
		}
		if c.Permissions.DefaultRule != nil {
			if err := validateRule(*c.Permissions.DefaultRule); err != nil {
				return fmt.Errorf("permissions.default_rule: %w", err)
			}
		}
	}

	return nil
}

// validateRule rejects rules that reference unknown tools, invalid
// patterns, or unparseable severities and statuses.
func validateRule(rc RuleConfig) error {
	for _, p := range rc.AllowedProjects {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("invalid project pattern %q: %w", p, err)
		}
	}
	for _, tool := range rc.AllowedTools {
		if !catalog.Known(tool) {
			return fmt.Errorf("unknown tool %q in allowed_tools", tool)
		}
	}
	for _, tool := range rc.DeniedTools {
		if !catalog.Known(tool) {
			return fmt.Errorf("unknown tool %q in denied_tools", tool)
		}
	}
	if rc.MaxSeverity != "" {
		if _, err := permission.ParseSeverity(rc.MaxSeverity); err != nil {
			return err
		}
	}
	for _, s := range rc.AllowedStatuses {
		if _, err := permission.ParseStatus(s); err != nil {
			return err
		}
	}
	return nil
}

// build converts a YAML rule into a permission rule. A nil readonly
// flag means readonly for the default rule and read-write for regular
// rules.
func (rc RuleConfig) build(defaultReadonly bool) (permission.Rule, error) {
	rule := permission.Rule{
		Groups:            rc.Groups,
		AllowedProjects:   rc.AllowedProjects,
		AllowedTools:      rc.AllowedTools,
		DeniedTools:       rc.DeniedTools,
		Readonly:          defaultReadonly,
		HideSensitiveData: rc.HideSensitiveData,
		Priority:          rc.Priority,
	}
	if rc.Readonly != nil {
		rule.Readonly = *rc.Readonly
	}
	if rc.MaxSeverity != "" {
		sev, err := permission.ParseSeverity(rc.MaxSeverity)
		if err != nil {
			return rule, err
		}
		rule.MaxSeverity = &sev
	}
	for _, s := range rc.AllowedStatuses {
		st, err := permission.ParseStatus(s)
		if err != nil {
			return rule, err
		}
		rule.AllowedStatuses = append(rule.AllowedStatuses, st)
	}
	return rule, nil
}

// PermissionConfig converts the YAML rule set into the permission
// service's configuration.
func (c *Config) PermissionConfig() (permission.Config, error) {
	pc := permission.Config{
		CacheEnabled: c.Permissions.CacheEnabled,
		CacheTTL:     c.Permissions.CacheTTL,
		AuditEnabled: c.Permissions.AuditEnabled,
	}

	for i, rc := range c.Permissions.Rules {
		rule, err := rc.build(false)
		if err != nil {
			return pc, fmt.Errorf("permissions.rules[%d]: %w", i, err)
		}
		pc.Rules = append(pc.Rules, rule)
	}

	if c.Permissions.DefaultRule != nil {
		rule, err := c.Permissions.DefaultRule.build(true)
		if err != nil {
			return pc, fmt.Errorf("permissions.default_rule: %w", err)
		}
		pc.DefaultRule = &rule
	}

	return pc, nil
}

// TokenEntries converts the static token list into auth entries.
func (c *Config) TokenEntries() []auth.TokenEntry {
	entries := make([]auth.TokenEntry, 0, len(c.Auth.Tokens))
	for _, t := range c.Auth.Tokens {
		entries = append(entries, auth.TokenEntry{
			Token:     t.Token,
			TokenHash: t.TokenHash,
			UserID:    t.UserID,
			Groups:    t.Groups,
			Scopes:    t.Scopes,
		})
	}
	return entries
}
