// ABOUTME: Tests for configuration loading and parsing.
// ABOUTME: Covers YAML loading, env expansion, rule validation, and conversion.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lintgate/lintgate/internal/permission"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	configContent := `
server:
  transport: "http"
  http_addr: "0.0.0.0:8080"
  base_url: "http://localhost:8080"

upstream:
  url: "https://quality.example.com"
  token: "squ_test"
  organization: "acme"
  timeout: "45s"

auth:
  jwt_secret: "secret-key"
  tokens:
    - token: "dev-token"
      user_id: "alice"
      groups: ["dev", "qa"]
      scopes: ["mcp"]

permissions:
  enabled: true
  cache_enabled: true
  cache_ttl: "5m"
  audit_enabled: true
  default_rule:
    allowed_projects: ["^public-.*"]
  rules:
    - groups: ["dev"]
      allowed_projects: ["^app-.*"]
      allowed_tools: ["projects", "issues"]
      denied_tools: ["update_hotspot_status"]
      readonly: false
      max_severity: "CRITICAL"
      allowed_statuses: ["OPEN", "CONFIRMED"]
      hide_sensitive_data: true
      priority: 10

audit:
  path: "/var/lib/lintgate/audit.db"

logging:
  level: "debug"
  format: "json"
`
	cfg, err := Load(writeConfig(t, configContent))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Transport != TransportHTTP {
		t.Errorf("Server.Transport = %q, want %q", cfg.Server.Transport, TransportHTTP)
	}
	if cfg.Server.HTTPAddr != "0.0.0.0:8080" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "0.0.0.0:8080")
	}

	if cfg.Upstream.URL != "https://quality.example.com" {
		t.Errorf("Upstream.URL = %q", cfg.Upstream.URL)
	}
	if cfg.Upstream.Timeout != 45*time.Second {
		t.Errorf("Upstream.Timeout = %v, want %v", cfg.Upstream.Timeout, 45*time.Second)
	}

	if cfg.Auth.JWTSecret != "secret-key" {
		t.Errorf("Auth.JWTSecret = %q", cfg.Auth.JWTSecret)
	}
	if len(cfg.Auth.Tokens) != 1 || cfg.Auth.Tokens[0].UserID != "alice" {
		t.Errorf("Auth.Tokens = %+v, want one entry for alice", cfg.Auth.Tokens)
	}

	if !cfg.Permissions.Enabled {
		t.Error("Permissions.Enabled = false, want true")
	}
	if cfg.Permissions.CacheTTL != 5*time.Minute {
		t.Errorf("Permissions.CacheTTL = %v, want %v", cfg.Permissions.CacheTTL, 5*time.Minute)
	}
	if len(cfg.Permissions.Rules) != 1 {
		t.Fatalf("Permissions.Rules len = %d, want 1", len(cfg.Permissions.Rules))
	}
	rule := cfg.Permissions.Rules[0]
	if rule.Readonly == nil || *rule.Readonly {
		t.Error("Rules[0].Readonly should be explicit false")
	}
	if rule.MaxSeverity != "CRITICAL" {
		t.Errorf("Rules[0].MaxSeverity = %q", rule.MaxSeverity)
	}
	if cfg.Permissions.DefaultRule == nil {
		t.Fatal("Permissions.DefaultRule is nil")
	}
	if cfg.Permissions.DefaultRule.Readonly != nil {
		t.Error("DefaultRule.Readonly should be unset in YAML")
	}

	if cfg.Audit.Path != "/var/lib/lintgate/audit.db" {
		t.Errorf("Audit.Path = %q", cfg.Audit.Path)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoad_DefaultsToStdio(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
upstream:
  url: "https://quality.example.com"
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Transport != TransportStdio {
		t.Errorf("Server.Transport = %q, want %q", cfg.Server.Transport, TransportStdio)
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_UPSTREAM_TOKEN", "squ_from_env")

	cfg, err := Load(writeConfig(t, `
upstream:
  url: "https://quality.example.com"
  token: "${TEST_UPSTREAM_TOKEN}"
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Upstream.Token != "squ_from_env" {
		t.Errorf("Upstream.Token = %q, want %q", cfg.Upstream.Token, "squ_from_env")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LINTGATE_UPSTREAM_URL", "https://override.example.com")
	t.Setenv("LINTGATE_LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, `
upstream:
  url: "https://quality.example.com"
logging:
  level: "info"
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Upstream.URL != "https://override.example.com" {
		t.Errorf("Upstream.URL = %q, want the override", cfg.Upstream.URL)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "warn")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, `
upstream:
  url "missing colon"
`))
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	_, err := Load(writeConfig(t, `
upstream:
  url: "https://quality.example.com"
  timeout: "not-a-duration"
`))
	if err == nil {
		t.Error("Load() expected error for invalid duration, got nil")
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		wantErrSubstr string
	}{
		{
			name: "missing upstream url",
			configContent: `
logging:
  level: "info"
`,
			wantErrSubstr: "upstream.url is required",
		},
		{
			name: "unknown transport",
			configContent: `
server:
  transport: "grpc"
upstream:
  url: "https://quality.example.com"
`,
			wantErrSubstr: "server.transport",
		},
		{
			name: "http transport without address",
			configContent: `
server:
  transport: "http"
upstream:
  url: "https://quality.example.com"
`,
			wantErrSubstr: "server.http_addr is required",
		},
		{
			name: "tailscale without hostname",
			configContent: `
server:
  transport: "http"
tailscale:
  enabled: true
upstream:
  url: "https://quality.example.com"
`,
			wantErrSubstr: "tailscale.hostname is required",
		},
		{
			name: "token without user_id",
			configContent: `
upstream:
  url: "https://quality.example.com"
auth:
  tokens:
    - token: "dev-token"
`,
			wantErrSubstr: "user_id is required",
		},
		{
			name: "token without secret",
			configContent: `
upstream:
  url: "https://quality.example.com"
auth:
  tokens:
    - user_id: "alice"
`,
			wantErrSubstr: "token or token_hash is required",
		},
		{
			name: "permissions enabled without rules",
			configContent: `
upstream:
  url: "https://quality.example.com"
permissions:
  enabled: true
`,
			wantErrSubstr: "permissions.rules is required",
		},
		{
			name: "invalid project pattern",
			configContent: `
upstream:
  url: "https://quality.example.com"
permissions:
  enabled: true
  rules:
    - allowed_projects: ["[invalid"]
`,
			wantErrSubstr: "invalid project pattern",
		},
		{
			name: "unknown tool name",
			configContent: `
upstream:
  url: "https://quality.example.com"
permissions:
  enabled: true
  rules:
    - allowed_tools: ["no_such_tool"]
`,
			wantErrSubstr: `unknown tool "no_such_tool"`,
		},
		{
			name: "unknown severity",
			configContent: `
upstream:
  url: "https://quality.example.com"
permissions:
  enabled: true
  rules:
    - max_severity: "CATASTROPHIC"
`,
			wantErrSubstr: "unknown severity",
		},
		{
			name: "unknown status",
			configContent: `
upstream:
  url: "https://quality.example.com"
permissions:
  enabled: true
  rules:
    - allowed_statuses: ["LIMBO"]
`,
			wantErrSubstr: "unknown status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.configContent))
			if err == nil {
				t.Errorf("Load() expected error containing %q, got nil", tt.wantErrSubstr)
				return
			}
			if !strings.Contains(err.Error(), tt.wantErrSubstr) {
				t.Errorf("Load() error = %q, want error containing %q", err.Error(), tt.wantErrSubstr)
			}
		})
	}
}

func TestLoad_EmptyRuleListDeniesEverything(t *testing.T) {
	// An explicit empty list is a valid deny-all setup, unlike an
	// absent rules key.
	cfg, err := Load(writeConfig(t, `
upstream:
  url: "https://quality.example.com"
permissions:
  enabled: true
  rules: []
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Permissions.Rules == nil {
		t.Error("Permissions.Rules should be non-nil for an explicit empty list")
	}
	if len(cfg.Permissions.Rules) != 0 {
		t.Errorf("Permissions.Rules len = %d, want 0", len(cfg.Permissions.Rules))
	}
}

func TestLoad_ExternalRulesFile(t *testing.T) {
	rulesPath := filepath.Join(t.TempDir(), "rules.yaml")
	rulesContent := `
default_rule:
  allowed_projects: ["^public-.*"]
rules:
  - groups: ["qa"]
    allowed_projects: ["^qa-.*"]
    allowed_tools: ["issues"]
    priority: 5
`
	if err := os.WriteFile(rulesPath, []byte(rulesContent), 0644); err != nil {
		t.Fatalf("failed to write rules file: %v", err)
	}

	cfg, err := Load(writeConfig(t, `
upstream:
  url: "https://quality.example.com"
permissions:
  enabled: true
  rules_path: "`+rulesPath+`"
  rules:
    - groups: ["dev"]
      allowed_projects: ["^app-.*"]
      priority: 10
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Permissions.Rules) != 2 {
		t.Fatalf("Permissions.Rules len = %d, want 2 (inline + external)", len(cfg.Permissions.Rules))
	}
	if cfg.Permissions.Rules[1].Groups[0] != "qa" {
		t.Errorf("external rule groups = %v", cfg.Permissions.Rules[1].Groups)
	}
	if cfg.Permissions.DefaultRule == nil {
		t.Error("DefaultRule from external file should be used")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FOO", "bar")
	t.Setenv("BAZ", "qux")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single env var", "${FOO}", "bar"},
		{"env var with surrounding text", "prefix-${FOO}-suffix", "prefix-bar-suffix"},
		{"multiple env vars", "${FOO}/${BAZ}", "bar/qux"},
		{"no env vars", "no-vars-here", "no-vars-here"},
		{"unset env var", "${UNSET_VAR}", ""},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandEnvVars(tt.input)
			if result != tt.expected {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestPermissionConfig_ReadonlyDefaults(t *testing.T) {
	explicitReadonly := true
	cfg := Config{
		Permissions: PermissionsConfig{
			Enabled: true,
			Rules: []RuleConfig{
				{Groups: []string{"dev"}, AllowedProjects: []string{"^app-.*"}},
				{Groups: []string{"guest"}, Readonly: &explicitReadonly},
			},
			DefaultRule: &RuleConfig{AllowedProjects: []string{"^public-.*"}},
		},
	}

	pc, err := cfg.PermissionConfig()
	if err != nil {
		t.Fatalf("PermissionConfig() error = %v", err)
	}

	// Regular rules default to read-write, the default rule to readonly.
	if pc.Rules[0].Readonly {
		t.Error("Rules[0].Readonly = true, want false when unset")
	}
	if !pc.Rules[1].Readonly {
		t.Error("Rules[1].Readonly = false, want explicit true")
	}
	if pc.DefaultRule == nil || !pc.DefaultRule.Readonly {
		t.Error("DefaultRule.Readonly = false, want true when unset")
	}
}

func TestPermissionConfig_ParsesSeverityAndStatuses(t *testing.T) {
	cfg := Config{
		Permissions: PermissionsConfig{
			Enabled: true,
			Rules: []RuleConfig{
				{
					Groups:          []string{"dev"},
					MaxSeverity:     "major",
					AllowedStatuses: []string{"open", "CONFIRMED"},
				},
			},
		},
	}

	pc, err := cfg.PermissionConfig()
	if err != nil {
		t.Fatalf("PermissionConfig() error = %v", err)
	}

	rule := pc.Rules[0]
	if rule.MaxSeverity == nil || *rule.MaxSeverity != permission.SeverityMajor {
		t.Errorf("MaxSeverity = %v, want MAJOR", rule.MaxSeverity)
	}
	if len(rule.AllowedStatuses) != 2 || rule.AllowedStatuses[0] != permission.StatusOpen {
		t.Errorf("AllowedStatuses = %v", rule.AllowedStatuses)
	}
}

func TestTokenEntries(t *testing.T) {
	cfg := Config{
		Auth: AuthConfig{
			Tokens: []TokenConfig{
				{Token: "plain", UserID: "alice", Groups: []string{"dev"}},
				{TokenHash: "$2a$10$hash", UserID: "ci", Scopes: []string{"mcp"}},
			},
		},
	}

	entries := cfg.TokenEntries()
	if len(entries) != 2 {
		t.Fatalf("TokenEntries len = %d, want 2", len(entries))
	}
	if entries[0].UserID != "alice" || entries[0].Token != "plain" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].UserID != "ci" || entries[1].TokenHash != "$2a$10$hash" {
		t.Errorf("entries[1] = %+v", entries[1])
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, `
upstream:
  url: "https://quality.example.com"
  tokn: "oops"
`))
	if err == nil {
		t.Fatal("Load() should reject unknown keys")
	}
	if !strings.Contains(err.Error(), "field tokn not found") {
		t.Errorf("error = %v, want a field-not-found failure", err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LINTGATE_UPSTREAM_URL", "https://quality.example.com")
	t.Setenv("LINTGATE_UPSTREAM_TOKEN", "squ_env")
	t.Setenv("LINTGATE_UPSTREAM_TIMEOUT", "15s")
	t.Setenv("LINTGATE_LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}

	if cfg.Server.Transport != TransportStdio {
		t.Errorf("Transport = %q, want stdio default", cfg.Server.Transport)
	}
	if cfg.Upstream.URL != "https://quality.example.com" {
		t.Errorf("Upstream.URL = %q", cfg.Upstream.URL)
	}
	if cfg.Upstream.Token != "squ_env" {
		t.Errorf("Upstream.Token = %q", cfg.Upstream.Token)
	}
	if cfg.Upstream.Timeout != 15*time.Second {
		t.Errorf("Upstream.Timeout = %v, want 15s", cfg.Upstream.Timeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Permissions.Enabled {
		t.Error("permissions should stay disabled without a rules path")
	}
}

func TestFromEnv_WithRulesFile(t *testing.T) {
	rulesPath := filepath.Join(t.TempDir(), "rules.yaml")
	rulesContent := `
default_rule:
  allowed_projects: []
rules:
  - groups: ["dev"]
    allowed_projects: [".*"]
    readonly: false
`
	if err := os.WriteFile(rulesPath, []byte(rulesContent), 0644); err != nil {
		t.Fatalf("failed to write rules file: %v", err)
	}

	t.Setenv("LINTGATE_UPSTREAM_URL", "https://quality.example.com")
	t.Setenv("LINTGATE_RULES_PATH", rulesPath)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}

	if !cfg.Permissions.Enabled {
		t.Error("naming a rules path should enable permissions")
	}
	if !cfg.Permissions.CacheEnabled {
		t.Error("CacheEnabled should default on in env mode")
	}
	if len(cfg.Permissions.Rules) != 1 {
		t.Fatalf("Rules len = %d, want 1", len(cfg.Permissions.Rules))
	}
	if cfg.Permissions.DefaultRule == nil {
		t.Error("DefaultRule should come from the rules file")
	}
}

func TestFromEnv_RequiresUpstreamURL(t *testing.T) {
	t.Setenv("LINTGATE_TRANSPORT", "stdio")
	t.Setenv("LINTGATE_UPSTREAM_URL", "")

	_, err := FromEnv()
	if err == nil {
		t.Fatal("FromEnv() should fail without an upstream URL")
	}
	if !strings.Contains(err.Error(), "upstream.url is required") {
		t.Errorf("error = %v, want upstream.url failure", err)
	}
}
