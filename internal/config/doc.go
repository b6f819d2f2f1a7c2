// Package config handles configuration loading for lintgate.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable
// expansion, then overlaid with LINTGATE_* environment overrides.
// Deployments without a config file can use FromEnv, which reads the
// whole configuration from LINTGATE_* variables and takes permission
// rules from the file named by LINTGATE_RULES_PATH.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from LINTGATE_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/lintgate/config.yaml
//  3. ~/.config/lintgate/config.yaml
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	upstream:
//	  token: "${LINTGATE_UPSTREAM_TOKEN}"
//
// Syntax: ${VAR_NAME}
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	upstream:
//	  timeout: "30s"
//	permissions:
//	  cache_ttl: "5m"
//
// # Configuration Sections
//
// Server transport, stdio or http:
//
//	server:
//	  transport: "http"
//	  http_addr: "0.0.0.0:8080"
//	  base_url: "http://localhost:8080"
//
// Upstream platform:
//
//	upstream:
//	  url: "https://quality.example.com"
//	  token: "${LINTGATE_UPSTREAM_TOKEN}"
//	  organization: ""
//	  timeout: "30s"
//
// Caller authentication:
//
//	auth:
//	  jwt_secret: "${LINTGATE_JWT_SECRET}"
//	  tokens:
//	    - token: "dev-token"
//	      user_id: "alice"
//	      groups: ["dev"]
//
// Permission rules:
//
//	permissions:
//	  enabled: true
//	  cache_enabled: true
//	  cache_ttl: "5m"
//	  audit_enabled: true
//	  rules:
//	    - groups: ["dev"]
//	      allowed_projects: ["^app-.*"]
//	      allowed_tools: ["projects", "issues"]
//	      max_severity: "CRITICAL"
//	      priority: 10
//
// # Validation
//
// Load() rejects configurations with unknown YAML keys, unknown tool
// names, invalid project patterns, or unparseable severities and
// statuses, so a running server never carries a rule it cannot
// enforce.
package config
