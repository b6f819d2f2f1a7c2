// ABOUTME: Entry point for the lintgate MCP server
// ABOUTME: Bridges MCP clients to a code quality platform with permission rules

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/lintgate/lintgate/internal/audit"
	"github.com/lintgate/lintgate/internal/auth"
	"github.com/lintgate/lintgate/internal/config"
	"github.com/lintgate/lintgate/internal/permission"
	"github.com/lintgate/lintgate/internal/server"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
 _ _       _              _
| (_)_ __ | |_ __ _  __ _| |_ ___
| | | '_ \| __/ _' |/ _' | __/ _ \
| | | | | | || (_| | (_| | ||  __/
|_|_|_| |_|\__\__, |\__,_|\__\___|
              |___/
`

// getConfigPath returns the path to the lintgate config file.
// Priority: LINTGATE_CONFIG env var > XDG_CONFIG_HOME/lintgate/config.yaml > ~/.config/lintgate/config.yaml
func getConfigPath() string {
	if envPath := os.Getenv("LINTGATE_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "lintgate", "config.yaml")
}

// getDataPath returns the path to the lintgate data directory.
// Priority: XDG_DATA_HOME/lintgate > ~/.local/share/lintgate
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "lintgate")
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "check":
		err = runCheck(ctx)
	case "rules":
		err = runRules()
	case "audit":
		err = runAudit(ctx)
	case "token":
		err = runToken()
	case "version":
		fmt.Printf("lintgate %s\n", version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	yellow := color.New(color.FgYellow)

	fmt.Println("Usage: lintgate <command>")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  serve                  Start the MCP server")
	fmt.Println("  init                   Create a new config file interactively")
	fmt.Println("  check                  Validate the config; with --user/--tool/--project,")
	fmt.Println("                         evaluate a permission decision offline")
	fmt.Println("  rules                  Show the effective permission rules")
	fmt.Println("  audit [--limit N]      Show recent permission decisions")
	fmt.Println("  token --user ID        Generate a JWT access token")
	fmt.Println("  version                Print the version")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  LINTGATE_CONFIG        Config file path (default ~/.config/lintgate/config.yaml)")
	fmt.Println("  LINTGATE_UPSTREAM_URL  Override the upstream platform URL")
	fmt.Println("  LINTGATE_LOG_LEVEL     Override the log level")
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	// Without a config file, fall back to pure LINTGATE_* environment
	// configuration.
	var cfg *config.Config
	var err error
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		cfg, err = config.FromEnv()
		if err != nil {
			return fmt.Errorf("no config file at %s and environment config failed: %w", configPath, err)
		}
		configPath = "(environment)"
	} else {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	logger := setupLogger(cfg.Logging)

	// stdout belongs to the MCP stdio transport, so the banner and all
	// startup chrome go to stderr.
	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	cyan.Fprint(os.Stderr, banner)
	gray.Fprintf(os.Stderr, "    version: %s\n\n", version)

	green.Fprint(os.Stderr, "    ▶ ")
	fmt.Fprintf(os.Stderr, "Config:      %s\n", configPath)
	green.Fprint(os.Stderr, "    ▶ ")
	fmt.Fprintf(os.Stderr, "Transport:   %s\n", cfg.Server.Transport)
	if cfg.Server.Transport == config.TransportHTTP {
		green.Fprint(os.Stderr, "    ▶ ")
		fmt.Fprintf(os.Stderr, "HTTP:        %s\n", cfg.Server.HTTPAddr)
	}
	green.Fprint(os.Stderr, "    ▶ ")
	fmt.Fprintf(os.Stderr, "Upstream:    %s\n", cfg.Upstream.URL)

	if cfg.Tailscale.Enabled {
		green.Fprint(os.Stderr, "    ▶ ")
		fmt.Fprint(os.Stderr, "Tailscale:   ")
		cyan.Fprint(os.Stderr, cfg.Tailscale.Hostname)
		if cfg.Tailscale.Ephemeral {
			gray.Fprint(os.Stderr, " (ephemeral)")
		}
		fmt.Fprintln(os.Stderr)
	}

	green.Fprint(os.Stderr, "    ▶ ")
	if cfg.Permissions.Enabled {
		fmt.Fprintf(os.Stderr, "Permissions: %d rule(s)\n", len(cfg.Permissions.Rules))
	} else {
		fmt.Fprint(os.Stderr, "Permissions: ")
		yellow.Fprintln(os.Stderr, "disabled")
	}

	fmt.Fprintln(os.Stderr)

	logger.Info("starting lintgate",
		"config", configPath,
		"transport", cfg.Server.Transport,
		"upstream", cfg.Upstream.URL,
	)

	srv, err := server.New(cfg, version, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer srv.Close()

	return srv.Run(ctx)
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Logs always go to stderr so the stdio transport keeps stdout to
	// itself.
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = &colorHandler{
			level: level,
		}
	}

	return slog.New(handler)
}

// colorHandler provides colorized log output with thread-safe writes.
type colorHandler struct {
	mu     sync.Mutex
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var buf strings.Builder

	// Format timestamp
	buf.WriteString(color.HiBlackString(r.Time.Format("15:04:05") + " "))

	// Colorize level
	switch r.Level {
	case slog.LevelDebug:
		buf.WriteString(color.MagentaString("DBG "))
	case slog.LevelInfo:
		buf.WriteString(color.CyanString("INF "))
	case slog.LevelWarn:
		buf.WriteString(color.YellowString("WRN "))
	case slog.LevelError:
		buf.WriteString(color.New(color.FgRed, color.Bold).Sprint("ERR "))
	default:
		buf.WriteString("??? ")
	}

	// Print message
	buf.WriteString(r.Message)

	// Print handler-level attrs first (from WithAttrs)
	for _, a := range h.attrs {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
	}

	// Print record attrs
	r.Attrs(func(a slog.Attr) bool {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
		return true
	})

	buf.WriteString("\n")
	fmt.Fprint(os.Stderr, buf.String())
	return nil
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	newAttrs = append(newAttrs, attrs...)
	return &colorHandler{
		level:  h.level,
		attrs:  newAttrs,
		groups: h.groups,
	}
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	newGroups := make([]string, len(h.groups), len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups = append(newGroups, name)
	return &colorHandler{
		level:  h.level,
		attrs:  h.attrs,
		groups: newGroups,
	}
}

// runCheck validates the config. With --user/--groups/--tool/--project
// it additionally evaluates the rules offline and prints the decision
// the server would make.
func runCheck(ctx context.Context) error {
	var userID, groupsCSV, tool, project string
	args := os.Args[2:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--user" || arg == "-u":
			if i+1 >= len(args) {
				return fmt.Errorf("--user requires a value")
			}
			userID = args[i+1]
			i++
		case strings.HasPrefix(arg, "--user="):
			userID = strings.TrimPrefix(arg, "--user=")
		case arg == "--groups" || arg == "-g":
			if i+1 >= len(args) {
				return fmt.Errorf("--groups requires a value")
			}
			groupsCSV = args[i+1]
			i++
		case strings.HasPrefix(arg, "--groups="):
			groupsCSV = strings.TrimPrefix(arg, "--groups=")
		case arg == "--tool" || arg == "-t":
			if i+1 >= len(args) {
				return fmt.Errorf("--tool requires a value")
			}
			tool = args[i+1]
			i++
		case strings.HasPrefix(arg, "--tool="):
			tool = strings.TrimPrefix(arg, "--tool=")
		case arg == "--project" || arg == "-p":
			if i+1 >= len(args) {
				return fmt.Errorf("--project requires a value")
			}
			project = args[i+1]
			i++
		case strings.HasPrefix(arg, "--project="):
			project = strings.TrimPrefix(arg, "--project=")
		case strings.HasPrefix(arg, "-"):
			return fmt.Errorf("unknown flag: %s", arg)
		default:
			return fmt.Errorf("unexpected argument: %s", arg)
		}
	}

	configPath := getConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config check failed: %w", err)
	}

	green := color.New(color.FgGreen)

	if userID == "" && tool == "" && project == "" {
		green.Printf("  ✓ Config valid: %s\n", configPath)

		fmt.Printf("    transport:   %s\n", cfg.Server.Transport)
		if cfg.Server.Transport == config.TransportHTTP {
			fmt.Printf("    http_addr:   %s\n", cfg.Server.HTTPAddr)
		}
		fmt.Printf("    upstream:    %s\n", cfg.Upstream.URL)
		if cfg.Tailscale.Enabled {
			fmt.Printf("    tailscale:   %s\n", cfg.Tailscale.Hostname)
		}
		if cfg.Permissions.Enabled {
			fmt.Printf("    permissions: enabled, %d rule(s)\n", len(cfg.Permissions.Rules))
		} else {
			fmt.Printf("    permissions: disabled\n")
		}
		if cfg.Audit.Path != "" {
			fmt.Printf("    audit:       %s\n", cfg.Audit.Path)
		}
		fmt.Printf("    tokens:      %d static token(s)\n", len(cfg.Auth.Tokens))

		return nil
	}

	if tool == "" && project == "" {
		return fmt.Errorf("specify --tool or --project to evaluate")
	}

	if !cfg.Permissions.Enabled {
		color.New(color.FgYellow).Println("  Permissions are disabled; every call is allowed.")
		return nil
	}

	pc, err := cfg.PermissionConfig()
	if err != nil {
		return fmt.Errorf("building permission rules: %w", err)
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := permission.NewService(pc, permission.WithLogger(quiet))
	defer svc.Close()

	user := &permission.UserContext{UserID: userID}
	if userID == "" {
		user.UserID = permission.AnonymousUserID
	}
	if groupsCSV != "" {
		for _, g := range strings.Split(groupsCSV, ",") {
			if g = strings.TrimSpace(g); g != "" {
				user.Groups = append(user.Groups, g)
			}
		}
	}

	fmt.Println()
	if tool != "" {
		printDecision("tool", tool, user, svc.CheckToolAccess(ctx, user, tool))
	}
	if project != "" {
		printDecision("project", project, user, svc.CheckProjectAccess(ctx, user, project))
	}
	fmt.Println()

	return nil
}

func printDecision(kind, target string, user *permission.UserContext, res permission.CheckResult) {
	fmt.Printf("  %s '%s' for user '%s'", kind, target, user.UserID)
	if len(user.Groups) > 0 {
		fmt.Printf(" (groups: %s)", strings.Join(user.Groups, ", "))
	}
	fmt.Print(": ")
	if res.Allowed {
		color.New(color.FgGreen).Println("GRANTED")
	} else {
		color.New(color.FgRed).Printf("DENIED")
		fmt.Printf(" (%s)\n", res.Reason)
	}
}

func runRules() error {
	configPath := getConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !cfg.Permissions.Enabled {
		color.New(color.FgYellow).Println("  Permissions are disabled; every caller gets full access.")
		return nil
	}

	pc, err := cfg.PermissionConfig()
	if err != nil {
		return fmt.Errorf("building permission rules: %w", err)
	}

	// Show rules in the order the service evaluates them.
	rules := make([]permission.Rule, len(pc.Rules))
	copy(rules, pc.Rules)
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Permission Rules")
	cyan.Println("  ----------------")

	if len(rules) == 0 {
		fmt.Println("  (no rules: all group members are denied)")
	} else {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  PRIORITY\tGROUPS\tPROJECTS\tMODE\tMAX SEVERITY\tTOOLS")
		fmt.Fprintln(w, "  --------\t------\t--------\t----\t------------\t-----")
		for _, r := range rules {
			fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\t%s\n",
				r.Priority,
				truncate(strings.Join(r.Groups, ","), 24),
				truncate(strings.Join(r.AllowedProjects, ","), 32),
				ruleMode(r),
				ruleSeverity(r),
				truncate(ruleTools(r), 36),
			)
		}
		w.Flush()
	}

	fmt.Println()
	if pc.DefaultRule != nil {
		r := *pc.DefaultRule
		fmt.Printf("  Default rule (users in no listed group): %s, projects [%s]\n",
			ruleMode(r), truncate(strings.Join(r.AllowedProjects, ","), 48))
	} else {
		fmt.Println("  No default rule: users in no listed group are denied.")
	}
	fmt.Println()

	return nil
}

func ruleMode(r permission.Rule) string {
	if r.Readonly {
		return "readonly"
	}
	return "read-write"
}

func ruleSeverity(r permission.Rule) string {
	if r.MaxSeverity == nil {
		return "-"
	}
	return r.MaxSeverity.String()
}

func ruleTools(r permission.Rule) string {
	var parts []string
	if len(r.AllowedTools) > 0 {
		parts = append(parts, "allow:"+strings.Join(r.AllowedTools, ","))
	}
	if len(r.DeniedTools) > 0 {
		parts = append(parts, "deny:"+strings.Join(r.DeniedTools, ","))
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, " ")
}

func runAudit(ctx context.Context) error {
	limit := 50
	args := os.Args[2:]
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--limit" || args[i] == "-n":
			if i+1 >= len(args) {
				return fmt.Errorf("--limit requires a value")
			}
			if _, err := fmt.Sscanf(args[i+1], "%d", &limit); err != nil {
				return fmt.Errorf("invalid --limit value: %s", args[i+1])
			}
			i++
		case strings.HasPrefix(args[i], "--limit="):
			if _, err := fmt.Sscanf(strings.TrimPrefix(args[i], "--limit="), "%d", &limit); err != nil {
				return fmt.Errorf("invalid --limit value: %s", args[i])
			}
		default:
			return fmt.Errorf("unknown argument: %s", args[i])
		}
	}

	configPath := getConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Audit.Path == "" {
		return fmt.Errorf("audit.path is not configured in %s", configPath)
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	sink, err := audit.NewSQLiteSink(cfg.Audit.Path, quiet)
	if err != nil {
		return fmt.Errorf("opening audit database: %w", err)
	}
	defer sink.Close()

	entries, err := sink.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("reading audit entries: %w", err)
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Recent Permission Decisions")
	cyan.Println("  ---------------------------")

	if len(entries) == 0 {
		fmt.Println("  (no audit entries)")
		fmt.Println()
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  TIME\tEVENT\tUSER\tACTION\tTARGET\tREASON")
	fmt.Fprintln(w, "  ----\t-----\t----\t------\t------\t------")
	for _, e := range entries {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format("Jan 02 15:04:05"),
			e.Event,
			truncate(e.UserID, 20),
			e.Action,
			truncate(e.Target, 28),
			truncate(e.Reason, 40),
		)
	}
	w.Flush()
	fmt.Println()

	return nil
}

func runToken() error {
	var userID, groupsCSV, ttlStr string
	args := os.Args[2:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--user" || arg == "-u":
			if i+1 >= len(args) {
				return fmt.Errorf("--user requires a value")
			}
			userID = args[i+1]
			i++
		case strings.HasPrefix(arg, "--user="):
			userID = strings.TrimPrefix(arg, "--user=")
		case arg == "--groups" || arg == "-g":
			if i+1 >= len(args) {
				return fmt.Errorf("--groups requires a value")
			}
			groupsCSV = args[i+1]
			i++
		case strings.HasPrefix(arg, "--groups="):
			groupsCSV = strings.TrimPrefix(arg, "--groups=")
		case arg == "--ttl":
			if i+1 >= len(args) {
				return fmt.Errorf("--ttl requires a value")
			}
			ttlStr = args[i+1]
			i++
		case strings.HasPrefix(arg, "--ttl="):
			ttlStr = strings.TrimPrefix(arg, "--ttl=")
		case strings.HasPrefix(arg, "-"):
			return fmt.Errorf("unknown flag: %s", arg)
		default:
			return fmt.Errorf("unexpected argument: %s", arg)
		}
	}

	if userID == "" {
		return fmt.Errorf("--user flag is required")
	}

	ttl := 24 * time.Hour
	if ttlStr != "" {
		parsed, err := time.ParseDuration(ttlStr)
		if err != nil {
			return fmt.Errorf("invalid --ttl value: %w", err)
		}
		ttl = parsed
	}

	configPath := getConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret not configured in %s (required for token generation)", configPath)
	}

	var groups []string
	if groupsCSV != "" {
		for _, g := range strings.Split(groupsCSV, ",") {
			if g = strings.TrimSpace(g); g != "" {
				groups = append(groups, g)
			}
		}
	}

	token, err := auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret)).Generate(userID, groups, ttl)
	if err != nil {
		return fmt.Errorf("generating token: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ Token for %s", userID)
	if len(groups) > 0 {
		fmt.Printf(" (groups: %s)", strings.Join(groups, ", "))
	}
	fmt.Printf(", expires %s\n\n", time.Now().Add(ttl).Format("Jan 02, 2006 15:04"))
	fmt.Println(token)

	return nil
}

func runInit() error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("lintgate configuration setup")
	fmt.Println("============================")
	fmt.Println()

	defaultConfigPath := getConfigPath()
	defaultDataPath := getDataPath()

	outputFile := prompt(reader, "Config file path", defaultConfigPath)

	if _, err := os.Stat(outputFile); err == nil {
		overwrite := prompt(reader, "File exists. Overwrite?", "no")
		if strings.ToLower(overwrite) != "yes" && strings.ToLower(overwrite) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	// Server configuration
	fmt.Println("\n--- Server Configuration ---")
	transport := prompt(reader, "Transport (stdio/http)", config.TransportStdio)
	var httpAddr string
	if transport == config.TransportHTTP {
		httpAddr = prompt(reader, "HTTP address", "localhost:8080")
	}

	// Upstream
	fmt.Println("\n--- Upstream Platform ---")
	upstreamURL := prompt(reader, "Platform URL", "https://sonarcloud.io")
	upstreamToken := prompt(reader, "API token (supports ${ENV_VAR})", "${SONARQUBE_TOKEN}")
	organization := prompt(reader, "Organization key (empty for none)", "")

	// Tailscale
	fmt.Println("\n--- Tailscale Configuration ---")
	enableTailscale := prompt(reader, "Enable Tailscale?", "no")
	tailscaleEnabled := strings.ToLower(enableTailscale) == "yes" || strings.ToLower(enableTailscale) == "y"

	var tsHostname, tsAuthKey string
	var tsEphemeral bool
	if tailscaleEnabled {
		tsHostname = prompt(reader, "Tailscale hostname", "lintgate")
		tsAuthKey = prompt(reader, "Tailscale auth key (leave empty for TS_AUTHKEY)", "")
		ephemeralStr := prompt(reader, "Ephemeral node?", "no")
		tsEphemeral = strings.ToLower(ephemeralStr) == "yes" || strings.ToLower(ephemeralStr) == "y"
	}

	// Permissions
	fmt.Println("\n--- Permissions ---")
	enablePerms := prompt(reader, "Enable permission rules?", "yes")
	permsEnabled := strings.ToLower(enablePerms) == "yes" || strings.ToLower(enablePerms) == "y"
	var auditPath string
	if permsEnabled {
		auditPath = prompt(reader, "Audit database path (empty for in-memory only)",
			filepath.Join(defaultDataPath, "audit.db"))
	}

	// Logging
	fmt.Println("\n--- Logging Configuration ---")
	logLevel := prompt(reader, "Log level (debug/info/warn/error)", "info")
	logFormat := prompt(reader, "Log format (text/json)", "text")

	// Generate config
	var cfg strings.Builder
	cfg.WriteString("# lintgate configuration\n")
	cfg.WriteString("# Generated by lintgate init\n\n")

	cfg.WriteString("server:\n")
	cfg.WriteString(fmt.Sprintf("  transport: \"%s\"\n", transport))
	if httpAddr != "" {
		cfg.WriteString(fmt.Sprintf("  http_addr: \"%s\"\n", httpAddr))
	}
	cfg.WriteString("\n")

	cfg.WriteString("upstream:\n")
	cfg.WriteString(fmt.Sprintf("  url: \"%s\"\n", upstreamURL))
	cfg.WriteString(fmt.Sprintf("  token: \"%s\"\n", upstreamToken))
	if organization != "" {
		cfg.WriteString(fmt.Sprintf("  organization: \"%s\"\n", organization))
	}
	cfg.WriteString("  timeout: \"30s\"\n")
	cfg.WriteString("\n")

	cfg.WriteString("tailscale:\n")
	cfg.WriteString(fmt.Sprintf("  enabled: %t\n", tailscaleEnabled))
	if tailscaleEnabled {
		cfg.WriteString(fmt.Sprintf("  hostname: \"%s\"\n", tsHostname))
		if tsAuthKey != "" {
			cfg.WriteString(fmt.Sprintf("  auth_key: \"%s\"\n", tsAuthKey))
		}
		cfg.WriteString(fmt.Sprintf("  ephemeral: %t\n", tsEphemeral))
	}
	cfg.WriteString("\n")

	cfg.WriteString("permissions:\n")
	cfg.WriteString(fmt.Sprintf("  enabled: %t\n", permsEnabled))
	if permsEnabled {
		cfg.WriteString("  cache_enabled: true\n")
		cfg.WriteString("  cache_ttl: \"5m\"\n")
		cfg.WriteString("  audit_enabled: true\n")
		cfg.WriteString("  default_rule:\n")
		cfg.WriteString("    allowed_projects: []\n")
		cfg.WriteString("    readonly: true\n")
		cfg.WriteString("  rules:\n")
		cfg.WriteString("    - groups: [\"developers\"]\n")
		cfg.WriteString("      allowed_projects: [\".*\"]\n")
		cfg.WriteString("      readonly: false\n")
		cfg.WriteString("      priority: 10\n")
	}
	cfg.WriteString("\n")

	if auditPath != "" {
		cfg.WriteString("audit:\n")
		cfg.WriteString(fmt.Sprintf("  path: \"%s\"\n", auditPath))
		cfg.WriteString("\n")
	}

	cfg.WriteString("logging:\n")
	cfg.WriteString(fmt.Sprintf("  level: \"%s\"\n", logLevel))
	cfg.WriteString(fmt.Sprintf("  format: \"%s\"\n", logFormat))

	// Ensure config directory exists
	configDir := filepath.Dir(outputFile)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(outputFile, []byte(cfg.String()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	if auditPath != "" {
		if err := os.MkdirAll(filepath.Dir(auditPath), 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	fmt.Printf("\nConfig written to %s\n", outputFile)
	fmt.Println("\nTo start the server:")
	fmt.Printf("  lintgate serve\n")

	return nil
}

func prompt(reader *bufio.Reader, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", question, defaultVal)
	} else {
		fmt.Printf("%s: ", question)
	}

	input, err := reader.ReadString('\n')
	if err != nil {
		// On EOF or error, return default
		fmt.Println()
		return defaultVal
	}
	input = strings.TrimSpace(input)

	if input == "" {
		return defaultVal
	}
	return input
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
