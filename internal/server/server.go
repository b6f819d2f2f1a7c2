// ABOUTME: MCP server assembly and transport serving for lintgate.
// ABOUTME: Runs over stdio or HTTP/SSE, optionally on a tailscale node.

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/cors"
	"tailscale.com/tsnet"

	"github.com/lintgate/lintgate/internal/audit"
	"github.com/lintgate/lintgate/internal/auth"
	"github.com/lintgate/lintgate/internal/config"
	"github.com/lintgate/lintgate/internal/guard"
	"github.com/lintgate/lintgate/internal/permission"
	"github.com/lintgate/lintgate/internal/tools"
	"github.com/lintgate/lintgate/internal/upstream"
)

// Server owns the MCP server and everything wired into it.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger

	mcp   *mcpserver.MCPServer
	perms *permission.Service
	sink  *audit.SQLiteSink
	auth  *auth.Authenticator

	httpSrv *http.Server
	tsnet   *tsnet.Server
}

// New assembles the upstream client, permission service, guard, and
// tool registry into a ready-to-run server.
func New(cfg *config.Config, version string, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := upstream.NewClient(upstream.Config{
		URL:          cfg.Upstream.URL,
		Token:        cfg.Upstream.Token,
		Organization: cfg.Upstream.Organization,
		Timeout:      cfg.Upstream.Timeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("creating upstream client: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		logger: logger.With("component", "server"),
	}

	if cfg.Permissions.Enabled {
		pc, err := cfg.PermissionConfig()
		if err != nil {
			return nil, err
		}

		opts := []permission.Option{permission.WithLogger(logger)}
		if cfg.Audit.Path != "" {
			sink, err := audit.NewSQLiteSink(cfg.Audit.Path, logger)
			if err != nil {
				return nil, fmt.Errorf("opening audit sink: %w", err)
			}
			s.sink = sink
			opts = append(opts, permission.WithSink(sink))
		}

		s.perms = permission.NewService(pc, opts...)
	} else {
		logger.Warn("permission enforcement is disabled, every caller gets full access")
	}

	var verifier *auth.JWTVerifier
	if cfg.Auth.JWTSecret != "" {
		verifier = auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret))
	}
	s.auth = auth.NewAuthenticator(verifier, auth.NewStaticTokens(cfg.TokenEntries()), logger)

	s.mcp = mcpserver.NewMCPServer("lintgate", version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)

	g := guard.New(s.perms, cfg.Permissions.Enabled, logger)
	tools.NewRegistry(client, g, logger).RegisterAll(s.mcp)

	return s, nil
}

// Permissions returns the permission service, or nil when enforcement
// is disabled.
func (s *Server) Permissions() *permission.Service {
	return s.perms
}

// Run serves MCP on the configured transport and blocks until the
// context is canceled.
func (s *Server) Run(ctx context.Context) error {
	switch s.cfg.Server.Transport {
	case config.TransportHTTP:
		return s.runHTTP(ctx)
	default:
		return s.runStdio(ctx)
	}
}

func (s *Server) runStdio(ctx context.Context) error {
	s.logger.Info("serving MCP over stdio")

	stdio := mcpserver.NewStdioServer(s.mcp)
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

func (s *Server) runHTTP(ctx context.Context) error {
	baseURL := s.cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://" + s.cfg.Server.HTTPAddr
	}

	sse := mcpserver.NewSSEServer(s.mcp,
		mcpserver.WithBaseURL(baseURL),
		mcpserver.WithSSEContextFunc(s.auth.HTTPContextFunc()),
	)

	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/sse", sse)
	r.Handle("/message", sse)

	s.httpSrv = &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := s.listen(ctx)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", ln.Addr().String(), "base_url", baseURL)
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		s.logger.Info("context canceled, initiating shutdown")
	case serverErr = <-errCh:
		s.logger.Error("server error", "error", serverErr)
	}

	shutdownErr := s.gracefulShutdown()
	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// listen creates a listener based on configuration (Tailscale or TCP).
func (s *Server) listen(ctx context.Context) (net.Listener, error) {
	if s.cfg.Tailscale.Enabled {
		return s.listenTailscale(ctx)
	}

	ln, err := net.Listen("tcp", s.cfg.Server.HTTPAddr)
	if err != nil {
		return nil, fmt.Errorf("listening on HTTP address: %w", err)
	}
	return ln, nil
}

// resolveTailscaleStateDir returns the state directory, using a default
// under the home directory if not configured.
func resolveTailscaleStateDir(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory for tailscale state (set tailscale.state_dir explicitly): %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "lintgate", "tailscale"), nil
}

// resolveTailscaleAuthKey returns the auth key from config or environment.
func resolveTailscaleAuthKey(configured string) (string, error) {
	authKey := configured
	if authKey == "" {
		authKey = os.Getenv("TS_AUTHKEY")
	}
	if authKey == "" {
		return "", errors.New("tailscale auth key required: set auth_key in config or TS_AUTHKEY environment variable")
	}
	return authKey, nil
}

func (s *Server) listenTailscale(ctx context.Context) (net.Listener, error) {
	tsCfg := s.cfg.Tailscale

	stateDir, err := resolveTailscaleStateDir(tsCfg.StateDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(stateDir, 0700); err != nil {
		return nil, fmt.Errorf("creating tailscale state dir: %w", err)
	}

	authKey, err := resolveTailscaleAuthKey(tsCfg.AuthKey)
	if err != nil {
		return nil, err
	}

	s.tsnet = &tsnet.Server{
		Hostname:  tsCfg.Hostname,
		Dir:       stateDir,
		Ephemeral: tsCfg.Ephemeral,
		AuthKey:   authKey,
	}

	s.logger.Info("starting tailscale node",
		"hostname", tsCfg.Hostname,
		"state_dir", stateDir,
		"ephemeral", tsCfg.Ephemeral,
	)
	status, err := s.tsnet.Up(ctx)
	if err != nil {
		_ = s.tsnet.Close()
		return nil, fmt.Errorf("starting tailscale: %w", err)
	}

	if len(status.TailscaleIPs) > 0 {
		s.logger.Info("tailscale node ready", "hostname", tsCfg.Hostname, "tailscale_ip", status.TailscaleIPs[0].String())
	} else {
		s.logger.Warn("tailscale node has no IP addresses assigned")
	}

	ln, err := s.tsnet.Listen("tcp", ":80")
	if err != nil {
		_ = s.tsnet.Close()
		return nil, fmt.Errorf("listening on tailscale HTTP port: %w", err)
	}
	return ln, nil
}

// gracefulShutdown performs shutdown with a fresh context and timeout.
// Uses context.Background() since the original context is already
// canceled by the time shutdown starts.
func (s *Server) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []error
	if s.httpSrv != nil {
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
		}
	}
	if s.tsnet != nil {
		if err := s.tsnet.Close(); err != nil {
			errs = append(errs, fmt.Errorf("tailscale shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close releases the permission service and audit sink.
func (s *Server) Close() error {
	if s.perms != nil {
		s.perms.Close()
	}
	if s.sink != nil {
		if err := s.sink.Close(); err != nil {
			return fmt.Errorf("closing audit sink: %w", err)
		}
	}
	return nil
}
