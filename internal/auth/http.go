// ABOUTME: Bearer token extraction and identity resolution for HTTP transports.
// ABOUTME: Requests without a resolvable identity proceed as anonymous.

package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lintgate/lintgate/internal/permission"
)

// Authenticator resolves bearer credentials into user identities. Static
// tokens are tried first, then JWT verification. Either source may be nil.
type Authenticator struct {
	verifier *JWTVerifier
	tokens   *StaticTokens
	logger   *slog.Logger
}

// NewAuthenticator creates an authenticator over the configured credential
// sources.
func NewAuthenticator(verifier *JWTVerifier, tokens *StaticTokens, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{
		verifier: verifier,
		tokens:   tokens,
		logger:   logger.With("component", "auth"),
	}
}

// Identify resolves a bearer token to a user identity.
func (a *Authenticator) Identify(token string) (*permission.UserContext, error) {
	if a.tokens != nil {
		if user, ok := a.tokens.Resolve(token); ok {
			return user, nil
		}
	}
	if a.verifier != nil {
		claims, err := a.verifier.Claims(token)
		if err != nil {
			return nil, err
		}
		return permission.UserContextFromClaims(claims), nil
	}
	return nil, ErrInvalidToken
}

// extractBearerToken extracts a bearer token from the Authorization header.
// Returns the token and an error message (empty if successful).
func extractBearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", "missing authorization header"
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "invalid authorization header format"
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", "empty token"
	}
	return token, ""
}

// HTTPContextFunc returns a per-request context hook for the SSE server.
// A resolvable bearer token attaches the identity to the context; anything
// else leaves the request anonymous and lets the permission rules decide.
func (a *Authenticator) HTTPContextFunc() func(ctx context.Context, r *http.Request) context.Context {
	return func(ctx context.Context, r *http.Request) context.Context {
		token, errMsg := extractBearerToken(r.Header.Get("Authorization"))
		if errMsg != "" {
			return ctx
		}

		user, err := a.Identify(token)
		if err != nil {
			a.logger.Debug("bearer token rejected",
				"remote", r.RemoteAddr,
				"error", err,
			)
			return ctx
		}
		return WithUser(ctx, user)
	}
}
