// ABOUTME: Request-scoped identity propagation through context.Context.
// ABOUTME: Provides WithUser/UserFromContext for handlers and middleware.

package auth

import (
	"context"

	"github.com/lintgate/lintgate/internal/permission"
)

// userContextKey is the key type for storing the user in context.Context.
type userContextKey struct{}

// WithUser returns a new context with the user identity attached.
func WithUser(ctx context.Context, user *permission.UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves the user identity from the context, returning
// nil when the request is anonymous.
func UserFromContext(ctx context.Context) *permission.UserContext {
	user, _ := ctx.Value(userContextKey{}).(*permission.UserContext)
	return user
}
