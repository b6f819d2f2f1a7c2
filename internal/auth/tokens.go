// ABOUTME: Static bearer token table mapping opaque tokens to identities.
// ABOUTME: Supports plaintext (constant-time) and bcrypt-hashed entries.

package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/lintgate/lintgate/internal/permission"
)

// TokenEntry binds one configured bearer token to an identity. Exactly
// one of Token and TokenHash is set; config validation enforces that.
type TokenEntry struct {
	Token     string // plaintext token
	TokenHash string // bcrypt hash of the token
	UserID    string
	Groups    []string
	Scopes    []string
}

// matches compares the presented token against this entry.
func (e *TokenEntry) matches(token string) bool {
	if e.Token != "" {
		return subtle.ConstantTimeCompare([]byte(e.Token), []byte(token)) == 1
	}
	if e.TokenHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(e.TokenHash), []byte(token)) == nil
	}
	return false
}

// StaticTokens resolves opaque bearer tokens from configuration.
type StaticTokens struct {
	entries []TokenEntry
}

// NewStaticTokens copies the entries into a resolver.
func NewStaticTokens(entries []TokenEntry) *StaticTokens {
	copied := make([]TokenEntry, len(entries))
	copy(copied, entries)
	return &StaticTokens{entries: copied}
}

// Resolve returns the identity for the presented token. The returned
// context carries copies of the entry's groups and scopes.
func (s *StaticTokens) Resolve(token string) (*permission.UserContext, bool) {
	for i := range s.entries {
		if !s.entries[i].matches(token) {
			continue
		}
		entry := &s.entries[i]
		return &permission.UserContext{
			UserID: entry.UserID,
			Groups: append([]string(nil), entry.Groups...),
			Scopes: append([]string(nil), entry.Scopes...),
		}, true
	}
	return nil, false
}

// Len returns the number of configured entries.
func (s *StaticTokens) Len() int {
	return len(s.entries)
}
