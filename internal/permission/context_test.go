// ABOUTME: Tests for UserContext derivation from token claims.
// ABOUTME: Group extraction across claim names, dedup, and string splitting.

package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserContextFromClaims_Identity(t *testing.T) {
	uc := UserContextFromClaims(map[string]any{
		"sub": "alice",
		"iss": "https://auth.example.com",
	})

	assert.Equal(t, "alice", uc.UserID)
	assert.Equal(t, "https://auth.example.com", uc.Issuer)
	assert.Empty(t, uc.Groups)
	assert.Empty(t, uc.Scopes)
}

func TestUserContextFromClaims_GroupSources(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]any
		want   []string
	}{
		{
			name:   "string array",
			claims: map[string]any{"groups": []any{"dev", "qa"}},
			want:   []string{"dev", "qa"},
		},
		{
			name:   "comma separated string",
			claims: map[string]any{"roles": "dev,qa"},
			want:   []string{"dev", "qa"},
		},
		{
			name:   "space separated string",
			claims: map[string]any{"authorities": "dev qa"},
			want:   []string{"dev", "qa"},
		},
		{
			name:   "mixed separators and padding",
			claims: map[string]any{"group": " dev, qa  ops"},
			want:   []string{"dev", "qa", "ops"},
		},
		{
			name: "merged across claim names without duplicates",
			claims: map[string]any{
				"groups": []any{"dev"},
				"roles":  "dev,admin",
			},
			want: []string{"dev", "admin"},
		},
		{
			name:   "non-string array elements skipped",
			claims: map[string]any{"groups": []any{"dev", 42, nil, "qa"}},
			want:   []string{"dev", "qa"},
		},
		{
			name:   "no group claims",
			claims: map[string]any{"sub": "bob"},
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := UserContextFromClaims(tt.claims)
			assert.Equal(t, tt.want, uc.Groups)
		})
	}
}

func TestUserContextFromClaims_Scopes(t *testing.T) {
	uc := UserContextFromClaims(map[string]any{"scope": "read write  admin"})
	assert.Equal(t, []string{"read", "write", "admin"}, uc.Scopes)
}

func TestUserID_FallsBackToAnonymous(t *testing.T) {
	assert.Equal(t, AnonymousUserID, userID(nil))
	assert.Equal(t, AnonymousUserID, userID(&UserContext{}))
	assert.Equal(t, "alice", userID(&UserContext{UserID: "alice"}))
}
