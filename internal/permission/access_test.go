// ABOUTME: Tests for project pattern matching and component key extraction.
// ABOUTME: Malformed patterns are skipped, never raised to the caller.

package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesAny(t *testing.T) {
	patterns := []string{"^frontend-.*", "backend"}

	assert.True(t, MatchesAny("frontend-web", patterns))
	assert.True(t, MatchesAny("my-backend-api", patterns), "unanchored pattern matches anywhere")
	assert.False(t, MatchesAny("mobile-app", patterns))
	assert.False(t, MatchesAny("frontend-web", nil), "no patterns means no match")
}

func TestMatchesAny_SkipsInvalidPatterns(t *testing.T) {
	// A malformed pattern is ignored; the remaining ones still match.
	patterns := []string{"[invalid", "^ok-.*"}

	assert.True(t, MatchesAny("ok-project", patterns))
	assert.False(t, MatchesAny("other", patterns))
	assert.False(t, MatchesAny("anything", []string{"[invalid"}))
}

func TestExtractProjectKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"component path", "my-project:src/main/java/App.java", "my-project"},
		{"multiple colons keep first segment", "proj:a:b", "proj"},
		{"bare project key", "my-project", "my-project"},
		{"empty", "", ""},
		{"leading colon returned verbatim", ":src/main.go", ":src/main.go"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractProjectKey(tt.in))
		})
	}
}

func TestExtractProjectKey_RoundTrip(t *testing.T) {
	// Joining a colon-free key with any path must extract back to the key.
	for _, key := range []string{"p", "frontend-web", "a-b_c.d"} {
		assert.Equal(t, key, ExtractProjectKey(key+":some/path.go"))
	}
}

func TestFilterPredicate(t *testing.T) {
	match := FilterPredicate([]string{"^team-a-", "[bad", "^team-b-"})

	assert.True(t, match("team-a-web"))
	assert.True(t, match("team-b-api"))
	assert.False(t, match("team-c-api"))
}

func TestFilterPredicate_EmptyNeverMatches(t *testing.T) {
	assert.False(t, FilterPredicate(nil)(""))
	assert.False(t, FilterPredicate(nil)("anything"))
	assert.False(t, FilterPredicate([]string{"[bad"})("anything"), "only invalid patterns left")
}

func TestFilterByAccess(t *testing.T) {
	rule := &Rule{AllowedProjects: []string{"^keep-"}}
	items := []string{"keep-a", "drop-b", "keep-c"}

	got := FilterByAccess(items, func(s string) string { return s }, rule)
	assert.Equal(t, []string{"keep-a", "keep-c"}, got)
}

func TestFilterByAccess_FailsClosed(t *testing.T) {
	items := []string{"a", "b"}
	keyOf := func(s string) string { return s }

	// No rule at all: nothing passes.
	got := FilterByAccess(items, keyOf, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	// A rule without allowed projects: nothing passes either.
	got = FilterByAccess(items, keyOf, &Rule{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
