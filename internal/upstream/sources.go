// ABOUTME: Source code retrieval endpoints: raw file content and SCM blame.

package upstream

import (
	"context"
	"net/url"
)

// RawSource returns the raw text of a source file identified by its
// component key.
func (c *Client) RawSource(ctx context.Context, key, branch, pullRequest string) (string, error) {
	q := url.Values{}
	q.Set("key", key)
	setString(q, "branch", branch)
	setString(q, "pullRequest", pullRequest)

	return c.getText(ctx, "/api/sources/raw", q)
}

// ScmBlame returns per-line SCM authorship for a source file. Zero from/to
// values request the whole file.
func (c *Client) ScmBlame(ctx context.Context, key string, from, to int) (*ScmBlameResult, error) {
	q := url.Values{}
	q.Set("key", key)
	setInt(q, "from", from)
	setInt(q, "to", to)

	var result ScmBlameResult
	if err := c.getJSON(ctx, "/api/sources/scm", q, &result); err != nil {
		return nil, err
	}
	if result.Scm == nil {
		result.Scm = [][]any{}
	}
	return &result, nil
}
