// Package github adapts GitHub's commit API into the domain Commit type.
//
// The adapter performs two reads per commit: one for the JSON metadata
// (commit message) and one for the diff rendered as plain text, negotiated
// via the application/vnd.github.diff media type.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"time"

	"github.com/sourcegraph/go-diff/diff"

	"github.com/tastemaker/taste/internal/domain"
	"github.com/tastemaker/taste/internal/ports"
)

const (
	httpClientTimeout = 60 * time.Second
	diffMediaType     = "application/vnd.github.diff"
)

// Commit URLs are matched anywhere in the input; the revision must be an
// all-lowercase hexadecimal token.
var commitURLPattern = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/commits?/([a-f0-9]+)`)

// ParseCommitURL extracts (owner, repo, sha) from a GitHub commit URL.
// Both .../commit/<hex> and .../commits/<hex> shapes are accepted. No
// network I/O happens here.
func ParseCommitURL(raw string) (owner, repo, sha string, err error) {
	m := commitURLPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", "", "", fmt.Errorf("%w: %s", domain.ErrInvalidReference, raw)
	}
	return m[1], m[2], m[3], nil
}

// Client fetches commits from the GitHub REST API.
type Client struct {
	baseURL     string
	tokenEnvVar string
	httpClient  *http.Client
}

// NewClient builds a commit API client. The token env var is optional;
// when unset or empty, requests go out unauthenticated (GitHub applies
// lower rate limits, which is not an error).
func NewClient(settings domain.GitHubSettings, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = httpClientTimeout
	}
	return &Client{
		baseURL:     settings.APIBaseURL,
		tokenEnvVar: settings.TokenEnvVar,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type commitMetadata struct {
	Commit struct {
		Message string `json:"message"`
	} `json:"commit"`
}

// FetchCommit implements ports.CommitFetcher. It reads the commit metadata
// and the rendered diff in two sequential calls; a non-success status from
// either wraps domain.ErrUpstreamUnavailable.
func (c *Client) FetchCommit(ctx context.Context, owner, repo, sha string) (domain.Commit, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/commits/%s", c.baseURL, owner, repo, sha)

	metaBody, err := c.get(ctx, endpoint, "")
	if err != nil {
		return domain.Commit{}, fmt.Errorf("fetch commit metadata: %w", err)
	}

	var meta commitMetadata
	if err := json.Unmarshal(metaBody, &meta); err != nil {
		return domain.Commit{}, fmt.Errorf("decode commit metadata: %w", err)
	}

	diffBody, err := c.get(ctx, endpoint, diffMediaType)
	if err != nil {
		return domain.Commit{}, fmt.Errorf("fetch commit diff: %w", err)
	}

	return domain.Commit{
		Message: meta.Commit.Message,
		Diff:    string(diffBody),
		URL:     fmt.Sprintf("https://github.com/%s/%s/commit/%s", owner, repo, sha),
		Stats:   DiffStats(string(diffBody)),
	}, nil
}

// ParseReference implements ports.CommitFetcher.
func (c *Client) ParseReference(url string) (owner, repo, sha string, err error) {
	return ParseCommitURL(url)
}

// get performs one GET with a single retry on transport-level failure.
// Non-success statuses are never retried.
func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	body, err := c.getOnce(ctx, url, accept)
	if err == nil || ctx.Err() != nil {
		return body, err
	}
	if _, transient := err.(*transportError); transient {
		return c.getOnce(ctx, url, accept)
	}
	return nil, err
}

type transportError struct{ err error }

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

func (c *Client) getOnce(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if c.tokenEnvVar != "" {
		if token := os.Getenv(c.tokenEnvVar); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &transportError{err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned %s", domain.ErrUpstreamUnavailable, url, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// DiffStats summarizes a unified diff. A diff that cannot be parsed yields
// zero stats; the raw text is still valid analyzer input.
func DiffStats(diffText string) domain.DiffStats {
	fds, err := diff.ParseMultiFileDiff([]byte(diffText))
	if err != nil {
		return domain.DiffStats{}
	}
	stats := domain.DiffStats{FilesChanged: len(fds)}
	for _, fd := range fds {
		st := fd.Stat()
		stats.LinesAdded += int(st.Added + st.Changed)
		stats.LinesDeleted += int(st.Deleted + st.Changed)
	}
	return stats
}

var _ ports.CommitFetcher = (*Client)(nil)
