package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tastemaker/taste/internal/domain"
)

func TestParseCommitURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
		wantSHA   string
		wantErr   bool
	}{
		{
			name:      "commit path",
			url:       "https://github.com/golang/go/commit/abc123def",
			wantOwner: "golang",
			wantRepo:  "go",
			wantSHA:   "abc123def",
		},
		{
			name:      "commits path",
			url:       "https://github.com/octocat/hello-world/commits/0f1e2d3c",
			wantOwner: "octocat",
			wantRepo:  "hello-world",
			wantSHA:   "0f1e2d3c",
		},
		{
			name:      "reference embedded in text",
			url:       "see github.com/a/b/commit/deadbeef for details",
			wantOwner: "a",
			wantRepo:  "b",
			wantSHA:   "deadbeef",
		},
		{
			name:    "not a commit url",
			url:     "not-a-commit-url",
			wantErr: true,
		},
		{
			name:    "pull request url",
			url:     "https://github.com/golang/go/pull/12345",
			wantErr: true,
		},
		{
			name:    "uppercase hex rejected",
			url:     "https://github.com/a/b/commit/ABCDEF",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, sha, err := ParseCommitURL(tt.url)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidReference) {
					t.Fatalf("ParseCommitURL(%q) error = %v, want ErrInvalidReference", tt.url, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCommitURL(%q) error = %v", tt.url, err)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo || sha != tt.wantSHA {
				t.Fatalf("ParseCommitURL(%q) = (%q, %q, %q), want (%q, %q, %q)",
					tt.url, owner, repo, sha, tt.wantOwner, tt.wantRepo, tt.wantSHA)
			}
		})
	}
}

const sampleDiff = `diff --git a/main.go b/main.go
index 1111111..2222222 100644
--- a/main.go
+++ b/main.go
@@ -1,3 +1,4 @@
 package main
+// added line
 func main() {}
`

func TestFetchCommit(t *testing.T) {
	t.Setenv("TEST_GH_TOKEN", "secret-token")

	var sawAuth, sawDiffAccept bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer secret-token" {
			sawAuth = true
		}
		if r.Header.Get("Accept") == "application/vnd.github.diff" {
			sawDiffAccept = true
			w.Write([]byte(sampleDiff))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"commit": {"message": "fix: add nil check"}}`))
	}))
	defer server.Close()

	client := NewClient(domain.GitHubSettings{
		APIBaseURL:  server.URL,
		TokenEnvVar: "TEST_GH_TOKEN",
	}, 0)

	commit, err := client.FetchCommit(context.Background(), "octocat", "demo", "abc123")
	if err != nil {
		t.Fatalf("FetchCommit() error = %v", err)
	}

	if commit.Message != "fix: add nil check" {
		t.Errorf("Message = %q, want %q", commit.Message, "fix: add nil check")
	}
	if commit.Diff != sampleDiff {
		t.Errorf("Diff = %q, want sample diff", commit.Diff)
	}
	if want := "https://github.com/octocat/demo/commit/abc123"; commit.URL != want {
		t.Errorf("URL = %q, want %q", commit.URL, want)
	}
	if commit.Stats.FilesChanged != 1 || commit.Stats.LinesAdded != 1 {
		t.Errorf("Stats = %+v, want 1 file changed and 1 line added", commit.Stats)
	}
	if !sawAuth {
		t.Error("Authorization header was not attached")
	}
	if !sawDiffAccept {
		t.Error("diff media type was not negotiated")
	}
}

func TestFetchCommitWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization header %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Accept") == "application/vnd.github.diff" {
			w.Write([]byte(sampleDiff))
			return
		}
		w.Write([]byte(`{"commit": {"message": "msg"}}`))
	}))
	defer server.Close()

	client := NewClient(domain.GitHubSettings{
		APIBaseURL:  server.URL,
		TokenEnvVar: "TEST_GH_TOKEN_UNSET",
	}, 0)

	if _, err := client.FetchCommit(context.Background(), "a", "b", "c0ffee"); err != nil {
		t.Fatalf("FetchCommit() without token error = %v", err)
	}
}

func TestFetchCommitUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(domain.GitHubSettings{APIBaseURL: server.URL}, 0)

	_, err := client.FetchCommit(context.Background(), "a", "b", "c0ffee")
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("FetchCommit() error = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestDiffStatsUnparseable(t *testing.T) {
	stats := DiffStats("this is not a diff at all")
	if stats != (domain.DiffStats{}) {
		t.Fatalf("DiffStats() = %+v, want zero stats", stats)
	}
}
