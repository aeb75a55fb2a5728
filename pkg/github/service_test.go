package github_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	gh "github.com/google/go-github/v74/github"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/leakreview/pkg/github"
)

func newClient(t *testing.T, handler http.Handler) *github.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := gh.NewClient(nil)
	u, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	client.BaseURL = u
	return client
}

func testRetry() *github.RetryPolicy {
	return &github.RetryPolicy{
		InitialInterval: time.Millisecond,
		MaxElapsedTime:  5 * time.Second,
	}
}

func TestRepositoriesServiceImpl_GetCommit(t *testing.T) {
	t.Parallel()
	t.Run("retry on server errors", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/repos/acme/widgets/commits/abc" {
				http.NotFound(w, r)
				return
			}
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			fmt.Fprint(w, `{"sha":"abc123"}`)
		}))
		svc := &github.RepositoriesServiceImpl{
			RepositoriesService: client.Repositories,
			Commits:             map[string]*github.GetCommitResult{},
			Retry:               testRetry(),
			LogE:                logrus.NewEntry(logrus.New()),
		}
		commit, _, err := svc.GetCommit(t.Context(), "acme", "widgets", "abc", nil)
		if err != nil {
			t.Fatal(err)
		}
		if commit.GetSHA() != "abc123" {
			t.Fatalf("wanted abc123, got %s", commit.GetSHA())
		}
		if n := calls.Load(); n != 3 {
			t.Fatalf("wanted 3 calls, got %d", n)
		}
		// cached
		if _, _, err := svc.GetCommit(t.Context(), "acme", "widgets", "abc", nil); err != nil {
			t.Fatal(err)
		}
		if n := calls.Load(); n != 3 {
			t.Fatalf("the second call must be cached, got %d calls", n)
		}
	})

	t.Run("don't retry on not found", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
		}))
		svc := &github.RepositoriesServiceImpl{
			RepositoriesService: client.Repositories,
			Retry:               testRetry(),
		}
		_, resp, err := svc.GetCommit(t.Context(), "acme", "widgets", "abc", nil)
		if err == nil {
			t.Fatal("an error must be returned")
		}
		if resp == nil || resp.StatusCode != http.StatusNotFound {
			t.Fatalf("wanted 404, got %v", resp)
		}
		if n := calls.Load(); n != 1 {
			t.Fatalf("wanted 1 call, got %d", n)
		}
	})
}

func TestPullRequestsServiceImpl(t *testing.T) {
	t.Parallel()
	var listCalls, commentCalls atomic.Int32
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/repos/acme/widgets/pulls":
			if listCalls.Add(1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			if r.URL.Query().Get("state") != "open" {
				t.Errorf("wanted state=open, got %q", r.URL.Query().Get("state"))
			}
			fmt.Fprint(w, `[{"number":1,"state":"open","head":{"sha":"abc"}}]`)
		case r.Method == http.MethodPost && r.URL.Path == "/repos/acme/widgets/pulls/1/comments":
			commentCalls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			http.NotFound(w, r)
		}
	}))
	svc := &github.PullRequestsServiceImpl{
		PullRequestsService: client.PullRequests,
		Retry:               testRetry(),
		Timeout:             10 * time.Second,
		LogE:                logrus.NewEntry(logrus.New()),
	}
	prs, _, err := svc.List(t.Context(), "acme", "widgets", &github.PullRequestListOptions{State: "open"})
	if err != nil {
		t.Fatal(err)
	}
	if len(prs) != 1 || prs[0].GetNumber() != 1 {
		t.Fatalf("unexpected pull requests: %v", prs)
	}
	if n := listCalls.Load(); n != 2 {
		t.Fatalf("wanted 2 list calls, got %d", n)
	}

	if _, _, err := svc.CreateComment(t.Context(), "acme", "widgets", 1, &github.PullRequestComment{Body: github.Ptr("x")}); err == nil {
		t.Fatal("an error must be returned")
	}
	if n := commentCalls.Load(); n != 1 {
		t.Fatalf("creating a comment must not be retried, got %d calls", n)
	}
}
