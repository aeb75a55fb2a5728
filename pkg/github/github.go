// Package github provides GitHub API client integration and authentication.
// It creates a go-github client authenticated by a token from the environment
// or the OS keyring, optionally pointing at a GitHub Enterprise Server,
// and provides type aliases for the GitHub API types used by leakreview.
package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v74/github"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/urfave-cli-v3-util/keyring/ghtoken"
	"golang.org/x/oauth2"
)

type (
	ListOptions            = github.ListOptions
	Response               = github.Response
	Client                 = github.Client
	PullRequest            = github.PullRequest
	PullRequestBranch      = github.PullRequestBranch
	PullRequestListOptions = github.PullRequestListOptions
	PullRequestComment     = github.PullRequestComment
	RepositoryCommit       = github.RepositoryCommit
	ErrorResponse          = github.ErrorResponse
	AbuseRateLimitError    = github.AbuseRateLimitError
	Error                  = github.Error
)

// KeyService is the OS keyring service under which `leakreview token set` stores the token.
const KeyService = "suzuki-shunsuke/leakreview"

// ParamNew is the input of New.
type ParamNew struct {
	// Token is never logged.
	Token          string
	KeyringEnabled bool
	// APIURL is the REST API URL of a GitHub Enterprise Server. Empty means github.com.
	APIURL string
}

// New creates a new GitHub API client with authentication.
func New(ctx context.Context, logE *logrus.Entry, param *ParamNew) (*Client, error) {
	client := github.NewClient(getHTTPClientForGitHub(ctx, logE, param.Token, param.KeyringEnabled))
	if param.APIURL == "" {
		return client, nil
	}
	c, err := client.WithEnterpriseURLs(param.APIURL, param.APIURL)
	if err != nil {
		return nil, fmt.Errorf("configure GitHub Enterprise Server URLs: %w", err)
	}
	return c, nil
}

// Ptr returns a pointer to the provided value.
func Ptr[T any](v T) *T {
	return github.Ptr(v)
}

func getHTTPClientForGitHub(ctx context.Context, logE *logrus.Entry, token string, keyringEnabled bool) *http.Client {
	if token == "" {
		if keyringEnabled {
			return oauth2.NewClient(ctx, ghtoken.NewTokenSource(logE, KeyService))
		}
		logE.Warn("GITHUB_TOKEN isn't set, so the GitHub API is called without authentication")
		return http.DefaultClient
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	))
}
