package github

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// RepositoriesService defines the GitHub Repositories API operations leakreview calls.
type RepositoriesService interface {
	GetCommit(ctx context.Context, owner, repo, sha string, opts *ListOptions) (*RepositoryCommit, *Response, error)
}

// PullRequestsService defines the GitHub Pull Requests API operations leakreview calls.
type PullRequestsService interface {
	List(ctx context.Context, owner, repo string, opts *PullRequestListOptions) ([]*PullRequest, *Response, error)
	CreateComment(ctx context.Context, owner, repo string, number int, comment *PullRequestComment) (*PullRequestComment, *Response, error)
}

// GetCommitResult holds the cached result of a GetCommit call.
type GetCommitResult struct {
	Commit   *RepositoryCommit
	Response *Response
	err      error
}

// RepositoriesServiceImpl wraps a RepositoriesService with caching, a per call timeout, and retry.
type RepositoriesServiceImpl struct {
	RepositoriesService RepositoriesService
	Commits             map[string]*GetCommitResult
	Retry               *RetryPolicy
	Timeout             time.Duration
	LogE                *logrus.Entry
}

// GetCommit retrieves a commit. Pull requests sharing a head commit resolve it only once.
func (r *RepositoriesServiceImpl) GetCommit(ctx context.Context, owner, repo, sha string, opts *ListOptions) (*RepositoryCommit, *Response, error) {
	key := fmt.Sprintf("%s/%s/%s", owner, repo, sha)
	if a, ok := r.Commits[key]; ok {
		return a.Commit, a.Response, a.err
	}
	var commit *RepositoryCommit
	resp, err := r.Retry.Do(ctx, r.LogE, func(ctx context.Context) (*Response, error) {
		ctx, cancel := withTimeout(ctx, r.Timeout)
		defer cancel()
		c, resp, err := r.RepositoriesService.GetCommit(ctx, owner, repo, sha, opts)
		commit = c
		return resp, err //nolint:wrapcheck
	})
	if r.Commits != nil {
		r.Commits[key] = &GetCommitResult{
			Commit:   commit,
			Response: resp,
			err:      err,
		}
	}
	return commit, resp, err
}

// PullRequestsServiceImpl wraps a PullRequestsService with a per call timeout.
// Listing is retried. Creating a comment isn't, because a retry could post the comment twice.
type PullRequestsServiceImpl struct {
	PullRequestsService PullRequestsService
	Retry               *RetryPolicy
	Timeout             time.Duration
	LogE                *logrus.Entry
}

func (p *PullRequestsServiceImpl) List(ctx context.Context, owner, repo string, opts *PullRequestListOptions) ([]*PullRequest, *Response, error) {
	var prs []*PullRequest
	resp, err := p.Retry.Do(ctx, p.LogE, func(ctx context.Context) (*Response, error) {
		ctx, cancel := withTimeout(ctx, p.Timeout)
		defer cancel()
		arr, resp, err := p.PullRequestsService.List(ctx, owner, repo, opts)
		prs = arr
		return resp, err //nolint:wrapcheck
	})
	return prs, resp, err
}

func (p *PullRequestsServiceImpl) CreateComment(ctx context.Context, owner, repo string, number int, comment *PullRequestComment) (*PullRequestComment, *Response, error) {
	ctx, cancel := withTimeout(ctx, p.Timeout)
	defer cancel()
	return p.PullRequestsService.CreateComment(ctx, owner, repo, number, comment) //nolint:wrapcheck
}
