package run

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/leakreview/pkg/finding"
	"github.com/suzuki-shunsuke/leakreview/pkg/github"
	"github.com/suzuki-shunsuke/leakreview/pkg/repo"
)

const sideRight = "RIGHT"

// publish posts a review comment at the finding on the head commit of the pull request.
// An *AnchorError is returned if the line isn't in the diff of the pull request.
func (c *Controller) publish(ctx context.Context, logE *logrus.Entry, f *finding.Finding, coords *repo.Coordinates, pr *github.PullRequest) error {
	// The comment API requires the resolved commit, not a ref.
	commit, resp, err := c.repositoriesService.GetCommit(ctx, coords.Owner, coords.Name, pr.GetHead().GetSHA(), nil)
	if err != nil {
		return newRemoteError(opGetCommit, resp, err)
	}
	body, err := c.renderComment(f)
	if err != nil {
		return err
	}
	cmt := &github.PullRequestComment{
		Body:     github.Ptr(body),
		CommitID: github.Ptr(commit.GetSHA()),
		Path:     github.Ptr(f.File),
		Line:     github.Ptr(f.Line),
		Side:     github.Ptr(sideRight),
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait for the comment interval: %w", err)
		}
	}
	created, resp, err := c.pullRequestsService.CreateComment(ctx, coords.Owner, coords.Name, pr.GetNumber(), cmt)
	if err != nil {
		if isAnchorMismatch(err) {
			return &AnchorError{Err: err}
		}
		return newRemoteError(opCreateComment, resp, err)
	}
	logE.WithFields(logrus.Fields{
		"commit_id":   commit.GetSHA(),
		"comment_url": created.GetHTMLURL(),
	}).Info("created a review comment")
	return nil
}
