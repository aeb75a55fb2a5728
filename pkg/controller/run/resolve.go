package run

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/leakreview/pkg/github"
	"github.com/suzuki-shunsuke/leakreview/pkg/repo"
)

const stateOpen = "open"

// listOpenPullRequests returns open pull requests of the repository in listing order.
// The state is filtered again on the client side because it isn't re-checked before commenting.
func (c *Controller) listOpenPullRequests(ctx context.Context, logE *logrus.Entry, coords *repo.Coordinates) ([]*github.PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State: stateOpen,
		ListOptions: github.ListOptions{
			PerPage: 100, //nolint:mnd
		},
	}
	var prs []*github.PullRequest
	for {
		page, resp, err := c.pullRequestsService.List(ctx, coords.Owner, coords.Name, opts)
		if err != nil {
			return nil, newRemoteError(opListPullRequests, resp, err)
		}
		for _, pr := range page {
			if pr.GetState() != stateOpen {
				logE.WithFields(logrus.Fields{
					"pr":    pr.GetNumber(),
					"state": pr.GetState(),
				}).Debug("ignore a pull request which isn't open")
				continue
			}
			prs = append(prs, pr)
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	logE.WithField("num_of_prs", len(prs)).Debug("listed open pull requests")
	return prs, nil
}
