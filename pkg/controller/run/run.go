package run

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/leakreview/pkg/finding"
	"github.com/suzuki-shunsuke/leakreview/pkg/github"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// Result is the outcome of a run.
type Result struct {
	// SecretsDetected is true if a finding was attributed to a repository,
	// whether or not any comment was posted.
	SecretsDetected bool
	Findings        int
	Commented       int
	// Skipped counts pull requests whose diff doesn't contain the line of the finding.
	Skipped int
	Failed  int
}

// Run parses the scanner output and annotates open pull requests.
// Parse errors and failures of listing pull requests or resolving head commits are returned.
// Failures of creating a comment are logged and don't stop the other pull requests.
func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) (*Result, error) {
	if c.param.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.param.Timeout)
		defer cancel()
	}
	findings, err := c.readFindings(logE)
	if err != nil {
		return nil, err
	}
	if c.param.SARIFPath != "" {
		if err := c.writeSARIF(findings); err != nil {
			return nil, err
		}
	}
	result := &Result{
		Findings: len(findings),
	}
	if len(findings) == 0 {
		logE.Info("no secret is found")
		return result, nil
	}
	prsByRepo := map[string][]*github.PullRequest{}
	for _, f := range findings {
		logE := logE.WithFields(logrus.Fields{
			"file": f.File,
			"line": f.Line,
		})
		c.logger.Output(f)
		if err := c.handleFinding(ctx, logE, f, prsByRepo, result); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (c *Controller) readFindings(logE *logrus.Entry) ([]*finding.Finding, error) {
	raw, err := finding.Read(c.fs, c.param.SecretsFilePath)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if c.param.AllFindings {
		findings, err := finding.ParseAll(raw)
		if err != nil {
			return nil, fmt.Errorf("parse the scanner output: %w", err)
		}
		return findings, nil
	}
	f, err := finding.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse the scanner output: %w", err)
	}
	if f == nil {
		logE.Debug("the scanner output is empty or has no finding with a file and a line")
		return nil, nil
	}
	return []*finding.Finding{f}, nil
}

func (c *Controller) handleFinding(ctx context.Context, logE *logrus.Entry, f *finding.Finding, prsByRepo map[string][]*github.PullRequest, result *Result) error {
	coords := c.param.Locator.Locate(f.RepositoryURL)
	if coords == nil {
		logE.WithField("repository", f.RepositoryURL).Info("the repository of the finding can't be located, so pull requests aren't annotated")
		if c.param.Strict {
			result.SecretsDetected = true
		}
		return nil
	}
	result.SecretsDetected = true
	logE = logE.WithField("repository", coords.String())

	prs, ok := prsByRepo[coords.String()]
	if !ok {
		arr, err := c.listOpenPullRequests(ctx, logE, coords)
		if err != nil {
			return err
		}
		prs = arr
		prsByRepo[coords.String()] = prs
	}

	for _, pr := range prs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("annotate pull requests: %w", err)
		}
		logE := logE.WithField("pr", pr.GetNumber())
		err := c.publish(ctx, logE, f, coords, pr)
		if err == nil {
			result.Commented++
			continue
		}
		var anchorErr *AnchorError
		if errors.As(err, &anchorErr) {
			result.Skipped++
			logE.Info("skip commenting because the line isn't in the diff of the pull request")
			continue
		}
		var remoteErr *RemoteError
		if errors.As(err, &remoteErr) && remoteErr.Op == opGetCommit {
			return fmt.Errorf("resolve the head commit of the pull request #%d: %w", pr.GetNumber(), err)
		}
		result.Failed++
		logerr.WithError(logE, err).Error("create a review comment")
	}
	return nil
}
