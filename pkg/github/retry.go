package github

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// RetryPolicy retries idempotent API calls on server errors and rate limiting
// with exponential backoff and jitter.
// A nil *RetryPolicy calls the API once.
type RetryPolicy struct {
	InitialInterval time.Duration
	MaxElapsedTime  time.Duration
}

// Do calls fn until it succeeds, returns a non retryable error, or the policy gives up.
func (p *RetryPolicy) Do(ctx context.Context, logE *logrus.Entry, fn func(ctx context.Context) (*Response, error)) (*Response, error) {
	if p == nil {
		return fn(ctx)
	}
	if logE == nil {
		logE = logrus.NewEntry(logrus.StandardLogger())
	}
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxElapsedTime > 0 {
		b.MaxElapsedTime = p.MaxElapsedTime
	}

	var resp *Response
	operation := func() error {
		r, err := fn(ctx)
		resp = r
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !isRetryable(r, err) {
			return backoff.Permanent(err)
		}
		return err
	}
	err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), func(err error, d time.Duration) {
		logerr.WithError(logE, err).WithField("retry_after", d.String()).Warn("the GitHub API failed, retrying")
	})
	return resp, err //nolint:wrapcheck
}

func isRetryable(resp *Response, err error) bool {
	var abuseErr *AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return true
	}
	if resp == nil {
		return false
	}
	return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
