package run

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/suzuki-shunsuke/leakreview/pkg/github"
)

// ErrSecretsDetected is returned by the CLI so that the process exits with a non-zero code.
var ErrSecretsDetected = errors.New("secrets are detected")

const (
	opListPullRequests = "list pull requests"
	opGetCommit        = "get a commit"
	opCreateComment    = "create a review comment"
)

// RemoteError is a failure of a GitHub API call.
type RemoteError struct {
	Op         string
	StatusCode int
	Err        error
}

func newRemoteError(op string, resp *github.Response, err error) *RemoteError {
	e := &RemoteError{
		Op:  op,
		Err: err,
	}
	if resp != nil {
		e.StatusCode = resp.StatusCode
	}
	return e
}

func (e *RemoteError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s (status %d): %v", e.Op, e.StatusCode, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// AnchorError means GitHub rejected a review comment because the line isn't
// in the diff of the pull request.
type AnchorError struct {
	Err error
}

func (e *AnchorError) Error() string {
	return fmt.Sprintf("the line isn't in the diff of the pull request: %v", e.Err)
}

func (e *AnchorError) Unwrap() error {
	return e.Err
}

// isAnchorMismatch reports whether err is the 422 error returned when a review comment
// can't be attached to the given path and line.
// GitHub names the review thread field in the message or in an error entry.
func isAnchorMismatch(err error) bool {
	var errResp *github.ErrorResponse
	if !errors.As(err, &errResp) {
		return false
	}
	if errResp.Response == nil || errResp.Response.StatusCode != http.StatusUnprocessableEntity {
		return false
	}
	if isAnchorField(errResp.Message) {
		return true
	}
	for _, e := range errResp.Errors {
		if isAnchorField(e.Field) || isAnchorField(e.Message) {
			return true
		}
	}
	return false
}

func isAnchorField(s string) bool {
	s = strings.ToLower(s)
	for _, field := range []string{
		"pull_request_review_thread.diff_hunk",
		"pull_request_review_thread.path",
		"pull_request_review_thread.line",
	} {
		if strings.Contains(s, field) {
			return true
		}
	}
	return false
}
