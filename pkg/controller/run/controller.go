// Package run implements the pipeline that turns secret scanner findings into
// pull request review comments.
// The controller reads the scanner output, locates the repository of each finding,
// lists the open pull requests of the repository, and posts an inline review comment
// at the secret on each of them. Whether a secret was found is reported to the caller
// regardless of whether comments could be posted.
package run

import (
	"io"
	"text/template"
	"time"

	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/leakreview/pkg/repo"
	"golang.org/x/time/rate"
)

type Controller struct {
	repositoriesService RepositoriesService
	pullRequestsService PullRequestsService
	fs                  afero.Fs
	param               *ParamRun
	logger              *Logger
	limiter             *rate.Limiter
	commentTemplate     *template.Template
}

type ParamRun struct {
	SecretsFilePath string
	// AllFindings processes every finding instead of only the first one.
	AllFindings bool
	// Strict reports secrets even if the repository of a finding can't be located.
	Strict bool
	// Locator defaults to github.com.
	Locator Locator
	// CommentTemplate defaults to DefaultCommentTemplate.
	CommentTemplate *template.Template
	// CommentInterval paces comment creation. Zero disables pacing.
	CommentInterval time.Duration
	// Timeout bounds the whole run. Zero means no deadline.
	Timeout time.Duration
	// SARIFPath is the output path of a SARIF report of the findings. Empty disables the report.
	SARIFPath string
	Stderr    io.Writer
}

type Locator interface {
	Locate(url string) *repo.Coordinates
}

func New(repositoriesService RepositoriesService, pullRequestsService PullRequestsService, fs afero.Fs, param *ParamRun) *Controller {
	if param.Locator == nil {
		param.Locator = repo.NewLocator("")
	}
	if param.Stderr == nil {
		param.Stderr = io.Discard
	}
	ctrl := &Controller{
		repositoriesService: repositoriesService,
		pullRequestsService: pullRequestsService,
		param:               param,
		fs:                  fs,
		logger:              NewLogger(param.Stderr),
		commentTemplate:     param.CommentTemplate,
	}
	if ctrl.commentTemplate == nil {
		ctrl.commentTemplate = defaultCommentTemplate
	}
	if param.CommentInterval > 0 {
		ctrl.limiter = rate.NewLimiter(rate.Every(param.CommentInterval), 1)
	}
	return ctrl
}
