// Package di wires the dependencies of the leakreview run command.
// It reads the configuration, builds the GitHub client and its retrying services,
// and hands them to the run controller.
package di

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/leakreview/pkg/config"
	"github.com/suzuki-shunsuke/leakreview/pkg/controller/run"
	"github.com/suzuki-shunsuke/leakreview/pkg/github"
	"github.com/suzuki-shunsuke/leakreview/pkg/log"
	"github.com/suzuki-shunsuke/leakreview/pkg/repo"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

const (
	defaultTimeout             = 5 * time.Minute
	defaultAPITimeout          = 30 * time.Second
	defaultCommentInterval     = time.Second
	defaultRetryMaxElapsedTime = time.Minute
)

type settings struct {
	timeout             time.Duration
	apiTimeout          time.Duration
	commentInterval     time.Duration
	retryMaxElapsedTime time.Duration
}

// Run executes the run command.
// It returns run.ErrSecretsDetected if a secret was attributed to a repository.
func Run(ctx context.Context, logE *logrus.Entry, flags *Flags, secrets *Secrets) error {
	if flags.IsGitHubActions {
		color.NoColor = false
		log.SetColor(true, logE)
	}
	log.SetLevel(flags.LogLevel, logE)

	fs := afero.NewOsFs()
	cfg, err := readConfig(fs, flags.Config)
	if err != nil {
		return err
	}

	st, err := buildSettings(flags, cfg)
	if err != nil {
		return err
	}
	param, err := buildParam(flags, cfg, st)
	if err != nil {
		return err
	}

	gh, err := github.New(ctx, logE, &github.ParamNew{
		Token:          secrets.GitHubToken,
		KeyringEnabled: flags.KeyringEnabled,
		APIURL:         flags.GetAPIURL(),
	})
	if err != nil {
		return fmt.Errorf("create a GitHub client: %w", err)
	}
	retry := &github.RetryPolicy{
		InitialInterval: 500 * time.Millisecond, //nolint:mnd
		MaxElapsedTime:  st.retryMaxElapsedTime,
	}
	repoSvc := &github.RepositoriesServiceImpl{
		RepositoriesService: gh.Repositories,
		Commits:             map[string]*github.GetCommitResult{},
		Retry:               retry,
		Timeout:             st.apiTimeout,
		LogE:                logE,
	}
	prSvc := &github.PullRequestsServiceImpl{
		PullRequestsService: gh.PullRequests,
		Retry:               retry,
		Timeout:             st.apiTimeout,
		LogE:                logE,
	}

	ctrl := run.New(repoSvc, prSvc, fs, param)
	result, err := ctrl.Run(ctx, logE)
	if result != nil {
		logE.WithFields(logrus.Fields{
			"secrets_detected": result.SecretsDetected,
			"findings":         result.Findings,
			"commented":        result.Commented,
			"skipped":          result.Skipped,
			"failed":           result.Failed,
		}).Info("finished")
	}
	if err != nil {
		if result != nil && result.SecretsDetected {
			logerr.WithError(logE, err).Error("a secret was detected but pull requests couldn't be annotated")
		}
		return err //nolint:wrapcheck
	}
	if result.SecretsDetected {
		return run.ErrSecretsDetected
	}
	return nil
}

func readConfig(fs afero.Fs, configFilePath string) (*config.Config, error) {
	cfgFinder := config.NewFinder(fs)
	cfgReader := config.NewReader(fs)
	configPath, err := cfgFinder.Find(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("find configuration file: %w", err)
	}
	cfg := &config.Config{}
	if err := cfgReader.Read(cfg, configPath); err != nil {
		return nil, fmt.Errorf("read configuration file: %w", logerr.WithFields(err, logrus.Fields{
			"config": configPath,
		}))
	}
	return cfg, nil
}

// buildSettings resolves durations. Flags take precedence over the configuration file.
func buildSettings(flags *Flags, cfg *config.Config) (*settings, error) {
	timeout, err := config.Duration(cfg.Timeout, defaultTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse timeout: %w", err)
	}
	apiTimeout, err := config.Duration(cfg.APITimeout, defaultAPITimeout)
	if err != nil {
		return nil, fmt.Errorf("parse api_timeout: %w", err)
	}
	interval, err := config.Duration(cfg.CommentInterval, defaultCommentInterval)
	if err != nil {
		return nil, fmt.Errorf("parse comment_interval: %w", err)
	}
	retryMax, err := config.Duration(cfg.RetryMaxElapsedTime, defaultRetryMaxElapsedTime)
	if err != nil {
		return nil, fmt.Errorf("parse retry_max_elapsed_time: %w", err)
	}
	if flags.Timeout > 0 {
		timeout = flags.Timeout
	}
	if flags.APITimeout > 0 {
		apiTimeout = flags.APITimeout
	}
	return &settings{
		timeout:             timeout,
		apiTimeout:          apiTimeout,
		commentInterval:     interval,
		retryMaxElapsedTime: retryMax,
	}, nil
}

func buildParam(flags *Flags, cfg *config.Config, st *settings) (*run.ParamRun, error) {
	param := &run.ParamRun{
		SecretsFilePath: flags.SecretsFile,
		SARIFPath:       flags.SARIF,
		AllFindings:     flags.AllFindings || cfg.AllFindings,
		Strict:          flags.Strict || cfg.Strict,
		Locator:         repo.NewLocator(flags.ServerHost()),
		CommentInterval: st.commentInterval,
		Timeout:         st.timeout,
		Stderr:          os.Stderr,
	}
	if cfg.CommentTemplate != "" {
		tpl, err := run.ParseCommentTemplate(cfg.CommentTemplate)
		if err != nil {
			return nil, fmt.Errorf("parse comment_template: %w", err)
		}
		param.CommentTemplate = tpl
	}
	return param, nil
}
