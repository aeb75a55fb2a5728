// Package run implements the 'leakreview run' command.
package run

import (
	"context"
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/leakreview/pkg/cli/flag"
	"github.com/suzuki-shunsuke/leakreview/pkg/di"
	"github.com/urfave/cli/v3"
)

type runner struct{}

func New(logE *logrus.Entry, globalFlags *flag.GlobalFlags) *cli.Command {
	r := &runner{}
	return r.Command(logE, globalFlags)
}

func (r *runner) Command(logE *logrus.Entry, globalFlags *flag.GlobalFlags) *cli.Command {
	flags := &di.Flags{
		GlobalFlags: globalFlags,
	}
	return &cli.Command{
		Name:      "run",
		Usage:     "Post review comments at a detected secret",
		ArgsUsage: "[<secrets file>]",
		Description: `Read the JSON output of a secret scanner and post a review comment at the secret
on each open pull request of the repository where the secret was found.

$ leakreview run secrets.json

The exit code is 1 if a secret is detected, even if no comment could be posted.
If the secrets file doesn't exist or contains no finding, the exit code is 0.

By default only the first finding is processed. Use --all-findings to process every finding.
`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			flags.Args = cmd.Args().Slice()
			return r.action(ctx, logE, flags)
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "secrets-file",
				Usage:       "The JSON output of a secret scanner",
				Sources:     cli.EnvVars("LEAKREVIEW_SECRETS_FILE"),
				Destination: &flags.SecretsFile,
			},
			&cli.StringFlag{
				Name:        "sarif",
				Usage:       "Write a SARIF report of the findings to this path",
				Sources:     cli.EnvVars("LEAKREVIEW_SARIF"),
				Destination: &flags.SARIF,
			},
			&cli.BoolFlag{
				Name:        "all-findings",
				Usage:       "Process every finding instead of only the first one",
				Sources:     cli.EnvVars("LEAKREVIEW_ALL_FINDINGS"),
				Destination: &flags.AllFindings,
			},
			&cli.BoolFlag{
				Name:        "strict",
				Usage:       "Exit with 1 even if the repository of a finding can't be located",
				Sources:     cli.EnvVars("LEAKREVIEW_STRICT"),
				Destination: &flags.Strict,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Usage:       "Deadline of the whole run. The default is 5m",
				Destination: &flags.Timeout,
			},
			&cli.DurationFlag{
				Name:        "api-timeout",
				Usage:       "Timeout of each GitHub API call. The default is 30s",
				Destination: &flags.APITimeout,
			},
		},
	}
}

func (r *runner) action(ctx context.Context, logE *logrus.Entry, flags *di.Flags) error {
	if err := setSecretsFile(flags); err != nil {
		return err
	}
	di.SetEnv(flags, os.Getenv)
	secrets := &di.Secrets{}
	secrets.SetFromEnv(os.Getenv)
	return di.Run(ctx, logE, flags, secrets) //nolint:wrapcheck
}

func setSecretsFile(flags *di.Flags) error {
	switch len(flags.Args) {
	case 0:
	case 1:
		if flags.SecretsFile != "" && flags.SecretsFile != flags.Args[0] {
			return errors.New("the secrets file is given by both --secrets-file and an argument")
		}
		flags.SecretsFile = flags.Args[0]
	default:
		return errors.New("too many arguments")
	}
	if flags.SecretsFile == "" {
		return errors.New("the secrets file is required")
	}
	return nil
}
