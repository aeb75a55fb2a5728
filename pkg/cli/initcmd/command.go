// Package initcmd implements the 'leakreview init' command.
package initcmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/leakreview/pkg/cli/flag"
	"github.com/suzuki-shunsuke/leakreview/pkg/controller/initcmd"
	"github.com/suzuki-shunsuke/leakreview/pkg/log"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry, globalFlags *flag.GlobalFlags) *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create .leakreview.yaml if it doesn't exist",
		ArgsUsage: "[<configuration file path>]",
		Description: `Create .leakreview.yaml if it doesn't exist

$ leakreview init

You can also pass configuration file path.

e.g.

$ leakreview init .github/leakreview.yaml
`,
		Action: func(_ context.Context, cmd *cli.Command) error {
			log.SetLevel(globalFlags.LogLevel, logE)
			configFilePath := cmd.Args().First()
			if configFilePath == "" {
				configFilePath = globalFlags.Config
			}
			if configFilePath == "" {
				configFilePath = ".leakreview.yaml"
			}
			return initcmd.New(afero.NewOsFs()).Init(logE, configFilePath) //nolint:wrapcheck
		},
	}
}
