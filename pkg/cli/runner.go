// Package cli defines the leakreview command line interface.
package cli

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/leakreview/pkg/cli/flag"
	"github.com/suzuki-shunsuke/leakreview/pkg/cli/initcmd"
	"github.com/suzuki-shunsuke/leakreview/pkg/cli/run"
	"github.com/suzuki-shunsuke/leakreview/pkg/cli/token"
	"github.com/suzuki-shunsuke/urfave-cli-v3-util/urfave"
	"github.com/urfave/cli/v3"
)

func version(ldFlags *urfave.LDFlags) string {
	if ldFlags.Version == "" {
		return "dev"
	}
	if ldFlags.Commit == "" {
		return ldFlags.Version
	}
	return ldFlags.Version + " (" + ldFlags.Commit + ")"
}

// Run builds the root command and runs it with args. args[0] is the program name.
func Run(ctx context.Context, logE *logrus.Entry, ldFlags *urfave.LDFlags, args ...string) error {
	globalFlags := &flag.GlobalFlags{}
	cmd := &cli.Command{
		Name:                  "leakreview",
		Usage:                 "Post review comments on pull requests at secrets found by a secret scanner",
		Version:               version(ldFlags),
		Flags:                 globalFlags.Flags(),
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			initcmd.New(logE, globalFlags),
			run.New(logE, globalFlags),
			token.New(logE),
			newVersionCommand(),
		},
	}
	return cmd.Run(ctx, args) //nolint:wrapcheck
}
