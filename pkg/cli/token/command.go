// Package token implements the 'leakreview token' command.
// It stores a GitHub access token in the OS keyring so that it doesn't have to be
// passed by environment variables. Set LEAKREVIEW_KEYRING_ENABLED=true to use it.
package token

import (
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/leakreview/pkg/github"
	"github.com/suzuki-shunsuke/urfave-cli-v3-util/keyring/ghtoken"
	"github.com/urfave/cli/v3"
)

// New returns the token command with the set and rm subcommands.
func New(logE *logrus.Entry) *cli.Command {
	return ghtoken.Command(ghtoken.NewActor(logE, github.KeyService))
}
