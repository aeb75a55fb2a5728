package di

import (
	"net/url"
	"time"

	"github.com/suzuki-shunsuke/leakreview/pkg/cli/flag"
)

// Flags holds all command-line flags for the run command.
type Flags struct {
	*flag.GlobalFlags

	SecretsFile string
	SARIF       string
	AllFindings bool
	Strict      bool

	Timeout    time.Duration
	APITimeout time.Duration

	IsGitHubActions bool
	KeyringEnabled  bool

	GitHubAPIURL    string
	GitHubServerURL string

	Args []string
}

const defaultGitHubAPIURL = "https://api.github.com"

// GetAPIURL returns the GitHub Enterprise Server API URL, or an empty string for github.com.
func (f *Flags) GetAPIURL() string {
	if f.GitHubAPIURL == "" || f.GitHubAPIURL == defaultGitHubAPIURL {
		return ""
	}
	return f.GitHubAPIURL
}

// ServerHost returns the host of repository URLs. An empty string means github.com.
func (f *Flags) ServerHost() string {
	if f.GitHubServerURL == "" {
		return ""
	}
	u, err := url.Parse(f.GitHubServerURL)
	if err != nil {
		return ""
	}
	return u.Host
}
