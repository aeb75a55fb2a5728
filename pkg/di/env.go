package di

// Secrets holds the token for GitHub API authentication.
// It is never logged.
type Secrets struct {
	GitHubToken string
}

// SetFromEnv sets secrets from environment variables.
func (s *Secrets) SetFromEnv(getEnv func(string) string) {
	s.GitHubToken = getEnv("LEAKREVIEW_GITHUB_TOKEN")
	if s.GitHubToken == "" {
		s.GitHubToken = getEnv("GITHUB_TOKEN")
	}
}

// SetEnv populates flags from environment variables.
func SetEnv(flags *Flags, getEnv func(string) string) {
	flags.GitHubAPIURL = getEnv("GITHUB_API_URL")
	flags.GitHubServerURL = getEnv("GITHUB_SERVER_URL")
	trueS := "true"
	flags.IsGitHubActions = getEnv("GITHUB_ACTIONS") == trueS
	flags.KeyringEnabled = getEnv("LEAKREVIEW_KEYRING_ENABLED") == trueS
}
