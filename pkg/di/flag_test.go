package di_test

import (
	"testing"

	"github.com/suzuki-shunsuke/leakreview/pkg/di"
)

func TestFlags_GetAPIURL(t *testing.T) {
	t.Parallel()
	data := []struct {
		name         string
		githubAPIURL string
		exp          string
	}{
		{name: "empty", githubAPIURL: "", exp: ""},
		{name: "github api url is default", githubAPIURL: "https://api.github.com", exp: ""},
		{name: "github api url is custom", githubAPIURL: "https://ghes.example.com/api/v3", exp: "https://ghes.example.com/api/v3"},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			flags := &di.Flags{GitHubAPIURL: d.githubAPIURL}
			if got := flags.GetAPIURL(); got != d.exp {
				t.Errorf("wanted %q, got %q", d.exp, got)
			}
		})
	}
}

func TestFlags_ServerHost(t *testing.T) {
	t.Parallel()
	data := []struct {
		name      string
		serverURL string
		exp       string
	}{
		{name: "empty", serverURL: "", exp: ""},
		{name: "github.com", serverURL: "https://github.com", exp: "github.com"},
		{name: "ghes", serverURL: "https://ghes.example.com/", exp: "ghes.example.com"},
		{name: "invalid", serverURL: "://", exp: ""},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			flags := &di.Flags{GitHubServerURL: d.serverURL}
			if got := flags.ServerHost(); got != d.exp {
				t.Errorf("wanted %q, got %q", d.exp, got)
			}
		})
	}
}
