// Package repo extracts the owner and name of a GitHub repository from its Git remote URL.
package repo

import (
	"regexp"
	"strings"
)

const defaultHost = "github.com"

// Coordinates identifies a repository on a GitHub host.
type Coordinates struct {
	Owner string
	Name  string
}

func (c *Coordinates) String() string {
	return c.Owner + "/" + c.Name
}

// Locator parses remote URLs of a single host.
// Both the SSH form git@<host>:<owner>/<name>(.git) and
// the HTTPS form https://<host>/<owner>/<name>(.git) are accepted.
type Locator struct {
	pattern *regexp.Regexp
}

// NewLocator returns a Locator for the given host such as github.com or a GitHub Enterprise Server host.
func NewLocator(host string) *Locator {
	if host == "" {
		host = defaultHost
	}
	h := regexp.QuoteMeta(host)
	return &Locator{
		pattern: regexp.MustCompile(`^(?i:git@` + h + `:|https://` + h + `/)([^/\s]+)/([^/\s]+?)/?$`),
	}
}

var defaultLocator = NewLocator(defaultHost) //nolint:gochecknoglobals

// Locate parses a github.com remote URL.
func Locate(url string) *Coordinates {
	return defaultLocator.Locate(url)
}

// Locate returns nil if the URL doesn't point to a repository of the host.
func (l *Locator) Locate(url string) *Coordinates {
	matches := l.pattern.FindStringSubmatch(strings.TrimSpace(url))
	if matches == nil {
		return nil
	}
	// The name is matched lazily, so .git is removed here rather than by the pattern.
	name := strings.TrimSuffix(matches[2], ".git")
	if name == "" {
		return nil
	}
	return &Coordinates{
		Owner: matches[1],
		Name:  name,
	}
}
