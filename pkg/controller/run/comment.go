package run

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/suzuki-shunsuke/leakreview/pkg/finding"
)

const DefaultCommentTemplate = "🚨 Secret Detected 🚨\nSecret detected at line {{.Line}} in file {{.File}}. Please review."

var defaultCommentTemplate = template.Must(template.New("comment").Parse(DefaultCommentTemplate)) //nolint:gochecknoglobals

// ParseCommentTemplate parses a comment template. An empty text returns the default template.
func ParseCommentTemplate(text string) (*template.Template, error) {
	if text == "" {
		return defaultCommentTemplate, nil
	}
	tpl, err := template.New("comment").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse the comment template: %w", err)
	}
	return tpl, nil
}

func (c *Controller) renderComment(f *finding.Finding) (string, error) {
	buf := &strings.Builder{}
	if err := c.commentTemplate.Execute(buf, f); err != nil {
		return "", fmt.Errorf("render the comment template: %w", err)
	}
	return buf.String(), nil
}
