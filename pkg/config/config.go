package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/leakreview/pkg/finding"
	"gopkg.in/yaml.v3"
)

type Config struct {
	CommentTemplate string `json:"comment_template,omitempty" yaml:"comment_template" validate:"omitempty,gotemplate" jsonschema:"description=Go template of review comments. .File .Line .Commit .Detector and .Verified are available"`
	AllFindings     bool   `json:"all_findings,omitempty" yaml:"all_findings" jsonschema:"description=Annotate pull requests for every finding. By default only the first finding is processed"`
	// Strict reports secrets even if the repository of the finding can't be located.
	Strict              bool   `json:"strict,omitempty" yaml:"strict" jsonschema:"description=Fail even if the repository of the finding can't be located"`
	Timeout             string `json:"timeout,omitempty" yaml:"timeout" validate:"omitempty,duration" jsonschema:"description=Deadline of the whole run. e.g. 5m"`
	APITimeout          string `json:"api_timeout,omitempty" yaml:"api_timeout" validate:"omitempty,duration" jsonschema:"description=Timeout of each GitHub API call. e.g. 30s"`
	CommentInterval     string `json:"comment_interval,omitempty" yaml:"comment_interval" validate:"omitempty,duration" jsonschema:"description=Minimum interval between review comments. e.g. 1s"`
	RetryMaxElapsedTime string `json:"retry_max_elapsed_time,omitempty" yaml:"retry_max_elapsed_time" validate:"omitempty,duration" jsonschema:"description=Give up retrying GitHub API calls after this duration. e.g. 1m"`
}

// sampleFinding is rendered to check that a comment template only refers to existing fields.
var sampleFinding = &finding.Finding{ //nolint:gochecknoglobals
	RepositoryURL: "https://github.com/octocat/hello-world",
	File:          "config/prod.env",
	Line:          1,
	Commit:        "0123456789abcdef0123456789abcdef01234567",
	Detector:      "AWS",
	Verified:      true,
}

func validateDuration(fl validator.FieldLevel) bool {
	d, err := time.ParseDuration(fl.Field().String())
	return err == nil && d >= 0
}

func validateCommentTemplate(fl validator.FieldLevel) bool {
	tpl, err := template.New("comment").Option("missingkey=error").Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return tpl.Execute(io.Discard, sampleFinding) == nil
}

func newValidator() (*validator.Validate, error) {
	validate := validator.New()
	if err := validate.RegisterValidation("duration", validateDuration); err != nil {
		return nil, fmt.Errorf("register the duration validation: %w", err)
	}
	if err := validate.RegisterValidation("gotemplate", validateCommentTemplate); err != nil {
		return nil, fmt.Errorf("register the gotemplate validation: %w", err)
	}
	return validate, nil
}

// Validate checks durations and the comment template.
// The comment template must parse and render a finding.
func (c *Config) Validate() error {
	validate, err := newValidator()
	if err != nil {
		return err
	}
	err = validate.Struct(c)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("validate the configuration: %w", err)
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = fmt.Sprintf("%s is invalid (%s): %v", e.Field(), e.Tag(), e.Value())
	}
	return errors.New(strings.Join(msgs, ", "))
}

// Duration parses a duration validated by Validate. An empty string returns def.
func Duration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse a duration: %w", err)
	}
	return d, nil
}

func getConfigPath(fs afero.Fs) (string, error) {
	for _, path := range []string{".leakreview.yaml", ".github/leakreview.yaml", ".leakreview.yml", ".github/leakreview.yml"} {
		f, err := afero.Exists(fs, path)
		if err != nil {
			return "", fmt.Errorf("check if %s exists: %w", path, err)
		}
		if f {
			return path, nil
		}
	}
	return "", nil
}

type Finder struct {
	fs afero.Fs
}

func NewFinder(fs afero.Fs) *Finder {
	return &Finder{fs: fs}
}

func (f *Finder) Find(configFilePath string) (string, error) {
	if configFilePath != "" {
		return configFilePath, nil
	}
	p, err := getConfigPath(f.fs)
	if err != nil {
		return "", err
	}
	return p, nil
}

type Reader struct {
	fs afero.Fs
}

func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

func (r *Reader) Read(cfg *Config, configFilePath string) error {
	if configFilePath == "" {
		return nil
	}
	f, err := r.fs.Open(configFilePath)
	if err != nil {
		return fmt.Errorf("open a configuration file: %w", err)
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode a configuration file as YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate a configuration file: %w", err)
	}
	return nil
}
