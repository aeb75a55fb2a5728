package di

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/leakreview/pkg/config"
)

func Test_buildSettings(t *testing.T) {
	t.Parallel()
	data := []struct {
		name   string
		flags  *Flags
		cfg    *config.Config
		exp    *settings
		expErr bool
	}{
		{
			name:  "defaults",
			flags: &Flags{},
			cfg:   &config.Config{},
			exp: &settings{
				timeout:             5 * time.Minute,
				apiTimeout:          30 * time.Second,
				commentInterval:     time.Second,
				retryMaxElapsedTime: time.Minute,
			},
		},
		{
			name:  "configuration file",
			flags: &Flags{},
			cfg: &config.Config{
				Timeout:             "10m",
				APITimeout:          "5s",
				CommentInterval:     "0s",
				RetryMaxElapsedTime: "2m",
			},
			exp: &settings{
				timeout:             10 * time.Minute,
				apiTimeout:          5 * time.Second,
				commentInterval:     0,
				retryMaxElapsedTime: 2 * time.Minute,
			},
		},
		{
			name: "flags take precedence",
			flags: &Flags{
				Timeout:    time.Minute,
				APITimeout: 10 * time.Second,
			},
			cfg: &config.Config{
				Timeout:    "10m",
				APITimeout: "5s",
			},
			exp: &settings{
				timeout:             time.Minute,
				apiTimeout:          10 * time.Second,
				commentInterval:     time.Second,
				retryMaxElapsedTime: time.Minute,
			},
		},
		{
			name:   "invalid duration",
			flags:  &Flags{},
			cfg:    &config.Config{Timeout: "soon"},
			expErr: true,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			got, err := buildSettings(d.flags, d.cfg)
			if err != nil {
				if d.expErr {
					return
				}
				t.Fatal(err)
			}
			if d.expErr {
				t.Fatal("error must be returned")
			}
			if diff := cmp.Diff(d.exp, got, cmp.AllowUnexported(settings{})); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func Test_buildParam(t *testing.T) {
	t.Parallel()
	st := &settings{
		timeout:         time.Minute,
		commentInterval: time.Second,
	}
	t.Run("flags and configuration are merged", func(t *testing.T) {
		t.Parallel()
		param, err := buildParam(&Flags{
			SecretsFile:     "secrets.json",
			SARIF:           "leakreview.sarif",
			Strict:          true,
			GitHubServerURL: "https://ghes.example.com",
		}, &config.Config{AllFindings: true}, st)
		if err != nil {
			t.Fatal(err)
		}
		if param.SecretsFilePath != "secrets.json" {
			t.Errorf("SecretsFilePath: got %q", param.SecretsFilePath)
		}
		if param.SARIFPath != "leakreview.sarif" {
			t.Errorf("SARIFPath: got %q", param.SARIFPath)
		}
		if !param.AllFindings {
			t.Error("AllFindings must be true")
		}
		if !param.Strict {
			t.Error("Strict must be true")
		}
		if param.Timeout != time.Minute || param.CommentInterval != time.Second {
			t.Errorf("durations aren't set: %v %v", param.Timeout, param.CommentInterval)
		}
		if param.CommentTemplate != nil {
			t.Error("CommentTemplate must be nil by default")
		}
		if c := param.Locator.Locate("https://ghes.example.com/foo/bar"); c == nil || c.String() != "foo/bar" {
			t.Errorf("the locator must accept the server host: %v", c)
		}
		if c := param.Locator.Locate("https://github.com/foo/bar"); c != nil {
			t.Errorf("the locator must reject other hosts: %v", c)
		}
	})
	t.Run("comment template", func(t *testing.T) {
		t.Parallel()
		param, err := buildParam(&Flags{}, &config.Config{CommentTemplate: "leak at {{.File}}"}, st)
		if err != nil {
			t.Fatal(err)
		}
		if param.CommentTemplate == nil {
			t.Fatal("CommentTemplate must be set")
		}
	})
	t.Run("invalid comment template", func(t *testing.T) {
		t.Parallel()
		if _, err := buildParam(&Flags{}, &config.Config{CommentTemplate: "{{.File"}, st); err == nil {
			t.Fatal("error must be returned")
		}
	})
}

func Test_readConfig(t *testing.T) {
	t.Parallel()
	data := []struct {
		name   string
		files  map[string]string
		path   string
		exp    *config.Config
		expErr bool
	}{
		{
			name: "no configuration file",
			exp:  &config.Config{},
		},
		{
			name: "found",
			files: map[string]string{
				".github/leakreview.yaml": "all_findings: true\napi_timeout: 10s\n",
			},
			exp: &config.Config{AllFindings: true, APITimeout: "10s"},
		},
		{
			name: "explicit path",
			files: map[string]string{
				"foo.yaml": "strict: true\n",
			},
			path: "foo.yaml",
			exp:  &config.Config{Strict: true},
		},
		{
			name:   "explicit path not found",
			path:   "foo.yaml",
			expErr: true,
		},
		{
			name: "invalid",
			files: map[string]string{
				".leakreview.yaml": "timeout: soon\n",
			},
			expErr: true,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()
			for name, body := range d.files {
				if err := afero.WriteFile(fs, name, []byte(body), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			cfg, err := readConfig(fs, d.path)
			if err != nil {
				if d.expErr {
					return
				}
				t.Fatal(err)
			}
			if d.expErr {
				t.Fatal("error must be returned")
			}
			if diff := cmp.Diff(d.exp, cfg); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}
