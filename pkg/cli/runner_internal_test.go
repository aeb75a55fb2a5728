package cli

import (
	"testing"

	"github.com/suzuki-shunsuke/urfave-cli-v3-util/urfave"
)

func Test_version(t *testing.T) {
	t.Parallel()
	data := []struct {
		name    string
		ldFlags *urfave.LDFlags
		exp     string
	}{
		{name: "dev build", ldFlags: &urfave.LDFlags{}, exp: "dev"},
		{name: "version only", ldFlags: &urfave.LDFlags{Version: "v1.0.0"}, exp: "v1.0.0"},
		{name: "version and commit", ldFlags: &urfave.LDFlags{Version: "v1.0.0", Commit: "0123abc", Date: "2025-10-01"}, exp: "v1.0.0 (0123abc)"},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			if got := version(d.ldFlags); got != d.exp {
				t.Fatalf("wanted %q, got %q", d.exp, got)
			}
		})
	}
}
