package run

import (
	"testing"

	"github.com/suzuki-shunsuke/leakreview/pkg/di"
)

func Test_setSecretsFile(t *testing.T) {
	t.Parallel()
	data := []struct {
		name   string
		flags  *di.Flags
		exp    string
		expErr bool
	}{
		{
			name:  "flag",
			flags: &di.Flags{SecretsFile: "a.json"},
			exp:   "a.json",
		},
		{
			name:  "argument",
			flags: &di.Flags{Args: []string{"b.json"}},
			exp:   "b.json",
		},
		{
			name:  "same flag and argument",
			flags: &di.Flags{SecretsFile: "a.json", Args: []string{"a.json"}},
			exp:   "a.json",
		},
		{
			name:   "conflict",
			flags:  &di.Flags{SecretsFile: "a.json", Args: []string{"b.json"}},
			expErr: true,
		},
		{
			name:   "too many arguments",
			flags:  &di.Flags{Args: []string{"a.json", "b.json"}},
			expErr: true,
		},
		{
			name:   "missing",
			flags:  &di.Flags{},
			expErr: true,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			err := setSecretsFile(d.flags)
			if err != nil {
				if d.expErr {
					return
				}
				t.Fatal(err)
			}
			if d.expErr {
				t.Fatal("error must be returned")
			}
			if d.flags.SecretsFile != d.exp {
				t.Fatalf("wanted %q, got %q", d.exp, d.flags.SecretsFile)
			}
		})
	}
}
