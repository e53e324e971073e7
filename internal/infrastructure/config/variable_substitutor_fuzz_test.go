package config

import (
	"strings"
	"testing"
	"time"

	"github.com/reglet-dev/connmask/internal/domain/values"
)

// FuzzVariableSubstitution fuzzes placeholder expansion for regex blowups
// and checks the input properties are never modified.
func FuzzVariableSubstitution(f *testing.F) {
	seeds := []string{
		`{{ secret "db" }}`,
		`jdbc:mysql://u:{{secret "db"}}@h`,
		"${HOME}",
		"${",
		"}}",
		`{{ secret "" }}`,
		`{{ secret "db }}`,
		"${A}${B}",
		"{{" + strings.Repeat("(a+)+", 100) + "}}",
		"${" + strings.Repeat("A", 10000) + "}",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	s := newTestSubstitutor(mapResolver{"db": "secret"}, map[string]string{"HOME": "/home/u", "A": "a"})
	f.Fuzz(func(t *testing.T, value string) {
		props := values.FromPairs("k", value)

		start := time.Now()
		_, _ = s.Substitute(props)
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Fatalf("substitution took %s", elapsed)
		}

		if got, _ := props.Get("k"); got != value {
			t.Fatalf("input modified: %q -> %q", value, got)
		}
	})
}
