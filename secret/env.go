package secret

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Env resolves secrets from the process environment.
type Env struct {
	// Prefix is prepended to every key before lookup.
	Prefix string
}

func (e Env) Get(_ context.Context, key string) (string, error) {
	name := e.Prefix + key
	v, ok := os.LookupEnv(name)
	if !ok {
		return "", errors.Wrapf(ErrNotFound, "env %s", name)
	}
	return v, nil
}

// LoadEnvFile reads KEY=VALUE lines from path into the process
// environment. Blank lines and #-comments are skipped, a leading "export "
// is tolerated, and matching surrounding quotes are stripped from values.
// Variables already present in the environment are left alone.
func LoadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening env file")
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, found := strings.Cut(line, "=")
		if !found {
			return errors.Errorf("line %d: missing '=' separator", n)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return errors.Errorf("line %d: empty key", n)
		}
		value = unquote(strings.TrimSpace(value))

		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return errors.Wrapf(err, "setting %s", key)
		}
	}
	return errors.Wrap(scanner.Err(), "reading env file")
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
