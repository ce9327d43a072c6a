package secret

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvGet(t *testing.T) {
	t.Setenv("HTTPKIT_TEST_TOKEN", "s3cr3t")

	e := Env{Prefix: "HTTPKIT_TEST_"}

	v, err := e.Get(context.Background(), "TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", v)

	_, err = e.Get(context.Background(), "MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadEnvFile(t *testing.T) {
	keys := []string{"HTTPKIT_ENVFILE_A", "HTTPKIT_ENVFILE_B", "HTTPKIT_ENVFILE_C", "HTTPKIT_ENVFILE_D"}
	t.Cleanup(func() {
		for _, k := range keys {
			os.Unsetenv(k)
		}
	})

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"# comment line\n"+
			"\n"+
			"HTTPKIT_ENVFILE_A=plain\n"+
			"export HTTPKIT_ENVFILE_B=exported\n"+
			"HTTPKIT_ENVFILE_C=\"quoted value\"\n"+
			"HTTPKIT_ENVFILE_D='single'\n",
	), 0o600))

	require.NoError(t, LoadEnvFile(path))

	assert.Equal(t, "plain", os.Getenv("HTTPKIT_ENVFILE_A"))
	assert.Equal(t, "exported", os.Getenv("HTTPKIT_ENVFILE_B"))
	assert.Equal(t, "quoted value", os.Getenv("HTTPKIT_ENVFILE_C"))
	assert.Equal(t, "single", os.Getenv("HTTPKIT_ENVFILE_D"))
}

func TestLoadEnvFileKeepsExisting(t *testing.T) {
	t.Setenv("HTTPKIT_ENVFILE_KEEP", "original")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HTTPKIT_ENVFILE_KEEP=overwritten\n"), 0o600))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "original", os.Getenv("HTTPKIT_ENVFILE_KEEP"))
}

func TestLoadEnvFileErrors(t *testing.T) {
	testcases := []struct {
		desc    string
		content string
	}{
		{desc: "separator missing", content: "NOT A PAIR\n"},
		{desc: "empty key", content: "=value\n"},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".env")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))
			assert.Error(t, LoadEnvFile(path))
		})
	}

	t.Run("file missing", func(t *testing.T) {
		assert.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "nope.env")))
	})
}
