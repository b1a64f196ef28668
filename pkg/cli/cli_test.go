package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "testapi")
	assert.Contains(t, out.String(), "api 1.0.0")
}

func TestServeFlagsRegistered(t *testing.T) {
	for _, name := range []string{"config", "port", "token", "log-level", "log-format"} {
		assert.NotNil(t, serveCmd.Flags().Lookup(name), "flag %s", name)
	}
}

func TestServeRejectsMissingConfig(t *testing.T) {
	err := runServe(&serveFlags{configPath: "/nonexistent/testapi.yaml"})
	require.Error(t, err)
}
