package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgd/core"
)

func TestFlagDefaults(t *testing.T) {
	cmd := NewServerCmd()

	tests := []struct {
		flag string
		want string
	}{
		{"ip", "0.0.0.0"},
		{"port", "8888"},
		{"fd", ""},
		{"conf", ""},
		{"log-level", "info"},
		{"debug", "false"},
		{"key", ""},
		{"keyfile", ""},
		{"app-class", core.DefaultAppClass},
		{"use-environment", "false"},
	}
	for _, tt := range tests {
		f := cmd.Flags().Lookup(tt.flag)
		require.NotNil(t, f, "flag %q not registered", tt.flag)
		assert.Equal(t, tt.want, f.DefValue, "flag %q default", tt.flag)
	}
}

func TestMissingKeyFileFailsBeforeBootstrap(t *testing.T) {
	cmd := NewServerCmd()
	cmd.SetArgs([]string{"--keyfile", "/does/not/exist"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `reading security key file "/does/not/exist"`)
}
