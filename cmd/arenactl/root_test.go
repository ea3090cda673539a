package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	for _, name := range []string{"demo", "run", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestRootCommandExecutesDemo(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)

	rootCmd.SetArgs([]string{"demo", "--source", "heap", "--capacity", "512", "--stats"})
	output, err := captureOutput(t, rootCmd.Execute)
	require.NoError(t, err)
	assertContains(t, output, []string{"Allocated 40 bytes at offset 16", "Capacity:       512 bytes"})
}
