package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestPositionalArguments(t *testing.T) {
	table := []struct {
		args     []string
		expected string
	}{
		{args: []string{"loader"}, expected: "accepts 1 arg(s), received 0"},
		{args: []string{"loader", "a.db", "b.db"}, expected: "accepts 1 arg(s), received 2"},
		{args: []string{"foods"}, expected: "accepts 1 arg(s), received 0"},
		{args: []string{"food", "a.db"}, expected: "accepts 2 arg(s), received 1"},
		{args: []string{"serve", "a.db"}, expected: `unknown command "a.db"`},
	}

	for _, row := range table {
		out, err := execute(t, row.args...)
		require.ErrorContains(t, err, row.expected, row.args)
		require.Contains(t, out, "Usage:", row.args)
	}
}

func TestLoaderUsage(t *testing.T) {
	t.Cleanup(func() {
		if help := loaderCmd.Flags().Lookup("help"); help != nil {
			help.Value.Set("false")
		}
	})

	out, err := execute(t, "loader", "--help")
	require.NoError(t, err)
	require.Contains(t, out, "loader <database-url>")
	require.Contains(t, out, "--dump-dir")
	require.Contains(t, out, "--policy")
}
