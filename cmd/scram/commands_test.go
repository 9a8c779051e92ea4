// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdHasExpectedSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["analyze"])
	assert.True(t, names["report"])
	assert.True(t, names["version"])
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), version)
}

// resetDemoFlags restores the subset of package-level flag vars the CLI
// tests below touch, since rootCmd's flags are package-level globals
// shared across every test that exercises Execute.
func resetDemoFlags() {
	flagDemo = false
	flagOutput = ""
	flagDot = ""
	flagDotPDAG = ""
	flagDotBDD = ""
	flagUncertainty = false
}

func TestAnalyzeCmdDemoPrintsSummary(t *testing.T) {
	resetDemoFlags()
	flagDemo = true

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"analyze", "--demo"})
	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "run:")
	assert.Contains(t, out, "top probability:")
	assert.Contains(t, out, "cut sets:")
}

func TestReportCmdDemoWritesXMLAndDiagrams(t *testing.T) {
	resetDemoFlags()
	flagDemo = true

	dir := t.TempDir()
	flagOutput = filepath.Join(dir, "report.xml")
	flagDotPDAG = filepath.Join(dir, "pdag.dot")

	rootCmd.SetArgs([]string{"report", "--demo",
		"--output", flagOutput,
		"--dot-pdag", flagDotPDAG,
	})
	require.NoError(t, rootCmd.Execute())

	xml, err := os.ReadFile(flagOutput)
	require.NoError(t, err)
	assert.Contains(t, string(xml), "<")

	dot, err := os.ReadFile(flagDotPDAG)
	require.NoError(t, err)
	assert.Contains(t, string(dot), "digraph PDAG")
}

func TestAnalyzeCmdNoInputIsIOError(t *testing.T) {
	resetDemoFlags()
	rootCmd.SetArgs([]string{"analyze"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Equal(t, 1, exitCodeFor(err))
}
