// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catTrees = `(S (NP (DT the) (NN cat)) (VP (VBZ sits)))
( (S (NP (PRP It)) (VP (VBD purred))) )
`

// execute runs the root command with args and returns what it wrote.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	rootCmd.SilenceUsage = false
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeTrees(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trees.mrg")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRoot_Modes(t *testing.T) {
	file := writeTrees(t, catTrees)

	tests := []struct {
		mode string
		want string
	}{
		{mode: "empty", want: "(the cat sits)\n(It purred)\n"},
		{mode: "gold", want: "((the (DT)) (cat (NN)) (sits (VBZ)))\n((It (PRP)) (purred (VBD)))\n"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			stdout, _, err := execute(t, file, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestRoot_InvalidMode(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "never-read.mrg")
	stdout, stderr, err := execute(t, missing, "banana")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid tag mode")
	assert.Contains(t, stdout+stderr, "Usage:")
	assert.NotContains(t, stdout, "((")
}

func TestRoot_WrongArgCount(t *testing.T) {
	_, _, err := execute(t, "only-one-arg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestRoot_MissingFile(t *testing.T) {
	stdout, _, err := execute(t, filepath.Join(t.TempDir(), "absent.mrg"), "gold")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening treebank")
	assert.Empty(t, stdout)
}

func TestRoot_EmptyFileStanfordNeverLoadsTagger(t *testing.T) {
	file := writeTrees(t, "")
	missingModel := filepath.Join(t.TempDir(), "absent.tagger")

	stdout, _, err := execute(t, file, "stanford", "--tagger-backend", "stanford", "--model", missingModel)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestRoot_StanfordWithLexicon(t *testing.T) {
	lexicon := filepath.Join(t.TempDir(), "lexicon.db")
	gold := writeTrees(t, catTrees)

	_, _, err := execute(t, "lexicon", "build", gold, "--lexicon", lexicon)
	require.NoError(t, err)

	stdout, _, err := execute(t, gold, "stanford", "--tagger-backend", "lexicon", "--lexicon", lexicon)
	require.NoError(t, err)
	assert.Equal(t, "((the (DT)) (cat (NN)) (sits (VBZ)))\n((It (PRP)) (purred (VBD)))\n", stdout)
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "ptb2db dev\n", stdout)
}

func TestConfig(t *testing.T) {
	stdout, _, err := execute(t, "config", "--image", "tagger:test")
	require.NoError(t, err)
	assert.Contains(t, stdout, "image: tagger:test")
	assert.Contains(t, stdout, "separator: _")
}
