// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tagger

import (
	"bytes"
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ptb2db/internal/treebank"
	"github.com/pdiddy/ptb2db/pkg/types"
)

const goldTrees = `
(S (NP (DT The) (NN duck)) (VP (VBZ swims)))
(S (NP (PRP I)) (VP (VBP duck) (NP (DT the) (NN ball))))
(S (NP (DT the) (NN duck)) (VP (VBD quacked)))
(S (NP the stray) (VP (VBD left)))
`

func buildTestLexicon(t *testing.T, trees string) (string, BuildSummary) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "models", "lexicon.db")
	var log bytes.Buffer
	summary, err := BuildLexicon(context.Background(), path, treebank.NewReader("gold", strings.NewReader(trees)), &log)
	require.NoError(t, err)
	return path, summary
}

func TestBuildLexicon(t *testing.T) {
	_, summary := buildTestLexicon(t, goldTrees)
	assert.Equal(t, 3, summary.Trees)
	assert.Equal(t, 10, summary.Words)
	assert.Equal(t, 1, summary.Skipped)
}

func TestBuildLexicon_ParseErrorCommitsNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.db")
	var log bytes.Buffer
	_, err := BuildLexicon(context.Background(), path,
		treebank.NewReader("gold", strings.NewReader("(S (NN a))\n(S (NN b)")), &log)

	var pe *treebank.ParseError
	require.ErrorAs(t, err, &pe)

	_, err = OpenLexicon(path)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.ErrorIs(t, err, errEmptyLexicon)
}

func TestLexicon_Tag(t *testing.T) {
	path, _ := buildTestLexicon(t, goldTrees)
	lex, err := OpenLexicon(path)
	require.NoError(t, err)
	defer lex.Close()

	got, err := lex.Tag([]string{"The", "duck", "quacked", "Ball", "zebra"})
	require.NoError(t, err)
	assert.Equal(t, []types.TaggedWord{
		{Word: "The", Tag: "DT"},      // exact
		{Word: "duck", Tag: "NN"},     // NN twice, VBP once
		{Word: "quacked", Tag: "VBD"}, // exact
		{Word: "Ball", Tag: "NN"},     // lowercased
		{Word: "zebra", Tag: "DT"},    // most frequent tag overall, DT beats NN on name
	}, got)
}

func TestLexicon_Deterministic(t *testing.T) {
	path, _ := buildTestLexicon(t, goldTrees)
	lex, err := OpenLexicon(path)
	require.NoError(t, err)
	defer lex.Close()

	words := []string{"the", "duck", "swims", "unknown"}
	first, err := lex.Tag(words)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := lex.Tag(words)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestBuildLexicon_Incremental(t *testing.T) {
	path, _ := buildTestLexicon(t, goldTrees)

	// Three more VBP uses of "duck" outvote the two NN uses.
	more := strings.Repeat("(S (VP (VBP duck)))\n", 3)
	var log bytes.Buffer
	_, err := BuildLexicon(context.Background(), path, treebank.NewReader("more", strings.NewReader(more)), &log)
	require.NoError(t, err)

	lex, err := OpenLexicon(path)
	require.NoError(t, err)
	defer lex.Close()

	got, err := lex.Tag([]string{"duck"})
	require.NoError(t, err)
	assert.Equal(t, "VBP", got[0].Tag)
}

func TestOpenLexicon_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := OpenLexicon(filepath.Join(t.TempDir(), "absent.db"))
		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("not a lexicon", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "other.db")
		db, err := sql.Open("sqlite3", path)
		require.NoError(t, err)
		_, err = db.Exec(`CREATE TABLE unrelated (x INTEGER)`)
		require.NoError(t, err)
		require.NoError(t, db.Close())

		_, err = OpenLexicon(path)
		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Contains(t, err.Error(), "no such table")
	})
}
