// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tagger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ptb2db/pkg/types"
)

// stubTagger tags every word "X" and records Close.
type stubTagger struct {
	closed bool
}

func (s *stubTagger) Tag(words []string) ([]types.TaggedWord, error) {
	out := make([]types.TaggedWord, len(words))
	for i, w := range words {
		out[i] = types.TaggedWord{Word: w, Tag: "X"}
	}
	return out, nil
}

func (s *stubTagger) Close() error {
	s.closed = true
	return nil
}

func TestLazy_OpensOnce(t *testing.T) {
	opens := 0
	stub := &stubTagger{}
	l := NewLazy(func() (Tagger, error) {
		opens++
		return stub, nil
	})

	assert.False(t, l.Loaded())
	for i := 0; i < 3; i++ {
		got, err := l.Tag([]string{"a", "b"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	}
	assert.Equal(t, 1, opens)
	assert.True(t, l.Loaded())

	require.NoError(t, l.Close())
	assert.True(t, stub.closed)
}

func TestLazy_NeverOpenedWithoutTag(t *testing.T) {
	l := NewLazy(func() (Tagger, error) {
		t.Fatal("open must not be called")
		return nil, nil
	})
	assert.NoError(t, l.Close())
	assert.False(t, l.Loaded())
}

func TestLazy_CachesLoadError(t *testing.T) {
	opens := 0
	loadErr := &LoadError{Path: "models/missing.tagger", Err: errors.New("no such file")}
	l := NewLazy(func() (Tagger, error) {
		opens++
		return nil, loadErr
	})

	for i := 0; i < 2; i++ {
		_, err := l.Tag([]string{"a"})
		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, "models/missing.tagger", le.Path)
	}
	assert.Equal(t, 1, opens)
	assert.False(t, l.Loaded())
	assert.NoError(t, l.Close())
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(types.TaggerConfig{Backend: "hmm"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tagger backend")
}

func TestOpen_LexiconMissing(t *testing.T) {
	_, err := Open(types.TaggerConfig{Backend: types.BackendLexicon, Lexicon: t.TempDir() + "/none.db"})
	var le *LoadError
	require.ErrorAs(t, err, &le)
}
