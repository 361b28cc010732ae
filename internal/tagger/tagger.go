// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tagger provides the part-of-speech taggers used in stanford mode.
//
// Two backends exist: the Stanford MaxentTagger running in a container, and
// a most-frequent-tag lexicon stored in SQLite. Either is wrapped in a Lazy
// handle so that runs which never tag never load a model.
package tagger

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/pdiddy/ptb2db/internal/container"
	"github.com/pdiddy/ptb2db/pkg/types"
)

const (
	// DefaultModel is the Stanford model path, relative to the working directory.
	DefaultModel = "models/english-left3words-distsim.tagger"
	// DefaultLexicon is the lexicon database path, relative to the working directory.
	DefaultLexicon = "models/lexicon.db"
	// DefaultImage is the container image that runs the Stanford tagger.
	DefaultImage = "stanford-postagger:latest"
	// DefaultSeparator joins word and tag in Stanford output.
	DefaultSeparator = "_"
)

// Tagger assigns one part-of-speech tag per word. Implementations return a
// slice of the same length and order as words.
type Tagger interface {
	Tag(words []string) ([]types.TaggedWord, error)
	Close() error
}

// LoadError reports a tagger model that is missing or unusable.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading tagger model %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Open constructs the tagger selected by cfg.Backend.
func Open(cfg types.TaggerConfig) (Tagger, error) {
	switch cfg.Backend {
	case types.BackendStanford, "":
		rt, err := container.ByName(cfg.Runtime)
		if err != nil {
			return nil, err
		}
		return OpenStanford(rt, cfg)
	case types.BackendLexicon:
		path := cfg.Lexicon
		if path == "" {
			path = DefaultLexicon
		}
		return OpenLexicon(path)
	}
	return nil, fmt.Errorf("unknown tagger backend %q: use %s or %s", cfg.Backend, types.BackendStanford, types.BackendLexicon)
}

// Lazy defers opening a tagger until the first Tag call. The open result,
// tagger or error, is kept for every later call. Lazy is not safe for
// concurrent use.
type Lazy struct {
	open   func() (Tagger, error)
	once   sync.Once
	tagger Tagger
	err    error
}

// NewLazy returns a Lazy that calls open on first use.
func NewLazy(open func() (Tagger, error)) *Lazy {
	return &Lazy{open: open}
}

// Tag opens the tagger if needed and tags words.
func (l *Lazy) Tag(words []string) ([]types.TaggedWord, error) {
	l.once.Do(func() {
		log.Debug("loading part-of-speech tagger")
		l.tagger, l.err = l.open()
	})
	if l.err != nil {
		return nil, l.err
	}
	return l.tagger.Tag(words)
}

// Loaded reports whether the tagger has been opened successfully.
func (l *Lazy) Loaded() bool {
	return l.tagger != nil
}

// Close releases the tagger if it was opened.
func (l *Lazy) Close() error {
	if l.tagger == nil {
		return nil
	}
	return l.tagger.Close()
}
