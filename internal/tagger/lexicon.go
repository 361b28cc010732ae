// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tagger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/ptb2db/internal/treebank"
	"github.com/pdiddy/ptb2db/pkg/types"
)

var errEmptyLexicon = errors.New("lexicon has no entries")

const lexiconSchema = `CREATE TABLE IF NOT EXISTS lexicon (
	word TEXT NOT NULL,
	tag TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (word, tag)
)`

// Lexicon tags each word with the tag it carried most often in the gold
// trees the lexicon was built from. Unknown words are retried lowercased,
// then given the most frequent tag overall. Ties go to the smaller tag name.
type Lexicon struct {
	db       *sql.DB
	lookup   *sql.Stmt
	fallback string
}

// OpenLexicon opens a lexicon database built by BuildLexicon.
func OpenLexicon(path string) (*Lexicon, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var fallback string
	err = db.QueryRow(
		`SELECT tag FROM lexicon GROUP BY tag ORDER BY SUM(count) DESC, tag ASC LIMIT 1`,
	).Scan(&fallback)
	if errors.Is(err, sql.ErrNoRows) {
		err = errEmptyLexicon
	}
	if err != nil {
		db.Close()
		return nil, &LoadError{Path: path, Err: err}
	}

	lookup, err := db.Prepare(`SELECT tag FROM lexicon WHERE word = ? ORDER BY count DESC, tag ASC LIMIT 1`)
	if err != nil {
		db.Close()
		return nil, &LoadError{Path: path, Err: err}
	}

	return &Lexicon{db: db, lookup: lookup, fallback: fallback}, nil
}

// Tag looks up every word.
func (l *Lexicon) Tag(words []string) ([]types.TaggedWord, error) {
	tagged := make([]types.TaggedWord, len(words))
	for i, w := range words {
		tag, err := l.tagOf(w)
		if err != nil {
			return nil, fmt.Errorf("looking up %q: %w", w, err)
		}
		tagged[i] = types.TaggedWord{Word: w, Tag: tag}
	}
	return tagged, nil
}

func (l *Lexicon) tagOf(word string) (string, error) {
	candidates := []string{word}
	if lower := strings.ToLower(word); lower != word {
		candidates = append(candidates, lower)
	}
	for _, c := range candidates {
		var tag string
		err := l.lookup.QueryRow(c).Scan(&tag)
		if err == nil {
			return tag, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return "", err
		}
	}
	return l.fallback, nil
}

// Close releases the database connection.
func (l *Lexicon) Close() error {
	l.lookup.Close()
	return l.db.Close()
}

// BuildSummary holds counts from a lexicon build.
type BuildSummary struct {
	Trees   int
	Words   int
	Skipped int
}

// BuildLexicon reads gold trees from r and adds every (word, tag) pair to
// the lexicon database at path, creating it if needed. Trees whose leaves
// cannot be paired with tags are reported on w and skipped. A malformed tree
// aborts the build and nothing is committed.
func BuildLexicon(ctx context.Context, path string, r *treebank.Reader, w io.Writer) (BuildSummary, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return BuildSummary{}, fmt.Errorf("creating lexicon directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return BuildSummary{}, fmt.Errorf("opening lexicon: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, lexiconSchema); err != nil {
		return BuildSummary{}, fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return BuildSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO lexicon (word, tag, count) VALUES (?, ?, 1)
		 ON CONFLICT(word, tag) DO UPDATE SET count = count + 1`)
	if err != nil {
		return BuildSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	var summary BuildSummary
	for {
		tree, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return summary, err
		}

		tagged, err := tree.TaggedWords()
		if err != nil {
			fmt.Fprintf(w, "skipped tree %d: %v\n", r.Count(), err)
			summary.Skipped++
			continue
		}
		for _, tw := range tagged {
			if _, err := stmt.ExecContext(ctx, tw.Word, tw.Tag); err != nil {
				return summary, fmt.Errorf("inserting %q/%s: %w", tw.Word, tw.Tag, err)
			}
		}
		summary.Trees++
		summary.Words += len(tagged)
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing lexicon: %w", err)
	}
	fmt.Fprintf(w, "lexicon %s: %d trees, %d words, %d skipped\n", path, summary.Trees, summary.Words, summary.Skipped)
	return summary, nil
}
