// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns Penn Treebank trees into the flat bracketed
// word/tag lines read by Dan Bikel's parser.
//
//	empty:    (w1 w2 ... wn)
//	gold:     ((w1 (t1)) (w2 (t2)) ... (wn (tn)))
//	stanford: same shape as gold, tags from a part-of-speech tagger
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/pdiddy/ptb2db/internal/treebank"
	"github.com/pdiddy/ptb2db/pkg/types"
)

// ErrEmptyTree reports a tree with no leaves, which has no output form.
var ErrEmptyTree = errors.New("tree has no leaves")

// Tagger assigns part-of-speech tags to a sentence. The result must have one
// entry per input word, in order.
type Tagger interface {
	Tag(words []string) ([]types.TaggedWord, error)
}

// TreeError reports a conversion failure for one tree. Index is the 1-based
// position of the tree in the input.
type TreeError struct {
	Index int
	Err   error
}

func (e *TreeError) Error() string {
	return fmt.Sprintf("converting tree %d: %v", e.Index, e.Err)
}

func (e *TreeError) Unwrap() error {
	return e.Err
}

// Summary holds the outcome of a conversion run.
type Summary struct {
	Trees int
}

// Converter formats trees according to a fixed mode.
type Converter struct {
	mode   types.Mode
	tagger Tagger
}

// New returns a Converter for mode. tagger is used only in stanford mode and
// may be nil otherwise.
func New(mode types.Mode, tagger Tagger) (*Converter, error) {
	if _, err := types.ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if mode.NeedsTagger() && tagger == nil {
		return nil, fmt.Errorf("%s mode requires a tagger", mode)
	}
	return &Converter{mode: mode, tagger: tagger}, nil
}

// Convert returns the output line for tree, without a trailing newline.
func (c *Converter) Convert(tree *treebank.Tree) (string, error) {
	switch c.mode {
	case types.ModeEmpty:
		words := tree.Leaves()
		if len(words) == 0 {
			return "", ErrEmptyTree
		}
		return FormatWords(words), nil

	case types.ModeGold:
		if len(tree.Leaves()) == 0 {
			return "", ErrEmptyTree
		}
		tagged, err := tree.TaggedWords()
		if err != nil {
			return "", err
		}
		return FormatTagged(tagged), nil

	case types.ModeStanford:
		words := tree.Leaves()
		if len(words) == 0 {
			return "", ErrEmptyTree
		}
		tagged, err := c.tagger.Tag(words)
		if err != nil {
			return "", fmt.Errorf("tagging: %w", err)
		}
		if len(tagged) != len(words) {
			return "", fmt.Errorf("%w: %d words, tagger returned %d", treebank.ErrLengthMismatch, len(words), len(tagged))
		}
		return FormatTagged(tagged), nil
	}
	return "", fmt.Errorf("unsupported mode %q", c.mode)
}

// Run reads every tree from r and writes one converted line per tree to w,
// in input order. It stops at the first malformed or unconvertible tree;
// lines already written are left in place.
func (c *Converter) Run(ctx context.Context, r *treebank.Reader, w io.Writer) (Summary, error) {
	var summary Summary
	for {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		tree, err := r.Next()
		if errors.Is(err, io.EOF) {
			return summary, nil
		}
		if err != nil {
			return summary, err
		}

		line, err := c.Convert(tree)
		if err != nil {
			return summary, &TreeError{Index: r.Count(), Err: err}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return summary, fmt.Errorf("writing output: %w", err)
		}
		summary.Trees++
		log.WithField("tree", r.Count()).Debug(line)
	}
}

// ConvertFile opens the treebank at path and runs the conversion over it.
// The file is closed on every return path.
func (c *Converter) ConvertFile(ctx context.Context, path string, w io.Writer) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("opening treebank %s: %w", path, err)
	}
	defer f.Close()

	return c.Run(ctx, treebank.NewReader(path, f), w)
}

// FormatWords renders words as "(w1 w2 ... wn)".
func FormatWords(words []string) string {
	return "(" + strings.Join(words, " ") + ")"
}

// FormatTagged renders tagged words as "((w1 (t1)) ... (wn (tn)))".
func FormatTagged(tagged []types.TaggedWord) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, tw := range tagged {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "(%s (%s))", tw.Word, tw.Tag)
	}
	b.WriteByte(')')
	return b.String()
}
