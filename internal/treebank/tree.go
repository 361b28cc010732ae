// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package treebank reads Penn Treebank bracketed constituency trees and
// exposes their leaves and pre-terminal labels in sentence order.
package treebank

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/ptb2db/pkg/types"
)

// ErrLengthMismatch reports that a tree's leaves and pre-terminal labels
// cannot be paired one to one.
var ErrLengthMismatch = errors.New("leaf and tag counts differ")

// Tree is a node of a constituency tree. Leaves carry the surface word in
// Label and have no children. Bracketed nodes carry the constituent or
// part-of-speech label, which may be empty for the PTB root wrapper.
type Tree struct {
	Label    string
	Children []*Tree
	leaf     bool
}

// NewLeaf returns a leaf holding word.
func NewLeaf(word string) *Tree {
	return &Tree{Label: word, leaf: true}
}

// NewNode returns a bracketed node with the given label and children.
func NewNode(label string, children ...*Tree) *Tree {
	return &Tree{Label: label, Children: children}
}

// IsLeaf reports whether t is a word.
func (t *Tree) IsLeaf() bool {
	return t.leaf
}

// IsPreTerminal reports whether t directly dominates exactly one leaf.
func (t *Tree) IsPreTerminal() bool {
	return !t.leaf && len(t.Children) == 1 && t.Children[0].IsLeaf()
}

// Leaves returns the words of the tree from left to right.
func (t *Tree) Leaves() []string {
	var words []string
	t.walk(func(n *Tree) {
		if n.IsLeaf() {
			words = append(words, n.Label)
		}
	})
	return words
}

// PreTerminals returns the labels of pre-terminal nodes from left to right.
func (t *Tree) PreTerminals() []string {
	var tags []string
	t.walk(func(n *Tree) {
		if n.IsPreTerminal() {
			tags = append(tags, n.Label)
		}
	})
	return tags
}

// TaggedWords pairs every leaf with its pre-terminal label. It fails with
// ErrLengthMismatch when some leaf has no pre-terminal parent (for example
// "(NP the cat)") instead of dropping the unpaired tail.
func (t *Tree) TaggedWords() ([]types.TaggedWord, error) {
	words := t.Leaves()
	tags := t.PreTerminals()
	if len(words) != len(tags) {
		return nil, fmt.Errorf("%w: %d leaves, %d pre-terminals", ErrLengthMismatch, len(words), len(tags))
	}
	tagged := make([]types.TaggedWord, len(words))
	for i := range words {
		tagged[i] = types.TaggedWord{Word: words[i], Tag: tags[i]}
	}
	return tagged, nil
}

// String renders the tree in single-line bracketed form.
func (t *Tree) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Tree) write(b *strings.Builder) {
	if t.leaf {
		b.WriteString(t.Label)
		return
	}
	b.WriteByte('(')
	b.WriteString(t.Label)
	for i, c := range t.Children {
		if i > 0 || t.Label != "" {
			b.WriteByte(' ')
		}
		c.write(b)
	}
	b.WriteByte(')')
}

// walk visits nodes in pre-order, which yields leaves left to right.
func (t *Tree) walk(visit func(*Tree)) {
	visit(t)
	for _, c := range t.Children {
		c.walk(visit)
	}
}
