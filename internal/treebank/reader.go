// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package treebank

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// maxTreeSize bounds a single bracketed expression.
const maxTreeSize = 16 * 1024 * 1024

var errUnbalanced = errors.New("unbalanced parentheses")

var ptbLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Atom", Pattern: `[^\s()]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// bracket is the grammar of one PTB expression: "(" label? child* ")".
type bracket struct {
	Label    string   `parser:"LParen @Atom?"`
	Children []*child `parser:"@@* RParen"`
}

type child struct {
	Node *bracket `parser:"  @@"`
	Leaf string   `parser:"| @Atom"`
}

var ptbParser = participle.MustBuild[bracket](
	participle.Lexer(ptbLexer),
	participle.Elide("Whitespace"),
)

// ParseError reports a malformed tree. Index is the 1-based position of the
// tree in the input.
type ParseError struct {
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing tree %d: %v", e.Index, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Reader reads trees one at a time from a stream of bracketed expressions.
// Trees may span several lines; whitespace between trees is ignored.
type Reader struct {
	filename string
	scanner  *bufio.Scanner
	count    int
}

// NewReader returns a Reader over r. filename is used in parse error
// positions only.
func NewReader(filename string, r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxTreeSize)
	s.Split(splitTrees)
	return &Reader{filename: filename, scanner: s}
}

// Next returns the next tree. It returns io.EOF once the stream holds no
// further tree, and a *ParseError for malformed input.
func (r *Reader) Next() (*Tree, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return nil, &ParseError{Index: r.count + 1, Err: err}
		}
		return nil, io.EOF
	}
	r.count++

	b, err := ptbParser.ParseBytes(r.filename, r.scanner.Bytes())
	if err != nil {
		return nil, &ParseError{Index: r.count, Err: err}
	}
	return b.tree(), nil
}

// Count returns the number of trees read so far, including a tree that
// failed to parse.
func (r *Reader) Count() int {
	return r.count
}

func (b *bracket) tree() *Tree {
	t := &Tree{Label: b.Label, Children: make([]*Tree, 0, len(b.Children))}
	for _, c := range b.Children {
		if c.Node != nil {
			t.Children = append(t.Children, c.Node.tree())
			continue
		}
		t.Children = append(t.Children, NewLeaf(c.Leaf))
	}
	return t
}

// splitTrees is a bufio.SplitFunc yielding one top-level bracketed
// expression per token. Text outside brackets is yielded as its own token so
// that the parser reports it.
func splitTrees(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && isSpace(data[start]) {
		start++
	}
	if start == len(data) {
		if atEOF {
			return len(data), nil, nil
		}
		return start, nil, nil
	}

	switch data[start] {
	case ')':
		return 0, nil, errUnbalanced
	case '(':
		depth := 0
		for i := start; i < len(data); i++ {
			switch data[i] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					return i + 1, data[start : i+1], nil
				}
			}
		}
		if atEOF {
			return 0, nil, errUnbalanced
		}
		return start, nil, nil
	}

	end := bytes.IndexFunc(data[start:], func(r rune) bool {
		return r == '(' || r == ')' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if end < 0 {
		if !atEOF {
			return start, nil, nil
		}
		return len(data), data[start:], nil
	}
	return start + end, data[start : start+end], nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}
