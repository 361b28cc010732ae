// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Mode selects how each tree's words are tagged in the output. It is fixed
// for a whole run.
type Mode string

const (
	// ModeEmpty emits words only: (w1 w2 ... wn).
	ModeEmpty Mode = "empty"
	// ModeGold emits the pre-terminal labels found in the input tree.
	ModeGold Mode = "gold"
	// ModeStanford emits tags predicted by a part-of-speech tagger.
	ModeStanford Mode = "stanford"
)

// Modes lists the accepted modes in the order they appear in usage text.
func Modes() []Mode {
	return []Mode{ModeEmpty, ModeGold, ModeStanford}
}

// ParseMode converts a command-line value into a Mode. Matching is exact.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	names := make([]string, 0, len(Modes()))
	for _, m := range Modes() {
		names = append(names, string(m))
	}
	return "", fmt.Errorf("invalid tag mode %q: choose one of %s", s, strings.Join(names, ", "))
}

// NeedsTagger reports whether the mode requires a part-of-speech tagger.
func (m Mode) NeedsTagger() bool {
	return m == ModeStanford
}

// TaggedWord pairs a surface word with its part-of-speech tag.
type TaggedWord struct {
	Word string `json:"word" yaml:"word"`
	Tag  string `json:"tag" yaml:"tag"`
}
