// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tagger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/pdiddy/ptb2db/internal/container"
	"github.com/pdiddy/ptb2db/pkg/types"
)

// modelMount is where the model directory appears inside the container.
const modelMount = "/models"

// Stanford tags sentences with the Stanford MaxentTagger running as one
// long-lived container process. Sentences go in one per line, words
// separated by spaces; each answer is one line of word<sep>TAG tokens.
type Stanford struct {
	proc *container.Process
	out  *bufio.Reader
	sep  string
}

// OpenStanford checks that the model file and image exist, then starts the
// tagger container with the model directory mounted read-only.
func OpenStanford(rt container.Runtime, cfg types.TaggerConfig) (*Stanford, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	image := cfg.Image
	if image == "" {
		image = DefaultImage
	}
	sep := cfg.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	if _, err := os.Stat(model); err != nil {
		return nil, &LoadError{Path: model, Err: err}
	}
	abs, err := filepath.Abs(model)
	if err != nil {
		return nil, &LoadError{Path: model, Err: err}
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("stanford tagger image not available in %s: %w", rt.Name(), err)
	}

	args := []string{
		"-model", path.Join(modelMount, filepath.Base(abs)),
		"-tokenize", "false",
		"-sentenceDelimiter", "newline",
		"-outputFormat", "slashTags",
		"-tagSeparator", sep,
	}
	mounts := []container.Mount{{Source: filepath.Dir(abs), Target: modelMount, ReadOnly: true}}

	proc, err := rt.Start(image, mounts, args...)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"runtime": rt.Name(), "image": image, "model": model}).Debug("started stanford tagger")
	return newStanford(proc, sep), nil
}

func newStanford(proc *container.Process, sep string) *Stanford {
	return &Stanford{proc: proc, out: bufio.NewReader(proc.Stdout), sep: sep}
}

// Tag sends words as one sentence and parses the tagged reply.
func (s *Stanford) Tag(words []string) ([]types.TaggedWord, error) {
	if _, err := io.WriteString(s.proc.Stdin, strings.Join(words, " ")+"\n"); err != nil {
		return nil, fmt.Errorf("writing to stanford tagger: %w", err)
	}

	// The tagger may emit blank lines between sentences.
	for {
		line, err := s.out.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			return parseSlashTags(line, s.sep)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("reading from stanford tagger: %w", err)
		}
	}
}

// Close ends the tagger's input and waits for the container to exit.
func (s *Stanford) Close() error {
	return s.proc.Close()
}

// parseSlashTags splits "w1_T1 w2_T2" into tagged words. Each token is split
// at the last separator so that words containing it survive.
func parseSlashTags(line, sep string) ([]types.TaggedWord, error) {
	fields := strings.Fields(line)
	tagged := make([]types.TaggedWord, 0, len(fields))
	for _, f := range fields {
		i := strings.LastIndex(f, sep)
		if i <= 0 || i+len(sep) == len(f) {
			return nil, fmt.Errorf("malformed tagger token %q", f)
		}
		tagged = append(tagged, types.TaggedWord{Word: f[:i], Tag: f[i+len(sep):]})
	}
	return tagged, nil
}
