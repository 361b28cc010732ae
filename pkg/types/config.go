// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// TaggerBackend identifies the implementation behind stanford mode.
type TaggerBackend string

const (
	// BackendStanford runs the Stanford MaxentTagger in a container.
	BackendStanford TaggerBackend = "stanford"
	// BackendLexicon looks tags up in an SQLite most-frequent-tag lexicon.
	BackendLexicon TaggerBackend = "lexicon"
)

// TaggerConfig holds settings for the part-of-speech tagger used in stanford mode.
type TaggerConfig struct {
	// Backend selects the tagger implementation: stanford or lexicon.
	Backend TaggerBackend `json:"backend" yaml:"backend"`

	// Model is the path to the Stanford tagger model file
	// (e.g. "models/english-left3words-distsim.tagger").
	Model string `json:"model" yaml:"model"`

	// Lexicon is the path to the SQLite lexicon database.
	Lexicon string `json:"lexicon" yaml:"lexicon"`

	// Runtime selects the container runtime: auto, docker, or podman.
	Runtime string `json:"runtime" yaml:"runtime"`

	// Image is the container image that runs the Stanford tagger.
	Image string `json:"image" yaml:"image"`

	// Separator joins word and tag in the tagger's output (default "_").
	Separator string `json:"separator" yaml:"separator"`
}

// Config is the full ptb2db configuration as resolved from flags,
// environment, and config file.
type Config struct {
	Tagger TaggerConfig `json:"tagger" yaml:"tagger"`

	// Verbose enables debug logging on stderr.
	Verbose bool `json:"verbose" yaml:"verbose"`
}
