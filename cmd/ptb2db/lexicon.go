// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ptb2db/internal/tagger"
	"github.com/pdiddy/ptb2db/internal/treebank"
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Manage the lexicon used by the lexicon tagger backend",
}

// --- build subcommand ---

var lexiconBuildCmd = &cobra.Command{
	Use:   "build <file>...",
	Short: "Add word/tag counts from gold trees to the lexicon",
	Long: `Build reads Penn Treebank trees and records how often each word carries
each pre-terminal tag. Running it again on more files adds to the existing
counts. Trees whose leaves cannot all be paired with a tag are skipped.

The database is written to --lexicon (default models/lexicon.db).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLexiconBuild,
}

func runLexiconBuild(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.Tagger.Lexicon
	if path == "" {
		path = tagger.DefaultLexicon
	}

	for _, file := range args {
		if err := buildFrom(cmd, path, file); err != nil {
			return err
		}
	}
	return nil
}

func buildFrom(cmd *cobra.Command, path, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening treebank %s: %w", file, err)
	}
	defer f.Close()

	_, err = tagger.BuildLexicon(context.Background(), path, treebank.NewReader(file, f), cmd.OutOrStdout())
	return err
}

func init() {
	lexiconCmd.AddCommand(lexiconBuildCmd)
	rootCmd.AddCommand(lexiconCmd)
}
