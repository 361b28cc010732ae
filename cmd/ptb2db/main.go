// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ptb2db CLI, which transforms Penn
// Treebank trees into Dan Bikel's parser format.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ptb2db/internal/container"
	"github.com/pdiddy/ptb2db/internal/convert"
	"github.com/pdiddy/ptb2db/internal/tagger"
	"github.com/pdiddy/ptb2db/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd converts one treebank file; other operations are subcommands.
var rootCmd = &cobra.Command{
	Use:   "ptb2db <file> <tag>",
	Short: "Transform Penn Treebank into Dan Bikel's parser format",
	Long: `ptb2db reads Penn Treebank style trees from a file and prints one line per
tree in the bracketed word/tag format read by Dan Bikel's parser.

The tag argument selects which tags are written:

  empty     no tags:                 (the cat sits)
  gold      tags from the treebank:  ((the (DT)) (cat (NN)) (sits (VBZ)))
  stanford  tags from a POS tagger, same shape as gold

The stanford tagger is loaded only when the first tree needs it. It runs the
Stanford tagger image in docker or podman (--tagger-backend stanford), or
looks tags up in a lexicon built with "ptb2db lexicon build"
(--tagger-backend lexicon).`,
	Args:              validateArgs,
	PersistentPreRunE: initConfig,
	RunE:              runConvert,
}

// validateArgs rejects bad arguments before any file is touched.
func validateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(2)(cmd, args); err != nil {
		return err
	}
	_, err := types.ParseMode(args[1])
	return err
}

func runConvert(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	mode, err := types.ParseMode(args[1])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var tg convert.Tagger
	if mode.NeedsTagger() {
		lazy := tagger.NewLazy(func() (tagger.Tagger, error) {
			return tagger.Open(cfg.Tagger)
		})
		defer func() {
			if err := lazy.Close(); err != nil {
				log.WithError(err).Warn("closing tagger")
			}
		}()
		tg = lazy
	}

	conv, err := convert.New(mode, tg)
	if err != nil {
		return err
	}

	summary, err := conv.ConvertFile(context.Background(), args[0], cmd.OutOrStdout())
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"file": args[0], "mode": mode, "trees": summary.Trees}).Info("conversion finished")
	return nil
}

func init() {
	viper.SetDefault("tagger.backend", string(types.BackendStanford))
	viper.SetDefault("tagger.model", tagger.DefaultModel)
	viper.SetDefault("tagger.lexicon", tagger.DefaultLexicon)
	viper.SetDefault("tagger.runtime", container.Auto)
	viper.SetDefault("tagger.image", tagger.DefaultImage)
	viper.SetDefault("tagger.separator", tagger.DefaultSeparator)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./ptb2db.yaml or ~/.config/ptb2db/ptb2db.yaml)")
	flags.BoolP("verbose", "v", false, "log debug output to stderr")
	flags.String("tagger-backend", "", "tagger for stanford mode: stanford or lexicon")
	flags.String("model", "", "Stanford tagger model file (default "+tagger.DefaultModel+")")
	flags.String("lexicon", "", "lexicon database (default "+tagger.DefaultLexicon+")")
	flags.String("runtime", "", "container runtime: auto, docker, or podman")
	flags.String("image", "", "Stanford tagger container image (default "+tagger.DefaultImage+")")

	bindFlag("verbose", "verbose")
	bindFlag("tagger.backend", "tagger-backend")
	bindFlag("tagger.model", "model")
	bindFlag("tagger.lexicon", "lexicon")
	bindFlag("tagger.runtime", "runtime")
	bindFlag("tagger.image", "image")
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag, err))
	}
}

// initConfig reads the config file and environment and sets up logging. It
// runs after argument validation so bad arguments never touch the disk.
func initConfig(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ptb2db")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ptb2db"))
		}
	}

	viper.SetEnvPrefix("PTB2DB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if cfgFile != "" && err != nil {
		return fmt.Errorf("reading config %s: %w", cfgFile, err)
	}

	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetLevel(log.InfoLevel)
	if viper.GetBool("verbose") {
		log.SetLevel(log.DebugLevel)
	}
	if err == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	}
	return nil
}

// loadConfig resolves the configuration from defaults, config file,
// environment, and flags.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
