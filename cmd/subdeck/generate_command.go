package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"subdeck/internal/config"
	"subdeck/internal/deck"
	"subdeck/internal/logging"
	"subdeck/internal/meaning"
	"subdeck/internal/phrase"
	"subdeck/internal/watch"
)

type generateFlags struct {
	primary        string
	secondary      string
	outDir         string
	movieID        string
	pathID         string
	dictionary     string
	idMode         string
	chapterMinutes int
	maxMinutes     int
	watch          bool
	json           bool
}

type generateResult struct {
	RunID    string      `json:"runId"`
	MovieID  string      `json:"movieId"`
	Files    []string    `json:"files"`
	Counts   deck.Counts `json:"counts"`
	Chapters int         `json:"chapters"`
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate phrase and word decks from a subtitle pair",
		Long: `Generate parses the primary (studied language) and secondary (translation)
subtitle files, merges and aligns captions into phrase cards, extracts
per-chapter word cards, fills meanings from the dictionary and writes
phrases.base.<lang>.json and words.base.<lang>.json to the output directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opts := generateOptions(cmd, cfg, flags)
			if err := opts.Validate(); err != nil {
				return err
			}

			outDir := cfg.Paths.OutputDir
			if strings.TrimSpace(flags.outDir) != "" {
				if outDir, err = config.ExpandPath(flags.outDir); err != nil {
					return fmt.Errorf("resolve output directory: %w", err)
				}
			}
			dictPath, err := ctx.dictionaryPath(flags.dictionary)
			if err != nil {
				return err
			}

			run := &generateRun{
				ctx:       ctx,
				cmd:       cmd,
				opts:      opts,
				primary:   flags.primary,
				secondary: flags.secondary,
				outDir:    outDir,
				dictPath:  dictPath,
				json:      flags.json,
				logger:    ctx.loggerValue(),
			}
			if err := run.loadDictionary(); err != nil {
				return err
			}
			if err := run.once(); err != nil {
				return err
			}
			if !flags.watch {
				return nil
			}
			return run.watch()
		},
	}

	cmd.Flags().StringVar(&flags.primary, "primary", "", "Primary language SRT file (the language being studied)")
	cmd.Flags().StringVar(&flags.secondary, "secondary", "", "Secondary language SRT file used for alignment")
	cmd.Flags().StringVarP(&flags.outDir, "out", "o", "", "Output directory (default paths.output_dir)")
	cmd.Flags().StringVar(&flags.movieID, "movie-id", "", "Movie id recorded in the deck metadata")
	cmd.Flags().StringVar(&flags.pathID, "path-id", "", "Learning path id recorded in the deck metadata")
	cmd.Flags().StringVar(&flags.dictionary, "dictionary", "", "Meaning dictionary JSON file")
	cmd.Flags().StringVar(&flags.idMode, "id-mode", "", "Phrase id mode: sequence or content")
	cmd.Flags().IntVar(&flags.chapterMinutes, "chapter-minutes", 0, "Chapter size in minutes")
	cmd.Flags().IntVar(&flags.maxMinutes, "max-minutes", 0, "Only process captions starting in the first N minutes (0 = all)")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "Regenerate whenever an input file changes")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Print the run summary as JSON")
	_ = cmd.MarkFlagRequired("primary")
	_ = cmd.MarkFlagRequired("secondary")
	return cmd
}

// generateOptions layers explicitly set flags over the configuration.
func generateOptions(cmd *cobra.Command, cfg *config.Config, flags generateFlags) deck.Options {
	opts := deck.OptionsFromConfig(cfg)
	if v := strings.TrimSpace(flags.movieID); v != "" {
		opts.MovieID = v
	}
	if v := strings.TrimSpace(flags.pathID); v != "" {
		opts.PathID = v
	}
	if v := strings.TrimSpace(flags.idMode); v != "" {
		opts.IDMode = phrase.IDMode(strings.ToLower(v))
	}
	if cmd.Flags().Changed("chapter-minutes") {
		opts.ChapterMinutes = flags.chapterMinutes
	}
	if cmd.Flags().Changed("max-minutes") {
		opts.MaxMinutes = flags.maxMinutes
	}
	return opts
}

type generateRun struct {
	ctx       *commandContext
	cmd       *cobra.Command
	opts      deck.Options
	primary   string
	secondary string
	outDir    string
	dictPath  string
	json      bool
	logger    *slog.Logger
	gen       *deck.Generator
}

func (r *generateRun) loadDictionary() error {
	var dict meaning.Dictionary
	if r.dictPath != "" {
		var err error
		if dict, err = r.ctx.loadDictionary(r.dictPath); err != nil {
			return err
		}
	} else {
		dict = meaning.Empty()
	}
	gen, err := deck.NewGenerator(r.opts, dict, r.logger)
	if err != nil {
		return err
	}
	r.gen = gen
	return nil
}

func (r *generateRun) once() error {
	primary, err := os.ReadFile(r.primary)
	if err != nil {
		return fmt.Errorf("read primary subtitles: %w", err)
	}
	secondary, err := os.ReadFile(r.secondary)
	if err != nil {
		return fmt.Errorf("read secondary subtitles: %w", err)
	}

	bundle := r.gen.Generate(deck.Sources{
		Primary:   deck.Source{Name: r.primary, Text: string(primary)},
		Secondary: deck.Source{Name: r.secondary, Text: string(secondary)},
	})
	files, err := deck.Write(r.outDir, bundle)
	if err != nil {
		return err
	}

	result := generateResult{
		RunID:    bundle.Meta.RunID,
		MovieID:  bundle.Meta.MovieID,
		Files:    files,
		Counts:   bundle.Meta.Counts,
		Chapters: len(bundle.Chapters),
	}
	if r.json {
		return writeJSON(r.cmd, result)
	}
	out := r.cmd.OutOrStdout()
	for _, f := range files {
		fmt.Fprintf(out, "Wrote %s\n", f)
	}
	fmt.Fprintf(out, "%d phrases (%d without translation), %d words (%d with meanings) across %d chapters\n",
		result.Counts.Phrases, result.Counts.PhrasesUnaligned,
		result.Counts.Words, result.Counts.WordsWithMeanings, result.Chapters)
	return nil
}

func (r *generateRun) watch() error {
	ctx, stop := signal.NotifyContext(r.cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New([]string{r.primary, r.secondary, r.dictPath}, 0, r.logger)
	if err != nil {
		return err
	}
	defer w.Close()

	r.logger.Info("watching inputs; press Ctrl+C to stop",
		logging.String("primary", r.primary),
		logging.String("secondary", r.secondary))

	dictAbs, _ := filepath.Abs(r.dictPath)
	for change := range w.Watch(ctx) {
		for _, p := range change.Paths {
			if r.dictPath != "" && p == dictAbs {
				if err := r.loadDictionary(); err != nil {
					r.logger.Error("reload dictionary failed", logging.Error(err))
				}
				break
			}
		}
		if err := r.once(); err != nil {
			r.logger.Error("regeneration failed", logging.Error(err))
		}
	}
	return nil
}
