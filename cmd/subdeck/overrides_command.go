package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"subdeck/internal/config"
	"subdeck/internal/deck"
	"subdeck/internal/logging"
	"subdeck/internal/overrides"
)

func newOverridesCommand(ctx *commandContext) *cobra.Command {
	overridesCmd := &cobra.Command{
		Use:   "overrides",
		Short: "Work with override exports from the deck viewer",
	}
	overridesCmd.AddCommand(newOverridesMergeCommand(ctx))
	return overridesCmd
}

func newOverridesMergeCommand(ctx *commandContext) *cobra.Command {
	var file, deckDir, lang, pathID, movieID string
	var dryRun, asJSON bool

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Fold exported overrides into the base deck files",
		Long: `Merge applies the {pathId: {movieId: {cardId: {de, deMeaning}}}} export for
this deck's path and movie to phrases.base.<lang>.json and words.base.<lang>.json.
Overrides whose card id is no longer present are listed as orphans.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(file) == "" {
				file = cfg.Paths.OverridesPath
			}
			if file == "" {
				return fmt.Errorf("no override file given; pass --file or set paths.overrides_path")
			}
			dir := cfg.Paths.OutputDir
			if strings.TrimSpace(deckDir) != "" {
				if dir, err = config.ExpandPath(deckDir); err != nil {
					return fmt.Errorf("resolve deck directory: %w", err)
				}
			}
			if strings.TrimSpace(lang) == "" {
				lang = cfg.Deck.SecondaryLanguage
			}

			phrasePath, wordPath := deck.Paths(dir, lang)
			pf, err := deck.ReadPhraseFile(phrasePath)
			if err != nil {
				return err
			}
			wf, err := deck.ReadWordFile(wordPath)
			if err != nil {
				return err
			}
			export, err := overrides.LoadFile(file)
			if err != nil {
				return err
			}

			if pathID == "" {
				pathID = pf.Meta.PathID
			}
			if movieID == "" {
				movieID = pf.Meta.MovieID
			}
			report := overrides.Apply(export.For(pathID, movieID), pf.Cards, wf.Cards)
			if len(report.Orphans) > 0 {
				logging.WarnWithContext(ctx.loggerValue(), "overrides reference missing cards", "override_orphans",
					logging.Int("orphans", len(report.Orphans)),
					logging.String(logging.FieldErrorHint, "phrase ids shift when captions change; consider phrases.id_mode = \"content\""),
					logging.String(logging.FieldImpact, "orphaned overrides were not applied"))
			}

			if !dryRun {
				if _, err := deck.WriteFiles(dir, lang, &pf, &wf); err != nil {
					return err
				}
			}

			if asJSON {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			verb := "Patched"
			if dryRun {
				verb = "Would patch"
			}
			fmt.Fprintf(out, "%s %d phrase and %d word cards for %s/%s\n", verb, report.PhrasesPatched, report.WordsPatched, pathID, movieID)
			for _, id := range report.Orphans {
				fmt.Fprintf(out, "orphan: %s\n", id)
			}
			for _, id := range report.Ignored {
				fmt.Fprintf(out, "ignored (meaning on phrase card): %s\n", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Override export JSON (default paths.overrides_path)")
	cmd.Flags().StringVar(&deckDir, "deck", "", "Deck directory (default paths.output_dir)")
	cmd.Flags().StringVar(&lang, "lang", "", "Secondary language of the deck files (default deck.secondary_language)")
	cmd.Flags().StringVar(&pathID, "path-id", "", "Path id to select from the export (default from deck metadata)")
	cmd.Flags().StringVar(&movieID, "movie-id", "", "Movie id to select from the export (default from deck metadata)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the merge report as JSON")
	return cmd
}
