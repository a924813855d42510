package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subdeck/internal/deck"
	"subdeck/internal/language"
	"subdeck/internal/meaning"
)

type resolveRow struct {
	Token string `json:"token"`
	meaning.Match
}

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var dictionary string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve <token>...",
		Short: "Look tokens up in the meaning dictionary",
		Long: `Resolve runs each token through the same lookup chain used during
generation (exact, apocope, alias, derived form) and shows which step matched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := ctx.dictionaryPath(dictionary)
			if err != nil {
				return err
			}
			if path == "" {
				return fmt.Errorf("no dictionary configured; pass --dictionary or set paths.dictionary_path")
			}
			dict, err := ctx.loadDictionary(path)
			if err != nil {
				return err
			}

			resolver := meaning.NewResolver(dict, deck.OptionsFromConfig(cfg).Profile())
			rows := make([]resolveRow, 0, len(args))
			for _, token := range args {
				rows = append(rows, resolveRow{Token: token, Match: resolver.Lookup(token)})
			}
			if asJSON {
				return writeJSON(cmd, rows)
			}

			out := cmd.OutOrStdout()
			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				step := string(r.Step)
				if step == "" {
					step = "-"
				}
				table = append(table, []string{r.Token, step, r.Lemma, r.Meaning})
			}
			fmt.Fprintln(out, renderTable(out, []string{"Token", "Step", "Lemma", "Meaning"}, table, nil))
			fmt.Fprintf(out, "%s profile, %s dictionary, %d lemmas, %d aliases\n",
				language.DisplayName(cfg.Deck.PrimaryLanguage), dict.Shape, len(dict.Lemmas), len(dict.Aliases))
			return nil
		},
	}

	cmd.Flags().StringVar(&dictionary, "dictionary", "", "Meaning dictionary JSON file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print matches as JSON")
	return cmd
}
