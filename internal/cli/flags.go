package cli

import (
	"github.com/spf13/cobra"

	"github.com/raphaelgruber/wordrel/internal/config"
)

// fieldsByFlag maps flag names to the config fields they set.
func fieldsByFlag(c *config.Config) map[string]any {
	return map[string]any{
		"relations":            &c.Relations,
		"wordpacks":            &c.Wordpacks,
		"output":               &c.Output,
		"primary-word-regex":   &c.PrimaryWordRegex,
		"antonym-regex":        &c.AntonymRegex,
		"antonym-score-regex":  &c.AntonymScoreRegex,
		"synonym-regex":        &c.SynonymRegex,
		"synonym-score-regex":  &c.SynonymScoreRegex,
		"word-delimiter":       &c.WordDelimiter,
		"score-cutoff":         &c.ScoreCutoff,
		"antonym-cutoff":       &c.AntonymCutoff,
		"wordpack-title-regex": &c.WordpackTitleRegex,
		"term-regex":           &c.TermRegex,
		"wordlist-regex":       &c.WordlistRegex,
		"wordlist-delimiter":   &c.WordlistDelimiter,
		"term-prefix":          &c.TermPrefix,
		"log-file":             &c.LogFile,
		"log-level":            &c.LogLevel,
	}
}

// overlayChanged copies the flags explicitly set on cmd from src into dst.
// Flags left at their default never override profile or environment values.
func overlayChanged(cmd *cobra.Command, src, dst *config.Config) {
	from := fieldsByFlag(src)
	to := fieldsByFlag(dst)

	for name, field := range from {
		if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
			continue
		}
		switch v := field.(type) {
		case *string:
			*to[name].(*string) = *v
		case *float64:
			*to[name].(*float64) = *v
		}
	}
}

// bindCorpusFlags registers the word relations flags on cmd, bound to c.
// Defaults shown in help come from d.
func bindCorpusFlags(cmd *cobra.Command, c *config.Config, d config.Config, antonyms bool) {
	f := cmd.Flags()
	f.StringVarP(&c.Relations, "relations", "r", d.Relations, "word relations file to use as input")
	f.StringVarP(&c.PrimaryWordRegex, "primary-word-regex", "p", d.PrimaryWordRegex, "regex to parse the primary word of a relations line")
	if antonyms {
		f.StringVarP(&c.AntonymRegex, "antonym-regex", "a", d.AntonymRegex, "regex to parse a list of antonyms")
		f.StringVar(&c.AntonymScoreRegex, "antonym-score-regex", d.AntonymScoreRegex, "regex to parse the scores of a list of antonyms")
		f.Float64Var(&c.AntonymCutoff, "antonym-cutoff", d.AntonymCutoff, "eliminate antonyms below this score")
	}
	f.StringVarP(&c.SynonymRegex, "synonym-regex", "s", d.SynonymRegex, "regex to parse a list of synonyms")
	f.StringVar(&c.SynonymScoreRegex, "synonym-score-regex", d.SynonymScoreRegex, "regex to parse the scores of a list of synonyms")
	f.StringVarP(&c.WordDelimiter, "word-delimiter", "d", d.WordDelimiter, "delimiter splitting a matched list into words")
	f.Float64VarP(&c.ScoreCutoff, "score-cutoff", "c", d.ScoreCutoff, "eliminate synonyms below this score")
}

// bindWordpackFlags registers the wordpack and output flags on cmd, bound to c.
func bindWordpackFlags(cmd *cobra.Command, c *config.Config, d config.Config) {
	f := cmd.Flags()
	f.StringVarP(&c.Wordpacks, "wordpacks", "w", d.Wordpacks, "wordpacks file to use as input")
	f.StringVarP(&c.Output, "output", "o", d.Output, "highlighted wordpacks output file path")
	f.StringVar(&c.WordpackTitleRegex, "wordpack-title-regex", d.WordpackTitleRegex, "regex to parse a wordpack title")
	f.StringVar(&c.TermRegex, "term-regex", d.TermRegex, "regex to parse the base term of a wordpack line")
	f.StringVar(&c.WordlistRegex, "wordlist-regex", d.WordlistRegex, "regex to parse the related terms of a wordpack line")
	f.StringVar(&c.WordlistDelimiter, "wordlist-delimiter", d.WordlistDelimiter, "delimiter between related terms")
	f.StringVar(&c.TermPrefix, "term-prefix", d.TermPrefix, "prefix written before every base term")
}
