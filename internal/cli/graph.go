package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/wordrel/internal/config"
	"github.com/raphaelgruber/wordrel/internal/report"
	"github.com/raphaelgruber/wordrel/internal/service"
)

var (
	graphRelation string
	graphFlags    config.Config
)

var graphCmd = &cobra.Command{
	Use:   "graph [term...]",
	Short: "Inspect a relation graph built from the word relations file",
	Long: `Build one relation graph from the word relations file and print the
related words of each given term. Without terms, print graph statistics.

The antonym graph uses the antonym mode patterns, the synonym graph the
synonym mode patterns.

Examples:
  wordrel graph -r relations.txt huge small
  wordrel graph -r relations.txt --relation antonym huge`,
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().StringVar(&graphRelation, "relation", string(service.RelationSynonym), "relation to inspect (antonym, synonym)")
	bindCorpusFlags(graphCmd, &graphFlags, config.Defaults(config.ModeAntonyms), true)
}

func runGraph(cmd *cobra.Command, args []string) error {
	relation := service.Relation(strings.ToLower(graphRelation))

	var mode config.Mode
	switch relation {
	case service.RelationAntonym:
		mode = config.ModeAntonyms
	case service.RelationSynonym:
		mode = config.ModeSynonyms
	default:
		return fmt.Errorf("invalid relation %q (expected antonym or synonym)", graphRelation)
	}

	cfg, err := loadConfig(cmd, mode, &graphFlags)
	if err != nil {
		return err
	}
	if cfg.Relations == "" {
		return fmt.Errorf("%w: word relations file is required", config.ErrMissingInput)
	}

	logger, cleanup := newLogger(cfg)
	defer closeLogger(cleanup)

	g, stats, err := service.NewDetectService(logger, nil).LoadRelations(cfg, relation, service.RunOptions{})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintln(out, defaultTheme.statusStyle().Render(fmt.Sprintf("%s graph", relation)))
		fmt.Fprintf(out, "  Nodes:          %d\n", g.Len())
		fmt.Fprintf(out, "  Edges:          %d\n", g.EdgeCount())
		fmt.Fprintf(out, "  Lines read:     %d\n", stats.Lines)
		fmt.Fprintf(out, "  Lines skipped:  %d\n", stats.Skipped)
		fmt.Fprintf(out, "  Terms dropped:  %d\n", stats.DroppedTerms)
		fmt.Fprintf(out, "  Below cutoff:   %d\n", stats.BelowCutoff)
		return nil
	}

	for _, t := range args {
		if !g.HasNode(t) {
			fmt.Fprintf(out, "%s: %s\n", t, defaultTheme.hintStyle().Render("not in graph"))
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", t, strings.Join(g.Neighbors(t), report.DefaultSeparator))
	}
	return nil
}
