package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/raphaelgruber/wordrel/internal/config"
	"github.com/raphaelgruber/wordrel/internal/metrics"
	"github.com/raphaelgruber/wordrel/internal/service"
)

var (
	antonymFlags config.Config
	synonymFlags config.Config
)

var antonymsCmd = &cobra.Command{
	Use:   "antonyms",
	Short: "Highlight related terms that are antonyms of another base term",
	Long: `Highlight related terms of each wordpack that are antonyms of another base
term in the same wordpack. Antonyms are expanded by their synonyms before
they are compared.

Examples:
  wordrel antonyms -r relations.txt -w wordpacks.txt
  wordrel antonyms -r relations.txt -w wordpacks.txt -o flagged.txt -c 6.5
  wordrel antonyms --config profile.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDetect(cmd, config.ModeAntonyms, &antonymFlags)
	},
}

var synonymsCmd = &cobra.Command{
	Use:   "synonyms",
	Short: "Highlight related terms that are synonyms of another base term",
	Long: `Highlight related terms of each wordpack that are synonyms of another base
term in the same wordpack.

Examples:
  wordrel synonyms -r relations.txt -w wordpacks.txt
  wordrel synonyms -r relations.txt -w wordpacks.txt -c 7`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDetect(cmd, config.ModeSynonyms, &synonymFlags)
	},
}

func init() {
	antonymDefaults := config.Defaults(config.ModeAntonyms)
	bindCorpusFlags(antonymsCmd, &antonymFlags, antonymDefaults, true)
	bindWordpackFlags(antonymsCmd, &antonymFlags, antonymDefaults)

	synonymDefaults := config.Defaults(config.ModeSynonyms)
	bindCorpusFlags(synonymsCmd, &synonymFlags, synonymDefaults, false)
	bindWordpackFlags(synonymsCmd, &synonymFlags, synonymDefaults)
}

func runDetect(cmd *cobra.Command, mode config.Mode, local *config.Config) error {
	cfg, err := loadConfig(cmd, mode, local)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, cleanup := newLogger(cfg)
	defer closeLogger(cleanup)

	svc := service.NewDetectService(logger, metrics.NewCollector())
	run := func(ctx context.Context, opts service.RunOptions) (*service.RunResult, error) {
		return svc.Run(ctx, cfg, opts)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var result *service.RunResult
	if showProgress() {
		result, err = runWithProgress(ctx, run)
	} else {
		result, err = run(ctx, service.RunOptions{})
	}
	if err != nil {
		return fmt.Errorf("%s: %w", mode, err)
	}

	fmt.Fprint(cmd.OutOrStdout(), renderSummary(defaultTheme, result, cfg.Output, verbose))
	return nil
}

// showProgress reports whether the interactive progress display is used.
func showProgress() bool {
	return !noProgress && term.IsTerminal(int(os.Stderr.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
