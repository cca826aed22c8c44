// Package service runs the wordpack ambiguity detection pipeline.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/raphaelgruber/wordrel/internal/ambiguity"
	"github.com/raphaelgruber/wordrel/internal/config"
	"github.com/raphaelgruber/wordrel/internal/graph"
	"github.com/raphaelgruber/wordrel/internal/metrics"
	"github.com/raphaelgruber/wordrel/internal/parser"
	"github.com/raphaelgruber/wordrel/internal/report"
)

// Relation names a relation that can be loaded from the corpus.
type Relation string

const (
	RelationAntonym Relation = "antonym"
	RelationSynonym Relation = "synonym"
)

// DetectService loads relation graphs and checks wordpacks against them.
type DetectService struct {
	logger  *slog.Logger
	metrics *metrics.Collector
}

// NewDetectService creates a new detect service. A nil collector is replaced
// by a fresh one.
func NewDetectService(logger *slog.Logger, mc *metrics.Collector) *DetectService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if mc == nil {
		mc = metrics.NewCollector()
	}
	return &DetectService{logger: logger, metrics: mc}
}

// RunOptions configures a detection run.
type RunOptions struct {
	// OnLoadProgress receives corpus bytes read while a graph loads.
	OnLoadProgress func(relation Relation, read, total int64)
}

// RunResult summarizes a detection run.
type RunResult struct {
	Wordpacks    int
	Terms        int
	FlaggedTerms int
	Collisions   int
	Graphs       map[Relation]parser.LoadStats
	Metrics      metrics.Snapshot
}

// LoadRelations loads the graph of one relation from the corpus in cfg.
func (s *DetectService) LoadRelations(cfg config.Config, relation Relation, opts RunOptions) (*graph.Graph, parser.LoadStats, error) {
	var spec parser.RelationSpec
	switch relation {
	case RelationAntonym:
		spec = cfg.AntonymSpec()
	case RelationSynonym:
		spec = cfg.SynonymSpec()
	default:
		return nil, parser.LoadStats{}, fmt.Errorf("unknown relation %q", relation)
	}

	loadOpts := parser.LoadOptions{Logger: s.logger.With("relation", string(relation))}
	if opts.OnLoadProgress != nil {
		loadOpts.OnProgress = func(read, total int64) {
			opts.OnLoadProgress(relation, read, total)
		}
	}

	loader, err := parser.NewRelationLoader(spec, loadOpts)
	if err != nil {
		return nil, parser.LoadStats{}, fmt.Errorf("%s patterns: %w", relation, err)
	}

	var g *graph.Graph
	var stats parser.LoadStats
	err = s.metrics.Time(metrics.OpLoadGraph, func() error {
		var err error
		g, stats, err = loader.LoadFile(cfg.Relations)
		return err
	})
	if err != nil {
		return nil, stats, fmt.Errorf("load %s graph: %w", relation, err)
	}
	return g, stats, nil
}

// Run loads the relation graphs, then streams the wordpacks one at a time:
// each is checked for ambiguous terms and written to the output file before
// the next one is read.
//
// In antonym mode the synonym graph expands every antonym by its synonyms.
// In synonym mode only the synonym graph is used.
func (s *DetectService) Run(ctx context.Context, cfg config.Config, opts RunOptions) (*RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	result := &RunResult{Graphs: make(map[Relation]parser.LoadStats)}

	var primary, auxiliary ambiguity.Relations
	if cfg.Mode == config.ModeSynonyms {
		synonyms, stats, err := s.LoadRelations(cfg, RelationSynonym, opts)
		if err != nil {
			return nil, err
		}
		result.Graphs[RelationSynonym] = stats
		primary = synonyms
	} else {
		antonyms, stats, err := s.LoadRelations(cfg, RelationAntonym, opts)
		if err != nil {
			return nil, err
		}
		result.Graphs[RelationAntonym] = stats

		synonyms, stats, err := s.LoadRelations(cfg, RelationSynonym, opts)
		if err != nil {
			return nil, err
		}
		result.Graphs[RelationSynonym] = stats
		primary, auxiliary = antonyms, synonyms
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := parser.NewWordpackReader(cfg.WordpackPatterns(), s.logger)
	if err != nil {
		return nil, fmt.Errorf("wordpack patterns: %w", err)
	}
	// Fail before the output file is truncated.
	if _, err := os.Stat(cfg.Wordpacks); err != nil {
		return nil, fmt.Errorf("wordpacks file: %w", err)
	}
	detector := ambiguity.NewDetector(primary, auxiliary, s.logger)

	if err := s.writeReport(ctx, cfg, reader, detector, result); err != nil {
		return nil, err
	}

	result.Metrics = s.metrics.Snapshot()
	s.logger.Info("detection finished",
		"mode", string(cfg.Mode),
		"wordpacks", result.Wordpacks,
		"flagged_terms", result.FlaggedTerms,
		"collisions", result.Collisions,
		"output", cfg.Output,
	)
	return result, nil
}

func (s *DetectService) writeReport(ctx context.Context, cfg config.Config, reader *parser.WordpackReader, detector *ambiguity.Detector, result *RunResult) (err error) {
	out, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", cerr)
		}
	}()

	w := report.NewWriter(out, report.Options{TermPrefix: cfg.TermPrefix})

	mark := time.Now()
	for wp, err := range reader.Records(cfg.Wordpacks) {
		if err != nil {
			return err
		}
		s.metrics.RecordTiming(metrics.OpParseWordpack, time.Since(mark))

		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		found := detector.Detect(wp.Groups)
		s.metrics.RecordTiming(metrics.OpDetect, time.Since(start))

		if err := s.metrics.Time(metrics.OpWriteReport, func() error {
			return w.WriteWordpack(wp, found)
		}); err != nil {
			return err
		}

		result.Wordpacks++
		result.Terms += wp.Groups.Len()
		result.FlaggedTerms += found.FlaggedTerms()
		result.Collisions += found.TotalCollisions()

		mark = time.Now()
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
