package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/raphaelgruber/wordrel/internal/graph"
)

// ErrInvalidPattern indicates a regular expression that cannot be used for parsing.
var ErrInvalidPattern = errors.New("invalid pattern")

const (
	defaultProgressEvery = 100000
	maxLineSize          = 4 * 1024 * 1024
)

// RelationPatterns are the regular expressions used to read a corpus line.
// Each pattern must capture its value in group 1.
type RelationPatterns struct {
	Primary string // primary term, matched at the start of the line
	Words   string // one relation group of delimiter-joined terms
	Score   string // the scores of one relation group, aligned with Words
}

// RelationSpec selects one relation (antonyms, synonyms) out of the corpus.
type RelationSpec struct {
	Patterns  RelationPatterns
	Delimiter string
	Cutoff    float64
}

// LoadOptions tunes how a corpus is loaded.
type LoadOptions struct {
	Logger *slog.Logger

	// LineCallback is called with the graph after every parsed line.
	LineCallback func(*graph.Graph)
	// ResetAfterLine clears the graph after every parsed line (and after
	// LineCallback), turning the loader into a per-line stream.
	ResetAfterLine bool

	// ProgressEvery logs a debug progress line every N lines (default 100000).
	ProgressEvery int
	// OnProgress receives bytes read and total bytes while loading a file.
	OnProgress func(read, total int64)
}

// LoadStats summarizes a corpus load.
type LoadStats struct {
	Lines        int // lines read
	Skipped      int // lines without a primary term
	Edges        int // edges in the resulting graph
	DroppedTerms int // terms dropped for a missing or unparseable score
	BelowCutoff  int // terms dropped for scoring below the cutoff
}

// RelationLoader builds relation graphs from a word relations corpus.
// Patterns are compiled once and reused for every load.
type RelationLoader struct {
	primary *regexp.Regexp
	words   *regexp.Regexp
	score   *regexp.Regexp
	spec    RelationSpec
	opts    LoadOptions
	logger  *slog.Logger
}

// NewRelationLoader compiles the patterns of spec.
func NewRelationLoader(spec RelationSpec, opts LoadOptions) (*RelationLoader, error) {
	if spec.Delimiter == "" {
		return nil, fmt.Errorf("%w: empty word delimiter", ErrInvalidPattern)
	}

	primary, err := compileCapturing("primary word", spec.Patterns.Primary)
	if err != nil {
		return nil, err
	}
	words, err := compileCapturing("relation words", spec.Patterns.Words)
	if err != nil {
		return nil, err
	}
	score, err := compileCapturing("relation score", spec.Patterns.Score)
	if err != nil {
		return nil, err
	}

	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = defaultProgressEvery
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &RelationLoader{
		primary: primary,
		words:   words,
		score:   score,
		spec:    spec,
		opts:    opts,
		logger:  logger,
	}, nil
}

// LoadFile opens path and loads its relations. The file is closed before returning.
func (l *RelationLoader) LoadFile(path string) (*graph.Graph, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open word relations file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if l.opts.OnProgress != nil {
		info, err := f.Stat()
		if err != nil {
			return nil, LoadStats{}, fmt.Errorf("stat word relations file: %w", err)
		}
		r = &progressReader{r: f, total: info.Size(), report: l.opts.OnProgress}
	}

	return l.Load(r, path)
}

// Load reads a corpus from r. name identifies the source in log messages.
// Malformed lines are logged and skipped; only read errors are returned.
func (l *RelationLoader) Load(r io.Reader, name string) (*graph.Graph, LoadStats, error) {
	g := graph.New()
	var stats LoadStats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		stats.Lines++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if !l.parseLine(g, line, stats.Lines, &stats) {
			stats.Skipped++
			continue
		}

		if stats.Lines%l.opts.ProgressEvery == 0 {
			l.logger.Debug("processing word relations file", "file", name, "line", stats.Lines)
		}

		if l.opts.LineCallback != nil {
			l.opts.LineCallback(g)
		}
		if l.opts.ResetAfterLine {
			g.Clear()
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("read %s: %w", name, err)
	}

	stats.Edges = g.EdgeCount()
	if stats.Lines > 0 {
		l.logger.Info("finished processing word relations file",
			"file", name,
			"lines", stats.Lines,
			"skipped", stats.Skipped,
			"nodes", g.Len(),
			"edges", stats.Edges,
		)
	}

	return g, stats, nil
}

// parseLine adds the relations of one corpus line to g.
// It returns false when the line has no primary term.
func (l *RelationLoader) parseLine(g *graph.Graph, line string, lineNum int, stats *LoadStats) bool {
	loc := l.primary.FindStringSubmatchIndex(line)
	if loc == nil || loc[0] != 0 || loc[2] < 0 {
		l.logger.Warn("primary word not found", "line", lineNum)
		return false
	}
	primary := line[loc[2]:loc[3]]
	g.AddNode(primary)

	scores := newScoreQueue(l.score.FindAllStringSubmatch(line, -1), l.spec.Delimiter)

	for _, match := range l.words.FindAllStringSubmatch(line, -1) {
		terms := strings.Split(match[1], l.spec.Delimiter)

		groupScores, ok := scores.next()
		if !ok {
			// The whole group is dropped: without scores nothing can pass the cutoff.
			l.logger.Warn("unable to parse scores",
				"line", lineNum,
				"pattern", l.spec.Patterns.Score,
				"primary", primary,
				"dropped", len(terms),
			)
			stats.DroppedTerms += len(terms)
			continue
		}

		for i, term := range terms {
			if term == "" {
				continue
			}
			if i >= len(groupScores) {
				l.logger.Warn("related word does not have a matching score",
					"line", lineNum, "primary", primary, "word", term)
				stats.DroppedTerms++
				continue
			}
			score, err := strconv.ParseFloat(strings.TrimSpace(groupScores[i]), 64)
			if err != nil {
				l.logger.Warn("related word has an invalid score",
					"line", lineNum, "primary", primary, "word", term, "score", groupScores[i])
				stats.DroppedTerms++
				continue
			}
			if score < l.spec.Cutoff {
				stats.BelowCutoff++
				continue
			}
			g.AddNode(term)
			g.AddEdge(primary, term)
		}
	}

	return true
}

// scoreQueue hands out the score groups of a line one relation group at a time.
type scoreQueue struct {
	groups    [][]string
	delimiter string
	pos       int
}

func newScoreQueue(groups [][]string, delimiter string) *scoreQueue {
	return &scoreQueue{groups: groups, delimiter: delimiter}
}

// next returns the scores of the next group, or false once all groups are used.
func (q *scoreQueue) next() ([]string, bool) {
	if q.pos >= len(q.groups) {
		return nil, false
	}
	group := q.groups[q.pos]
	q.pos++
	return strings.Split(group[1], q.delimiter), true
}

// progressReader reports cumulative bytes read.
type progressReader struct {
	r      io.Reader
	read   int64
	total  int64
	report func(read, total int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	p.report(p.read, p.total)
	return n, err
}

// compileCapturing compiles expr and requires at least one capture group.
func compileCapturing(name, expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, fmt.Errorf("%w: %s pattern is empty", ErrInvalidPattern, name)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s pattern: %v", ErrInvalidPattern, name, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("%w: %s pattern %q has no capture group", ErrInvalidPattern, name, expr)
	}
	return re, nil
}
