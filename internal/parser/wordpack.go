// Package parser reads the two line-oriented inputs of wordrel: the word
// relations corpus and the wordpacks file.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/raphaelgruber/wordrel/internal/models"
)

// WordpackPatterns describe the layout of a wordpacks file.
type WordpackPatterns struct {
	Title     string // section title in group 1
	Term      string // base term in group 1
	Wordlist  string // delimiter-joined related terms in group 1
	Delimiter string
}

// WordpackReader produces wordpack records from a wordpacks file.
type WordpackReader struct {
	title     *regexp.Regexp
	term      *regexp.Regexp
	wordlist  *regexp.Regexp
	delimiter string
	logger    *slog.Logger
}

// NewWordpackReader compiles the patterns. logger may be nil.
func NewWordpackReader(p WordpackPatterns, logger *slog.Logger) (*WordpackReader, error) {
	if p.Delimiter == "" {
		return nil, fmt.Errorf("%w: empty wordlist delimiter", ErrInvalidPattern)
	}
	title, err := compileCapturing("wordpack title", p.Title)
	if err != nil {
		return nil, err
	}
	term, err := compileCapturing("term", p.Term)
	if err != nil {
		return nil, err
	}
	wordlist, err := compileCapturing("wordlist", p.Wordlist)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &WordpackReader{
		title:     title,
		term:      term,
		wordlist:  wordlist,
		delimiter: p.Delimiter,
		logger:    logger,
	}, nil
}

// Records returns a lazy sequence of the wordpacks in path. Every range over
// the sequence opens the file again and parses it from the start; the file
// is closed when the loop finishes or breaks. An open or read error is
// yielded once and ends the sequence.
func (w *WordpackReader) Records(path string) iter.Seq2[models.Wordpack, error] {
	return func(yield func(models.Wordpack, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(models.Wordpack{}, fmt.Errorf("open wordpacks file: %w", err))
			return
		}
		defer f.Close()

		w.logger.Info("processing wordpack file", "file", path)
		w.Scan(f)(yield)
	}
}

// Scan returns a lazy sequence of the wordpacks read from r.
// A section is emitted only once it has at least one term.
func (w *WordpackReader) Scan(r io.Reader) iter.Seq2[models.Wordpack, error] {
	return func(yield func(models.Wordpack, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		var title string
		titled := false
		groups := models.NewTermGroups()

		for scanner.Scan() {
			line := strings.TrimSuffix(scanner.Text(), "\r")

			if m := w.title.FindStringSubmatch(line); m != nil {
				if titled && groups.Len() > 0 {
					if !yield(models.Wordpack{Title: title, Groups: groups}, nil) {
						return
					}
				}
				title = strings.TrimSpace(m[1])
				titled = true
				groups = models.NewTermGroups()
				w.logger.Debug("processing wordpack", "title", title)
				continue
			}

			// Lines before the first title belong to no wordpack.
			if !titled {
				continue
			}

			tm := w.term.FindStringSubmatch(line)
			if tm == nil {
				continue
			}
			wm := w.wordlist.FindStringSubmatch(line)
			if wm == nil {
				continue
			}

			groups.Set(strings.TrimSpace(tm[1]), w.splitWordlist(wm[1]))
		}
		if err := scanner.Err(); err != nil {
			yield(models.Wordpack{}, fmt.Errorf("read wordpacks: %w", err))
			return
		}

		if titled && groups.Len() > 0 {
			yield(models.Wordpack{Title: title, Groups: groups}, nil)
		}
	}
}

func (w *WordpackReader) splitWordlist(s string) []string {
	parts := strings.Split(strings.TrimSpace(s), w.delimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
