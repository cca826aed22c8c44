// Package config loads wordrel settings from built-in defaults, an optional
// profile file, the environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/raphaelgruber/wordrel/internal/parser"
)

var (
	// ErrMissingInput indicates a required input path was not configured.
	ErrMissingInput = errors.New("missing input")

	// ErrUnsupportedProfile indicates a profile file with an unknown extension.
	ErrUnsupportedProfile = errors.New("unsupported profile format")
)

// Mode selects which relation is checked for ambiguity.
type Mode string

const (
	ModeAntonyms Mode = "antonyms"
	ModeSynonyms Mode = "synonyms"
)

// Default patterns of the word relations corpus and wordpack files.
const (
	DefaultPrimaryWordRegex  = `^#([^\[]+)`
	DefaultAntonymRegex      = `\[(?:contrast-manual|contrast)=\d+\.\d+\]:([^;]+)`
	DefaultAntonymScoreRegex = `\[(?:contrast-manual|contrast)-score\]:([^;]+)`

	// Synonyms used to expand antonyms.
	DefaultAntonymModeSynonymRegex      = `\[(?:syn|syn-[^=\]]+)=\d+\.\d+\]:([^;]+)`
	DefaultAntonymModeSynonymScoreRegex = `\[(?:syn|syn-.*?)-score\]:([^;]+)`

	// Synonyms checked on their own, including looser relation tags.
	DefaultSynonymRegex      = `\[(?:associated|syn|broader|custom-list|handcraft|memberof|narrower)[\w\s\-\{\}]*?=\d+\.\d+\]:([^;]+)`
	DefaultSynonymScoreRegex = `\[(?:associated|syn|broader|custom-list|handcraft|memberof|narrower)[\w\s\-\{\}]*?-score\]:([^;]+)`

	DefaultWordpackTitleRegex = `^(### \d+ ###)`
	DefaultAntonymTermRegex   = `^@ ANT-([^=]+) =`
	DefaultSynonymTermRegex   = `^@ ([^=]+) =`
	DefaultWordlistRegex      = `= (.+)( · )?$`
	DefaultWordlistDelimiter  = " · "
)

// Config holds all configuration values.
type Config struct {
	Mode Mode `yaml:"-" toml:"-"`

	// Files
	Relations string `yaml:"relations" toml:"relations"`
	Wordpacks string `yaml:"wordpacks" toml:"wordpacks"`
	Output    string `yaml:"output" toml:"output"`

	// Word relations corpus
	PrimaryWordRegex  string  `yaml:"primary_word_regex" toml:"primary_word_regex"`
	AntonymRegex      string  `yaml:"antonym_regex" toml:"antonym_regex"`
	AntonymScoreRegex string  `yaml:"antonym_score_regex" toml:"antonym_score_regex"`
	SynonymRegex      string  `yaml:"synonym_regex" toml:"synonym_regex"`
	SynonymScoreRegex string  `yaml:"synonym_score_regex" toml:"synonym_score_regex"`
	WordDelimiter     string  `yaml:"word_delimiter" toml:"word_delimiter"`
	ScoreCutoff       float64 `yaml:"score_cutoff" toml:"score_cutoff"`
	AntonymCutoff     float64 `yaml:"antonym_cutoff" toml:"antonym_cutoff"`

	// Wordpacks file
	WordpackTitleRegex string `yaml:"wordpack_title_regex" toml:"wordpack_title_regex"`
	TermRegex          string `yaml:"term_regex" toml:"term_regex"`
	WordlistRegex      string `yaml:"wordlist_regex" toml:"wordlist_regex"`
	WordlistDelimiter  string `yaml:"wordlist_delimiter" toml:"wordlist_delimiter"`

	// Output
	TermPrefix string `yaml:"term_prefix" toml:"term_prefix"`

	// Logging
	LogFile  string `yaml:"log_file" toml:"log_file"`
	LogLevel string `yaml:"log_level" toml:"log_level"`
}

// Defaults returns the built-in settings for mode.
func Defaults(mode Mode) Config {
	cfg := Config{
		Mode:               mode,
		Output:             "output.txt",
		PrimaryWordRegex:   DefaultPrimaryWordRegex,
		AntonymRegex:       DefaultAntonymRegex,
		AntonymScoreRegex:  DefaultAntonymScoreRegex,
		WordDelimiter:      "|",
		AntonymCutoff:      1.0,
		WordpackTitleRegex: DefaultWordpackTitleRegex,
		WordlistRegex:      DefaultWordlistRegex,
		WordlistDelimiter:  DefaultWordlistDelimiter,
		LogLevel:           "INFO",
	}

	switch mode {
	case ModeSynonyms:
		cfg.SynonymRegex = DefaultSynonymRegex
		cfg.SynonymScoreRegex = DefaultSynonymScoreRegex
		cfg.ScoreCutoff = 6.0
		cfg.TermRegex = DefaultSynonymTermRegex
	default:
		cfg.SynonymRegex = DefaultAntonymModeSynonymRegex
		cfg.SynonymScoreRegex = DefaultAntonymModeSynonymScoreRegex
		cfg.ScoreCutoff = 5.0
		cfg.TermRegex = DefaultAntonymTermRegex
		cfg.TermPrefix = "ANT-"
	}

	return cfg
}

// Load builds the configuration for mode: defaults, then the profile file
// at profilePath (if not empty), then .env and WORDREL_* environment variables.
func Load(mode Mode, profilePath string) (Config, error) {
	cfg := Defaults(mode)

	if profilePath != "" {
		if err := LoadProfile(profilePath, &cfg); err != nil {
			return cfg, err
		}
	}

	// A missing .env file is fine.
	_ = godotenv.Load()

	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadProfile overlays the keys present in a YAML or TOML file onto cfg.
func LoadProfile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse YAML profile %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse TOML profile %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedProfile, path)
	}
	return nil
}

// ApplyEnv overlays WORDREL_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	setString(&cfg.Relations, "WORDREL_RELATIONS")
	setString(&cfg.Wordpacks, "WORDREL_WORDPACKS")
	setString(&cfg.Output, "WORDREL_OUTPUT")
	setString(&cfg.PrimaryWordRegex, "WORDREL_PRIMARY_WORD_REGEX")
	setString(&cfg.AntonymRegex, "WORDREL_ANTONYM_REGEX")
	setString(&cfg.AntonymScoreRegex, "WORDREL_ANTONYM_SCORE_REGEX")
	setString(&cfg.SynonymRegex, "WORDREL_SYNONYM_REGEX")
	setString(&cfg.SynonymScoreRegex, "WORDREL_SYNONYM_SCORE_REGEX")
	setString(&cfg.WordDelimiter, "WORDREL_WORD_DELIMITER")
	setString(&cfg.LogFile, "WORDREL_LOG_FILE")
	setString(&cfg.LogLevel, "WORDREL_LOG_LEVEL")

	if err := setFloat(&cfg.ScoreCutoff, "WORDREL_SCORE_CUTOFF"); err != nil {
		return err
	}
	return setFloat(&cfg.AntonymCutoff, "WORDREL_ANTONYM_CUTOFF")
}

// Validate checks that the configuration can drive a detection run.
func (c Config) Validate() error {
	if c.Relations == "" {
		return fmt.Errorf("%w: word relations file is required", ErrMissingInput)
	}
	if c.Wordpacks == "" {
		return fmt.Errorf("%w: wordpacks file is required", ErrMissingInput)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output path is required", ErrMissingInput)
	}
	if c.WordDelimiter == "" || c.WordlistDelimiter == "" {
		return fmt.Errorf("%w: delimiters cannot be empty", parser.ErrInvalidPattern)
	}

	patterns := []struct{ name, expr string }{
		{"primary word", c.PrimaryWordRegex},
		{"synonym", c.SynonymRegex},
		{"synonym score", c.SynonymScoreRegex},
		{"wordpack title", c.WordpackTitleRegex},
		{"term", c.TermRegex},
		{"wordlist", c.WordlistRegex},
	}
	if c.Mode != ModeSynonyms {
		patterns = append(patterns,
			struct{ name, expr string }{"antonym", c.AntonymRegex},
			struct{ name, expr string }{"antonym score", c.AntonymScoreRegex},
		)
	}
	for _, p := range patterns {
		if p.expr == "" {
			return fmt.Errorf("%w: %s pattern is empty", parser.ErrInvalidPattern, p.name)
		}
		if _, err := regexp.Compile(p.expr); err != nil {
			return fmt.Errorf("%w: %s pattern: %v", parser.ErrInvalidPattern, p.name, err)
		}
	}
	return nil
}

// AntonymSpec returns the corpus settings for antonym relations.
func (c Config) AntonymSpec() parser.RelationSpec {
	return parser.RelationSpec{
		Patterns: parser.RelationPatterns{
			Primary: c.PrimaryWordRegex,
			Words:   c.AntonymRegex,
			Score:   c.AntonymScoreRegex,
		},
		Delimiter: c.WordDelimiter,
		Cutoff:    c.AntonymCutoff,
	}
}

// SynonymSpec returns the corpus settings for synonym relations.
func (c Config) SynonymSpec() parser.RelationSpec {
	return parser.RelationSpec{
		Patterns: parser.RelationPatterns{
			Primary: c.PrimaryWordRegex,
			Words:   c.SynonymRegex,
			Score:   c.SynonymScoreRegex,
		},
		Delimiter: c.WordDelimiter,
		Cutoff:    c.ScoreCutoff,
	}
}

// WordpackPatterns returns the wordpacks file layout.
func (c Config) WordpackPatterns() parser.WordpackPatterns {
	return parser.WordpackPatterns{
		Title:     c.WordpackTitleRegex,
		Term:      c.TermRegex,
		Wordlist:  c.WordlistRegex,
		Delimiter: c.WordlistDelimiter,
	}
}

// Level returns the configured log level.
func (c Config) Level() slog.Level {
	return ParseLogLevel(c.LogLevel)
}

func setString(dst *string, key string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func setFloat(dst *float64, key string) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = f
	return nil
}

// ParseLogLevel maps a level name to a slog level, defaulting to INFO.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
