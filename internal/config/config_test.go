package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/wordrel/internal/parser"
)

func TestDefaults(t *testing.T) {
	ant := Defaults(ModeAntonyms)
	assert.Equal(t, 5.0, ant.ScoreCutoff)
	assert.Equal(t, 1.0, ant.AntonymCutoff)
	assert.Equal(t, DefaultAntonymTermRegex, ant.TermRegex)
	assert.Equal(t, "ANT-", ant.TermPrefix)
	assert.Equal(t, DefaultAntonymModeSynonymRegex, ant.SynonymRegex)

	syn := Defaults(ModeSynonyms)
	assert.Equal(t, 6.0, syn.ScoreCutoff)
	assert.Equal(t, DefaultSynonymTermRegex, syn.TermRegex)
	assert.Empty(t, syn.TermPrefix)
	assert.Equal(t, DefaultSynonymRegex, syn.SynonymRegex)
	assert.Equal(t, "output.txt", syn.Output)
}

func TestDefaults_PatternsCompile(t *testing.T) {
	for _, mode := range []Mode{ModeAntonyms, ModeSynonyms} {
		cfg := Defaults(mode)
		cfg.Relations = "relations.txt"
		cfg.Wordpacks = "wordpacks.txt"
		assert.NoError(t, cfg.Validate(), "mode %s", mode)

		_, err := parser.NewRelationLoader(cfg.SynonymSpec(), parser.LoadOptions{})
		assert.NoError(t, err)
		_, err = parser.NewWordpackReader(cfg.WordpackPatterns(), nil)
		assert.NoError(t, err)
	}
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "yaml",
			file:    "profile.yaml",
			content: "relations: corpus.txt\nscore_cutoff: 7.5\nterm_prefix: \"\"\n",
		},
		{
			name:    "toml",
			file:    "profile.toml",
			content: "relations = \"corpus.txt\"\nscore_cutoff = 7.5\nterm_prefix = \"\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			cfg := Defaults(ModeAntonyms)
			require.NoError(t, LoadProfile(path, &cfg))

			assert.Equal(t, "corpus.txt", cfg.Relations)
			assert.Equal(t, 7.5, cfg.ScoreCutoff)
			assert.Empty(t, cfg.TermPrefix)
			assert.Equal(t, DefaultAntonymRegex, cfg.AntonymRegex, "keys absent from the profile keep their defaults")
			assert.Equal(t, ModeAntonyms, cfg.Mode)
		})
	}
}

func TestLoadProfile_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.ini")
	require.NoError(t, os.WriteFile(path, []byte("x=1"), 0644))

	cfg := Defaults(ModeAntonyms)
	assert.ErrorIs(t, LoadProfile(path, &cfg), ErrUnsupportedProfile)
}

func TestLoad_EnvOverridesProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yml")
	require.NoError(t, os.WriteFile(path, []byte("relations: from-profile.txt\nwordpacks: packs.txt\n"), 0644))

	t.Setenv("WORDREL_RELATIONS", "from-env.txt")
	t.Setenv("WORDREL_SCORE_CUTOFF", "3.25")

	cfg, err := Load(ModeSynonyms, path)
	require.NoError(t, err)

	assert.Equal(t, "from-env.txt", cfg.Relations)
	assert.Equal(t, "packs.txt", cfg.Wordpacks)
	assert.Equal(t, 3.25, cfg.ScoreCutoff)
	assert.Equal(t, 3.25, cfg.SynonymSpec().Cutoff)
}

func TestLoad_BadEnvFloat(t *testing.T) {
	t.Setenv("WORDREL_ANTONYM_CUTOFF", "high")

	_, err := Load(ModeAntonyms, "")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Defaults(ModeAntonyms)
	valid.Relations = "relations.txt"
	valid.Wordpacks = "wordpacks.txt"

	tests := []struct {
		name    string
		edit    func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"missing relations", func(c *Config) { c.Relations = "" }, ErrMissingInput},
		{"missing wordpacks", func(c *Config) { c.Wordpacks = "" }, ErrMissingInput},
		{"empty delimiter", func(c *Config) { c.WordDelimiter = "" }, parser.ErrInvalidPattern},
		{"bad antonym regex", func(c *Config) { c.AntonymRegex = `([` }, parser.ErrInvalidPattern},
		{"empty term regex", func(c *Config) { c.TermRegex = "" }, parser.ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.edit(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_SynonymModeIgnoresAntonymPatterns(t *testing.T) {
	cfg := Defaults(ModeSynonyms)
	cfg.Relations = "relations.txt"
	cfg.Wordpacks = "wordpacks.txt"
	cfg.AntonymRegex = ""

	assert.NoError(t, cfg.Validate())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", ParseLogLevel("debug").String())
	assert.Equal(t, "WARN", ParseLogLevel("warning").String())
	assert.Equal(t, "INFO", ParseLogLevel("nonsense").String())
}
