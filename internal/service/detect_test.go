package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/wordrel/internal/config"
	"github.com/raphaelgruber/wordrel/internal/metrics"
)

const testCorpus = `#huge[contrast=9.0]:small;[contrast-score]:9.0;[syn=8.0]:vast;[syn-score]:8.0;
#small[contrast=9.0]:huge;[contrast-score]:9.0;[syn=9.0]:tiny|little;[syn-score]:9.0|7.0;
#big[syn=7.0]:large;[syn-score]:7.0;
this line has no primary word
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testConfig(t *testing.T, mode config.Mode, wordpacks string) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Defaults(mode)
	cfg.Relations = writeFile(t, dir, "relations.txt", testCorpus)
	cfg.Wordpacks = writeFile(t, dir, "wordpacks.txt", wordpacks)
	cfg.Output = filepath.Join(dir, "output.txt")
	return cfg
}

func readOutput(t *testing.T, cfg config.Config) string {
	t.Helper()
	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	return string(data)
}

func TestRun_Antonyms(t *testing.T) {
	cfg := testConfig(t, config.ModeAntonyms, strings.Join([]string{
		"### 1 ###",
		"@ ANT-big = tiny · little · slim",
		"@ ANT-huge = minor",
		"### 2 ###",
		"",
	}, "\n"))

	svc := NewDetectService(nil, metrics.NewCollector())
	result, err := svc.Run(context.Background(), cfg, RunOptions{})
	require.NoError(t, err)

	want := "### 1 ###\n" +
		"[ huge ] @ ANT-big = [ huge : tiny ] · [ huge : little ] · slim\n" +
		"@ ANT-huge = minor\n"
	assert.Equal(t, want, readOutput(t, cfg))

	assert.Equal(t, 1, result.Wordpacks)
	assert.Equal(t, 2, result.Terms)
	assert.Equal(t, 1, result.FlaggedTerms)
	assert.Equal(t, 2, result.Collisions)
	assert.Equal(t, 1, result.Graphs[RelationAntonym].Skipped)
	assert.Equal(t, 2, result.Graphs[RelationAntonym].Edges)
	assert.Equal(t, 4, result.Graphs[RelationSynonym].Edges)
	assert.Contains(t, result.Metrics.Ops, metrics.OpLoadGraph)
	assert.Equal(t, int64(2), result.Metrics.Ops[metrics.OpLoadGraph].Count)
	assert.Equal(t, int64(1), result.Metrics.Ops[metrics.OpDetect].Count)
}

func TestRun_Synonyms(t *testing.T) {
	cfg := testConfig(t, config.ModeSynonyms, strings.Join([]string{
		"### 7 ###",
		"@ big = vast · tiny",
		"@ huge = large",
		"@ small = enormous",
	}, "\n"))

	var progressed []Relation
	result, err := NewDetectService(nil, nil).Run(context.Background(), cfg, RunOptions{
		OnLoadProgress: func(r Relation, read, total int64) {
			if read == total {
				progressed = append(progressed, r)
			}
		},
	})
	require.NoError(t, err)

	want := "### 7 ###\n" +
		"[ huge, small ] @ big = [ huge : vast ] · [ small : tiny ]\n" +
		"[ big ] @ huge = [ big : large ]\n" +
		"@ small = enormous\n"
	assert.Equal(t, want, readOutput(t, cfg))

	assert.Equal(t, 2, result.FlaggedTerms)
	assert.NotContains(t, result.Graphs, RelationAntonym, "synonym mode loads only the synonym graph")
	assert.Contains(t, progressed, RelationSynonym)
}

func TestRun_MissingRelationsFile(t *testing.T) {
	cfg := testConfig(t, config.ModeAntonyms, "### 1 ###\n@ ANT-a = b\n")
	cfg.Relations = filepath.Join(t.TempDir(), "missing.txt")

	_, err := NewDetectService(nil, nil).Run(context.Background(), cfg, RunOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, statErr := os.Stat(cfg.Output)
	assert.ErrorIs(t, statErr, os.ErrNotExist, "no partial output is written")
}

func TestRun_MissingWordpacksFile(t *testing.T) {
	cfg := testConfig(t, config.ModeSynonyms, "")
	cfg.Wordpacks = filepath.Join(t.TempDir(), "missing.txt")

	_, err := NewDetectService(nil, nil).Run(context.Background(), cfg, RunOptions{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, statErr := os.Stat(cfg.Output)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := testConfig(t, config.ModeSynonyms, "")
	cfg.Relations = ""

	_, err := NewDetectService(nil, nil).Run(context.Background(), cfg, RunOptions{})
	assert.ErrorIs(t, err, config.ErrMissingInput)
}

func TestRun_Cancelled(t *testing.T) {
	cfg := testConfig(t, config.ModeSynonyms, "### 1 ###\n@ big = vast\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDetectService(nil, nil).Run(ctx, cfg, RunOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadRelations(t *testing.T) {
	cfg := testConfig(t, config.ModeAntonyms, "")
	svc := NewDetectService(nil, nil)

	g, stats, err := svc.LoadRelations(cfg, RelationSynonym, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"tiny", "little"}, g.Neighbors("small"))
	assert.Equal(t, 4, stats.Lines)

	_, _, err = svc.LoadRelations(cfg, Relation("hypernym"), RunOptions{})
	assert.Error(t, err)
}
