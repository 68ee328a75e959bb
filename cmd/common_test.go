package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valpere/perevod/internal/config"
	"github.com/valpere/perevod/internal/detector"
	"github.com/valpere/perevod/internal/lang"
	"github.com/valpere/perevod/internal/pipeline"
)

type countingCompleter struct {
	calls atomic.Int32
}

func (c *countingCompleter) Complete(context.Context, string, string) (string, error) {
	c.calls.Add(1)
	return "Привет", nil
}

// useConfig installs the default configuration, adjusted by mutate, for one test.
func useConfig(t *testing.T, mutate func(c *config.Config)) {
	t.Helper()
	loaded, err := config.Load(newViper())
	require.NoError(t, err)
	loaded.DB = filepath.Join(t.TempDir(), "perevod.db")
	if mutate != nil {
		mutate(loaded)
	}
	prev := cfg
	cfg = loaded
	t.Cleanup(func() { cfg = prev })
}

func TestNewPipeline_DefaultSendsEveryRequest(t *testing.T) {
	useConfig(t, nil)
	db, err := openStore(cfg.DB)
	require.NoError(t, err)
	defer db.Close()

	cc := &countingCompleter{}
	p := newPipeline(cc, db)
	req, err := pipeline.NewRequest("hello", lang.Pair{Source: lang.English, Target: lang.Russian})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := p.Translate(context.Background(), req)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), cc.calls.Load())

	records, err := db.ListRecords(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, records, 3, "history is still kept")
}

func TestNewPipeline_CacheEnabled(t *testing.T) {
	useConfig(t, func(c *config.Config) { c.Cache = true })
	db, err := openStore(cfg.DB)
	require.NoError(t, err)
	defer db.Close()

	cc := &countingCompleter{}
	p := newPipeline(cc, db)
	req, err := pipeline.NewRequest("hello", lang.Pair{Source: lang.English, Target: lang.Russian})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := p.Translate(context.Background(), req)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), cc.calls.Load())
}

func TestResolvePair_AutoReusesDetector(t *testing.T) {
	var built atomic.Int32
	prev := newDetector
	newDetector = func() *detector.Detector {
		built.Add(1)
		return prev()
	}
	t.Cleanup(func() { newDetector = prev })

	det := newDetector()
	require.Equal(t, int32(1), built.Load())

	pair, err := resolvePair(det, "auto", "", false, "Вчера вечером я ходила в магазин.")
	require.NoError(t, err)
	assert.Equal(t, lang.Pair{Source: lang.Russian, Target: lang.English}, pair)
	assert.Equal(t, int32(1), built.Load(), "a passed detector must be reused")

	_, err = resolvePair(nil, "auto", "ru", false, "I went to the store.")
	require.NoError(t, err)
	assert.Equal(t, int32(2), built.Load())
}

func TestResolvePair(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		swap     bool
		want     lang.Pair
		wantErr  bool
	}{
		{"defaults", "en", "", false, lang.Pair{Source: lang.English, Target: lang.Russian}, false},
		{"russian source", "ru", "", false, lang.Pair{Source: lang.Russian, Target: lang.English}, false},
		{"regional tags", "en-GB", "ru-RU", false, lang.Pair{Source: lang.English, Target: lang.Russian}, false},
		{"swap", "en", "ru", true, lang.Pair{Source: lang.Russian, Target: lang.English}, false},
		{"same language", "ru", "ru", false, lang.Pair{Source: lang.Russian, Target: lang.Russian}, false},
		{"unsupported", "de", "", false, lang.Pair{}, true},
		{"bad target", "en", "xx-invalid-tag-", false, lang.Pair{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolvePair(nil, tt.from, tt.to, tt.swap, "hello")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0644))

	got, err := readInput(path, []string{"ignored"}, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "from file", got)

	got, err = readInput("", []string{"from", "args"}, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "from args", got)

	got, err = readInput("", nil, strings.NewReader("from stdin\n"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin\n", got)

	_, err = readInput(filepath.Join(t.TempDir(), "missing.txt"), nil, nil)
	assert.Error(t, err)
}

func TestWriteOutput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")
	require.NoError(t, writeOutput(path, "Привет"))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Привет", string(b))
}
