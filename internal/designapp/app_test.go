package designapp

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"lamp/internal/appshell"
	"lamp/internal/config"
	"lamp/internal/store"
	"lamp/internal/writers"
	"lamp/pkg/api"
)

func randomBases(seed int64, n int) string {
	rng := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	for i := range b {
		b[i] = "ACGT"[rng.Intn(4)]
	}
	return string(b)
}

func writeFasta(t *testing.T, records ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "targets.fa")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(records, "")), 0o644))
	return path
}

func run(t *testing.T, argv ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code = Run(argv, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestRun_TSV(t *testing.T) {
	fa := writeFasta(t,
		">rand\n"+randomBases(1, 1260)+"\n",
		">short\n"+strings.Repeat("ACGT", 25)+"\n",
	)
	code, out, stderr := run(t, "-o", "tsv", "--header", "-n", "3", "-q", fa)
	require.Equal(t, appshell.ExitOK, code, stderr)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	require.LessOrEqual(t, len(lines), 4)
	assert.Equal(t, writers.TSVHeader, lines[0])
	for i, l := range lines[1:] {
		cols := strings.Split(l, "\t")
		assert.Equal(t, "rand", cols[0])
		assert.Equal(t, []string{"1", "2", "3"}[i], cols[1])
	}
	assert.Contains(t, stderr, "no primer set")
	assert.Contains(t, stderr, "short")
}

func TestRun_JSONWithStoreAndMetrics(t *testing.T) {
	dir := t.TempDir()
	fa := writeFasta(t, ">rand\n"+randomBases(1, 1260)+"\n")
	dbPath := filepath.Join(dir, "runs.sqlite")
	promPath := filepath.Join(dir, "lamp.prom")

	code, out, stderr := run(t, "-o", "json", "-n", "2", "--db", dbPath, "--metrics-out", promPath, "-q", fa)
	require.Equal(t, appshell.ExitOK, code, stderr)

	var doc api.DesignV1
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "lamp-design", doc.Tool)
	require.Len(t, doc.Targets, 1)
	sets := doc.Targets[0].Sets
	require.NotEmpty(t, sets)
	assert.LessOrEqual(t, len(sets), 2)

	ctx := context.Background()
	db, err := store.Open(ctx, dbPath)
	require.NoError(t, err)
	defer db.Close()
	runs, err := db.Runs(ctx, "rand")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "ok", runs[0].Status)
	assert.Equal(t, len(sets), runs[0].Sets)
	stored, err := db.Sets(ctx, runs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, sets[0].SetID, stored[0].ID)

	prom, err := os.ReadFile(promPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `lamp_design_runs_total{status="ok"} 1`)
}

func TestRun_TraceOut(t *testing.T) {
	fa := writeFasta(t,
		">rand\n"+randomBases(1, 1260)+"\n",
		">short\n"+strings.Repeat("ACGT", 25)+"\n",
	)
	tracePath := filepath.Join(t.TempDir(), "spans.jsonl")

	code, _, stderr := run(t, "-o", "tsv", "-n", "1", "--trace-out", tracePath, "-q", fa)
	require.Equal(t, appshell.ExitOK, code, stderr)

	raw, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	joined := string(raw)
	assert.Contains(t, joined, `"rand"`)
	assert.Contains(t, joined, `"short"`)
	assert.Contains(t, joined, `"no_result"`)
	for _, l := range lines {
		var span map[string]any
		require.NoError(t, json.Unmarshal([]byte(l), &span))
		assert.Equal(t, "design", span["Name"])
	}
}

func TestRun_NoResult(t *testing.T) {
	fa := writeFasta(t, ">polyA\n"+strings.Repeat("A", 400)+"\n")
	code, out, _ := run(t, "-o", "jsonl", "-q", fa)
	assert.Equal(t, appshell.ExitNoResult, code)
	assert.Empty(t, out)
}

func TestRun_PrintConfig(t *testing.T) {
	code, out, stderr := run(t, "--print-config", "--preset", "gene_expression", "--mg", "6mM", "--no-parallel")
	require.Equal(t, appshell.ExitOK, code, stderr)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "gene_expression", cfg.Preset)
	assert.InDelta(t, 0.006, cfg.Constraints.Conditions.MgM, 1e-12)
	assert.False(t, cfg.Search.Parallel)
}

func TestRun_UsageErrors(t *testing.T) {
	fa := writeFasta(t, ">x\nACGT\n")
	cases := []struct {
		name string
		argv []string
		want string
	}{
		{"no input", []string{"-o", "tsv"}, "FASTA input"},
		{"bad format", []string{"-o", "xml", fa}, "unknown design format"},
		{"header without tsv", []string{"--header", fa}, "--header"},
		{"max sets", []string{"-n", "0", fa}, "--max-sets"},
		{"unknown flag", []string{"--bogus", fa}, "bogus"},
		{"verbose and quiet", []string{"-v", "-q", fa}, "verbose"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			code, _, stderr := run(t, c.argv...)
			assert.Equal(t, appshell.ExitUsage, code)
			assert.Contains(t, stderr, c.want)
		})
	}

	t.Run("bad concentration", func(t *testing.T) {
		code, _, stderr := run(t, "--na", "lots", fa)
		assert.Equal(t, appshell.ExitUsage, code)
		assert.Contains(t, stderr, "--na")
	})
	t.Run("missing file", func(t *testing.T) {
		code, _, stderr := run(t, filepath.Join(t.TempDir(), "nope.fa"))
		assert.Equal(t, appshell.ExitUsage, code)
		assert.Contains(t, stderr, "read input")
	})
	t.Run("invalid bases", func(t *testing.T) {
		code, _, _ := run(t, writeFasta(t, ">bad\nACGT12\n"))
		assert.Equal(t, appshell.ExitUsage, code)
	})
}

func TestRun_HelpAndVersion(t *testing.T) {
	code, out, _ := run(t, "--help")
	assert.Equal(t, appshell.ExitOK, code)
	assert.Contains(t, out, "--max-sets")
	assert.Contains(t, out, "viral-detection")

	code, out, _ = run(t, "--version")
	assert.Equal(t, appshell.ExitOK, code)
	assert.True(t, strings.HasPrefix(out, "lamp-design version "))
}

func TestRunContext_Cancelled(t *testing.T) {
	fa := writeFasta(t, ">rand\n"+randomBases(2, 1260)+"\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code := RunContext(ctx, []string{"-q", fa}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Equal(t, appshell.ExitInterrupted, code)
}
