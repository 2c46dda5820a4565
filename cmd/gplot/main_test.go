package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/gogpu/gplot/figure"
	"github.com/gogpu/gplot/recording"
)

func TestDemosDraw(t *testing.T) {
	for _, name := range demoNames() {
		t.Run(name, func(t *testing.T) {
			f, err := figure.New()
			require.NoError(t, err)
			require.NoError(t, demos[name].build(f))
			rec := recording.NewRecorder(640, 480, 80)
			require.NoError(t, f.Draw(rec))
			assert.NotEmpty(t, rec.Commands())
			assert.Zero(t, rec.Depth())
		})
	}
}

func TestRenderJobWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sine.svg")
	job := renderJob{demo: demos["sine"], size: []float64{4, 3}, output: out}
	require.NoError(t, job.run())
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func runApp(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	app := &cli.App{
		Name:     "gplot",
		Writer:   &buf,
		Commands: []*cli.Command{formatsCommand, rcCommand},
	}
	require.NoError(t, app.Run(append([]string{"gplot"}, args...)))
	return buf.String()
}

func TestFormatsCommand(t *testing.T) {
	out := runApp(t, "formats")
	for _, f := range []string{"png", "pdf", "svg", "ps"} {
		assert.Contains(t, out, f+"\n")
	}
}

func TestRcCommandPrefix(t *testing.T) {
	out := runApp(t, "rc", "figure.dpi")
	assert.Equal(t, "figure.dpi: 80\n", out)
}

func TestRcCommandAppliesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gplotrc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("figure:\n  dpi: 120\n"), 0o644))
	out := runApp(t, "rc", "--rc", path, "figure.dpi")
	assert.Equal(t, "figure.dpi: 120\n", out)
}
