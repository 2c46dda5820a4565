package rcparams

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gplot"
)

func TestDefaults(t *testing.T) {
	p := New()
	assert.Equal(t, 1.0, p.Float("lines.linewidth"))
	assert.Equal(t, []string{"b", "g", "r", "c", "m", "y", "k"}, p.Strings("axes.color_cycle"))
	assert.Equal(t, []float64{-3, 4}, p.Floats("axes.formatter.limits"))
	assert.True(t, p.Bool("axes.unicode_minus"))
	assert.Equal(t, 256, p.Int("image.lut"))
	assert.InDelta(t, 0.75, p.Color("figure.facecolor").R, 1e-9)
	assert.Contains(t, Keys(), "savefig.dpi")
}

func TestSetValidates(t *testing.T) {
	p := New()
	require.NoError(t, p.Set("lines.linewidth", "2.5"))
	assert.Equal(t, 2.5, p.Float("lines.linewidth"))

	require.NoError(t, p.Set("axes.facecolor", "eeeeee"))
	assert.Equal(t, "#eeeeee", p.String("axes.facecolor"))

	require.NoError(t, p.Set("axes.color_cycle", "r, 0.5, #00ff00"))
	assert.Equal(t, []string{"r", "0.5", "#00ff00"}, p.Strings("axes.color_cycle"))

	err := p.Set("lines.widht", 1)
	assert.True(t, errors.Is(err, gplot.ErrUnknownConfigKey), "got %v", err)

	tests := []struct {
		key string
		val any
	}{
		{"lines.linewidth", -1},
		{"lines.solid_capstyle", "square"},
		{"axes.grid", "maybe"},
		{"axes.facecolor", "notacolor"},
		{"figure.figsize", []float64{1}},
		{"image.lut", 2.5},
	}
	for _, tt := range tests {
		err := p.Set(tt.key, tt.val)
		assert.ErrorIs(t, err, gplot.ErrInvalidValue, "Set(%q, %v)", tt.key, tt.val)
	}
	assert.Equal(t, 2.5, p.Float("lines.linewidth"), "failed Set must not change the value")
}

func TestSnapshotRestore(t *testing.T) {
	p := New()
	snap := p.Snapshot()
	require.NoError(t, p.Set("font.size", 20))
	p.Restore(snap)
	assert.Equal(t, 12.0, p.Float("font.size"))
}

func TestLoadFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gplotrc")
	data := "lines.linewidth : 2.0   # thicker\n" +
		"axes.facecolor : eeeeee\n" +
		"font.sans-serif : Go, Arial\n" +
		"figure:\n  dpi: 72\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	p := New()
	require.NoError(t, p.LoadFile(path))
	assert.Equal(t, 2.0, p.Float("lines.linewidth"))
	assert.Equal(t, "#eeeeee", p.String("axes.facecolor"))
	assert.Equal(t, []string{"Go", "Arial"}, p.Strings("font.sans-serif"))
	assert.Equal(t, 72.0, p.Float("figure.dpi"))
}

func TestLoadFileTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.toml")
	data := "[lines]\nlinewidth = 3\ncolor = \"r\"\n\n[axes]\ngrid = true\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	p := New()
	require.NoError(t, p.LoadFile(path))
	assert.Equal(t, 3.0, p.Float("lines.linewidth"))
	assert.Equal(t, "r", p.String("lines.color"))
	assert.True(t, p.Bool("axes.grid"))
}

func TestLoadFileIsAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lines.linewidth: 4\nno.such.key: 1\n"), 0o644))
	p := New()
	err := p.LoadFile(path)
	assert.ErrorIs(t, err, gplot.ErrUnknownConfigKey)
	assert.Equal(t, 1.0, p.Float("lines.linewidth"))
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lines.linewidth: 1\n"), 0o644))

	p := New()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reloaded := make(chan float64, 1)
	done := make(chan error, 1)
	go func() {
		done <- p.Watch(ctx, path, func(p *Params) {
			select {
			case reloaded <- p.Float("lines.linewidth"):
			default:
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("lines.linewidth: 5\n"), 0o644))

	select {
	case lw := <-reloaded:
		assert.Equal(t, 5.0, lw)
	case <-ctx.Done():
		t.Fatal("watch did not reload")
	}
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
