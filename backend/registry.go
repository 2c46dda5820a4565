package backend

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/colors"
)

// Options configure an output renderer.
type Options struct {
	// DPI is the figure resolution. Raster outputs render at this
	// resolution; vector outputs lay out at 72 units per inch and use it
	// only to magnify images.
	DPI float64
	// FaceColor and EdgeColor are the figure background and border.
	FaceColor, EdgeColor colors.RGBA
	// Orientation is "portrait" or "landscape". Only PostScript uses it.
	Orientation string
	// PaperSize names a PostScript paper size, or "auto" to fit the figure.
	PaperSize string
}

// Output is a renderer that encodes its drawing to a stream.
type Output interface {
	Renderer
	// Print writes the finished drawing to w.
	Print(w io.Writer) error
}

// Factory creates an output for a figure of the given size in inches.
type Factory func(widthIn, heightIn float64, opts Options) (Output, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register registers a factory for a file format, named by its extension
// without the dot. It is typically called from init() in backend packages.
//
// Register panics if factory is nil or the format is already registered.
func Register(format string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("backend: Register factory is nil")
	}
	format = strings.ToLower(format)
	if _, dup := factories[format]; dup {
		panic("backend: Register called twice for " + format)
	}
	factories[format] = factory
}

// Unregister removes a format. It is a no-op for unknown formats.
func Unregister(format string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, strings.ToLower(format))
}

// New creates an output for format.
func New(format string, widthIn, heightIn float64, opts Options) (Output, error) {
	registryMu.RLock()
	factory, ok := factories[strings.ToLower(format)]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("backend: %w %q (forgotten import of backend/all?)", gplot.ErrUnknownFormat, format)
	}
	return factory(widthIn, heightIn, opts)
}

// Formats returns the registered formats, sorted.
func Formats() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether format has a factory.
func IsRegistered(format string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[strings.ToLower(format)]
	return ok
}

// FormatForPath returns the format selected by the extension of path, or
// fallback when path has no extension.
func FormatForPath(path, fallback string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return fallback
	}
	return strings.ToLower(ext)
}
