package font

import (
	"fmt"
	"os"
	"slices"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/internal/cache"
	"github.com/gogpu/gplot/rcparams"
)

// fallbackFamily is used when no requested family is registered.
const fallbackFamily = "go"

type faceKey struct {
	family       string
	bold, italic bool
}

// Manager resolves Properties to fonts and caches shaped text.
type Manager struct {
	mu    sync.RWMutex
	fonts map[faceKey]*Font

	runs *cache.LRU[string, *Run]
}

// NewManager returns a manager holding only the fonts added to it.
func NewManager() *Manager {
	return &Manager{
		fonts: make(map[faceKey]*Font),
		runs:  cache.New[string, *Run](maxCachedRuns),
	}
}

var (
	defaultOnce    sync.Once
	defaultManager *Manager
)

// DefaultManager returns the process-wide manager, preloaded with the Go
// fonts and any files listed under the font.path rc key.
func DefaultManager() *Manager {
	defaultOnce.Do(func() {
		m := NewManager()
		if err := m.addGoFonts(); err != nil {
			panic(err)
		}
		for _, path := range rcparams.Default().Strings("font.path") {
			if err := m.AddFile(path, false, false); err != nil {
				gplot.Logger().Warn("font: skipping font file", "path", path, "err", err)
			}
		}
		defaultManager = m
	})
	return defaultManager
}

func (m *Manager) addGoFonts() error {
	builtin := []struct {
		family       string
		bold, italic bool
		data         []byte
	}{
		{"Go", false, false, goregular.TTF},
		{"Go", true, false, gobold.TTF},
		{"Go", false, true, goitalic.TTF},
		{"Go", true, true, gobolditalic.TTF},
		{"Go Mono", false, false, gomono.TTF},
		{"Go Mono", true, false, gomonobold.TTF},
		{"Go Mono", false, true, gomonoitalic.TTF},
		{"Go Mono", true, true, gomonobolditalic.TTF},
		{"Go Smallcaps", false, false, gosmallcaps.TTF},
		{"Go Smallcaps", false, true, gosmallcapsitalic.TTF},
	}
	for _, b := range builtin {
		if err := m.Add(b.family, b.bold, b.italic, b.data); err != nil {
			return err
		}
	}
	return nil
}

// Add registers font data under family with the given style flags.
func (m *Manager) Add(family string, bold, italic bool, data []byte) error {
	f, err := Parse(data)
	if err != nil {
		return fmt.Errorf("font: %s: %w", family, err)
	}
	f.family, f.bold, f.italic = family, bold, italic
	m.mu.Lock()
	m.fonts[faceKey{normalizeFamily(family), bold, italic}] = f
	m.mu.Unlock()
	return nil
}

// AddFile registers a font file under the family name stored in it.
func (m *Manager) AddFile(path string, bold, italic bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("font: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return fmt.Errorf("font: %s: %w", path, err)
	}
	if f.family == "" {
		return fmt.Errorf("font: %s: %w: no family name", path, gplot.ErrInvalidValue)
	}
	return m.Add(f.family, bold, italic, data)
}

// Families returns the registered family names.
func (m *Manager) Families() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for k, f := range m.fonts {
		if !seen[k.family] {
			seen[k.family] = true
			out = append(out, f.family)
		}
	}
	slices.Sort(out)
	return out
}

// candidates expands generic families through the rc family lists.
func candidates(p *Properties) []string {
	rc := rcparams.Default()
	var out []string
	for _, fam := range p.Family {
		switch fam {
		case "serif", "sans-serif", "monospace":
			out = append(out, rc.Strings("font."+fam)...)
		case "cursive", "fantasy":
			out = append(out, rc.Strings("font.sans-serif")...)
		default:
			out = append(out, fam)
		}
	}
	if p.Variant == "small-caps" {
		out = append([]string{"Go Smallcaps"}, out...)
	}
	return out
}

// FindFont returns the best registered font for p. Missing styles fall
// back to the regular face of the same family, then to the Go fonts.
func (m *Manager) FindFont(p *Properties) (*Font, error) {
	bold, italic := p.IsBold(), p.IsItalic()
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, fam := range append(candidates(p), fallbackFamily) {
		key := normalizeFamily(fam)
		for _, k := range []faceKey{{key, bold, italic}, {key, bold, false}, {key, false, italic}, {key, false, false}} {
			if f, ok := m.fonts[k]; ok {
				return f, nil
			}
		}
	}
	return nil, fmt.Errorf("font: %w: no font for %s", gplot.ErrInvalidValue, p.Key())
}
