package figure

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
)

// ErrNoRenderer is returned by Canvas methods that need a finished draw
// or a capability the renderer lacks.
var ErrNoRenderer = errors.New("figure: canvas has no usable renderer")

// Canvas binds a figure to one renderer for interactive use. Redraw
// requests coalesce: any number of DrawIdle calls between two Idle calls
// cause one draw.
type Canvas struct {
	fig *Figure
	r   backend.Renderer

	mu      sync.Mutex
	pending bool
	drawn   bool
	draws   int
}

// NewCanvas returns a canvas drawing fig into r.
func NewCanvas(fig *Figure, r backend.Renderer) *Canvas {
	return &Canvas{fig: fig, r: r}
}

// Figure returns the figure.
func (c *Canvas) Figure() *Figure { return c.fig }

// Renderer returns the renderer of the last full draw.
func (c *Canvas) Renderer() backend.Renderer { return c.r }

// Draw renders the whole figure now.
func (c *Canvas) Draw() error {
	c.mu.Lock()
	c.pending = false
	c.mu.Unlock()
	if err := c.fig.Draw(c.r); err != nil {
		return err
	}
	c.mu.Lock()
	c.drawn = true
	c.draws++
	c.mu.Unlock()
	return nil
}

// Draws returns how many full draws ran.
func (c *Canvas) Draws() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draws
}

// DrawIdle queues a redraw for the next Idle call. It is safe to call
// from any goroutine.
func (c *Canvas) DrawIdle() {
	c.mu.Lock()
	c.pending = true
	c.mu.Unlock()
}

// Idle runs the queued redraw, if any. Hosts call it from their idle
// callback on the drawing goroutine.
func (c *Canvas) Idle() error {
	c.mu.Lock()
	pending := c.pending
	c.mu.Unlock()
	if !pending {
		return nil
	}
	return c.Draw()
}

// DrawArtist draws a alone with the renderer of the last full draw. It
// is how animated artists, which full draws skip, get onto the canvas.
func (c *Canvas) DrawArtist(a artist.Artist) error {
	c.mu.Lock()
	drawn := c.drawn
	c.mu.Unlock()
	if !drawn {
		return fmt.Errorf("%w: draw the figure first", ErrNoRenderer)
	}
	return a.Draw(c.r)
}

// CopyFromBbox saves the canvas pixels under b.
func (c *Canvas) CopyFromBbox(b *bbox.Bbox) (backend.Region, error) {
	bl, ok := c.r.(backend.Blitter)
	if !ok {
		return nil, fmt.Errorf("%w: %T cannot blit", ErrNoRenderer, c.r)
	}
	return bl.CopyFromBbox(b), nil
}

// RestoreRegion writes back a region saved by CopyFromBbox.
func (c *Canvas) RestoreRegion(rg backend.Region) error {
	bl, ok := c.r.(backend.Blitter)
	if !ok {
		return fmt.Errorf("%w: %T cannot blit", ErrNoRenderer, c.r)
	}
	bl.RestoreRegion(rg)
	return nil
}

// Blit draws the animated artists over a saved background: it restores
// bg and draws each artist with the cached renderer.
func (c *Canvas) Blit(bg backend.Region, animated ...artist.Artist) error {
	if err := c.RestoreRegion(bg); err != nil {
		return err
	}
	for _, a := range animated {
		if err := c.DrawArtist(a); err != nil {
			return err
		}
	}
	gplot.Logger().Debug("figure: blit", "artists", len(animated))
	return nil
}
