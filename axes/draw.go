package axes

import (
	"fmt"

	"github.com/gogpu/gplot/artist"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/images"
)

// Schema implements artist.Artist.
func (a *Axes) Schema() *artist.Schema { return artist.BaseSchema }

// Draw renders the axes: background, images, then every child in
// z-order, then the frame. The data and axes transforms are frozen for
// the duration so the children see one consistent layout.
func (a *Axes) Draw(r backend.Renderer) error {
	if !a.Visible() {
		return nil
	}
	r.OpenGroup("axes")
	defer r.CloseGroup("axes")

	a.ApplyAspect()
	if err := a.transData.Freeze(); err != nil {
		return fmt.Errorf("axes at %v: draw: %w", a.Position(), err)
	}
	defer a.transData.Thaw()
	if err := a.transAxes.Freeze(); err != nil {
		return fmt.Errorf("axes at %v: draw: %w", a.Position(), err)
	}
	defer a.transAxes.Thaw()

	if a.frameOn {
		if err := a.background.Draw(r); err != nil {
			return err
		}
	}

	var visible []*images.AxesImage
	for _, im := range a.images {
		if im.Visible() {
			visible = append(visible, im)
		}
	}
	if r.OptionImageNocomposite() || len(visible) == 1 {
		for _, im := range visible {
			if err := im.Draw(r); err != nil {
				return err
			}
		}
	} else if len(visible) > 0 {
		if err := images.Composite(r, visible, a.box); err != nil {
			return fmt.Errorf("axes: draw images: %w", err)
		}
	}

	children := make([]artist.Artist, 0, len(a.collections)+len(a.patches)+len(a.lines)+len(a.texts)+8)
	children = append(children, a.collections...)
	for _, p := range a.patches {
		children = append(children, p)
	}
	for _, l := range a.lines {
		children = append(children, l)
	}
	children = append(children, a.texts...)
	children = append(children, a.artists...)
	if a.axisOn {
		children = append(children, a.xaxis, a.yaxis)
	}
	children = append(children, a.title)
	for _, t := range a.tables {
		children = append(children, t)
	}
	if a.legend != nil {
		children = append(children, a.legend)
	}
	if a.frameOn {
		children = append(children, a.frame)
	}
	return artist.DrawAll(r, children)
}
