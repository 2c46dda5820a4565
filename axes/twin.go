package axes

import "fmt"

// Twinx returns an axes over the same rectangle sharing the x limits,
// with its y axis on the right and no background or frame. The caller
// adds it to the figure after a.
func (a *Axes) Twinx() (*Axes, error) {
	t, err := New(a.fig, a.origPos, ShareX(a), WithFrame(false))
	if err != nil {
		return nil, fmt.Errorf("axes: twinx: %w", err)
	}
	if err := t.yaxis.SetTicksPosition("right"); err != nil {
		return nil, err
	}
	if err := a.yaxis.SetTicksPosition("left"); err != nil {
		return nil, err
	}
	t.setActive(a.Position())
	return t, nil
}

// Twiny returns an axes over the same rectangle sharing the y limits,
// with its x axis on top.
func (a *Axes) Twiny() (*Axes, error) {
	t, err := New(a.fig, a.origPos, ShareY(a), WithFrame(false))
	if err != nil {
		return nil, fmt.Errorf("axes: twiny: %w", err)
	}
	if err := t.xaxis.SetTicksPosition("top"); err != nil {
		return nil, err
	}
	if err := a.xaxis.SetTicksPosition("bottom"); err != nil {
		return nil, err
	}
	t.setActive(a.Position())
	return t, nil
}
