package axes

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/transform"
)

// anchors are the fractions of the free space left of and below a
// shrunken axes box.
var anchors = map[string][2]float64{
	"C":  {0.5, 0.5},
	"SW": {0, 0},
	"S":  {0.5, 0},
	"SE": {1, 0},
	"E":  {1, 0.5},
	"NE": {1, 1},
	"N":  {0.5, 1},
	"NW": {0, 1},
	"W":  {0, 0.5},
}

// Aspect returns the ratio of y to x display units per data unit, or 0
// for "auto".
func (a *Axes) Aspect() float64 { return a.aspect }

// SetAspect takes "auto", "equal" or a positive ratio.
func (a *Axes) SetAspect(v any) error {
	switch x := v.(type) {
	case string:
		switch strings.ToLower(x) {
		case "auto", "normal":
			a.aspect = 0
		case "equal":
			a.aspect = 1
		default:
			return fmt.Errorf("axes: %w: aspect %q", gplot.ErrInvalidValue, x)
		}
	case float64:
		if !(x > 0) || math.IsInf(x, 0) {
			return fmt.Errorf("axes: %w: aspect %g", gplot.ErrInvalidValue, x)
		}
		a.aspect = x
	case int:
		return a.SetAspect(float64(x))
	default:
		return fmt.Errorf("axes: %w: aspect %T", gplot.ErrInvalidValue, v)
	}
	a.PChanged()
	return nil
}

// Adjustable returns "box" or "datalim".
func (a *Axes) Adjustable() string { return a.adjustable }

// SetAdjustable selects what ApplyAspect changes: the box or the data
// limits.
func (a *Axes) SetAdjustable(s string) error {
	if s != "box" && s != "datalim" {
		return fmt.Errorf("axes: %w: adjustable %q", gplot.ErrInvalidValue, s)
	}
	a.adjustable = s
	return nil
}

// Anchor returns where a shrunken box sits in its original position, as
// fractions of the free space.
func (a *Axes) Anchor() [2]float64 { return a.anchor }

// SetAnchor takes a compass code (C, N, NE, E, SE, S, SW, W, NW) or a
// pair of fractions.
func (a *Axes) SetAnchor(v any) error {
	switch x := v.(type) {
	case string:
		c, ok := anchors[strings.ToUpper(x)]
		if !ok {
			return fmt.Errorf("axes: %w: anchor %q", gplot.ErrInvalidValue, x)
		}
		a.anchor = c
	case [2]float64:
		a.anchor = x
	default:
		return fmt.Errorf("axes: %w: anchor %T", gplot.ErrInvalidValue, v)
	}
	return nil
}

// span returns the size of iv in the coordinates fn maps linearly.
func span(iv *bbox.Interval, fn *transform.Func) float64 {
	lo, hi := iv.Min(), iv.Max()
	if fn.IsLog() {
		if lo <= 0 {
			return 0
		}
		return math.Log10(hi) - math.Log10(lo)
	}
	return hi - lo
}

// resize sets iv to size around its center in fn's linear coordinates,
// keeping its direction.
func resize(iv *bbox.Interval, fn *transform.Func, size float64) {
	lo, hi := iv.Bounds()
	rev := hi < lo
	lo, hi = math.Min(lo, hi), math.Max(lo, hi)
	if fn.IsLog() {
		lo, hi = math.Log10(lo), math.Log10(hi)
	}
	c := (lo + hi) / 2
	lo, hi = c-size/2, c+size/2
	if fn.IsLog() {
		lo, hi = math.Pow(10, lo), math.Pow(10, hi)
	}
	if rev {
		lo, hi = hi, lo
	}
	iv.SetBounds(lo, hi)
}

// ApplyAspect makes one display unit per data unit in y equal to the
// aspect times that in x. With adjustable "box" the position shrinks
// within the original one and is anchored there; with "datalim", or when
// limits are shared, one view interval widens around its middle.
func (a *Axes) ApplyAspect() {
	if a.aspect == 0 {
		a.setActive(a.origPos)
		return
	}
	fb := a.fig.Bbox()
	figW, figH := fb.Width(), fb.Height()
	xsize, ysize := span(a.viewLim.IntervalX(), a.fx), span(a.viewLim.IntervalY(), a.fy)
	if figW <= 0 || figH <= 0 || xsize <= 0 || ysize <= 0 {
		return
	}
	figAspect := figH / figW
	l, b, w, h := a.origPos[0], a.origPos[1], a.origPos[2], a.origPos[3]

	adjustable := a.adjustable
	sharesX, sharesY := a.xgroup != nil, a.ygroup != nil
	if sharesX || sharesY {
		adjustable = "datalim"
	}
	if adjustable == "box" {
		boxAspect := a.aspect * ysize / xsize
		W, H := w, w*boxAspect/figAspect
		if H > h {
			W, H = h*figAspect/boxAspect, h
		}
		a.setActive([4]float64{l + a.anchor[0]*(w-W), b + a.anchor[1]*(h-H), W, H})
		return
	}

	a.setActive(a.origPos)
	dataRatio := figAspect * (h / w) / a.aspect
	yExpander := dataRatio*xsize/ysize - 1
	if math.Abs(yExpander) < 0.005 {
		return
	}
	if sharesX && sharesY {
		gplot.Logger().Warn("axes: aspect ignored, both directions are shared")
		return
	}
	adjustY := yExpander > 0
	switch {
	case sharesY:
		adjustY = false
	case sharesX:
		adjustY = true
	}
	if adjustY {
		resize(a.viewLim.IntervalY(), a.fy, dataRatio*xsize)
	} else {
		resize(a.viewLim.IntervalX(), a.fx, ysize/dataRatio)
	}
	gplot.Logger().Debug("axes: aspect applied", "aspect", a.aspect, "adjust_y", adjustY)
}

// Axis sets up the axes by preset or by limits and returns the view
// limits (xmin, xmax, ymin, ymax). With no argument it only reports them.
// Presets are "on", "off", "equal", "scaled", "tight", "image" and
// "auto"; limits are four float64 values or one []float64 of four.
func (a *Axes) Axis(args ...any) ([4]float64, error) {
	switch len(args) {
	case 0:
	case 1:
		switch v := args[0].(type) {
		case string:
			if err := a.axisPreset(v); err != nil {
				return a.limits(), err
			}
		case []float64:
			if len(v) != 4 {
				return a.limits(), fmt.Errorf("axes: %w: %d limits", gplot.ErrInvalidAxisSpec, len(v))
			}
			if err := a.setLimits(v[0], v[1], v[2], v[3]); err != nil {
				return a.limits(), err
			}
		case [4]float64:
			if err := a.setLimits(v[0], v[1], v[2], v[3]); err != nil {
				return a.limits(), err
			}
		default:
			return a.limits(), fmt.Errorf("axes: %w: %T", gplot.ErrInvalidAxisSpec, v)
		}
	case 4:
		var l [4]float64
		for i, v := range args {
			f, ok := v.(float64)
			if !ok {
				return a.limits(), fmt.Errorf("axes: %w: limit %v", gplot.ErrInvalidAxisSpec, v)
			}
			l[i] = f
		}
		if err := a.setLimits(l[0], l[1], l[2], l[3]); err != nil {
			return a.limits(), err
		}
	default:
		return a.limits(), fmt.Errorf("axes: %w: %d arguments", gplot.ErrInvalidAxisSpec, len(args))
	}
	return a.limits(), nil
}

func (a *Axes) limits() [4]float64 {
	x0, x1 := a.XLim()
	y0, y1 := a.YLim()
	return [4]float64{x0, x1, y0, y1}
}

func (a *Axes) setLimits(x0, x1, y0, y1 float64) error {
	if err := a.SetXLim(x0, x1, true); err != nil {
		return err
	}
	return a.SetYLim(y0, y1, true)
}

func (a *Axes) axisPreset(s string) error {
	switch s = strings.ToLower(s); s {
	case "on":
		a.axisOn = true
		return nil
	case "off":
		a.axisOn = false
		return nil
	case "auto", "normal":
		a.aspect = 0
		a.autoscaleOn = true
		return a.AutoscaleView(false, true, true)
	case "equal", "tight", "scaled", "image":
	default:
		return fmt.Errorf("axes: %w: %q", gplot.ErrInvalidAxisSpec, s)
	}

	a.autoscaleOn = true
	a.aspect = 0
	if err := a.AutoscaleView(false, true, true); err != nil {
		return err
	}
	switch s {
	case "equal":
		a.aspect, a.adjustable = 1, "datalim"
	case "scaled":
		a.aspect, a.adjustable, a.anchor = 1, "box", anchors["C"]
		a.autoscaleOn = false
	case "tight":
		if err := a.AutoscaleView(true, true, true); err != nil {
			return err
		}
		a.autoscaleOn = false
	case "image":
		if err := a.AutoscaleView(true, true, true); err != nil {
			return err
		}
		a.autoscaleOn = false
		a.aspect, a.adjustable, a.anchor = 1, "box", anchors["C"]
	}
	a.PChanged()
	return nil
}
