package axes

import (
	"fmt"
	"math"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/axis"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/ticker"
	"github.com/gogpu/gplot/transform"
)

// XLim returns the x view limits. lo > hi for a reversed axis.
func (a *Axes) XLim() (lo, hi float64) { return a.viewLim.IntervalX().Bounds() }

// YLim returns the y view limits.
func (a *Axes) YLim() (lo, hi float64) { return a.viewLim.IntervalY().Bounds() }

// SetXLim sets the x view limits. Passing lo > hi reverses the axis.
// Equal limits are widened. With emit set the xlim_changed handlers of
// every axes sharing x run afterwards.
func (a *Axes) SetXLim(lo, hi float64, emit bool) error {
	if err := setLim(a.viewLim.IntervalX(), a.fx, lo, hi); err != nil {
		return fmt.Errorf("axes: set xlim: %w", err)
	}
	a.xlimSet = true
	if emit {
		a.emit(XLimChanged, a.xgroup)
	}
	return nil
}

// SetYLim sets the y view limits.
func (a *Axes) SetYLim(lo, hi float64, emit bool) error {
	if err := setLim(a.viewLim.IntervalY(), a.fy, lo, hi); err != nil {
		return fmt.Errorf("axes: set ylim: %w", err)
	}
	a.ylimSet = true
	if emit {
		a.emit(YLimChanged, a.ygroup)
	}
	return nil
}

// setLim validates lo and hi against the scale of fn and writes them.
func setLim(iv *bbox.Interval, fn *transform.Func, lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return fmt.Errorf("%w: limits (%g, %g)", gplot.ErrInvalidValue, lo, hi)
	}
	if fn.IsLog() && (lo <= 0 || hi <= 0) {
		return fmt.Errorf("%w: limits (%g, %g)", gplot.ErrInvalidRangeForLog, lo, hi)
	}
	lo, hi = bbox.Nonsingular(lo, hi, false)
	iv.SetBounds(lo, hi)
	return nil
}

// Connect registers fn for XLimChanged or YLimChanged and returns an id
// for Disconnect.
func (a *Axes) Connect(event string, fn func(*Axes)) (int, error) {
	if event != XLimChanged && event != YLimChanged {
		return 0, fmt.Errorf("axes: %w: event %q", gplot.ErrInvalidValue, event)
	}
	a.nextCID++
	a.handlers[a.nextCID] = handler{event: event, fn: fn}
	return a.nextCID, nil
}

// Disconnect removes a handler. Unknown ids are ignored.
func (a *Axes) Disconnect(cid int) { delete(a.handlers, cid) }

// emit runs the handlers for event on a and on the other members of its
// share group, in id order per axes.
func (a *Axes) emit(event string, g *shareGroup) {
	targets := []*Axes{a}
	if g != nil {
		targets = g.members
	}
	for _, t := range targets {
		for id := 1; id <= t.nextCID; id++ {
			if h, ok := t.handlers[id]; ok && h.event == event {
				h.fn(t)
			}
		}
	}
}

// imagesOnly reports whether images are the only data in the axes.
func (a *Axes) imagesOnly() bool {
	return len(a.images) > 0 && len(a.lines) == 0 && len(a.patches) == 0 && len(a.collections) == 0
}

// AutoscaleView sets the view limits from the data limits. With tight
// set, or when the axes holds only images, the view equals the data
// limits; otherwise each axis rounds them outward with its major
// locator. A reversed axis stays reversed. Nothing happens while
// autoscaling is off.
func (a *Axes) AutoscaleView(tight, scalex, scaley bool) error {
	if !a.autoscaleOn {
		return nil
	}
	tight = tight || a.imagesOnly()
	if scalex {
		lo, hi, err := a.autoBounds(&a.xaxis.Axis, a.fx, a.minPosX, tight)
		if err != nil {
			return fmt.Errorf("axes: autoscale x: %w", err)
		}
		a.setAutoLim(a.viewLim.IntervalX(), lo, hi)
		a.xlimSet = false
	}
	if scaley {
		lo, hi, err := a.autoBounds(&a.yaxis.Axis, a.fy, a.minPosY, tight)
		if err != nil {
			return fmt.Errorf("axes: autoscale y: %w", err)
		}
		a.setAutoLim(a.viewLim.IntervalY(), lo, hi)
		a.ylimSet = false
	}
	return nil
}

func (a *Axes) autoBounds(ax *axis.Axis, fn *transform.Func, minPos float64, tight bool) (float64, float64, error) {
	if !tight {
		return ax.Major().Locator.Autoscale()
	}
	lo, hi := ax.DataInterval().Min(), ax.DataInterval().Max()
	if fn.IsLog() {
		if hi <= 0 {
			return 0, 0, fmt.Errorf("%w: data in [%g, %g]", gplot.ErrInvalidRangeForLog, lo, hi)
		}
		if lo <= 0 {
			lo = minPos
		}
	}
	lo, hi = bbox.Nonsingular(lo, hi, true)
	return lo, hi, nil
}

// setAutoLim writes increasing bounds, flipped when iv is reversed.
func (a *Axes) setAutoLim(iv *bbox.Interval, lo, hi float64) {
	if vlo, vhi := iv.Bounds(); vhi < vlo {
		lo, hi = hi, lo
	}
	iv.SetBounds(lo, hi)
}

// autoscale rescales both directions after a plot call. The error is
// a log domain error from data without positive values; the view is
// left alone then.
func (a *Axes) autoscale() {
	if err := a.AutoscaleView(false, true, true); err != nil {
		gplot.Logger().Warn("axes: autoscale skipped", "err", err)
	}
}

// XScale returns "linear" or "log".
func (a *Axes) XScale() string { return a.xaxis.Scale() }

// YScale returns "linear" or "log".
func (a *Axes) YScale() string { return a.yaxis.Scale() }

// SetXScale switches the x axis between "linear" and "log". The scale
// function, locators and formatters change together. Switching to log
// when the view reaches zero or below rescales from the data, unless the
// limits were set explicitly; then, or when the data has no positive
// values, it fails with gplot.ErrInvalidRangeForLog and nothing changes.
func (a *Axes) SetXScale(name string) error {
	return a.setScale(&a.xaxis.Axis, a.fx, a.viewLim.IntervalX(), a.minPosX, a.xlimSet, name)
}

// SetYScale switches the y axis between "linear" and "log".
func (a *Axes) SetYScale(name string) error {
	return a.setScale(&a.yaxis.Axis, a.fy, a.viewLim.IntervalY(), a.minPosY, a.ylimSet, name)
}

func (a *Axes) setScale(ax *axis.Axis, fn *transform.Func, view *bbox.Interval, minPos float64, limSet bool, name string) error {
	var typ transform.FuncType
	switch name {
	case "linear":
		typ = transform.IdentityFunc
	case "log":
		typ = transform.Log10Func
	default:
		return fmt.Errorf("axes: %w: scale %q", gplot.ErrInvalidValue, name)
	}

	rescale := false
	var lo, hi float64
	if typ == transform.Log10Func && view.Min() <= 0 {
		if limSet {
			vlo, vhi := view.Bounds()
			return fmt.Errorf("axes: set %s scale: %w: view (%g, %g)", name, gplot.ErrInvalidRangeForLog, vlo, vhi)
		}
		loc, _ := ticker.NewLogLocator(10, nil)
		loc.SetIntervals(view, ax.DataInterval())
		if !math.IsInf(minPos, 1) {
			loc.SetMinPositive(minPos)
		}
		var err error
		if lo, hi, err = loc.Autoscale(); err != nil {
			return fmt.Errorf("axes: set %s scale: %w", name, err)
		}
		rescale = true
	}

	if err := ax.SetScale(name); err != nil {
		return fmt.Errorf("axes: %w", err)
	}
	fn.SetType(typ)
	if !math.IsInf(minPos, 1) {
		ax.SetMinPositive(minPos)
	}
	if rescale {
		a.setAutoLim(view, lo, hi)
	}
	gplot.Logger().Debug("axes: scale switched", "scale", name, "rescaled", rescale)
	a.PChanged()
	return nil
}

// PanX moves the x view by numSteps major tick spacings and notifies the
// xlim_changed handlers. Axes sharing x move with it.
func (a *Axes) PanX(numSteps int) {
	a.xaxis.Pan(numSteps)
	a.emit(XLimChanged, a.xgroup)
}

// PanY moves the y view by numSteps major tick spacings.
func (a *Axes) PanY(numSteps int) {
	a.yaxis.Pan(numSteps)
	a.emit(YLimChanged, a.ygroup)
}

// ZoomX narrows the x view for positive direction and widens it for
// negative.
func (a *Axes) ZoomX(direction int) {
	a.xaxis.Zoom(direction)
	a.emit(XLimChanged, a.xgroup)
}

// ZoomY narrows or widens the y view.
func (a *Axes) ZoomY(direction int) {
	a.yaxis.Zoom(direction)
	a.emit(YLimChanged, a.ygroup)
}

// SetXTicks places the major x ticks at locs.
func (a *Axes) SetXTicks(locs []float64) {
	a.xaxis.SetMajorLocator(ticker.NewFixedLocator(locs))
}

// SetYTicks places the major y ticks at locs.
func (a *Axes) SetYTicks(locs []float64) {
	a.yaxis.SetMajorLocator(ticker.NewFixedLocator(locs))
}

// SetXTickLabels labels the major x ticks in order.
func (a *Axes) SetXTickLabels(labels []string) {
	a.xaxis.SetMajorFormatter(ticker.NewFixedFormatter(labels))
}

// SetYTickLabels labels the major y ticks in order.
func (a *Axes) SetYTickLabels(labels []string) {
	a.yaxis.SetMajorFormatter(ticker.NewFixedFormatter(labels))
}

// noTicks removes the major and minor ticks of ax.
func noTicks(ax *axis.Axis) {
	ax.SetMajorLocator(&ticker.NullLocator{})
	ax.SetMinorLocator(&ticker.NullLocator{})
}
