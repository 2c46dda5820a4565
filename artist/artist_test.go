package artist

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/transform"
)

type dummy struct {
	Base
	name  string
	width float64
	err   error
	drawn *[]string
}

var dummySchema = NewSchema(BaseSchema,
	Property{
		Name: "linewidth", Aliases: []string{"lw"}, Accepts: "float value in points",
		Get: Getter(func(d *dummy) float64 { return d.width }),
		Set: FloatSetter(func(d *dummy, v float64) { d.width = v; d.PChanged() }),
	},
)

func newDummy(name string, z float64, drawn *[]string) *dummy {
	d := &dummy{name: name, drawn: drawn, width: 1}
	d.Init(d)
	d.zorder = z
	return d
}

func (d *dummy) Schema() *Schema { return dummySchema }

func (d *dummy) Draw(backend.Renderer) error {
	*d.drawn = append(*d.drawn, d.name)
	return d.err
}

func TestDefaults(t *testing.T) {
	d := newDummy("a", 0, nil)
	assert.True(t, d.Visible())
	assert.Equal(t, 1.0, d.Alpha())
	assert.True(t, d.ClipOn())
	assert.False(t, d.IsTransformSet())
	tr, ok := d.Transform().(*transform.Separable)
	require.True(t, ok)
	assert.True(t, tr.IsIdentity())
}

func TestSetpAliasAndObservers(t *testing.T) {
	d := newDummy("a", 0, nil)
	var calls []Artist
	id := d.AddCallback(func(a Artist) { calls = append(calls, a) })

	require.NoError(t, Setp(d, "lw", 3, "alpha", 0.5, "label", "sine"))
	assert.Equal(t, 3.0, d.width)
	assert.Equal(t, 0.5, d.Alpha())
	assert.Equal(t, "sine", d.Label())
	assert.Len(t, calls, 3)
	assert.Same(t, d, calls[0])

	d.RemoveCallback(id)
	d.RemoveCallback(12345)
	d.SetVisible(false)
	assert.Len(t, calls, 3)
}

func TestSetpErrors(t *testing.T) {
	d := newDummy("a", 0, nil)
	err := Setp(d, "colour", "r")
	assert.ErrorIs(t, err, gplot.ErrUnknownProperty)
	assert.ErrorIs(t, Setp(d, "lw"), gplot.ErrInvalidValue)
	assert.ErrorIs(t, Setp(d, "alpha", 2.0), gplot.ErrInvalidValue)
	assert.ErrorIs(t, Setp(d, "lw", "thick"), gplot.ErrInvalidValue)
}

func TestGetpAndDescribe(t *testing.T) {
	d := newDummy("a", 2, nil)
	v, err := Getp(d, "linewidth")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	v, err = Getp(d, "zorder")
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	infos := Describe(d)
	var line string
	for _, pi := range infos {
		if pi.Name == "linewidth" {
			line = pi.String()
		}
	}
	assert.Equal(t, "linewidth or lw: float value in points (current: 1)", line)
	assert.Len(t, infos, 9)
}

func TestUpdateIsOrdered(t *testing.T) {
	d := newDummy("a", 0, nil)
	require.NoError(t, Update(d, map[string]any{"visible": "off", "zorder": 4}))
	assert.False(t, d.Visible())
	assert.Equal(t, 4.0, d.ZOrder())
}

func TestDrawAllZOrderStable(t *testing.T) {
	var drawn []string
	arts := []Artist{
		newDummy("c", 2, &drawn),
		newDummy("a", 1, &drawn),
		newDummy("b", 1, &drawn),
		newDummy("d", 1, &drawn),
	}
	hidden := newDummy("hidden", 0, &drawn)
	hidden.SetVisible(false)
	anim := newDummy("anim", 0, &drawn)
	anim.SetAnimated(true)
	arts = append(arts, hidden, anim)

	require.NoError(t, DrawAll(nil, arts))
	assert.Equal(t, "a b d c", strings.Join(drawn, " "))
	// The input slice keeps its order.
	assert.Equal(t, "c", arts[0].(*dummy).name)
}

func TestDrawAllStopsAtError(t *testing.T) {
	var drawn []string
	bad := newDummy("bad", 0, &drawn)
	bad.err = errors.New("boom")
	arts := []Artist{bad, newDummy("after", 1, &drawn)}
	assert.EqualError(t, DrawAll(nil, arts), "boom")
	assert.Equal(t, []string{"bad"}, drawn)
}

func TestUpdateFrom(t *testing.T) {
	src := newDummy("a", 3, nil)
	src.SetAlpha(0.25)
	src.SetLabel("x")
	dst := newDummy("b", 0, nil)
	dst.UpdateFrom(&src.Base)
	assert.Equal(t, 0.25, dst.Alpha())
	assert.Equal(t, 3.0, dst.ZOrder())
	assert.Equal(t, "x", dst.Label())
}
