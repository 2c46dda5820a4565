package figure

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/rcparams"
)

// SaveOptions configure SaveFig and Print. Zero values take the
// savefig.* rc params.
type SaveOptions struct {
	// Format names a registered backend format. SaveFig picks it from
	// the file extension when empty.
	Format    string
	DPI       float64
	FaceColor any
	EdgeColor any
	// Orientation is "portrait" or "landscape"; only PostScript uses it.
	Orientation string
	// PaperSize names a PostScript paper size; ps.papersize when empty.
	PaperSize string
}

// SaveFig renders the figure and writes it to path. Nothing is written
// when drawing fails.
func (f *Figure) SaveFig(path string, o SaveOptions) error {
	if o.Format == "" {
		o.Format = backend.FormatForPath(path, rcparams.Default().String("savefig.format"))
	}
	var buf bytes.Buffer
	if err := f.Print(&buf, o); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("figure: save: %w", err)
	}
	gplot.Logger().Info("figure: saved", "path", path, "format", o.Format, "bytes", buf.Len())
	return nil
}

// Print renders the figure in o.Format and writes the encoded output to
// w. The dpi and colors of the figure are swapped for the save values
// during the draw and restored afterwards, also on failure.
func (f *Figure) Print(w io.Writer, o SaveOptions) error {
	rc := rcparams.Default()
	format := cmp.Or(o.Format, rc.String("savefig.format"))
	if !backend.IsRegistered(format) {
		return fmt.Errorf("figure: %w %q", gplot.ErrUnknownFormat, format)
	}
	dpi := cmp.Or(o.DPI, rc.Float("savefig.dpi"))
	face, err := saveColor(o.FaceColor, rc.Color("savefig.facecolor"))
	if err != nil {
		return fmt.Errorf("figure: save facecolor: %w", err)
	}
	edge, err := saveColor(o.EdgeColor, rc.Color("savefig.edgecolor"))
	if err != nil {
		return fmt.Errorf("figure: save edgecolor: %w", err)
	}

	origDPI := f.dpi.Get()
	origFace, origEdge := f.patch.FaceColor(), f.patch.EdgeColor()
	defer func() {
		f.dpi.Set(origDPI)
		_ = f.patch.SetFaceColor(origFace)
		_ = f.patch.SetEdgeColor(origEdge)
	}()
	if err := f.SetDPI(dpi); err != nil {
		return err
	}
	_ = f.patch.SetFaceColor(face)
	_ = f.patch.SetEdgeColor(edge)

	wIn, hIn := f.SizeInches()
	out, err := backend.New(format, wIn, hIn, backend.Options{
		DPI:         dpi,
		FaceColor:   face,
		EdgeColor:   edge,
		Orientation: cmp.Or(o.Orientation, rc.String("savefig.orientation")),
		PaperSize:   cmp.Or(o.PaperSize, rc.String("ps.papersize")),
	})
	if err != nil {
		return fmt.Errorf("figure: %w", err)
	}
	gplot.Logger().Debug("figure: rendering", "format", format, "dpi", dpi, "width_in", wIn, "height_in", hIn)
	if err := f.Draw(out); err != nil {
		return fmt.Errorf("figure: print %s: %w", format, err)
	}
	if err := out.Print(w); err != nil {
		return fmt.Errorf("figure: print %s: %w", format, err)
	}
	return nil
}

func saveColor(v any, def colors.RGBA) (colors.RGBA, error) {
	if v == nil {
		return def, nil
	}
	return colors.ToRGBA(v)
}
