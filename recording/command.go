package recording

import (
	"image"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/bbox"
	"github.com/gogpu/gplot/colors"
	"github.com/gogpu/gplot/font"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// Structure commands
	CmdOpenGroup  CommandType = iota // Open a named group
	CmdCloseGroup                    // Close a named group

	// Drawing commands
	CmdDrawLine      // Stroke one segment
	CmdDrawLines     // Stroke a polyline
	CmdDrawMarkers   // Stamp a marker path
	CmdDrawPolygon   // Fill and stroke a polygon
	CmdDrawRectangle // Fill and stroke a rectangle
	CmdDrawArc       // Fill and stroke an arc
	CmdDrawPath      // Fill and stroke an outline
	CmdDrawImage     // Blit an image
	CmdDrawText      // Render a string
	CmdDrawTex       // Render a string through a math engine
)

var commandTypeNames = [...]string{
	CmdOpenGroup:     "OpenGroup",
	CmdCloseGroup:    "CloseGroup",
	CmdDrawLine:      "DrawLine",
	CmdDrawLines:     "DrawLines",
	CmdDrawMarkers:   "DrawMarkers",
	CmdDrawPolygon:   "DrawPolygon",
	CmdDrawRectangle: "DrawRectangle",
	CmdDrawArc:       "DrawArc",
	CmdDrawPath:      "DrawPath",
	CmdDrawImage:     "DrawImage",
	CmdDrawText:      "DrawText",
	CmdDrawTex:       "DrawTex",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is one recorded renderer call.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// OpenGroupCommand opens a named group.
type OpenGroupCommand struct {
	Name string
}

// Type implements Command.
func (OpenGroupCommand) Type() CommandType { return CmdOpenGroup }

// CloseGroupCommand closes a named group.
type CloseGroupCommand struct {
	Name string
}

// Type implements Command.
func (CloseGroupCommand) Type() CommandType { return CmdCloseGroup }

// DrawLineCommand strokes one segment.
type DrawLineCommand struct {
	GC             *backend.GraphicsContext
	X1, Y1, X2, Y2 float64
}

// Type implements Command.
func (DrawLineCommand) Type() CommandType { return CmdDrawLine }

// DrawLinesCommand strokes a polyline given in display coordinates.
type DrawLinesCommand struct {
	GC     *backend.GraphicsContext
	Xs, Ys []float64
}

// Type implements Command.
func (DrawLinesCommand) Type() CommandType { return CmdDrawLines }

// DrawMarkersCommand stamps Path at every display position.
type DrawMarkersCommand struct {
	GC     *backend.GraphicsContext
	Path   *gplot.Path
	Face   *colors.RGBA
	Xs, Ys []float64
}

// Type implements Command.
func (DrawMarkersCommand) Type() CommandType { return CmdDrawMarkers }

// DrawPolygonCommand fills and strokes a closed polygon.
type DrawPolygonCommand struct {
	GC     *backend.GraphicsContext
	Face   *colors.RGBA
	Points []gplot.Point
}

// Type implements Command.
func (DrawPolygonCommand) Type() CommandType { return CmdDrawPolygon }

// DrawRectangleCommand fills and strokes an axis-aligned rectangle.
type DrawRectangleCommand struct {
	GC         *backend.GraphicsContext
	Face       *colors.RGBA
	X, Y, W, H float64
}

// Type implements Command.
func (DrawRectangleCommand) Type() CommandType { return CmdDrawRectangle }

// DrawArcCommand fills and strokes an elliptical arc. Angles are degrees.
type DrawArcCommand struct {
	GC                       *backend.GraphicsContext
	Face                     *colors.RGBA
	X, Y, W, H               float64
	Theta1, Theta2, Rotation float64
}

// Type implements Command.
func (DrawArcCommand) Type() CommandType { return CmdDrawArc }

// DrawPathCommand fills and strokes an outline.
type DrawPathCommand struct {
	GC   *backend.GraphicsContext
	Path *gplot.Path
	Face *colors.RGBA
}

// Type implements Command.
func (DrawPathCommand) Type() CommandType { return CmdDrawPath }

// DrawImageCommand blits an image with its lower-left corner at (X, Y).
type DrawImageCommand struct {
	X, Y  float64
	Image image.Image
	Clip  *bbox.Bbox
}

// Type implements Command.
func (DrawImageCommand) Type() CommandType { return CmdDrawImage }

// DrawTextCommand renders a string at renderer-native coordinates.
type DrawTextCommand struct {
	GC     *backend.GraphicsContext
	X, Y   float64
	Text   string
	Props  *font.Properties
	Angle  float64
	IsMath bool
}

// Type implements Command.
func (DrawTextCommand) Type() CommandType { return CmdDrawText }

// DrawTexCommand renders a string through a math engine.
type DrawTexCommand struct {
	GC    *backend.GraphicsContext
	X, Y  float64
	Text  string
	Props *font.Properties
	Angle float64
}

// Type implements Command.
func (DrawTexCommand) Type() CommandType { return CmdDrawTex }
