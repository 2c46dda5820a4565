// Package all registers every file backend: png, jpg and jpeg (raster),
// ps and eps, pdf and svg.
//
//	import _ "github.com/gogpu/gplot/backend/all"
package all

import (
	_ "github.com/gogpu/gplot/backend/pdf"
	_ "github.com/gogpu/gplot/backend/ps"
	_ "github.com/gogpu/gplot/backend/raster"
	_ "github.com/gogpu/gplot/backend/svg"
)
