package rcparams

type entry struct {
	def      any
	validate Validator
}

var (
	capstyles  = validateEnum("butt", "round", "projecting")
	joinstyles = validateEnum("miter", "round", "bevel")
	linestyles = validateEnum("-", "--", "-.", ":", "steps", "None", "none", "")
	tickdirs   = validateEnum("in", "out")
)

// table lists every known key with its default.
var table = map[string]entry{
	"backend":        {"raster", validateString},
	"interactive":    {false, validateBool},
	"savefig.format": {"png", validateString},

	"lines.linewidth":       {1.0, validateNonNegative},
	"lines.linestyle":       {"-", linestyles},
	"lines.color":           {"b", validateColor},
	"lines.marker":          {"None", validateString},
	"lines.markeredgewidth": {0.5, validateNonNegative},
	"lines.markersize":      {6.0, validateNonNegative},
	"lines.markerfacecolor": {"auto", validateColor},
	"lines.markeredgecolor": {"auto", validateColor},
	"lines.dash_joinstyle":  {"miter", joinstyles},
	"lines.solid_joinstyle": {"miter", joinstyles},
	"lines.dash_capstyle":   {"butt", capstyles},
	"lines.solid_capstyle":  {"projecting", capstyles},
	"lines.antialiased":     {true, validateBool},

	"patch.linewidth":   {1.0, validateNonNegative},
	"patch.edgecolor":   {"k", validateColor},
	"patch.facecolor":   {"b", validateColor},
	"patch.antialiased": {true, validateBool},

	"font.family":     {"sans-serif", validateEnum("serif", "sans-serif", "monospace", "cursive", "fantasy")},
	"font.style":      {"normal", validateEnum("normal", "italic", "oblique")},
	"font.variant":    {"normal", validateEnum("normal", "small-caps")},
	"font.weight":     {"normal", validateString},
	"font.size":       {12.0, validateNonNegative},
	"font.serif":      {[]string{"Go", "DejaVu Serif", "Times New Roman"}, validateStringList},
	"font.sans-serif": {[]string{"Go", "DejaVu Sans", "Arial", "Helvetica"}, validateStringList},
	"font.monospace":  {[]string{"Go Mono", "DejaVu Sans Mono", "Courier"}, validateStringList},
	"font.path":       {[]string{}, validateStringList},

	"text.color":  {"k", validateColor},
	"text.usetex": {false, validateBool},

	"axes.hold":             {true, validateBool},
	"axes.facecolor":        {"w", validateColor},
	"axes.edgecolor":        {"k", validateColor},
	"axes.linewidth":        {1.0, validateNonNegative},
	"axes.grid":             {false, validateBool},
	"axes.titlesize":        {14.0, validateNonNegative},
	"axes.labelsize":        {12.0, validateNonNegative},
	"axes.labelcolor":       {"k", validateColor},
	"axes.axisbelow":        {false, validateBool},
	"axes.formatter.limits": {[]float64{-3, 4}, validateFloatList(2)},
	"axes.unicode_minus":    {true, validateBool},
	"axes.color_cycle":      {[]string{"b", "g", "r", "c", "m", "y", "k"}, validateColorList},

	"polaraxes.grid": {true, validateBool},

	"xtick.major.size": {4.0, validateNonNegative},
	"xtick.minor.size": {2.0, validateNonNegative},
	"xtick.major.pad":  {4.0, validateFloat},
	"xtick.minor.pad":  {4.0, validateFloat},
	"xtick.color":      {"k", validateColor},
	"xtick.labelsize":  {12.0, validateNonNegative},
	"xtick.direction":  {"in", tickdirs},
	"ytick.major.size": {4.0, validateNonNegative},
	"ytick.minor.size": {2.0, validateNonNegative},
	"ytick.major.pad":  {4.0, validateFloat},
	"ytick.minor.pad":  {4.0, validateFloat},
	"ytick.color":      {"k", validateColor},
	"ytick.labelsize":  {12.0, validateNonNegative},
	"ytick.direction":  {"in", tickdirs},

	"grid.color":     {"k", validateColor},
	"grid.linestyle": {":", linestyles},
	"grid.linewidth": {0.5, validateNonNegative},

	"legend.loc":           {"upper right", validateString},
	"legend.isaxes":        {true, validateBool},
	"legend.numpoints":     {2, validateInt},
	"legend.fontsize":      {12.0, validateNonNegative},
	"legend.pad":           {0.2, validateNonNegative},
	"legend.markerscale":   {1.0, validateNonNegative},
	"legend.labelsep":      {0.01, validateNonNegative},
	"legend.handlelen":     {0.05, validateNonNegative},
	"legend.handletextsep": {0.02, validateNonNegative},
	"legend.axespad":       {0.02, validateNonNegative},
	"legend.shadow":        {false, validateBool},

	"figure.figsize":        {[]float64{8, 6}, validateFloatList(2)},
	"figure.dpi":            {80.0, validateNonNegative},
	"figure.facecolor":      {"0.75", validateColor},
	"figure.edgecolor":      {"w", validateColor},
	"figure.subplot.left":   {0.125, validateNonNegative},
	"figure.subplot.right":  {0.9, validateNonNegative},
	"figure.subplot.bottom": {0.1, validateNonNegative},
	"figure.subplot.top":    {0.9, validateNonNegative},
	"figure.subplot.wspace": {0.2, validateNonNegative},
	"figure.subplot.hspace": {0.2, validateNonNegative},

	"image.aspect":        {"equal", validateString},
	"image.interpolation": {"bilinear", validateEnum("nearest", "bilinear", "bicubic", "catmullrom")},
	"image.cmap":          {"jet", validateString},
	"image.lut":           {256, validateInt},
	"image.origin":        {"upper", validateEnum("upper", "lower")},

	"contour.negative_linestyle": {"dashed", validateEnum("dashed", "solid")},

	"savefig.dpi":         {100.0, validateNonNegative},
	"savefig.facecolor":   {"w", validateColor},
	"savefig.edgecolor":   {"w", validateColor},
	"savefig.orientation": {"portrait", validateEnum("portrait", "landscape")},

	"ps.papersize":     {"letter", validateEnum("letter", "legal", "ledger", "a3", "a4", "a5", "b4", "b5", "auto")},
	"ps.usedistiller":  {false, validateBool},
	"pdf.compression":  {6, validateInt},
	"svg.image_inline": {true, validateBool},
}
