package grid

// Metrics are the fixed cell dimensions of the grid layout.
type Metrics struct {
	ColumnWidth  int // cells per column
	RowHeight    int // cells per resource row
	HeaderHeight int // cells above the first row
	GutterWidth  int // cells left of the first column (resource titles)
}

// Region classifies what part of the grid a point falls on.
type Region int

const (
	RegionOutside Region = iota
	RegionHeader
	RegionGutter
	RegionCell
)

// Hit is the result of a spatial lookup: which resource row and which
// column sit under a viewport point.
type Hit struct {
	Region        Region
	ResourceIndex int
	ColumnIndex   int
}

// Spatial resolves viewport coordinates to grid cells from layout
// metrics and the current scroll offsets alone. It deliberately does
// not consult what the renderer has mounted, so rows scrolled into
// range mid-gesture hit-test correctly before they are drawn.
type Spatial struct {
	metrics       Metrics
	columnCount   int
	resourceCount int
	xOffset       int // horizontal scroll of the column area, in cells
	yOffset       int // vertical scroll of the row area, in cells
}

// NewSpatial builds a spatial index. Counts and offsets are updated in
// place as the grid scrolls or the collections change.
func NewSpatial(m Metrics) *Spatial {
	return &Spatial{metrics: m}
}

// SetExtent updates the column and resource counts after a data or
// range change.
func (s *Spatial) SetExtent(columnCount, resourceCount int) {
	s.columnCount = columnCount
	s.resourceCount = resourceCount
}

// SetScroll updates the scroll offsets the index translates by.
func (s *Spatial) SetScroll(xOffset, yOffset int) {
	s.xOffset = xOffset
	s.yOffset = yOffset
}

// Metrics returns the layout metrics.
func (s *Spatial) Metrics() Metrics {
	return s.metrics
}

// Hit resolves a viewport point. Points over the header resolve the
// column only; points over the gutter resolve the row only.
func (s *Spatial) Hit(x, y int) Hit {
	if x < 0 || y < 0 {
		return Hit{Region: RegionOutside, ResourceIndex: -1, ColumnIndex: -1}
	}

	col := -1
	if x >= s.metrics.GutterWidth {
		c := (x - s.metrics.GutterWidth + s.xOffset) / s.metrics.ColumnWidth
		if c >= 0 && c < s.columnCount {
			col = c
		}
	}

	row := -1
	if y >= s.metrics.HeaderHeight {
		r := (y - s.metrics.HeaderHeight + s.yOffset) / s.metrics.RowHeight
		if r >= 0 && r < s.resourceCount {
			row = r
		}
	}

	switch {
	case y < s.metrics.HeaderHeight && col >= 0:
		return Hit{Region: RegionHeader, ResourceIndex: -1, ColumnIndex: col}
	case x < s.metrics.GutterWidth && row >= 0:
		return Hit{Region: RegionGutter, ResourceIndex: row, ColumnIndex: -1}
	case row >= 0 && col >= 0:
		return Hit{Region: RegionCell, ResourceIndex: row, ColumnIndex: col}
	default:
		return Hit{Region: RegionOutside, ResourceIndex: -1, ColumnIndex: -1}
	}
}
