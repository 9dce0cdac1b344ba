package grid

import "testing"

// Layout used throughout: 10-cell gutter, 1-cell header, 4-cell
// columns, 2-cell rows.
func testSpatial(columns, resources int) *Spatial {
	s := NewSpatial(Metrics{
		ColumnWidth:  4,
		RowHeight:    2,
		HeaderHeight: 1,
		GutterWidth:  10,
	})
	s.SetExtent(columns, resources)
	return s
}

func TestSpatialHit(t *testing.T) {
	s := testSpatial(20, 5)

	tests := []struct {
		name   string
		x, y   int
		region Region
		row    int
		col    int
	}{
		{"first cell", 10, 1, RegionCell, 0, 0},
		{"within first cell", 13, 2, RegionCell, 0, 0},
		{"second column", 14, 1, RegionCell, 0, 1},
		{"second row", 10, 3, RegionCell, 1, 0},
		{"deep cell", 30, 8, RegionCell, 3, 5},
		{"header over column", 14, 0, RegionHeader, -1, 1},
		{"gutter over row", 3, 5, RegionGutter, 2, -1},
		{"top-left corner", 0, 0, RegionOutside, -1, -1},
		{"negative", -1, 4, RegionOutside, -1, -1},
		{"below last row", 10, 11, RegionOutside, -1, -1},
		{"past last column", 90, 1, RegionOutside, -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := s.Hit(tt.x, tt.y)
			if h.Region != tt.region || h.ResourceIndex != tt.row || h.ColumnIndex != tt.col {
				t.Errorf("Hit(%d,%d) = %+v, want {%v %d %d}",
					tt.x, tt.y, h, tt.region, tt.row, tt.col)
			}
		})
	}
}

// TestSpatialHitScrolled verifies the index resolves rows and columns
// from offsets alone, including rows far past the rendered window.
func TestSpatialHitScrolled(t *testing.T) {
	s := testSpatial(20, 100)
	s.SetScroll(8, 40) // 2 columns and 20 rows scrolled away

	h := s.Hit(10, 1)
	if h.Region != RegionCell || h.ResourceIndex != 20 || h.ColumnIndex != 2 {
		t.Errorf("scrolled origin = %+v, want cell row 20 col 2", h)
	}

	// A row no renderer would have mounted yet still resolves
	h = s.Hit(10, 9)
	if h.Region != RegionCell || h.ResourceIndex != 24 {
		t.Errorf("offscreen row = %+v, want row 24", h)
	}

	// Scrolling past the data makes the same point miss
	s.SetScroll(8, 400)
	if h := s.Hit(10, 1); h.Region != RegionOutside {
		t.Errorf("beyond data = %+v, want outside", h)
	}
}

func TestSpatialEmptyExtent(t *testing.T) {
	s := testSpatial(0, 0)
	if h := s.Hit(10, 1); h.Region != RegionOutside {
		t.Errorf("empty grid = %+v, want outside", h)
	}
}
