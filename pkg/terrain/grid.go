package terrain

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Grid is a regular height field with bilinear interpolation between
// posts. Heights are indexed [row][col] where rows advance along +X
// and cols along +Y from the origin.
type Grid struct {
	originX, originY float64
	cell             float64
	heights          [][]float64
	minZ, maxZ       float64
}

// NewGrid builds a grid terrain. cell is the post spacing; heights
// must be rectangular with at least 2 rows and 2 cols.
func NewGrid(originX, originY, cell float64, heights [][]float64) (*Grid, error) {
	if cell <= 0 {
		return nil, fmt.Errorf("grid cell size must be positive, got %g", cell)
	}
	if len(heights) < 2 || len(heights[0]) < 2 {
		return nil, fmt.Errorf("grid needs at least 2x2 posts, got %dx%d", len(heights), len(heights[0]))
	}
	cols := len(heights[0])
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for i, row := range heights {
		if len(row) != cols {
			return nil, fmt.Errorf("grid row %d has %d posts, expected %d", i, len(row), cols)
		}
		for _, h := range row {
			minZ = math.Min(minZ, h)
			maxZ = math.Max(maxZ, h)
		}
	}
	return &Grid{
		originX: originX,
		originY: originY,
		cell:    cell,
		heights: heights,
		minZ:    minZ,
		maxZ:    maxZ,
	}, nil
}

// ElevationAt bilinearly interpolates the height field.
func (g *Grid) ElevationAt(x, y float64) (float64, bool) {
	fx := (x - g.originX) / g.cell
	fy := (y - g.originY) / g.cell
	if fx < 0 || fy < 0 || fx > float64(len(g.heights)-1) || fy > float64(len(g.heights[0])-1) {
		return 0, false
	}

	i := int(fx)
	j := int(fy)
	if i == len(g.heights)-1 {
		i--
	}
	if j == len(g.heights[0])-1 {
		j--
	}
	tx := fx - float64(i)
	ty := fy - float64(j)

	h00 := g.heights[i][j]
	h01 := g.heights[i][j+1]
	h10 := g.heights[i+1][j]
	h11 := g.heights[i+1][j+1]

	lo := h00 + tx*(h10-h00)
	hi := h01 + tx*(h11-h01)
	return lo + ty*(hi-lo), true
}

// Bounds returns the covered volume.
func (g *Grid) Bounds() sdf.Box3 {
	return sdf.Box3{
		Min: v3.Vec{X: g.originX, Y: g.originY, Z: g.minZ},
		Max: v3.Vec{
			X: g.originX + g.cell*float64(len(g.heights)-1),
			Y: g.originY + g.cell*float64(len(g.heights[0])-1),
			Z: g.maxZ,
		},
	}
}
