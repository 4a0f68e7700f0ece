/*
Copyright © 2024 the planetgrid authors.
This file is part of planetgrid.

planetgrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

planetgrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with planetgrid.  If not, see <http://www.gnu.org/licenses/>.
*/

package planetgrid

import (
	"fmt"
	"math"

	"github.com/spatialmodel/planetgrid/internal/hash"
)

// GridConfig holds the geodetic reference table of a Gaussian grid with
// N rows per hemisphere. A GridConfig is never modified after it has been
// created and may be shared between any number of grids and goroutines.
type GridConfig struct {
	n           int
	regularCols int

	lats        []float64 // 2n latitudes, north to south
	regularLons []float64
	reducedCols []int       // 2n column counts, mirrored
	reducedLons [][]float64 // n longitude tables, one per northern row

	sum string
}

// NewGridConfig creates a grid configuration from the n northern
// hemisphere latitudes (degrees, north to south), the regular column
// count, and the n reduced column counts of the northern rows. The
// southern hemisphere is the mirror image of the northern one.
func NewGridConfig(lats []float64, regularCols int, reducedCols []int) (*GridConfig, error) {
	n := len(lats)
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 latitudes per hemisphere, have %d", n)
	}
	if len(reducedCols) != n {
		return nil, fmt.Errorf("have %d latitudes but %d reduced column counts", n, len(reducedCols))
	}
	if regularCols < 3 {
		return nil, fmt.Errorf("regular column count %d should be >=3", regularCols)
	}
	for i, lat := range lats {
		if !(lat > 0 && lat < 90) {
			return nil, fmt.Errorf("latitude %d (%g) not in (0, 90)", i, lat)
		}
		if i > 0 && !(lat < lats[i-1]) {
			return nil, fmt.Errorf("latitudes not strictly decreasing at %d (%g >= %g)", i, lat, lats[i-1])
		}
		if c := reducedCols[i]; c < 3 || c > regularCols {
			return nil, fmt.Errorf("reduced column count %d of row %d not in [3, %d]", c, i, regularCols)
		}
	}

	c := &GridConfig{
		n:           n,
		regularCols: regularCols,
		lats:        make([]float64, 2*n),
		reducedCols: make([]int, 2*n),
		reducedLons: make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		c.lats[i] = lats[i]
		c.lats[2*n-1-i] = -lats[i]
		c.reducedCols[i] = reducedCols[i]
		c.reducedCols[2*n-1-i] = reducedCols[i]
		c.reducedLons[i] = longitudes(reducedCols[i])
	}
	c.regularLons = longitudes(regularCols)
	c.sum = hash.Sum(tableFile{
		N:              n,
		RegularColumns: regularCols,
		Latitudes:      lats,
		ReducedColumns: reducedCols,
	})
	return c, nil
}

// longitudes returns the western edge aligned longitudes of a row
// with n columns, starting at -180.
func longitudes(n int) []float64 {
	lons := make([]float64, n)
	step := 360.0 / float64(n)
	for i := range lons {
		lons[i] = -180 + float64(i)*step
	}
	return lons
}

// Fingerprint returns a checksum of the table the configuration was
// created from. Configurations with the same fingerprint produce
// identical grids.
func (c *GridConfig) Fingerprint() string { return c.sum }

// N returns the number of rows per hemisphere.
func (c *GridConfig) N() int { return c.n }

// NumRows returns the number of rows from pole to pole.
func (c *GridConfig) NumRows() int { return 2 * c.n }

// RegularColumnCount returns the number of columns of every row of
// a regular grid.
func (c *GridConfig) RegularColumnCount() int { return c.regularCols }

// Latitudes returns a copy of the 2N row latitudes, north to south.
func (c *GridConfig) Latitudes() []float64 {
	return append([]float64(nil), c.lats...)
}

// RegularLongitudes returns a copy of the longitudes of a regular row.
func (c *GridConfig) RegularLongitudes() []float64 {
	return append([]float64(nil), c.regularLons...)
}

// ReducedColumnCounts returns a copy of the 2N reduced column counts.
func (c *GridConfig) ReducedColumnCounts() []int {
	return append([]int(nil), c.reducedCols...)
}

// ReducedLongitudes returns a copy of the longitudes of the given row of
// a reduced grid.
func (c *GridConfig) ReducedLongitudes(row int) ([]float64, error) {
	if err := checkRow(row, 2*c.n); err != nil {
		return nil, err
	}
	return append([]float64(nil), c.reducedLons[c.hemisphereRow(row)]...), nil
}

// hemisphereRow maps a pole to pole row onto the mirrored northern row.
func (c *GridConfig) hemisphereRow(row int) int {
	if row < c.n {
		return row
	}
	return 2*c.n - 1 - row
}

// reducedLonTable returns the shared longitude table of a row; callers
// must not modify it.
func (c *GridConfig) reducedLonTable(row int) []float64 {
	return c.reducedLons[c.hemisphereRow(row)]
}

// ReducedColumnCount returns the reduced column count of a grid with
// regularCols columns at latitude lat: 4N·cos(lat) rounded up to the next
// multiple of four whose only prime factors are 2, 3 and 5, no less than
// 16 and no more than regularCols. The embedded tables are generated with
// this rule.
func ReducedColumnCount(lat float64, regularCols int) int {
	m := int(math.Ceil(float64(regularCols)*math.Cos(lat*math.Pi/180) - 1e-9))
	if m < 16 {
		m = 16
	}
	for m%4 != 0 || !smooth(m) {
		m++
	}
	if m > regularCols {
		return regularCols
	}
	return m
}

func smooth(m int) bool {
	for _, p := range []int{2, 3, 5} {
		for m%p == 0 {
			m /= p
		}
	}
	return m == 1
}
