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

import "sort"

// RegularGaussianGrid is a Gaussian grid in which all rows have the same
// number of columns.
type RegularGaussianGrid struct {
	config  *GridConfig
	numCols int
}

// NewRegularGaussianGrid creates a regular grid from c.
func NewRegularGaussianGrid(c *GridConfig) *RegularGaussianGrid {
	return &RegularGaussianGrid{config: c, numCols: c.regularCols}
}

func (*RegularGaussianGrid) planetaryGrid() {}

// Kind returns Regular.
func (*RegularGaussianGrid) Kind() Kind { return Regular }

// Config returns the table the grid was built from.
func (g *RegularGaussianGrid) Config() *GridConfig { return g.config }

// NumRows implements PlanetaryGrid.
func (g *RegularGaussianGrid) NumRows() int { return len(g.config.lats) }

// NumBins implements PlanetaryGrid.
func (g *RegularGaussianGrid) NumBins() int64 {
	return int64(g.NumRows()) * int64(g.numCols)
}

// NumCols implements PlanetaryGrid.
func (g *RegularGaussianGrid) NumCols(row int) (int, error) {
	if err := checkRow(row, g.NumRows()); err != nil {
		return 0, err
	}
	return g.numCols, nil
}

// FirstBinIndex implements PlanetaryGrid.
func (g *RegularGaussianGrid) FirstBinIndex(row int) (int64, error) {
	if err := checkRow(row, g.NumRows()); err != nil {
		return 0, err
	}
	return int64(row) * int64(g.numCols), nil
}

// CenterLat implements PlanetaryGrid.
func (g *RegularGaussianGrid) CenterLat(row int) (float64, error) {
	if err := checkRow(row, g.NumRows()); err != nil {
		return 0, err
	}
	return g.config.lats[row], nil
}

// BinIndex implements PlanetaryGrid.
func (g *RegularGaussianGrid) BinIndex(lat, lon float64) int64 {
	row := findClosestLat(g.config.lats, lat)
	col := findClosestLon(g.config.regularLons, lon)
	return int64(row)*int64(g.numCols) + int64(col)
}

// RowIndex implements PlanetaryGrid.
func (g *RegularGaussianGrid) RowIndex(bin int64) (int, error) {
	if err := checkBin(bin, g.NumBins()); err != nil {
		return 0, err
	}
	return int(bin / int64(g.numCols)), nil
}

// CenterLatLon implements PlanetaryGrid.
func (g *RegularGaussianGrid) CenterLatLon(bin int64) (lat, lon float64, err error) {
	row, err := g.RowIndex(bin)
	if err != nil {
		return 0, 0, err
	}
	col := bin - int64(row)*int64(g.numCols)
	return g.config.lats[row], g.config.regularLons[col], nil
}

// ReducedGaussianGrid is a Gaussian grid whose column count decreases
// toward the poles so that bins have similar areas.
type ReducedGaussianGrid struct {
	config   *GridConfig
	firstBin []int64 // len(rows)+1 prefix sums of the column counts
}

// NewReducedGaussianGrid creates a reduced grid from c.
func NewReducedGaussianGrid(c *GridConfig) *ReducedGaussianGrid {
	g := &ReducedGaussianGrid{
		config:   c,
		firstBin: make([]int64, len(c.reducedCols)+1),
	}
	for row, n := range c.reducedCols {
		g.firstBin[row+1] = g.firstBin[row] + int64(n)
	}
	return g
}

func (*ReducedGaussianGrid) planetaryGrid() {}

// Kind returns Reduced.
func (*ReducedGaussianGrid) Kind() Kind { return Reduced }

// Config returns the table the grid was built from.
func (g *ReducedGaussianGrid) Config() *GridConfig { return g.config }

// NumRows implements PlanetaryGrid.
func (g *ReducedGaussianGrid) NumRows() int { return len(g.config.lats) }

// NumBins implements PlanetaryGrid.
func (g *ReducedGaussianGrid) NumBins() int64 { return g.firstBin[len(g.firstBin)-1] }

// NumCols implements PlanetaryGrid.
func (g *ReducedGaussianGrid) NumCols(row int) (int, error) {
	if err := checkRow(row, g.NumRows()); err != nil {
		return 0, err
	}
	return g.config.reducedCols[row], nil
}

// FirstBinIndex implements PlanetaryGrid.
func (g *ReducedGaussianGrid) FirstBinIndex(row int) (int64, error) {
	if err := checkRow(row, g.NumRows()); err != nil {
		return 0, err
	}
	return g.firstBin[row], nil
}

// CenterLat implements PlanetaryGrid.
func (g *ReducedGaussianGrid) CenterLat(row int) (float64, error) {
	if err := checkRow(row, g.NumRows()); err != nil {
		return 0, err
	}
	return g.config.lats[row], nil
}

// BinIndex implements PlanetaryGrid.
func (g *ReducedGaussianGrid) BinIndex(lat, lon float64) int64 {
	row := findClosestLat(g.config.lats, lat)
	col := findClosestLon(g.config.reducedLonTable(row), lon)
	return g.firstBin[row] + int64(col)
}

// RowIndex implements PlanetaryGrid.
func (g *ReducedGaussianGrid) RowIndex(bin int64) (int, error) {
	if err := checkBin(bin, g.NumBins()); err != nil {
		return 0, err
	}
	return rowOfBin(g.firstBin, bin), nil
}

// CenterLatLon implements PlanetaryGrid.
func (g *ReducedGaussianGrid) CenterLatLon(bin int64) (lat, lon float64, err error) {
	row, err := g.RowIndex(bin)
	if err != nil {
		return 0, 0, err
	}
	col := bin - g.firstBin[row]
	return g.config.lats[row], g.config.reducedLonTable(row)[col], nil
}

// rowOfBin returns the row whose bins include bin, given the prefix sums
// of the per-row column counts.
func rowOfBin(firstBin []int64, bin int64) int {
	// First row starting after bin, minus one.
	return sort.Search(len(firstBin), func(i int) bool { return firstBin[i] > bin }) - 1
}
