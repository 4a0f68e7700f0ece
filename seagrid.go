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
)

// SEAGrid is a sinusoidal equal-area grid. Rows have equal latitude
// height and the number of columns in each row is proportional to the
// cosine of its central latitude, so all bins have about the same area.
type SEAGrid struct {
	numRows  int
	lats     []float64
	numCols  []int
	firstBin []int64
}

// DefaultSEARows is the row count of the standard 9.28 km SEA grid.
const DefaultSEARows = 2160

// NewSEAGrid creates a sinusoidal equal-area grid with numRows rows.
func NewSEAGrid(numRows int) (*SEAGrid, error) {
	if numRows <= 0 || numRows%2 != 0 {
		return nil, &ConfigurationError{N: numRows / 2, Err: fmt.Errorf("number of rows %d should be even and >0", numRows)}
	}
	g := &SEAGrid{
		numRows:  numRows,
		lats:     make([]float64, numRows),
		numCols:  make([]int, numRows),
		firstBin: make([]int64, numRows+1),
	}
	for row := 0; row < numRows; row++ {
		lat := 90.0 - (float64(row)+0.5)*180.0/float64(numRows)
		g.lats[row] = lat
		n := int(math.Round(2 * float64(numRows) * math.Cos(lat*math.Pi/180)))
		if n < 1 {
			n = 1
		}
		g.numCols[row] = n
		g.firstBin[row+1] = g.firstBin[row] + int64(n)
	}
	return g, nil
}

func (*SEAGrid) planetaryGrid() {}

// Kind returns SEA.
func (*SEAGrid) Kind() Kind { return SEA }

// NumRows implements PlanetaryGrid.
func (g *SEAGrid) NumRows() int { return g.numRows }

// NumBins implements PlanetaryGrid.
func (g *SEAGrid) NumBins() int64 { return g.firstBin[g.numRows] }

// NumCols implements PlanetaryGrid.
func (g *SEAGrid) NumCols(row int) (int, error) {
	if err := checkRow(row, g.numRows); err != nil {
		return 0, err
	}
	return g.numCols[row], nil
}

// FirstBinIndex implements PlanetaryGrid.
func (g *SEAGrid) FirstBinIndex(row int) (int64, error) {
	if err := checkRow(row, g.numRows); err != nil {
		return 0, err
	}
	return g.firstBin[row], nil
}

// CenterLat implements PlanetaryGrid.
func (g *SEAGrid) CenterLat(row int) (float64, error) {
	if err := checkRow(row, g.numRows); err != nil {
		return 0, err
	}
	return g.lats[row], nil
}

// BinIndex implements PlanetaryGrid.
func (g *SEAGrid) BinIndex(lat, lon float64) int64 {
	row := clampIndex(int((90.0-lat)*float64(g.numRows)/180.0), g.numRows)
	n := g.numCols[row]
	col := clampIndex(int((lon+180.0)*float64(n)/360.0), n)
	return g.firstBin[row] + int64(col)
}

// RowIndex implements PlanetaryGrid.
func (g *SEAGrid) RowIndex(bin int64) (int, error) {
	if err := checkBin(bin, g.NumBins()); err != nil {
		return 0, err
	}
	return rowOfBin(g.firstBin, bin), nil
}

// CenterLatLon implements PlanetaryGrid.
func (g *SEAGrid) CenterLatLon(bin int64) (lat, lon float64, err error) {
	row, err := g.RowIndex(bin)
	if err != nil {
		return 0, 0, err
	}
	col := bin - g.firstBin[row]
	lon = -180.0 + (float64(col)+0.5)*360.0/float64(g.numCols[row])
	return g.lats[row], lon, nil
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
