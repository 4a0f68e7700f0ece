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

// Package planetgrid maps geographic coordinates onto the bins of global
// planetary grids and back.
//
// Three grid kinds are available. Regular and Reduced are Gaussian grids
// whose row latitudes come from a geodetic reference table with N rows per
// hemisphere; in a Regular grid all rows have 4N columns, while in a Reduced
// grid the column count shrinks toward the poles. SEA is a sinusoidal
// equal-area grid that needs no table.
//
// Bins are numbered from the north-western corner, row by row from north to
// south and column by column from west to east within a row.
package planetgrid

import (
	"fmt"
	"strings"
)

// Version is the version of this module.
const Version = "0.1.0"

// Kind identifies a planetary grid variant.
type Kind int

// The available grid kinds.
const (
	Regular Kind = iota // regular Gaussian grid
	Reduced             // reduced Gaussian grid
	SEA                 // sinusoidal equal-area grid
)

var kindNames = []string{"regular", "reduced", "sea"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the kind with the given (case-insensitive) name.
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(s, n) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("planetgrid: unknown grid kind %q; valid kinds are %v", s, kindNames)
}

// PlanetaryGrid is a global grid of bins. All implementations are
// provided by this package.
type PlanetaryGrid interface {
	// Kind returns the grid variant.
	Kind() Kind

	// NumRows returns the number of rows from pole to pole.
	NumRows() int

	// NumBins returns the total number of bins.
	NumBins() int64

	// NumCols returns the number of columns in the given row.
	NumCols(row int) (int, error)

	// FirstBinIndex returns the index of the first bin of the given row,
	// which equals the number of bins in all preceding rows.
	FirstBinIndex(row int) (int64, error)

	// CenterLat returns the latitude of the given row.
	CenterLat(row int) (float64, error)

	// BinIndex returns the index of the bin covering the given location.
	// lat must be within [-90, 90] and lon within [-180, 180]; callers
	// are responsible for normalizing. Locations outside of that range
	// currently fall into the nearest edge row or column, but this
	// is not part of the contract.
	BinIndex(lat, lon float64) int64

	// RowIndex returns the row that contains the given bin.
	RowIndex(bin int64) (int, error)

	// CenterLatLon returns the representative location of the given bin.
	CenterLatLon(bin int64) (lat, lon float64, err error)

	planetaryGrid()
}

// New creates a grid of the given kind with numRows rows, using the
// process-wide table cache.
func New(kind Kind, numRows int) (PlanetaryGrid, error) {
	return DefaultTables().New(kind, numRows)
}

// New creates a grid of the given kind with numRows rows, loading any
// required geodetic table from t.
func (t *Tables) New(kind Kind, numRows int) (PlanetaryGrid, error) {
	if numRows <= 0 || numRows%2 != 0 {
		return nil, &ConfigurationError{N: numRows / 2, Err: fmt.Errorf("number of rows %d should be even and >0", numRows)}
	}
	switch kind {
	case Regular, Reduced:
		c, err := t.Config(numRows / 2)
		if err != nil {
			return nil, err
		}
		if kind == Regular {
			return NewRegularGaussianGrid(c), nil
		}
		return NewReducedGaussianGrid(c), nil
	case SEA:
		return NewSEAGrid(numRows)
	default:
		return nil, fmt.Errorf("planetgrid: invalid grid kind %v", kind)
	}
}
