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

import "fmt"

// ConfigurationError is returned when a grid cannot be built for the
// requested resolution, either because no geodetic table exists for it
// or because the table failed to load.
type ConfigurationError struct {
	// N is the half row count the table was requested for.
	N   int
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("planetgrid: no grid configuration for N=%d", e.N)
	}
	return fmt.Sprintf("planetgrid: grid configuration N=%d: %v", e.N, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// IndexError is returned when a row or bin index falls outside of
// the grid. It always indicates a bug in the caller.
type IndexError struct {
	What  string // "row" or "bin"
	Index int64
	Limit int64 // exclusive upper bound
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("planetgrid: %s index out of range: %d not in [0, %d)", e.What, e.Index, e.Limit)
}

func checkRow(row, numRows int) error {
	if row < 0 || row >= numRows {
		return &IndexError{What: "row", Index: int64(row), Limit: int64(numRows)}
	}
	return nil
}

func checkBin(bin, numBins int64) error {
	if bin < 0 || bin >= numBins {
		return &IndexError{What: "bin", Index: bin, Limit: numBins}
	}
	return nil
}
