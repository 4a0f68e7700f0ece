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

import "math"

// findClosestLat returns the index of the latitude in lats, which runs
// from north to south with near-uniform spacing, that is closest to lat.
// The position is first estimated from the mean spacing and then refined
// within a window of three samples that never leaves the table, so values
// beyond either pole map onto the first or last row.
func findClosestLat(lats []float64, lat float64) int {
	spacing := 180.0 / float64(len(lats))
	return closestOfThree(lats, lat, int((90.0-lat)/spacing)-1)
}

// findClosestLon is the longitude counterpart of findClosestLat for an
// ascending table starting near -180.
func findClosestLon(lons []float64, lon float64) int {
	spacing := 360.0 / float64(len(lons))
	return closestOfThree(lons, lon, int((lon+180.0)/spacing)-1)
}

// closestOfThree compares v with table[idx:idx+3] after clamping idx so
// that the window fits. Only neighbouring distances are compared, which is
// sufficient for monotonic, near-uniformly spaced tables.
func closestOfThree(table []float64, v float64, idx int) int {
	if idx > len(table)-3 {
		idx = len(table) - 3
	}
	if idx < 0 {
		idx = 0
	}
	d0 := math.Abs(table[idx] - v)
	d1 := math.Abs(table[idx+1] - v)
	d2 := math.Abs(table[idx+2] - v)
	if d0 < d1 && d0 < d2 {
		return idx
	}
	if d1 < d2 {
		return idx + 1
	}
	return idx + 2
}
