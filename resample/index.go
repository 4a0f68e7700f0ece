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

package resample

import "math"

// Index is caller-owned scratch space describing the source samples that
// contribute to one resampled value. Create one with NewIndex and reuse
// it for as many samples as needed: every compute call overwrites all of
// its fields, so nothing carries over between calls. An Index must not be
// shared between goroutines; give each worker its own.
type Index struct {
	X, Y          float64 // query position in pixel coordinates
	Width, Height int     // source raster size

	// I0 and J0 are the base pixel floor(X), floor(Y) the kernel
	// support is anchored to.
	I0, J0 int

	// I and J hold the column and row of each kernel tap, clamped
	// to the raster.
	I, J []int

	// KI[0] and KJ[0] hold the offset of the query position from the
	// base pixel along each axis, in [0, 1).
	KI, KJ []float64

	centers bool      // pixel centre mode of the last compute call
	wi, wj  []float64 // kernel weights scratch
}

// NewIndex returns an Index sized for m.
func NewIndex(m Method) *Index {
	ix := new(Index)
	ix.resize(m.Support())
	return ix
}

func (ix *Index) resize(n int) {
	if cap(ix.I) < n {
		ix.I = make([]int, n)
		ix.J = make([]int, n)
		ix.wi = make([]float64, n)
		ix.wj = make([]float64, n)
	}
	ix.I = ix.I[:n]
	ix.J = ix.J[:n]
	ix.wi = ix.wi[:n]
	ix.wj = ix.wj[:n]
	if ix.KI == nil {
		ix.KI = make([]float64, 1)
		ix.KJ = make([]float64, 1)
	}
}

// Crop clamps i to [0, max].
func Crop(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}

// compute fills ix for a kernel with n taps per axis. pixelCenters
// selects the convention in which pixel i covers [i, i+1) with its
// sample at the centre i+0.5; otherwise the sample of pixel i sits at
// coordinate i. In both conventions I0 is floor(x) and KI[0] is x-I0.
func (ix *Index) compute(x, y float64, width, height, n int, pixelCenters bool) {
	ix.resize(n)
	ix.X, ix.Y = x, y
	ix.Width, ix.Height = width, height
	ix.centers = pixelCenters

	ix.I0 = int(math.Floor(x))
	ix.J0 = int(math.Floor(y))
	ix.KI[0] = x - float64(ix.I0)
	ix.KJ[0] = y - float64(ix.J0)

	offI, _ := ix.tapOffset(ix.KI[0], n)
	offJ, _ := ix.tapOffset(ix.KJ[0], n)
	h := (n - 1) / 2
	for k := 0; k < n; k++ {
		ix.I[k] = Crop(ix.I0+offI-h+k, width-1)
		ix.J[k] = Crop(ix.J0+offJ-h+k, height-1)
	}
}

// tapOffset returns the shift of the kernel support from the base pixel
// for a fractional offset f in [0, 1), and the position of the query
// relative to tap (n-1)/2 of the shifted support, in samples.
//
// Odd supports keep the base pixel as their middle tap. Even supports
// start at the sample at or to the left of the query, which in pixel
// centre mode is the previous pixel when f < 0.5.
func (ix *Index) tapOffset(f float64, n int) (int, float64) {
	if ix.centers {
		f -= 0.5
	}
	if n%2 == 0 && f < 0 {
		return -1, f + 1
	}
	return 0, f
}
