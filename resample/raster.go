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

import (
	"fmt"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/mat"
)

// Raster is a two-dimensional grid of samples. i is the column and j is
// the row; implementations may assume 0 <= i < Width() and
// 0 <= j < Height().
type Raster interface {
	Width() int
	Height() int
	Sample(i, j int) float64
}

// SliceRaster is a Raster backed by a row-major slice.
type SliceRaster struct {
	W, H int
	Data []float64 // Data[j*W+i]
}

// NewSliceRaster returns a raster of the given size holding data, which
// must have width*height elements.
func NewSliceRaster(width, height int, data []float64) (*SliceRaster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("resample: invalid raster size %dx%d", width, height)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("resample: raster size %dx%d needs %d samples but have %d",
			width, height, width*height, len(data))
	}
	return &SliceRaster{W: width, H: height, Data: data}, nil
}

// Width implements Raster.
func (r *SliceRaster) Width() int { return r.W }

// Height implements Raster.
func (r *SliceRaster) Height() int { return r.H }

// Sample implements Raster.
func (r *SliceRaster) Sample(i, j int) float64 { return r.Data[j*r.W+i] }

// DenseRaster adapts a two-dimensional array with shape [height, width].
type DenseRaster struct {
	*sparse.DenseArray
}

// Width implements Raster.
func (r DenseRaster) Width() int { return r.Shape[1] }

// Height implements Raster.
func (r DenseRaster) Height() int { return r.Shape[0] }

// Sample implements Raster.
func (r DenseRaster) Sample(i, j int) float64 { return r.Get(j, i) }

// MatrixRaster adapts a matrix whose rows are raster rows.
type MatrixRaster struct {
	mat.Matrix
}

// Width implements Raster.
func (r MatrixRaster) Width() int {
	_, c := r.Dims()
	return c
}

// Height implements Raster.
func (r MatrixRaster) Height() int {
	n, _ := r.Dims()
	return n
}

// Sample implements Raster.
func (r MatrixRaster) Sample(i, j int) float64 { return r.At(j, i) }
