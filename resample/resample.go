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

// Package resample interpolates raster values at fractional pixel
// positions with separable kernels.
//
// Resampling is split in two steps so the hot path does not allocate:
// ComputeIndex (or ComputeCornerBasedIndex) finds the kernel support
// around a position and stores it in a caller-owned Index, and Resample
// reads the supporting samples from a Raster and returns their weighted
// sum. Tap coordinates are clamped to the raster, so samples at the
// edges are replicated outward.
package resample

import (
	"fmt"
	"strings"
)

// Method is an interpolation kernel.
type Method interface {
	// Name returns the short name of the method.
	Name() string

	// Support returns the number of taps per axis.
	Support() int

	// Weights writes the weight of each of the Support() taps along one
	// axis for a query at offset mu from tap (Support()-1)/2, in samples.
	Weights(mu float64, w []float64)

	// ComputeIndex fills index for the position (x, y) in a raster of
	// the given size, where pixel (i, j) has its sample at the centre
	// (i+0.5, j+0.5).
	ComputeIndex(x, y float64, width, height int, index *Index)

	// ComputeCornerBasedIndex is like ComputeIndex except that the
	// sample of pixel (i, j) sits at (i, j).
	ComputeCornerBasedIndex(x, y float64, width, height int, index *Index)

	// Resample returns the interpolated value at the position last
	// computed into index, which must have been filled by this method.
	Resample(raster Raster, index *Index) float64
}

// The available methods.
var (
	Nearest          Method = &separable{name: "nearest", support: 1, weights: nearestWeights}
	Bilinear         Method = &separable{name: "bilinear", support: 2, weights: bilinearWeights}
	CubicConvolution Method = &separable{name: "cubic", support: 4, weights: cubicWeights}
	BiSinc5          Method = &separable{name: "bisinc5", support: 5, weights: sincWeights(5)}
	BiSinc11         Method = &separable{name: "bisinc11", support: 11, weights: sincWeights(11)}
	BiSinc21         Method = &separable{name: "bisinc21", support: 21, weights: sincWeights(21)}
)

// Methods returns all available methods, from the smallest support to the
// largest.
func Methods() []Method {
	return []Method{Nearest, Bilinear, CubicConvolution, BiSinc5, BiSinc11, BiSinc21}
}

// MethodByName returns the method with the given (case-insensitive) name.
func MethodByName(name string) (Method, error) {
	var names []string
	for _, m := range Methods() {
		if strings.EqualFold(m.Name(), name) {
			return m, nil
		}
		names = append(names, m.Name())
	}
	return nil, fmt.Errorf("resample: unknown method %q; valid methods are %v", name, names)
}

// Interpolate computes the index for (x, y) in pixel-centre coordinates
// and resamples r there.
func Interpolate(m Method, r Raster, x, y float64, index *Index) float64 {
	m.ComputeIndex(x, y, r.Width(), r.Height(), index)
	return m.Resample(r, index)
}

// separable is a kernel whose two-dimensional weights are the product of
// the same one-dimensional weights along each axis.
type separable struct {
	name    string
	support int
	weights func(mu float64, w []float64)
}

func (s *separable) Name() string   { return s.name }
func (s *separable) Support() int   { return s.support }
func (s *separable) String() string { return s.name }

func (s *separable) Weights(mu float64, w []float64) { s.weights(mu, w[:s.support]) }

func (s *separable) ComputeIndex(x, y float64, width, height int, index *Index) {
	index.compute(x, y, width, height, s.support, true)
}

func (s *separable) ComputeCornerBasedIndex(x, y float64, width, height int, index *Index) {
	index.compute(x, y, width, height, s.support, false)
}

func (s *separable) Resample(r Raster, ix *Index) float64 {
	if s.support == 1 {
		return r.Sample(ix.I[0], ix.J[0])
	}
	_, mi := ix.tapOffset(ix.KI[0], s.support)
	_, mj := ix.tapOffset(ix.KJ[0], s.support)
	s.weights(mi, ix.wi)
	s.weights(mj, ix.wj)
	var sum float64
	for b, j := range ix.J {
		var row float64
		for a, i := range ix.I {
			row += ix.wi[a] * r.Sample(i, j)
		}
		sum += ix.wj[b] * row
	}
	return sum
}
