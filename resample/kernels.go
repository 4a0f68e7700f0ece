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
	"math"

	"gonum.org/v1/gonum/floats"
)

func nearestWeights(_ float64, w []float64) { w[0] = 1 }

func bilinearWeights(mu float64, w []float64) {
	w[0] = 1 - mu
	w[1] = mu
}

// cubicA is the free parameter of the cubic convolution kernel; -0.5
// makes the interpolant reproduce quadratics.
const cubicA = -0.5

func cubic(t float64) float64 {
	t = math.Abs(t)
	switch {
	case t <= 1:
		return ((cubicA+2)*t-(cubicA+3))*t*t + 1
	case t < 2:
		return ((cubicA*t-5*cubicA)*t+8*cubicA)*t - 4*cubicA
	default:
		return 0
	}
}

func cubicWeights(mu float64, w []float64) {
	w[0] = cubic(-1 - mu)
	w[1] = cubic(-mu)
	w[2] = cubic(1 - mu)
	w[3] = cubic(2 - mu)
}

func sinc(t float64) float64 {
	if t == 0 {
		return 1
	}
	return math.Sin(math.Pi*t) / (math.Pi * t)
}

// sincWeights returns the weights function of a Hann-windowed sinc
// kernel with n (odd) taps. The window reaches zero half a tap beyond
// the outermost taps, and the weights are normalized to sum to one.
func sincWeights(n int) func(mu float64, w []float64) {
	h := (n - 1) / 2
	halfWidth := float64(n+1) / 2
	return func(mu float64, w []float64) {
		for k := range w {
			t := float64(k-h) - mu
			if math.Abs(t) >= halfWidth {
				w[k] = 0
				continue
			}
			w[k] = sinc(t) * (0.5 + 0.5*math.Cos(math.Pi*t/halfWidth))
		}
		floats.Scale(1/floats.Sum(w), w)
	}
}
