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

package gridutil

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/spatialmodel/planetgrid/resample"
)

// KernelCurve returns the one-dimensional weight function of m as points
// (distance from the query position, weight), sampled at the given number
// of offsets per pixel and sorted by distance.
func KernelCurve(m resample.Method, samplesPerPixel int) plotter.XYs {
	n := m.Support()
	h := (n - 1) / 2
	w := make([]float64, n)
	// Odd supports are centred on the nearest sample.
	var shift float64
	if n%2 == 1 {
		shift = -0.5
	}
	pts := make(plotter.XYs, 0, n*samplesPerPixel)
	for s := 0; s < samplesPerPixel; s++ {
		mu := float64(s)/float64(samplesPerPixel) + shift
		m.Weights(mu, w)
		for k, v := range w {
			pts = append(pts, plotter.XY{X: float64(k-h) - mu, Y: v})
		}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
	return pts
}

// PlotKernel saves a plot of the weight function of m to path. The file
// extension selects the image format.
func PlotKernel(m resample.Method, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s interpolation kernel", m.Name())
	p.X.Label.Text = "Distance from sample (pixels)"
	p.Y.Label.Text = "Weight"
	p.Title.TextStyle.Font.Size = vg.Points(12)
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(KernelCurve(m, 64))
	if err != nil {
		return fmt.Errorf("planetgrid: plotting kernel: %v", err)
	}
	line.Width = vg.Points(1)
	p.Add(line)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("planetgrid: saving kernel plot: %v", err)
	}
	return nil
}
