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

// Package regrid projects georeferenced rasters onto planetary grids and
// renders per-bin values back onto rasters.
package regrid

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"

	"github.com/spatialmodel/planetgrid"
	"github.com/spatialmodel/planetgrid/resample"
)

// LonLat is the spatial reference of geographic coordinates in degrees.
const LonLat = "+proj=longlat"

// GeoRaster is a raster with an affine georeference.
type GeoRaster struct {
	resample.Raster

	// X0 and Y0 are the coordinates of the outer corner of the first
	// pixel, and Dx and Dy are the pixel size. Dy is negative for
	// north-up rasters.
	X0, Y0, Dx, Dy float64

	// Proj is the spatial reference of the raster coordinates as a
	// proj4 string. Empty means longitude/latitude in degrees.
	Proj string
}

// Bounds returns the extent of r in its own coordinates.
func (r *GeoRaster) Bounds() *geom.Bounds {
	b := geom.NewBounds()
	b.Extend(geom.NewBoundsPoint(geom.Point{X: r.X0, Y: r.Y0}))
	b.Extend(geom.NewBoundsPoint(geom.Point{
		X: r.X0 + float64(r.Width())*r.Dx,
		Y: r.Y0 + float64(r.Height())*r.Dy,
	}))
	return b
}

// pixel converts raster coordinates to fractional pixel coordinates in
// which pixel (i, j) covers [i, i+1) × [j, j+1).
func (r *GeoRaster) pixel(x, y float64) (px, py float64) {
	return (x - r.X0) / r.Dx, (y - r.Y0) / r.Dy
}

func (r *GeoRaster) check() error {
	if r.Raster == nil {
		return fmt.Errorf("regrid: missing raster")
	}
	if r.Dx == 0 || r.Dy == 0 || math.IsNaN(r.Dx) || math.IsNaN(r.Dy) {
		return fmt.Errorf("regrid: invalid pixel size %g×%g", r.Dx, r.Dy)
	}
	return nil
}

// transformer returns a function converting longitude/latitude to the
// coordinates of r.
func (r *GeoRaster) transformer() (proj.Transformer, error) {
	if r.Proj == "" {
		return func(x, y float64) (float64, float64, error) { return x, y, nil }, nil
	}
	src, err := proj.Parse(LonLat)
	if err != nil {
		return nil, fmt.Errorf("regrid: %v", err)
	}
	dst, err := proj.Parse(r.Proj)
	if err != nil {
		return nil, fmt.Errorf("regrid: parsing raster projection: %v", err)
	}
	t, err := src.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("regrid: %v", err)
	}
	return t, nil
}

// Options control ToGrid.
type Options struct {
	// Method is the interpolation method. The default is bilinear.
	Method resample.Method

	// CornerBased selects corner-based pixel indexing, in which the
	// sample of pixel (i, j) represents the point (X0+i·Dx, Y0+j·Dy).
	CornerBased bool

	// NoData is the value of bins whose centre falls outside the raster.
	NoData float64

	// Workers is the number of concurrent workers. The default is
	// GOMAXPROCS.
	Workers int

	// Log receives progress messages. The default is the logrus
	// standard logger.
	Log logrus.FieldLogger
}

func (o *Options) defaults() {
	if o.Method == nil {
		o.Method = resample.Bilinear
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(-1)
	}
	if o.Log == nil {
		o.Log = logrus.StandardLogger()
	}
}

// ToGrid resamples src at the centre of every bin of grid and returns the
// values indexed by bin. Rows are processed concurrently; each worker owns
// its own resampling index.
func ToGrid(ctx context.Context, grid planetgrid.PlanetaryGrid, src *GeoRaster, o Options) ([]float64, error) {
	if err := src.check(); err != nil {
		return nil, err
	}
	o.defaults()
	start := time.Now()
	log := o.Log.WithFields(logrus.Fields{
		"grid":   grid.Kind().String(),
		"rows":   grid.NumRows(),
		"method": o.Method.Name(),
	})
	log.WithField("bins", grid.NumBins()).Info("regridding raster")

	values := make([]float64, grid.NumBins())
	nprocs := o.Workers
	if nprocs > grid.NumRows() {
		nprocs = grid.NumRows()
	}
	errs := make([]error, nprocs)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			trans, err := src.transformer()
			if err != nil {
				errs[pp] = err
				return
			}
			ix := resample.NewIndex(o.Method)
			for row := pp; row < grid.NumRows(); row += nprocs {
				if err := ctx.Err(); err != nil {
					errs[pp] = err
					return
				}
				if err := regridRow(grid, src, &o, trans, ix, row, values); err != nil {
					errs[pp] = err
					return
				}
			}
		}(pp)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	log.WithField("duration", time.Since(start)).Info("finished regridding")
	return values, nil
}

func regridRow(grid planetgrid.PlanetaryGrid, src *GeoRaster, o *Options, trans proj.Transformer, ix *resample.Index, row int, values []float64) error {
	first, err := grid.FirstBinIndex(row)
	if err != nil {
		return err
	}
	cols, err := grid.NumCols(row)
	if err != nil {
		return err
	}
	w, h := src.Width(), src.Height()
	// Pixel coordinate range that lies on the raster.
	lo, hiX, hiY := 0.0, float64(w), float64(h)
	if o.CornerBased {
		lo, hiX, hiY = -0.5, float64(w)-0.5, float64(h)-0.5
	}
	for c := int64(0); c < int64(cols); c++ {
		bin := first + c
		lat, lon, err := grid.CenterLatLon(bin)
		if err != nil {
			return err
		}
		x, y, err := trans(lon, lat)
		if err != nil {
			return fmt.Errorf("regrid: transforming bin %d: %v", bin, err)
		}
		px, py := src.pixel(x, y)
		if !(px >= lo && px < hiX && py >= lo && py < hiY) {
			values[bin] = o.NoData
			continue
		}
		if o.CornerBased {
			o.Method.ComputeCornerBasedIndex(px, py, w, h, ix)
		} else {
			o.Method.ComputeIndex(px, py, w, h, ix)
		}
		values[bin] = o.Method.Resample(src, ix)
	}
	return nil
}

// FromGrid renders per-bin values onto a width×height longitude/latitude
// raster covering bounds, with row 0 at the north edge. Each pixel takes
// the value of the bin containing its centre. The returned array has shape
// [height, width].
func FromGrid(ctx context.Context, grid planetgrid.PlanetaryGrid, values []float64, width, height int, bounds *geom.Bounds) (*sparse.DenseArray, error) {
	if int64(len(values)) != grid.NumBins() {
		return nil, fmt.Errorf("regrid: have %d values for %d bins", len(values), grid.NumBins())
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("regrid: invalid output size %dx%d", width, height)
	}
	if bounds == nil || bounds.Empty() {
		return nil, fmt.Errorf("regrid: empty output bounds")
	}
	dx := (bounds.Max.X - bounds.Min.X) / float64(width)
	dy := (bounds.Max.Y - bounds.Min.Y) / float64(height)
	o := sparse.ZerosDense(height, width)
	for j := 0; j < height; j++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lat := bounds.Max.Y - (float64(j)+0.5)*dy
		for i := 0; i < width; i++ {
			lon := bounds.Min.X + (float64(i)+0.5)*dx
			o.Set(values[grid.BinIndex(lat, lon)], j, i)
		}
	}
	return o, nil
}
