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
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/spatialmodel/planetgrid"
	"github.com/spatialmodel/planetgrid/regrid"
	"github.com/spatialmodel/planetgrid/resample"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe a planetary grid",
	Long: `info prints the kind, size, and row geometry of the grid specified by
the Grid.Kind and Grid.NumRows configuration variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := GridFromConfig(Cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "kind: %v\n", g.Kind())
		fmt.Fprintf(out, "rows: %d\n", g.NumRows())
		fmt.Fprintf(out, "bins: %d\n", g.NumBins())
		minCols, maxCols := math.MaxInt32, 0
		for row := 0; row < g.NumRows(); row++ {
			n, err := g.NumCols(row)
			if err != nil {
				return err
			}
			if n < minCols {
				minCols = n
			}
			if n > maxCols {
				maxCols = n
			}
		}
		fmt.Fprintf(out, "columns: %d to %d\n", minCols, maxCols)
		for _, row := range []int{0, g.NumRows()/2 - 1, g.NumRows() - 1} {
			lat, err := g.CenterLat(row)
			if err != nil {
				return err
			}
			n, err := g.NumCols(row)
			if err != nil {
				return err
			}
			first, err := g.FirstBinIndex(row)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "row %d: lat=%.6f cols=%d first=%d\n", row, lat, n, first)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var binCmd = &cobra.Command{
	Use:   "bin LAT LON",
	Short: "Find the bin containing a location",
	Long: `bin prints the index, row, and column of the grid bin containing the
location at latitude LAT and longitude LON, both in degrees.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, err := cast.ToFloat64E(args[0])
		if err != nil {
			return fmt.Errorf("planetgrid: invalid latitude %q", args[0])
		}
		lon, err := cast.ToFloat64E(args[1])
		if err != nil {
			return fmt.Errorf("planetgrid: invalid longitude %q", args[1])
		}
		if lat < -90 || lat > 90 {
			return fmt.Errorf("planetgrid: latitude %g not in [-90, 90]", lat)
		}
		if lon < -180 || lon > 180 {
			return fmt.Errorf("planetgrid: longitude %g not in [-180, 180]", lon)
		}
		g, err := GridFromConfig(Cfg)
		if err != nil {
			return err
		}
		bin := g.BinIndex(lat, lon)
		row, err := g.RowIndex(bin)
		if err != nil {
			return err
		}
		first, err := g.FirstBinIndex(row)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "bin=%d row=%d col=%d\n", bin, row, bin-first)
		return nil
	},
	DisableAutoGenTag: true,
}

var centerCmd = &cobra.Command{
	Use:   "center BIN",
	Short: "Find the center of a bin",
	Long:  `center prints the row, column, and center location of grid bin BIN.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bin, err := cast.ToInt64E(args[0])
		if err != nil {
			return fmt.Errorf("planetgrid: invalid bin index %q", args[0])
		}
		g, err := GridFromConfig(Cfg)
		if err != nil {
			return err
		}
		lat, lon, err := g.CenterLatLon(bin)
		if err != nil {
			return err
		}
		row, err := g.RowIndex(bin)
		if err != nil {
			return err
		}
		first, err := g.FirstBinIndex(row)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "row=%d col=%d lat=%.6f lon=%.6f\n", row, bin-first, lat, lon)
		return nil
	},
	DisableAutoGenTag: true,
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the supported Gaussian grid resolutions",
	Long: `tables lists the resolutions for which Gaussian grid tables are
available, as N (rows per hemisphere), the matching Grid.NumRows, and a
checksum of each table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, n := range planetgrid.SupportedResolutions() {
			c, err := planetgrid.DefaultTables().Config(n)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "N%d\trows=%d\tsum=%s\n", n, 2*n, c.Fingerprint())
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var kernelCmd = &cobra.Command{
	Use:   "kernel [MU]",
	Short: "Print interpolation weights",
	Long: `kernel prints the per-axis weights of the configured interpolation
method for a sample at offset MU from the base pixel. The default MU is 0.5.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := MethodFromConfig(Cfg)
		if err != nil {
			return err
		}
		mu := 0.5
		if len(args) == 1 {
			if mu, err = cast.ToFloat64E(args[0]); err != nil {
				return fmt.Errorf("planetgrid: invalid offset %q", args[0])
			}
		}
		w := make([]float64, m.Support())
		m.Weights(mu, w)
		s := make([]string, len(w))
		for i, v := range w {
			s[i] = cast.ToString(v)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s mu=%g: %s\n", m.Name(), mu, strings.Join(s, " "))
		return nil
	},
	DisableAutoGenTag: true,
}

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot an interpolation kernel",
	Long: `plot draws the one-dimensional weight function of the configured
interpolation method and saves it to Plot.Output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := MethodFromConfig(Cfg)
		if err != nil {
			return err
		}
		path := Cfg.GetString("Plot.Output")
		if err := PlotKernel(m, path); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"method": m.Name(), "file": path}).Info("saved kernel plot")
		return nil
	},
	DisableAutoGenTag: true,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Measure regridding error",
	Long: `check regrids an analytic field from a global longitude/latitude
raster of Regrid.Width×Regrid.Height pixels onto the configured grid,
compares the result with the exact field at each bin center, and prints
the root-mean-square and maximum absolute errors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := GridFromConfig(Cfg)
		if err != nil {
			return err
		}
		m, err := MethodFromConfig(Cfg)
		if err != nil {
			return err
		}
		width, err := positiveInt(Cfg, "Regrid.Width")
		if err != nil {
			return err
		}
		height, err := positiveInt(Cfg, "Regrid.Height")
		if err != nil {
			return err
		}
		opts := regrid.Options{
			Method:      m,
			CornerBased: Cfg.GetBool("Resample.CornerBased"),
			NoData:      math.NaN(),
			Workers:     cast.ToInt(Cfg.Get("Regrid.Workers")),
			Log:         logrus.StandardLogger(),
		}
		rmse, maxErr, err := CheckRegrid(cmd.Context(), g, width, height, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %v rows=%d: rmse=%.3g max=%.3g\n",
			m.Name(), g.Kind(), g.NumRows(), rmse, maxErr)
		return nil
	},
	DisableAutoGenTag: true,
}

// field is the analytic test field used by CheckRegrid.
func field(lon, lat float64) float64 {
	const rad = math.Pi / 180
	return math.Cos(lat*rad) * math.Cos(2*lon*rad)
}

// CheckRegrid samples field on a global width×height raster, regrids it
// onto g and returns the root-mean-square and maximum absolute differences
// from the exact field at the bin centers. Bins left at o.NoData are
// skipped.
func CheckRegrid(ctx context.Context, g planetgrid.PlanetaryGrid, width, height int, o regrid.Options) (rmse, maxErr float64, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	dx, dy := 360/float64(width), 180/float64(height)
	pixelOffset := 0.5
	if o.CornerBased {
		pixelOffset = 0
	}
	data := make([]float64, width*height)
	for j := 0; j < height; j++ {
		lat := 90 - (float64(j)+pixelOffset)*dy
		for i := 0; i < width; i++ {
			data[j*width+i] = field(-180+(float64(i)+pixelOffset)*dx, lat)
		}
	}
	r, err := resample.NewSliceRaster(width, height, data)
	if err != nil {
		return 0, 0, err
	}
	src := &regrid.GeoRaster{Raster: r, X0: -180, Y0: 90, Dx: dx, Dy: -dy}
	values, err := regrid.ToGrid(ctx, g, src, o)
	if err != nil {
		return 0, 0, err
	}
	var sum float64
	var n int
	for bin, v := range values {
		if math.IsNaN(v) || v == o.NoData {
			continue
		}
		lat, lon, err := g.CenterLatLon(int64(bin))
		if err != nil {
			return 0, 0, err
		}
		d := math.Abs(v - field(lon, lat))
		sum += d * d
		maxErr = math.Max(maxErr, d)
		n++
	}
	if n == 0 {
		return 0, 0, fmt.Errorf("planetgrid: no bins were covered by the raster")
	}
	return math.Sqrt(sum / float64(n)), maxErr, nil
}
