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
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/spatialmodel/planetgrid"
	"github.com/spatialmodel/planetgrid/regrid"
	"github.com/spatialmodel/planetgrid/resample"
)

// run executes the root command with args after applying the given
// configuration, and returns what it printed.
func run(t *testing.T, cfg map[string]interface{}, args ...string) (string, error) {
	t.Helper()
	defaults := map[string]interface{}{
		"Grid.Kind":            "regular",
		"Grid.NumRows":         64,
		"Resample.Method":      "bilinear",
		"Resample.CornerBased": false,
		"Regrid.Workers":       0,
		"Regrid.Width":         360,
		"Regrid.Height":        180,
		"LogLevel":             "warning",
	}
	for k, v := range defaults {
		Cfg.Set(k, v)
	}
	for k, v := range cfg {
		Cfg.Set(k, v)
	}
	var out, errOut bytes.Buffer
	Root.SetOut(&out)
	Root.SetErr(&errOut)
	Root.SetArgs(args)
	err := Root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, nil, "version")
	if err != nil {
		t.Fatal(err)
	}
	if want := "planetgrid v" + planetgrid.Version + "\n"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestInfo(t *testing.T) {
	out, err := run(t, nil, "info")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"kind: regular\n",
		"rows: 64\n",
		"bins: 8192\n",
		"columns: 128 to 128\n",
		"row 63: lat=-87.863799 cols=128 first=8064\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
}

func TestInfoReduced(t *testing.T) {
	out, err := run(t, map[string]interface{}{"Grid.Kind": "reduced"}, "info")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"kind: reduced\n", "columns: 16 to 128\n", "row 0: lat=87.863799 cols=16 first=0\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
}

func TestBin(t *testing.T) {
	out, err := run(t, nil, "bin", "45", "90")
	if err != nil {
		t.Fatal(err)
	}
	if want := "bin=2016 row=15 col=96\n"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestCenter(t *testing.T) {
	out, err := run(t, nil, "center", "2016")
	if err != nil {
		t.Fatal(err)
	}
	if want := "row=15 col=96 lat=46.044727 lon=90.000000\n"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestCommandErrors(t *testing.T) {
	cases := []struct {
		name string
		cfg  map[string]interface{}
		args []string
		want string
	}{
		{name: "latitude", args: []string{"bin", "95", "0"}, want: "latitude 95 not in [-90, 90]"},
		{name: "longitude", args: []string{"bin", "--", "0", "-181"}, want: "longitude -181 not in [-180, 180]"},
		{name: "not a number", args: []string{"bin", "north", "0"}, want: "invalid latitude"},
		{name: "bin range", args: []string{"center", "8192"}, want: "bin index out of range"},
		{name: "odd rows", cfg: map[string]interface{}{"Grid.NumRows": 63}, args: []string{"info"},
			want: "Grid.NumRows=63 but should be even and >0"},
		{name: "no table", cfg: map[string]interface{}{"Grid.NumRows": 66}, args: []string{"info"},
			want: "no grid configuration for N=33"},
		{name: "kind", cfg: map[string]interface{}{"Grid.Kind": "hexagonal"}, args: []string{"info"},
			want: "Grid.Kind"},
		{name: "method", cfg: map[string]interface{}{"Resample.Method": "lanczos"}, args: []string{"kernel"},
			want: "Resample.Method"},
		{name: "log level", cfg: map[string]interface{}{"LogLevel": "loud"}, args: []string{"version"},
			want: "LogLevel"},
		{name: "raster size", cfg: map[string]interface{}{"Regrid.Width": 0}, args: []string{"check"},
			want: "Regrid.Width=0 but should be >0"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := run(t, c.cfg, c.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Errorf("error %q does not contain %q", err, c.want)
			}
		})
	}
}

func TestTables(t *testing.T) {
	out, err := run(t, nil, "tables")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(planetgrid.SupportedResolutions()) {
		t.Fatalf("got %d lines, want %d", len(lines), len(planetgrid.SupportedResolutions()))
	}
	if !strings.HasPrefix(lines[0], "N32\trows=64\tsum=") {
		t.Errorf("first line %q", lines[0])
	}
}

func TestKernel(t *testing.T) {
	out, err := run(t, nil, "kernel", "0.25")
	if err != nil {
		t.Fatal(err)
	}
	if want := "bilinear mu=0.25: 0.75 0.25\n"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
	out, err = run(t, map[string]interface{}{"Resample.Method": "nearest"}, "kernel")
	if err != nil {
		t.Fatal(err)
	}
	if want := "nearest mu=0.5: 1\n"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kernel.png")
	if _, err := run(t, map[string]interface{}{"Plot.Output": path, "Resample.Method": "bisinc11"}, "plot"); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() == 0 {
		t.Error("empty plot")
	}
}

func TestKernelCurve(t *testing.T) {
	for _, m := range resample.Methods() {
		pts := KernelCurve(m, 16)
		if len(pts) != 16*m.Support() {
			t.Fatalf("%s: %d points", m.Name(), len(pts))
		}
		for i := 1; i < len(pts); i++ {
			if pts[i].X < pts[i-1].X {
				t.Fatalf("%s: points not sorted", m.Name())
			}
		}
		// The kernel peaks at the sample itself.
		for _, p := range pts {
			if p.X == 0 && math.Abs(p.Y-1) > 1e-9 {
				t.Errorf("%s: weight at zero distance is %g", m.Name(), p.Y)
			}
		}
	}
}

func TestCheck(t *testing.T) {
	out, err := run(t, map[string]interface{}{"Grid.Kind": "sea", "Grid.NumRows": 90, "Regrid.Workers": 2}, "check")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "bilinear sea rows=90: rmse=") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestCheckRegrid(t *testing.T) {
	log, _ := test.NewNullLogger()
	for _, kind := range []planetgrid.Kind{planetgrid.Regular, planetgrid.Reduced} {
		g, err := planetgrid.New(kind, 64)
		if err != nil {
			t.Fatal(err)
		}
		for _, corner := range []bool{false, true} {
			for _, m := range []resample.Method{resample.Bilinear, resample.CubicConvolution} {
				o := regrid.Options{Method: m, CornerBased: corner, NoData: math.NaN(), Log: log}
				rmse, maxErr, err := CheckRegrid(context.Background(), g, 360, 180, o)
				if err != nil {
					t.Fatal(err)
				}
				if rmse > 1e-3 || maxErr > 1e-2 {
					t.Errorf("%v %s corner=%v: rmse=%g max=%g", kind, m.Name(), corner, rmse, maxErr)
				}
			}
		}
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planetgrid.toml")
	const cfg = `
[Grid]
Kind = "reduced"
NumRows = 96
`
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	v := newConfig()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatal(err)
	}
	g, err := GridFromConfig(v)
	if err != nil {
		t.Fatal(err)
	}
	if g.Kind() != planetgrid.Reduced || g.NumRows() != 96 {
		t.Errorf("got %v grid with %d rows", g.Kind(), g.NumRows())
	}
}

func TestEnvironment(t *testing.T) {
	t.Setenv("PLANETGRID_GRID_KIND", "sea")
	t.Setenv("PLANETGRID_GRID_NUMROWS", "180")
	t.Setenv("PLANETGRID_RESAMPLE_METHOD", "cubic")
	v := newConfig()
	g, err := GridFromConfig(v)
	if err != nil {
		t.Fatal(err)
	}
	if g.Kind() != planetgrid.SEA || g.NumRows() != 180 {
		t.Errorf("got %v grid with %d rows", g.Kind(), g.NumRows())
	}
	m, err := MethodFromConfig(v)
	if err != nil {
		t.Fatal(err)
	}
	if m != resample.CubicConvolution {
		t.Errorf("got method %s", m.Name())
	}
}
