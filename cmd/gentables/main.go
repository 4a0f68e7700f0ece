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

// Command gentables writes the Gaussian grid tables embedded in package
// planetgrid. Latitudes are the arcsines of the Gauss-Legendre nodes and
// reduced column counts follow planetgrid.ReducedColumnCount.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/planetgrid"
	"gonum.org/v1/gonum/integrate/quad"
)

var (
	dir         = flag.String("dir", "tables", "output directory")
	resolutions = flag.String("n", "32,48,64,80,128,160,256,320,512", "comma separated rows per hemisphere")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
	if err := generate(*dir, *resolutions, logrus.StandardLogger()); err != nil {
		logrus.Fatal(err)
	}
}

// generate writes one table per comma separated resolution into dir.
func generate(dir, resolutions string, log logrus.FieldLogger) error {
	for _, s := range strings.Split(resolutions, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("gentables: invalid resolution %q: %v", s, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("N%d.toml", n))
		if err := write(path, n); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"n": n, "path": path}).Info("wrote table")
	}
	return nil
}

// latitudes returns the n northern hemisphere Gaussian latitudes,
// north to south.
func latitudes(n int) []float64 {
	x := make([]float64, 2*n)
	w := make([]float64, 2*n)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)
	sort.Sort(sort.Reverse(sort.Float64Slice(x)))
	lats := make([]float64, n)
	for i := range lats {
		lats[i] = math.Asin(x[i]) * 180 / math.Pi
	}
	return lats
}

func write(path string, n int) error {
	lats := latitudes(n)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gentables: %v", err)
	}
	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# Code generated by gentables. DO NOT EDIT.")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "# Gaussian grid N%d: %d rows pole to pole.\n", n, 2*n)
	fmt.Fprintf(w, "N = %d\n", n)
	fmt.Fprintf(w, "RegularColumns = %d\n", 4*n)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "# Northern hemisphere latitudes in degrees, north to south.")
	fmt.Fprintln(w, "Latitudes = [")
	for i := 0; i < n; i += 4 {
		var line []string
		for _, lat := range lats[i:min(i+4, n)] {
			line = append(line, strconv.FormatFloat(lat, 'g', -1, 64))
		}
		fmt.Fprintf(w, "  %s,\n", strings.Join(line, ", "))
	}
	fmt.Fprintln(w, "]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "# Reduced grid column counts for the rows above.")
	fmt.Fprintln(w, "ReducedColumns = [")
	for i := 0; i < n; i += 12 {
		var line []string
		for _, lat := range lats[i:min(i+12, n)] {
			line = append(line, strconv.Itoa(planetgrid.ReducedColumnCount(lat, 4*n)))
		}
		fmt.Fprintf(w, "  %s,\n", strings.Join(line, ", "))
	}
	fmt.Fprintln(w, "]")
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("gentables: %v", err)
	}
	return f.Close()
}
