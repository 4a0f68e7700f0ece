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

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kr/pretty"
	"gonum.org/v1/gonum/integrate/quad"
)

// fixtureSource serves a small synthetic table for N=2 and N=3 and counts
// how often it is called.
type fixtureSource struct {
	calls int32
}

func (f *fixtureSource) load(n int) (*GridConfig, error) {
	atomic.AddInt32(&f.calls, 1)
	switch n {
	case 2:
		return NewGridConfig([]float64{67.5, 22.5}, 8, []int{4, 8})
	case 3:
		return NewGridConfig([]float64{75, 45, 15}, 12, []int{4, 8, 12})
	default:
		return nil, &ConfigurationError{N: n}
	}
}

func TestTablesFixture(t *testing.T) {
	f := new(fixtureSource)
	tables := NewTables(f.load)
	g, err := tables.New(Reduced, 4)
	if err != nil {
		t.Fatal(err)
	}
	if g.NumBins() != 24 {
		t.Errorf("bins: got %d, want 24", g.NumBins())
	}
	c := g.(*ReducedGaussianGrid).Config()
	want := []int{4, 8, 8, 4}
	if diff := pretty.Diff(c.ReducedColumnCounts(), want); len(diff) > 0 {
		t.Errorf("column counts: %v", diff)
	}
	wantLats := []float64{67.5, 22.5, -22.5, -67.5}
	if diff := pretty.Diff(c.Latitudes(), wantLats); len(diff) > 0 {
		t.Errorf("latitudes: %v", diff)
	}
	// Last column of the 8 column row.
	if bin := g.BinIndex(20, 130); bin != 4+7 {
		t.Errorf("BinIndex(20, 130): got %d, want 11", bin)
	}
	if _, err := tables.New(Regular, 10); err == nil {
		t.Error("expected an error for a resolution the fixture does not have")
	}
}

func TestTablesLoadOnce(t *testing.T) {
	f := new(fixtureSource)
	tables := NewTables(f.load)
	var wg sync.WaitGroup
	configs := make([]*GridConfig, 64)
	for i := range configs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := tables.Config(3)
			if err != nil {
				t.Error(err)
				return
			}
			configs[i] = c
		}(i)
	}
	wg.Wait()
	if calls := atomic.LoadInt32(&f.calls); calls != 1 {
		t.Errorf("source called %d times, want 1", calls)
	}
	for i, c := range configs {
		if c != configs[0] {
			t.Errorf("config %d is a different instance", i)
		}
	}
}

func TestTablesErrorsNotCached(t *testing.T) {
	f := new(fixtureSource)
	tables := NewTables(f.load)
	for i := 0; i < 2; i++ {
		_, err := tables.Config(9)
		var ce *ConfigurationError
		if !errors.As(err, &ce) || ce.N != 9 {
			t.Fatalf("got %v, want *ConfigurationError for N=9", err)
		}
	}
	if calls := atomic.LoadInt32(&f.calls); calls != 2 {
		t.Errorf("source called %d times, want 2", calls)
	}
}

func TestTablesGoroutines(t *testing.T) {
	before := runtime.NumGoroutine()
	tables := NewTables(new(fixtureSource).load)
	if started, limit := runtime.NumGoroutine()-before, runtime.GOMAXPROCS(-1)+2; started > limit {
		t.Errorf("NewTables started %d goroutines, want at most %d", started, limit)
	}
	base := runtime.NumGoroutine()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			tables.Config(n)
		}([]int{1, 2, 3, 9}[i%4])
	}
	wg.Wait()
	for i := 0; i < 100 && runtime.NumGoroutine() > base; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	if n := runtime.NumGoroutine(); n > base {
		t.Errorf("%d goroutines left running after the requests finished", n-base)
	}
}

func TestTablesWrapSourceErrors(t *testing.T) {
	tables := NewTables(func(n int) (*GridConfig, error) {
		return nil, fmt.Errorf("disk on fire")
	})
	_, err := tables.New(Regular, 64)
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("got %v, want *ConfigurationError", err)
	}
	if ce.N != 32 || ce.Err == nil || ce.Err.Error() != "disk on fire" {
		t.Errorf("unexpected error %# v", pretty.Formatter(ce))
	}
}

func TestSupportedResolutions(t *testing.T) {
	want := []int{32, 48, 64, 80, 128, 160, 256, 320, 512}
	if diff := pretty.Diff(SupportedResolutions(), want); len(diff) > 0 {
		t.Error(diff)
	}
}

// TestEmbeddedTables checks the embedded latitudes against the
// Gauss-Legendre nodes and the reduced column counts against
// ReducedColumnCount.
func TestEmbeddedTables(t *testing.T) {
	for _, n := range SupportedResolutions() {
		c, err := EmbeddedSource(n)
		if err != nil {
			t.Fatal(err)
		}
		if c.N() != n || c.RegularColumnCount() != 4*n {
			t.Errorf("N%d: got N=%d with %d columns", n, c.N(), c.RegularColumnCount())
		}
		x := make([]float64, 2*n)
		w := make([]float64, 2*n)
		quad.Legendre{}.FixedLocations(x, w, -1, 1)
		sort.Sort(sort.Reverse(sort.Float64Slice(x)))
		lats := c.Latitudes()
		cols := c.ReducedColumnCounts()
		for i := range lats {
			want := math.Asin(x[i]) * 180 / math.Pi
			if different(lats[i], want, 1e-6) {
				t.Errorf("N%d: latitude %d: got %.10f, want %.10f", n, i, lats[i], want)
			}
			if i < n {
				if want := ReducedColumnCount(lats[i], 4*n); cols[i] != want {
					t.Errorf("N%d: row %d has %d reduced columns, want %d", n, i, cols[i], want)
				}
			}
		}
	}
}

func TestDecodeTable(t *testing.T) {
	c, err := DecodeTable([]byte(`
N = 2
RegularColumns = 8
Latitudes = [60.0, 20.0]
ReducedColumns = [4, 8]
`))
	if err != nil {
		t.Fatal(err)
	}
	lons, err := c.ReducedLongitudes(3)
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(lons, []float64{-180, -90, 0, 90}); len(diff) > 0 {
		t.Error(diff)
	}

	for _, bad := range []string{
		"N = 3\nRegularColumns = 8\nLatitudes = [60.0, 20.0]\nReducedColumns = [4, 8]",
		"N = 2\nRegularColumns = 8\nLatitudes = [20.0, 60.0]\nReducedColumns = [4, 8]",
		"N = 2\nRegularColumns = 8\nLatitudes = [60.0, 20.0]\nReducedColumns = [4, 16]",
		"N = 2\nRegularColumns = 8\nLatitudes = [60.0, 20.0]\nReducedColumns = [4]",
		"N = 2\nRegularColumns = 8\nLatitudes = [95.0, 20.0]\nReducedColumns = [4, 8]",
		"N = [",
	} {
		if _, err := DecodeTable([]byte(bad)); err == nil {
			t.Errorf("DecodeTable(%q) should fail", bad)
		}
	}
}

func TestEmbeddedSourceMissing(t *testing.T) {
	_, err := EmbeddedSource(33)
	var ce *ConfigurationError
	if !errors.As(err, &ce) || ce.Err != nil {
		t.Errorf("got %v, want *ConfigurationError without cause", err)
	}
}

func TestReducedColumnCount(t *testing.T) {
	cases := []struct {
		lat  float64
		cols int
		want int
	}{
		{0, 128, 128},
		{60, 128, 64},
		{89, 128, 16},
		{46.04472663110168, 128, 96}, // ceil(88.9) -> 90 is not a multiple of 4
		{10, 12, 12},
	}
	for _, c := range cases {
		if got := ReducedColumnCount(c.lat, c.cols); got != c.want {
			t.Errorf("ReducedColumnCount(%g, %d): got %d, want %d", c.lat, c.cols, got, c.want)
		}
	}
}

func TestFingerprint(t *testing.T) {
	a, err := NewGridConfig([]float64{67.5, 22.5}, 8, []int{4, 8})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewGridConfig([]float64{67.5, 22.5}, 8, []int{4, 8})
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewGridConfig([]float64{67.5, 22.5}, 8, []int{8, 8})
	if err != nil {
		t.Fatal(err)
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("identical tables: %s != %s", a.Fingerprint(), b.Fingerprint())
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different tables have the same fingerprint")
	}

	seen := make(map[string]int)
	for _, n := range SupportedResolutions() {
		cfg, err := DefaultTables().Config(n)
		if err != nil {
			t.Fatal(err)
		}
		if m, ok := seen[cfg.Fingerprint()]; ok {
			t.Errorf("N%d and N%d have the same fingerprint", m, n)
		}
		seen[cfg.Fingerprint()] = n
	}
}
