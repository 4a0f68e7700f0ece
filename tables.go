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

//go:generate go run ./cmd/gentables -dir tables

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/requestcache"
)

//go:embed tables/*.toml
var tableFS embed.FS

// Source loads the grid configuration for N rows per hemisphere.
// It should return a *ConfigurationError if no table exists for N.
type Source func(n int) (*GridConfig, error)

// tableFile is the on-disk layout of a Gaussian grid table.
type tableFile struct {
	N              int
	RegularColumns int
	Latitudes      []float64
	ReducedColumns []int
}

// DecodeTable decodes a TOML grid table.
func DecodeTable(b []byte) (*GridConfig, error) {
	var t tableFile
	if _, err := toml.NewDecoder(bytes.NewReader(b)).Decode(&t); err != nil {
		return nil, err
	}
	if t.N != len(t.Latitudes) {
		return nil, fmt.Errorf("table declares N=%d but has %d latitudes", t.N, len(t.Latitudes))
	}
	return NewGridConfig(t.Latitudes, t.RegularColumns, t.ReducedColumns)
}

// EmbeddedSource loads the Gaussian grid tables compiled into the package.
func EmbeddedSource(n int) (*GridConfig, error) {
	b, err := tableFS.ReadFile(path.Join("tables", fmt.Sprintf("N%d.toml", n)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &ConfigurationError{N: n}
	} else if err != nil {
		return nil, &ConfigurationError{N: n, Err: err}
	}
	c, err := DecodeTable(b)
	if err != nil {
		return nil, &ConfigurationError{N: n, Err: err}
	}
	if c.N() != n {
		return nil, &ConfigurationError{N: n, Err: fmt.Errorf("table holds N=%d", c.N())}
	}
	return c, nil
}

// SupportedResolutions returns the half row counts N for which
// embedded tables exist, in increasing order.
func SupportedResolutions() []int {
	entries, err := tableFS.ReadDir("tables")
	if err != nil {
		panic(err)
	}
	var o []int
	for _, e := range entries {
		name := strings.TrimSuffix(strings.TrimPrefix(e.Name(), "N"), ".toml")
		if n, err := strconv.Atoi(name); err == nil {
			o = append(o, n)
		}
	}
	sort.Ints(o)
	return o
}

// Tables is a concurrency-safe read-through cache of grid configurations.
// Concurrent requests for the same resolution are merged so that the
// Source runs at most once per resolution; failed loads are not cached.
type Tables struct {
	src   Source
	cache *requestcache.Cache

	mu     sync.RWMutex
	loaded map[int]*GridConfig
}

// NewTables returns a cache of the configurations loaded by src.
//
// Each Tables starts GOMAXPROCS loader goroutines and two request merging
// goroutines that live as long as the process; they are not released when
// the Tables becomes unreachable. Create one Tables per Source and share
// it, as DefaultTables does. Requests themselves start no goroutines.
func NewTables(src Source) *Tables {
	t := &Tables{
		src:    src,
		loaded: make(map[int]*GridConfig),
	}
	t.cache = requestcache.NewCache(func(ctx context.Context, request interface{}) (interface{}, error) {
		return t.load(request.(int))
	}, runtime.GOMAXPROCS(-1), requestcache.Deduplicate())
	return t
}

var (
	defaultTables     *Tables
	defaultTablesOnce sync.Once
)

// DefaultTables returns the process-wide cache of the embedded tables.
func DefaultTables() *Tables {
	defaultTablesOnce.Do(func() {
		defaultTables = NewTables(EmbeddedSource)
	})
	return defaultTables
}

// Config returns the configuration for n rows per hemisphere.
func (t *Tables) Config(n int) (*GridConfig, error) {
	if c, ok := t.resident(n); ok {
		return c, nil
	}
	req := t.cache.NewRequest(context.TODO(), n, strconv.Itoa(n))
	result, err := req.Result()
	if err != nil {
		return nil, err
	}
	return result.(*GridConfig), nil
}

func (t *Tables) resident(n int) (*GridConfig, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.loaded[n]
	return c, ok
}

// load runs the source for n unless another request has stored the
// result in the meantime.
func (t *Tables) load(n int) (*GridConfig, error) {
	if c, ok := t.resident(n); ok {
		return c, nil
	}
	c, err := t.src(n)
	if err != nil {
		var cerr *ConfigurationError
		if errors.As(err, &cerr) {
			return nil, err
		}
		return nil, &ConfigurationError{N: n, Err: err}
	}
	if c == nil {
		return nil, &ConfigurationError{N: n}
	}
	t.mu.Lock()
	t.loaded[n] = c
	t.mu.Unlock()
	return c, nil
}
