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

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/spatialmodel/planetgrid"
	"github.com/spatialmodel/planetgrid/resample"
)

// GridFromConfig creates the planetary grid described by the
// Grid.Kind and Grid.NumRows configuration variables.
func GridFromConfig(cfg *viper.Viper) (planetgrid.PlanetaryGrid, error) {
	kind, err := planetgrid.ParseKind(cfg.GetString("Grid.Kind"))
	if err != nil {
		return nil, fmt.Errorf("parsing configuration: Grid.Kind: %v", err)
	}
	numRows, err := cast.ToIntE(cfg.Get("Grid.NumRows"))
	if err != nil {
		return nil, fmt.Errorf("parsing configuration: Grid.NumRows: %v", err)
	}
	if numRows <= 0 || numRows%2 != 0 {
		return nil, fmt.Errorf("parsing configuration: Grid.NumRows=%d but should be even and >0", numRows)
	}
	return planetgrid.New(kind, numRows)
}

// MethodFromConfig returns the interpolation method named by the
// Resample.Method configuration variable.
func MethodFromConfig(cfg *viper.Viper) (resample.Method, error) {
	m, err := resample.MethodByName(cfg.GetString("Resample.Method"))
	if err != nil {
		return nil, fmt.Errorf("parsing configuration: Resample.Method: %v", err)
	}
	return m, nil
}

// positiveInt returns the named configuration variable, which must be a
// positive integer.
func positiveInt(cfg *viper.Viper, name string) (int, error) {
	v, err := cast.ToIntE(cfg.Get(name))
	if err != nil {
		return 0, fmt.Errorf("parsing configuration: %s: %v", name, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("parsing configuration: %s=%d but should be >0", name, v)
	}
	return v, nil
}
