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

// Package gridutil holds the command-line interface to the planetgrid
// library.
package gridutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/spatialmodel/planetgrid"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

var options []option

func init() {
	// Options are the configuration options available to planetgrid.
	options = []option{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Grid.Kind",
			usage: `
              Grid.Kind specifies the type of planetary grid. Valid options
              are "regular" and "reduced" for Gaussian grids and "sea" for
              the sinusoidal equal-area grid.`,
			shorthand:  "k",
			defaultVal: "regular",
			flagsets:   []*pflag.FlagSet{infoCmd.Flags(), binCmd.Flags(), centerCmd.Flags(), checkCmd.Flags()},
		},
		{
			name: "Grid.NumRows",
			usage: `
              Grid.NumRows is the number of grid rows from pole to pole. It
              must be even. Gaussian grids support twice the values listed
              by the 'tables' command.`,
			shorthand:  "n",
			defaultVal: 64,
			flagsets:   []*pflag.FlagSet{infoCmd.Flags(), binCmd.Flags(), centerCmd.Flags(), checkCmd.Flags()},
		},
		{
			name: "Resample.Method",
			usage: `
              Resample.Method is the interpolation method. Valid options are
              "nearest", "bilinear", "cubic", "bisinc5", "bisinc11", and "bisinc21".`,
			shorthand:  "m",
			defaultVal: "bilinear",
			flagsets:   []*pflag.FlagSet{kernelCmd.Flags(), plotCmd.Flags(), checkCmd.Flags()},
		},
		{
			name: "Resample.CornerBased",
			usage: `
              Resample.CornerBased specifies whether raster samples represent
              pixel corners rather than pixel centers.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
		{
			name: "Regrid.Workers",
			usage: `
              Regrid.Workers is the number of concurrent workers used when
              regridding. Values < 1 use one worker per processor.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
		{
			name: "Regrid.Width",
			usage: `
              Regrid.Width is the number of columns of the global
              longitude/latitude raster used by the 'check' command.`,
			defaultVal: 360,
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
		{
			name: "Regrid.Height",
			usage: `
              Regrid.Height is the number of rows of the global
              longitude/latitude raster used by the 'check' command.`,
			defaultVal: 180,
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
		{
			name: "Plot.Output",
			usage: `
              Plot.Output is the path where the kernel plot is written. The
              file extension selects the image format.`,
			shorthand:  "o",
			defaultVal: "kernel.png",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the minimum level of log messages to print.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
	}

	Cfg = newConfig()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, v, option.usage)
			default:
				panic("invalid argument type")
			}
		}
		Cfg.BindPFlag(option.name, option.flagsets[0].Lookup(option.name))
	}
}

// newConfig returns a configuration that reads variables from the
// environment as PLANETGRID_SECTION_NAME.
func newConfig() *viper.Viper {
	cfg := viper.New()
	cfg.SetEnvPrefix("PLANETGRID")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	return cfg
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(infoCmd)
	Root.AddCommand(binCmd)
	Root.AddCommand(centerCmd)
	Root.AddCommand(tablesCmd)
	Root.AddCommand(kernelCmd)
	Root.AddCommand(plotCmd)
	Root.AddCommand(checkCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("planetgrid: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// setLogging configures the standard logger for cmd.
func setLogging(cmd *cobra.Command) error {
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("parsing configuration: LogLevel: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(cmd.ErrOrStderr())
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "planetgrid",
	Short: "Planetary grid binning and resampling.",
	Long: `planetgrid maps geographic coordinates to the bins of global planetary
grids and interpolates raster values with separable resampling kernels.
Use the subcommands specified below to access the functionality.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'PLANETGRID_var' where 'var'
is the name of the variable to be set, with dots replaced by underscores.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setConfig(); err != nil {
			return err
		}
		return setLogging(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of planetgrid.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "planetgrid v%s\n", planetgrid.Version)
	},
	DisableAutoGenTag: true,
}
