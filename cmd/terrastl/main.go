// terrastl converts elevation grids into printable binary STL terrain models.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/terrastl/internal/config"
	"github.com/Faultbox/terrastl/internal/demio"
	"github.com/Faultbox/terrastl/internal/inspect"
	"github.com/Faultbox/terrastl/internal/logger"
	"github.com/Faultbox/terrastl/internal/report"
	"github.com/Faultbox/terrastl/internal/terrain"
	"github.com/Faultbox/terrastl/pkg/heightfield"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "inspect", "info":
		cmdInspect(args)
	case "synth":
		cmdSynth(args)
	case "stats":
		cmdStats(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terrastl - heightfield to STL terrain model generator

Usage:
  terrastl <command> [options]

Commands:
  generate [flags] <grid>        Build an STL model from a .hfg, .png or .tif grid
  inspect <model.stl>            Show triangle count, bounds and area of an STL
  synth [flags] <out.hfg>        Write a synthetic Perlin noise grid
  stats [flags] <grid>           Show elevation statistics of a grid
  config [path]                  Write the default configuration

Generate flags:
  -config <file>       Config file (default ./terrastl.yaml or user config dir)
  -o <dir>             Output directory
  -width, -length      Model size in mm (width 0 follows source bounds)
  -exaggeration <n>    Vertical exaggeration, at least 1
  -smoothness <n>      Smoothing level, 0 disables
  -dem-type <type>     DEM product the samples came from
  -workers <n>         Concurrent rows
  -histogram           Also write an elevation histogram
  -no-preview          Skip the preview image
  -debug               Debug logging

Examples:
  terrastl synth -size 256 -holes 0.02 hills.hfg
  terrastl generate -length 150 -exaggeration 2 -smoothness 1 hills.hfg
  terrastl inspect hills.stl`)
}

func fatal(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

// loadConfig parses the shared flags, loads the config and starts logging.
// It returns the remaining positional arguments.
func loadConfig(args []string) (*config.Config, []string) {
	if err := config.ParseFlags(args); err != nil {
		fatal("Error: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		fatal("Config error: %v", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fatal("Logger error: %v", err)
	}
	return cfg, config.Args()
}

func rasterOptions(cfg *config.Config) demio.RasterOptions {
	return demio.RasterOptions{
		NoData: cfg.Source.NoData,
		Scale:  cfg.Source.ElevationScale,
		Offset: cfg.Source.ElevationOffset,
	}
}

func cmdGenerate(args []string) {
	cfg, rest := loadConfig(args)
	defer logger.Sync()

	if len(rest) < 1 {
		fatal("Usage: terrastl generate [flags] <grid>")
	}
	input := rest[0]

	grid, err := demio.Load(input, rasterOptions(cfg))
	if err != nil {
		fatal("Error: %v", err)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)
	logger.Info("grid loaded",
		zap.String("path", input),
		zap.Int("width", grid.Width),
		zap.Int("height", grid.Height),
		zap.Int("missing", grid.CountInvalid()),
		zap.String("dem_type", cfg.Source.DEMType))
	if missing := grid.CountInvalid(); missing*10 > len(grid.Cells) {
		logger.Warn("grid has many missing samples, gaps will be interpolated",
			zap.Int("missing", missing),
			zap.Int("total", len(grid.Cells)))
	}

	model, err := terrain.Generate(grid, cfg.ModelSettings(),
		terrain.WithHeader(cfg.Model.Header),
		terrain.WithWorkers(cfg.Processing.Workers))
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		fatal("Error: %v", err)
	}

	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	written, err := report.Write(cfg.Output.Dir, name, model,
		report.NewStats(model, input, cfg.Source.DEMType),
		report.Artifacts{
			Preview:   cfg.Output.Preview,
			Histogram: cfg.Output.Histogram,
			Stats:     cfg.Output.Stats,
		})
	if err != nil {
		fatal("Error: %v", err)
	}

	d := model.Dimensions
	fmt.Printf("Triangles:  %d\n", model.TriangleCount)
	fmt.Printf("Size:       %.1f x %.1f x %.1f mm\n", d.WidthMM, d.LengthMM, d.HeightMM)
	fmt.Printf("Elevation:  %.1f to %.1f (range %.1f)\n",
		model.Stats.MinElevation, model.Stats.MaxElevation, model.Stats.ElevationRange)
	fmt.Printf("Exaggeration: %.1fx\n", model.Stats.VerticalScaleFactor)
	for _, path := range written {
		logger.Debug("artifact written", zap.String("path", path))
		fmt.Printf("Wrote %s\n", path)
	}
}

func cmdInspect(args []string) {
	if len(args) < 1 {
		fatal("Usage: terrastl inspect <model.stl>")
	}

	r, err := inspect.File(args[0])
	if err != nil {
		fatal("Error: %v", err)
	}

	size := r.Size()
	fmt.Printf("File:       %s\n", args[0])
	fmt.Printf("Header:     %q\n", r.Header)
	fmt.Printf("Triangles:  %d (%d degenerate)\n", r.Triangles, r.Degenerate)
	fmt.Printf("Size:       %.2f x %.2f x %.2f mm\n", size.X, size.Y, size.Z)
	fmt.Printf("Min:        (%.2f, %.2f, %.2f)\n", r.Min.X, r.Min.Y, r.Min.Z)
	fmt.Printf("Max:        (%.2f, %.2f, %.2f)\n", r.Max.X, r.Max.Y, r.Max.Z)
	fmt.Printf("Area:       %.1f mm^2\n", r.Area)
}

func cmdSynth(args []string) {
	defaults := demio.DefaultSynthOptions()

	fs := flag.NewFlagSet("synth", flag.ExitOnError)
	size := fs.Int("size", defaults.Width, "Grid width and height in samples")
	seed := fs.Int64("seed", defaults.Seed, "Noise seed")
	base := fs.Float64("base", defaults.BaseElevation, "Mean elevation")
	amplitude := fs.Float64("amplitude", defaults.Amplitude, "Peak deviation from the mean")
	feature := fs.Float64("feature", defaults.FeatureSize, "Samples per noise period")
	holes := fs.Float64("holes", 0, "Fraction of samples to leave missing")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fatal("Usage: terrastl synth [flags] <out.hfg>")
	}

	opts := demio.SynthOptions{
		Width:         *size,
		Height:        *size,
		Seed:          *seed,
		BaseElevation: *base,
		Amplitude:     *amplitude,
		FeatureSize:   *feature,
		HoleFraction:  *holes,
	}
	grid := demio.Synthesize(opts)
	if err := grid.Validate(); err != nil {
		fatal("Error: %v", err)
	}
	if err := heightfield.WriteHFGFile(fs.Arg(0), grid); err != nil {
		fatal("Error: %v", err)
	}
	fmt.Printf("Wrote %s (%dx%d, %d missing)\n", fs.Arg(0), grid.Width, grid.Height, grid.CountInvalid())
}

func cmdStats(args []string) {
	cfg, rest := loadConfig(args)
	defer logger.Sync()

	if len(rest) < 1 {
		fatal("Usage: terrastl stats [flags] <grid>")
	}

	grid, err := demio.Load(rest[0], rasterOptions(cfg))
	if err != nil {
		fatal("Error: %v", err)
	}
	missing := grid.CountInvalid()
	filled := heightfield.FillGaps(grid, heightfield.WithWorkers(cfg.Processing.Workers))
	surface := heightfield.Smooth(filled, cfg.Model.Smoothness, heightfield.WithWorkers(cfg.Processing.Workers))

	stats, err := heightfield.ComputeStats(surface)
	if err != nil {
		fatal("Error: %v", err)
	}

	out := struct {
		Width   int               `yaml:"width"`
		Height  int               `yaml:"height"`
		Missing int               `yaml:"missing"`
		Passes  int               `yaml:"smoothing_passes"`
		Stats   heightfield.Stats `yaml:"elevation"`
	}{grid.Width, grid.Height, missing, heightfield.SmoothIterations(cfg.Model.Smoothness), stats}

	data, err := yaml.Marshal(out)
	if err != nil {
		fatal("Error: %v", err)
	}
	os.Stdout.Write(data)
}

func cmdConfig(args []string) {
	cfg := config.Default()

	var err error
	path := filepath.Join(config.ConfigDir(), "config.yaml")
	if len(args) > 0 {
		path = args[0]
		err = cfg.SaveTo(path)
	} else {
		err = cfg.Save()
	}
	if err != nil {
		fatal("Error: %v", err)
	}
	fmt.Printf("Wrote %s\n", path)
}
