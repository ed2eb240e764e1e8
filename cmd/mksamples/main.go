// Command mksamples writes a set of sample elevation grids for trying out
// terrastl: rolling hills, hills with missing samples, a flat plate and a
// 16-bit PNG ramp.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/unixpickle/essentials"

	"github.com/Faultbox/terrastl/internal/demio"
	"github.com/Faultbox/terrastl/pkg/heightfield"
)

func main() {
	var size int
	var seed int64

	flag.IntVar(&size, "size", 96, "number of samples along each side")
	flag.Int64Var(&seed, "seed", 7, "noise seed")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage:", os.Args[0], "[flags] <output_dir>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	flag.Parse()
	if len(flag.Args()) != 1 {
		flag.Usage()
	}
	outDir := flag.Args()[0]
	essentials.Must(os.MkdirAll(outDir, 0755))

	opts := demio.DefaultSynthOptions()
	opts.Width, opts.Height, opts.Seed = size, size, seed

	log.Println("Writing hills ...")
	essentials.Must(heightfield.WriteHFGFile(filepath.Join(outDir, "hills.hfg"), demio.Synthesize(opts)))

	log.Println("Writing holes ...")
	opts.HoleFraction = 0.05
	essentials.Must(heightfield.WriteHFGFile(filepath.Join(outDir, "holes.hfg"), demio.Synthesize(opts)))

	log.Println("Writing flat ...")
	flat := heightfield.New(size, size)
	for i := range flat.Cells {
		flat.Cells[i] = heightfield.DefaultElevation
	}
	essentials.Must(heightfield.WriteHFGFile(filepath.Join(outDir, "flat.hfg"), flat))

	log.Println("Writing ramp ...")
	essentials.Must(writeRamp(filepath.Join(outDir, "ramp.png"), size))
}

// writeRamp writes a 16-bit grayscale PNG rising 10 units per column.
func writeRamp(path string, size int) error {
	img := image.NewGray16(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetGray16(x, y, color.Gray16{Y: uint16(10 * x)})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
