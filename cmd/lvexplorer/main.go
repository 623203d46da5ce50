package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	lv "lvexplorer/pkg/lvexplorer"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	catalogPath string
	snapshot    string
	width       int
	height      int

	state     lv.FilterState
	threshold float64

	locate     bool
	ra, dec    float64
	locateDist float64
}

func run(args []string) error {
	var opts options
	fs := flag.NewFlagSet("lvexplorer", flag.ContinueOnError)
	fs.StringVar(&opts.catalogPath, "catalog", "data/LVDB_comb_all.csv", "Galaxy catalog CSV path.")
	fs.StringVar(&opts.snapshot, "snapshot", "", "Render one PNG frame to this path and exit (headless).")
	fs.IntVar(&opts.width, "width", 1000, "Viewport width in pixels.")
	fs.IntVar(&opts.height, "height", 800, "Viewport height in pixels.")

	def := lv.DefaultFilterState()
	fs.Float64Var(&opts.state.MaxDist, "max-dist", def.MaxDist, "Maximum distance in Mpc.")
	fs.Float64Var(&opts.state.MinMass, "min-mass", def.MinMass, "Minimum log stellar mass.")
	fs.Float64Var(&opts.state.MinMV, "min-mv", def.MinMV, "Lower bound of the M_V band.")
	fs.Float64Var(&opts.state.MaxMV, "max-mv", def.MaxMV, "Upper bound of the M_V band.")
	fs.BoolVar(&opts.state.LocalGroupOnly, "local-group", false, "Show the Local Group only (<= 3 Mpc).")
	fs.StringVar(&opts.state.SearchQuery, "search", "", "Search query; the first match gets the marker.")
	fs.Float64Var(&opts.threshold, "mass-threshold", 9.0, "Massive galaxy threshold (log M*).")

	fs.BoolVar(&opts.locate, "locate", false, "Place a marker at the given sky coordinate.")
	fs.Float64Var(&opts.ra, "ra", 0, "Right ascension in degrees for -locate.")
	fs.Float64Var(&opts.dec, "dec", 0, "Declination in degrees for -locate.")
	fs.Float64Var(&opts.locateDist, "dist", 1, "Distance in Mpc for -locate.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Printf("Loading: %s\n", opts.catalogPath)
	startTime := time.Now()
	rows, err := lv.LoadCatalog(opts.catalogPath)
	if err != nil {
		return err
	}
	records, metrics := lv.Normalize(rows)
	fmt.Printf("Catalog loaded in %.1fs: %d rows, %d records (mass scale: %s, dropped: %d)\n",
		time.Since(startTime).Seconds(), metrics.RowsIn, metrics.Emitted, metrics.Scale, metrics.DroppedCoords)

	if opts.snapshot != "" {
		return renderSnapshot(records, opts)
	}
	return runViewer(records, opts)
}

// renderSnapshot rasterizes one frame with the software renderer and
// reports what it drew.
func renderSnapshot(records []lv.GalaxyRecord, opts options) error {
	filtered := lv.ApplyFilter(records, opts.state)
	pc := lv.BuildPointCloud(filtered, opts.threshold, opts.state.SearchQuery != "")

	cam := lv.NewCamera()
	fb := lv.NewFrameBuffer(opts.width, opts.height)
	defer fb.Close()

	var marker *lv.Marker
	switch {
	case opts.locate:
		marker = &lv.Marker{Pos: lv.SphericalToCartesian(opts.ra, opts.dec, opts.locateDist)}
	case pc.MarkerTarget != nil:
		marker = &lv.Marker{Pos: *pc.MarkerTarget}
	}

	img := lv.RenderFrame(fb, pc, cam, lv.FrameOptions{
		Marker:     marker,
		Starfield:  lv.DefaultStarfield(),
		DrawLabels: true,
	})
	if err := lv.WritePNG(opts.snapshot, img); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("=== Snapshot ===")
	fmt.Printf("  Output:          %s (%dx%d)\n", opts.snapshot, opts.width, opts.height)
	fmt.Printf("  Galaxies shown:  %d of %d\n", len(filtered), len(records))
	fmt.Printf("  Labels:          %d (threshold log M* > %.1f)\n", len(pc.Labels), opts.threshold)
	if marker != nil {
		fmt.Printf("  Marker:          (%.2f, %.2f, %.2f) Mpc\n", marker.Pos.X, marker.Pos.Y, marker.Pos.Z)
	}
	fmt.Println("================")
	return nil
}
