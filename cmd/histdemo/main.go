// Command histdemo exercises the histogram pipeline end to end: it fills a
// 2D histogram from synthetic Gaussian samples, fits the 1D projection,
// renders plots, and round-trips the result through the SQLite store.
package main

import (
	"flag"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/banshee-data/gridhist/hist"
	"github.com/banshee-data/gridhist/histfit"
	"github.com/banshee-data/gridhist/histio"
	"github.com/banshee-data/gridhist/histplot"
)

func main() {
	var (
		events  = flag.Int("events", 20000, "number of samples to fill")
		outDir  = flag.String("out", "plots", "directory for rendered plots")
		dataDir = flag.String("data", "data", "directory for the histogram database")
		seed    = flag.Uint64("seed", 1, "random seed")
	)
	flag.Parse()

	ax, err := hist.NewAxis(60, -6, 6)
	if err != nil {
		log.Fatalf("failed to build x axis: %v", err)
	}
	ax.SetLabel("x")
	ay, err := hist.NewAxis(60, -6, 6)
	if err != nil {
		log.Fatalf("failed to build y axis: %v", err)
	}
	ay.SetLabel("y")

	h, err := hist.New([]*hist.Axis{ax, ay},
		hist.WithLabel("counts"), hist.WithTitle("gaussian cloud"))
	if err != nil {
		log.Fatalf("failed to build histogram: %v", err)
	}

	src := rand.NewPCG(*seed, *seed)
	dx := distuv.Normal{Mu: 1, Sigma: 1.5, Src: src}
	dy := distuv.Normal{Mu: -0.5, Sigma: 2, Src: src}
	xs := make([]float64, *events)
	ys := make([]float64, *events)
	for i := range xs {
		xs[i] = dx.Rand()
		ys[i] = dy.Rand()
	}
	if err := h.Fill(xs, ys); err != nil {
		log.Fatalf("fill failed: %v", err)
	}
	log.Printf("filled %d samples, kept %.0f (out-of-range dropped)", *events, h.Sum())

	means := h.Mean()
	stds := h.StD()
	log.Printf("sample moments: mean=(%.3f, %.3f) std=(%.3f, %.3f)", means[0], means[1], stds[0], stds[1])

	// Fit the x projection with a Gaussian seeded from its own moments.
	px, err := h.Projection(0)
	if err != nil {
		log.Fatalf("projection failed: %v", err)
	}
	px.SetTitle("x projection")
	res, err := histfit.Fit(px, histfit.Gaussian, histfit.GaussianGuess(px))
	if err != nil {
		log.Fatalf("fit failed: %v", err)
	}
	log.Printf("gaussian fit: amp=%.1f mean=%.3f sigma=%.3f chi2/ndf=%.2f",
		res.Params[0], res.Params[1], res.Params[2], res.ReducedChiSquare())

	if err := renderPlots(h, px, *outDir); err != nil {
		log.Fatalf("plotting failed: %v", err)
	}

	if err := storeRoundTrip(h, *dataDir); err != nil {
		log.Fatalf("store round trip failed: %v", err)
	}
}

func renderPlots(h, px *hist.Histogram, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	heat, err := histplot.HeatMap(h)
	if err != nil {
		return err
	}
	if err := histplot.Save(heat, filepath.Join(outDir, "cloud.png")); err != nil {
		return err
	}

	line, err := histplot.Line(px)
	if err != nil {
		return err
	}
	if err := histplot.Save(line, filepath.Join(outDir, "projection.png")); err != nil {
		return err
	}

	n, err := histplot.Strip(h, 0, filepath.Join(outDir, "strips"), "x")
	if err != nil {
		return err
	}
	log.Printf("wrote %d strip plots", n)

	f, err := os.Create(filepath.Join(outDir, "projection.html"))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := histplot.BarHTML(px, f); err != nil {
		return err
	}

	log.Printf("plots written to %s", outDir)
	return nil
}

func storeRoundTrip(h *hist.Histogram, dataDir string) error {
	store, err := histio.Open(histio.Config{Dir: dataDir})
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Save("demo", h)
	if err != nil {
		return err
	}
	back, err := store.Load("demo")
	if err != nil {
		return err
	}
	if !h.IsIdentical(back) {
		log.Printf("warning: reloaded histogram differs from the original")
	}

	entries, err := store.List()
	if err != nil {
		return err
	}
	log.Printf("stored histogram %s (id=%s); store now holds %d entries", "demo", id, len(entries))
	return nil
}
