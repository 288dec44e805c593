package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v3"
	log "github.com/sirupsen/logrus"

	"samply-hotspots/internal/analyzer"
	"samply-hotspots/internal/report"
	"samply-hotspots/internal/samply"
	"samply-hotspots/internal/symbolize"
)

// Fire simulation functions tracked in every report, matching the names
// emitted by the demo binaries.
var keyFunctions = []analyzer.KeyFunction{
	{Name: "fire_sim_core::simulation::FireSimulation::update", Label: "UPDATE"},
	{Name: "fire_sim_core::grid::simulation_grid::SimulationGrid::mark_active_cells", Label: "MARK_ACTIVE"},
	{Name: "fire_sim_core::grid::simulation_grid::SimulationGrid::update_diffusion", Label: "DIFFUSION"},
	{Name: "fire_sim_core::core_types::spatial::SpatialIndex::query_radius", Label: "QUERY_RADIUS"},
	{Name: "fire_sim_core::physics::element_heat_transfer::calculate_total_heat_transfer", Label: "HEAT_XFER"},
	{Name: "core::iter::range::<impl core::iter::traits::iterator::Iterator for core::ops::range::Range<A>>::next", Label: "RANGE_NEXT"},
	{Name: "<core::ops::range::Range<T> as core::iter::range::RangeIteratorImpl>::spec_next", Label: "SPEC_NEXT"},
	{Name: "hashbrown::raw::RawTableInner::find_or_find_insert_slot_inner", Label: "HASHMAP_FIND"},
	{Name: "rayon::iter::extend::<impl rayon::iter::ParallelExtend<T> for alloc::vec::Vec<T>>::par_extend", Label: "PAR_EXTEND"},
	{Name: "<core::slice::iter::Iter<T> as core::iter::traits::iterator::Iterator>::next", Label: "SLICE_ITER"},
	{Name: "alloc::vec::Vec<T,A>::push", Label: "VEC_PUSH"},
}

const defaultKeywords = "fire_sim_core,hashbrown,rayon,core::iter,alloc::vec,core::slice"

func main() {
	fs := flag.NewFlagSet("samply-hotspots", flag.ExitOnError)
	var (
		profilePath = fs.String("profile", "", "path to profile.json (or .json.gz)")
		symbolsPath = fs.String("symbols", "", "path to profile.syms.json (or .json.gz)")
		binaryName  = fs.String("binary", "demo-interactive", "target binary name substring")
		topN        = fs.Int("top", 40, "number of hotspots to print")
		keywords    = fs.String("keywords", defaultKeywords, "comma separated substring filters for the hotspot list, empty disables filtering")
		showStats   = fs.Bool("stats", false, "print thread statistics before the report")
		verbose     = fs.Bool("v", false, "verbose logging")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("SAMPLY_HOTSPOTS")); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if *profilePath == "" || *symbolsPath == "" {
		fs.Usage()
		log.Fatal("both -profile and -symbols are required")
	}

	log.WithField("path", *profilePath).Info("loading profile")
	capture, err := samply.ReadCapture(*profilePath)
	if err != nil {
		log.Fatalf("failed to load profile: %v", err)
	}

	log.WithField("path", *symbolsPath).Info("loading symbols")
	dump, err := samply.ReadSymbolDump(*symbolsPath)
	if err != nil {
		log.Fatalf("failed to load symbols: %v", err)
	}

	image, err := symbolize.FindImage(dump, *binaryName)
	if err != nil {
		log.Fatalf("failed to locate target image: %v", err)
	}
	resolver := symbolize.NewResolver(image, dump.StringTable)
	log.WithFields(log.Fields{
		"image":    image.DebugName,
		"segments": resolver.Len(),
	}).Info("built address resolver")

	thread := analyzer.SelectThread(capture, *binaryName)
	log.WithFields(log.Fields{
		"thread":  thread.Name,
		"samples": thread.Samples.Length,
	}).Info("selected thread")

	res := analyzer.Aggregate(thread, resolver)
	log.WithFields(log.Fields{
		"functions": len(res.Counts),
		"truncated": res.Truncated,
	}).Debug("aggregated samples")

	if *showStats {
		fmt.Println(report.RenderStatistics(analyzer.ComputeStatistics(thread), thread.Name))
	}
	fmt.Print(report.Render(res, report.Options{
		Top:          *topN,
		Keywords:     splitKeywords(*keywords),
		KeyFunctions: keyFunctions,
	}))
}

func splitKeywords(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
