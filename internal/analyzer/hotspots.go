package analyzer

import (
	"sort"
	"strings"
)

// Hotspot is one function's share of a thread's samples.
type Hotspot struct {
	Name    string
	Samples uint64
	Percent float64 // share of Result.TotalSamples
}

// FindHotspots ranks the aggregated counts by sample count (descending,
// name as tie-break so repeated runs agree). topN <= 0 returns all.
func FindHotspots(res Result, topN int) []Hotspot {
	hotspots := make([]Hotspot, 0, len(res.Counts))
	for name, count := range res.Counts {
		hotspots = append(hotspots, Hotspot{
			Name:    name,
			Samples: count,
			Percent: percent(count, res.TotalSamples),
		})
	}

	sort.Slice(hotspots, func(i, j int) bool {
		if hotspots[i].Samples != hotspots[j].Samples {
			return hotspots[i].Samples > hotspots[j].Samples
		}
		return hotspots[i].Name < hotspots[j].Name
	})

	if topN > 0 && topN < len(hotspots) {
		return hotspots[:topN]
	}
	return hotspots
}

// FilterHotspots keeps hotspots whose name contains at least one of the
// keywords. An empty keyword list keeps everything.
func FilterHotspots(hotspots []Hotspot, keywords []string) []Hotspot {
	if len(keywords) == 0 {
		return hotspots
	}
	filtered := make([]Hotspot, 0, len(hotspots))
	for _, hs := range hotspots {
		for _, kw := range keywords {
			if strings.Contains(hs.Name, kw) {
				filtered = append(filtered, hs)
				break
			}
		}
	}
	return filtered
}

// KeyFunction pairs a fully qualified function name with a short label
// used in reports.
type KeyFunction struct {
	Name  string
	Label string
}

// KeyUsage is the measured share of one tracked key function.
type KeyUsage struct {
	KeyFunction
	Samples uint64
	Percent float64
}

// KeyFunctionUsage looks up each tracked function in the aggregated counts,
// preserving key order. Functions absent from the profile report zero.
func KeyFunctionUsage(res Result, keys []KeyFunction) []KeyUsage {
	usage := make([]KeyUsage, 0, len(keys))
	for _, key := range keys {
		count := res.Counts[key.Name]
		usage = append(usage, KeyUsage{
			KeyFunction: key,
			Samples:     count,
			Percent:     percent(count, res.TotalSamples),
		})
	}
	return usage
}

func percent(count uint64, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total) * 100.0
}
