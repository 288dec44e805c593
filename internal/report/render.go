// Package report renders aggregated analysis results as plain text for the
// CLI and the MCP surface. It owns layout only; all numbers come from the
// analyzer package.
package report

import (
	"fmt"
	"sort"
	"strings"

	"samply-hotspots/internal/analyzer"
)

var rule = strings.Repeat("=", 80)

// Options controls what Render includes.
type Options struct {
	// Top bounds the hotspot list; <= 0 means all.
	Top int
	// Keywords filters the hotspot list by substring; empty keeps all.
	Keywords []string
	// KeyFunctions are tracked functions shown in their own section.
	KeyFunctions []analyzer.KeyFunction
}

// Render produces the hotspot report for one aggregated thread.
func Render(res analyzer.Result, opts Options) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Total samples: %d\n\n", res.TotalSamples)

	if len(opts.KeyFunctions) > 0 {
		usage := analyzer.KeyFunctionUsage(res, opts.KeyFunctions)

		section(&sb, "KEY FUNCTIONS")
		for _, u := range usage {
			if u.Samples == 0 {
				continue
			}
			fmt.Fprintf(&sb, "%5.1f%%  %6d  %-20s %s\n", u.Percent, u.Samples, u.Label, u.Name)
		}
		sb.WriteString("\n")
	}

	title := "TOP HOTSPOTS"
	if opts.Top > 0 {
		title = fmt.Sprintf("TOP %d HOTSPOTS", opts.Top)
	}
	if len(opts.Keywords) > 0 {
		title += " (" + strings.Join(opts.Keywords, ", ") + ")"
	}
	section(&sb, title)

	hotspots := analyzer.FilterHotspots(analyzer.FindHotspots(res, 0), opts.Keywords)
	if opts.Top > 0 && opts.Top < len(hotspots) {
		hotspots = hotspots[:opts.Top]
	}
	if len(hotspots) == 0 {
		sb.WriteString("No hotspots found.\n")
	}
	for _, hs := range hotspots {
		fmt.Fprintf(&sb, "%5.1f%%  %6d  %s\n", hs.Percent, hs.Samples, hs.Name)
	}

	if len(opts.KeyFunctions) > 0 {
		sb.WriteString("\n")
		section(&sb, "SUMMARY")
		renderSummary(&sb, analyzer.KeyFunctionUsage(res, opts.KeyFunctions))
	}

	if res.Truncated > 0 {
		fmt.Fprintf(&sb, "\nNote: %d samples had their chain walk truncated (cycle or depth cap).\n", res.Truncated)
	}

	return sb.String()
}

// RenderStatistics produces the statistics report for one thread.
func RenderStatistics(stats analyzer.Statistics, threadName string) string {
	var sb strings.Builder

	section(&sb, "THREAD STATISTICS")
	fmt.Fprintf(&sb, "Thread: %s\n", threadName)
	fmt.Fprintf(&sb, "Total samples: %d\n", stats.TotalSamples)
	fmt.Fprintf(&sb, "Walkable samples: %d\n", stats.WalkableSamples)
	fmt.Fprintf(&sb, "Unique chains: %d\n", stats.UniqueChains)
	fmt.Fprintf(&sb, "Unique addresses: %d\n\n", stats.UniqueAddresses)

	sb.WriteString("Chain depth:\n")
	fmt.Fprintf(&sb, "  Average: %.2f frames\n", stats.AvgChainDepth)
	fmt.Fprintf(&sb, "  Maximum: %d frames\n", stats.MaxChainDepth)
	fmt.Fprintf(&sb, "  Minimum: %d frames\n", stats.MinChainDepth)

	return sb.String()
}

// RenderChain produces the resolved chain of one sample, leaf first.
func RenderChain(names []string, sampleIndex int) string {
	var sb strings.Builder

	section(&sb, fmt.Sprintf("SAMPLE #%d CHAIN", sampleIndex))
	if len(names) == 0 {
		sb.WriteString("Sample has no walkable stack.\n")
		return sb.String()
	}
	fmt.Fprintf(&sb, "Depth: %d frames\n\n", len(names))
	for i, name := range names {
		fmt.Fprintf(&sb, "%2d. %s\n", i, name)
	}
	return sb.String()
}

func renderSummary(sb *strings.Builder, usage []analyzer.KeyUsage) {
	for _, u := range usage {
		fmt.Fprintf(sb, "%-20s %5.1f%%\n", u.Label+":", u.Percent)
	}

	ranked := make([]analyzer.KeyUsage, len(usage))
	copy(ranked, usage)
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Percent > ranked[j].Percent })

	top := ranked
	if len(top) > 3 {
		top = top[:3]
	}
	if len(top) == 0 {
		return
	}
	sb.WriteString("\nTop bottlenecks: ")
	for i, u := range top {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(sb, "%s (%.1f%%)", u.Label, u.Percent)
	}
	sb.WriteString("\n")
}

func section(sb *strings.Builder, title string) {
	sb.WriteString(rule + "\n")
	sb.WriteString(title + "\n")
	sb.WriteString(rule + "\n")
}
