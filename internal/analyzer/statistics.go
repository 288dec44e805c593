package analyzer

import (
	"math"

	"samply-hotspots/internal/samply"
)

// Statistics summarizes one thread's sample sequence and chain shapes.
type Statistics struct {
	TotalSamples    int
	WalkableSamples int
	UniqueChains    int
	UniqueAddresses int
	MinChainDepth   int
	MaxChainDepth   int
	AvgChainDepth   float64
}

// ComputeStatistics walks every sample's chain with the same bounds as
// Aggregate and reports depth and uniqueness figures for the thread.
func ComputeStatistics(thread *samply.Thread) Statistics {
	stats := Statistics{TotalSamples: len(thread.Samples.Stack)}
	stats.MinChainDepth = math.MaxInt32

	chainSet := make(map[int]bool)
	addrSet := make(map[uint64]bool)
	totalDepth := 0

	for _, stackID := range thread.Samples.Stack {
		if stackID == nil || *stackID < 0 {
			continue
		}
		stats.WalkableSamples++
		chainSet[*stackID] = true

		current := *stackID
		visited := make(map[int]bool, maxChainDepth)
		depth := 0
		for depth < maxChainDepth {
			if current < 0 || current >= len(thread.StackTable.Frame) || visited[current] {
				break
			}
			visited[current] = true
			depth++

			frameID := thread.StackTable.Frame[current]
			if frameID >= 0 && frameID < len(thread.FrameTable.Address) {
				addrSet[thread.FrameTable.Address[frameID]] = true
			}

			if current >= len(thread.StackTable.Prefix) {
				break
			}
			parent := thread.StackTable.Prefix[current]
			if parent == nil {
				break
			}
			current = *parent
		}

		totalDepth += depth
		if depth > stats.MaxChainDepth {
			stats.MaxChainDepth = depth
		}
		if depth < stats.MinChainDepth {
			stats.MinChainDepth = depth
		}
	}

	stats.UniqueChains = len(chainSet)
	stats.UniqueAddresses = len(addrSet)
	if stats.WalkableSamples > 0 {
		stats.AvgChainDepth = float64(totalDepth) / float64(stats.WalkableSamples)
	}
	if stats.MinChainDepth == math.MaxInt32 {
		stats.MinChainDepth = 0
	}
	return stats
}
