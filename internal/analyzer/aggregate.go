package analyzer

import (
	"samply-hotspots/internal/samply"
)

// maxChainDepth bounds the walk of a single sample's chain. Chains deeper
// than this are truncated silently; the bound guards against corrupt
// prefix tables.
const maxChainDepth = 50

// Resolver maps a code address to a function name. It must never fail;
// unresolvable addresses get a fallback label.
type Resolver interface {
	Resolve(addr uint64) string
}

// Result holds the aggregated per-function sample counts for one thread.
// TotalSamples is the length of the thread's sample sequence, counting
// samples that were skipped or truncated; it is the denominator for every
// percentage derived from Counts.
type Result struct {
	Counts       map[string]uint64
	TotalSamples int
	// Truncated counts samples whose walk was cut short by a cycle or by
	// the depth cap.
	Truncated int
}

// Aggregate walks every sample's chain from its leaf stack id to the chain
// root, resolving each frame's address and incrementing that function's
// count. A function appearing at several depths of one sample's chain is
// counted once per depth. Samples without a stack id contribute to
// TotalSamples only. Cycles and over-deep chains end the walk for that
// sample without error; indices pointing outside the chain tables end it
// like a chain root.
func Aggregate(thread *samply.Thread, resolver Resolver) Result {
	counts := make(map[string]uint64)
	truncated := 0

	for _, stackID := range thread.Samples.Stack {
		if stackID == nil || *stackID < 0 {
			continue
		}

		current := *stackID
		visited := make(map[int]bool, maxChainDepth)
		depth := 0
		for ; depth < maxChainDepth; depth++ {
			if current < 0 || current >= len(thread.StackTable.Frame) {
				break
			}
			if visited[current] {
				truncated++
				break
			}
			visited[current] = true

			frameID := thread.StackTable.Frame[current]
			if frameID < 0 || frameID >= len(thread.FrameTable.Address) {
				break
			}
			addr := thread.FrameTable.Address[frameID]
			counts[resolver.Resolve(addr)]++

			if current >= len(thread.StackTable.Prefix) {
				break
			}
			parent := thread.StackTable.Prefix[current]
			if parent == nil {
				break
			}
			current = *parent
		}
		if depth == maxChainDepth {
			truncated++
		}
	}

	return Result{
		Counts:       counts,
		TotalSamples: len(thread.Samples.Stack),
		Truncated:    truncated,
	}
}
