package analyzer

import (
	"fmt"

	"samply-hotspots/internal/samply"
)

// ResolveChain returns the resolved function names of one sample's chain,
// leaf first, walked with the same bounds as Aggregate. A sample without a
// stack id yields an empty chain.
func ResolveChain(thread *samply.Thread, resolver Resolver, sampleIndex int) ([]string, error) {
	if sampleIndex < 0 || sampleIndex >= len(thread.Samples.Stack) {
		return nil, fmt.Errorf("sample index %d out of range, thread has %d samples", sampleIndex, len(thread.Samples.Stack))
	}

	stackID := thread.Samples.Stack[sampleIndex]
	if stackID == nil || *stackID < 0 {
		return nil, nil
	}

	var names []string
	current := *stackID
	visited := make(map[int]bool, maxChainDepth)
	for depth := 0; depth < maxChainDepth; depth++ {
		if current < 0 || current >= len(thread.StackTable.Frame) || visited[current] {
			break
		}
		visited[current] = true

		frameID := thread.StackTable.Frame[current]
		if frameID < 0 || frameID >= len(thread.FrameTable.Address) {
			break
		}
		names = append(names, resolver.Resolve(thread.FrameTable.Address[frameID]))

		if current >= len(thread.StackTable.Prefix) {
			break
		}
		parent := thread.StackTable.Prefix[current]
		if parent == nil {
			break
		}
		current = *parent
	}
	return names, nil
}
