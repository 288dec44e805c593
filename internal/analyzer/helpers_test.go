package analyzer

import (
	"fmt"

	"samply-hotspots/internal/samply"
)

// mapResolver resolves from a fixed address map, falling back to the hex
// label the way the real resolver does.
type mapResolver map[uint64]string

func (m mapResolver) Resolve(addr uint64) string {
	if name, ok := m[addr]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", addr)
}

func sid(v int) *int {
	return &v
}

func makeThread(stack []*int, frame []int, prefix []*int, addrs []uint64) *samply.Thread {
	return &samply.Thread{
		Name: "test",
		Samples: samply.SamplesTable{
			Stack:  stack,
			Length: len(stack),
		},
		StackTable: samply.StackTable{
			Frame:  frame,
			Prefix: prefix,
		},
		FrameTable: samply.FrameTable{Address: addrs},
	}
}
