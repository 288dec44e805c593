// Package symbolize maps code addresses from a capture back to function
// names using one image's symbol table.
package symbolize

import (
	"fmt"
	"sort"
	"strings"

	"samply-hotspots/internal/samply"
)

// FindImage returns the first image in the dump whose debug name contains
// name (case-sensitive). An image with an empty symbol table is rejected:
// resolving a capture against it would only ever produce hex fallbacks.
func FindImage(dump *samply.SymbolDump, name string) (*samply.ImageSymbols, error) {
	for i := range dump.Data {
		img := &dump.Data[i]
		if !strings.Contains(img.DebugName, name) {
			continue
		}
		if len(img.SymbolTable) == 0 {
			return nil, fmt.Errorf("image %q has an empty symbol table", img.DebugName)
		}
		return img, nil
	}
	return nil, fmt.Errorf("no image matching %q in symbol dump", name)
}

// Resolver answers point queries over one image's address ranges. It is
// immutable after construction and safe for concurrent readers.
type Resolver struct {
	// Disjoint segments sorted by start; parallel slices.
	starts []uint64
	ends   []uint64
	names  []string
}

type span struct {
	start, end uint64
	name       string
	order      int
}

// NewResolver builds a resolver from one image's symbol table. Ranges are
// half-open [rva, rva+size). When malformed input makes ranges overlap, the
// entry latest in input order owns every address it covers; this tie-break
// is deliberate policy, not an accident of construction. Entries with a
// zero size or a symbol index outside the string table are dropped.
func NewResolver(image *samply.ImageSymbols, stringTable []string) *Resolver {
	spans := make([]span, 0, len(image.SymbolTable))
	for i, e := range image.SymbolTable {
		if e.Size == 0 || e.Symbol < 0 || e.Symbol >= len(stringTable) {
			continue
		}
		spans = append(spans, span{start: e.RVA, end: e.RVA + e.Size, name: stringTable[e.Symbol], order: i})
	}

	bounds := make([]uint64, 0, 2*len(spans))
	for _, s := range spans {
		bounds = append(bounds, s.start, s.end)
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })
	bounds = dedupe(bounds)

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	r := &Resolver{}
	var active []span
	next := 0
	for bi := 0; bi+1 < len(bounds); bi++ {
		lo, hi := bounds[bi], bounds[bi+1]
		for next < len(spans) && spans[next].start <= lo {
			active = append(active, spans[next])
			next++
		}
		kept := active[:0]
		for _, s := range active {
			if s.end > lo {
				kept = append(kept, s)
			}
		}
		active = kept

		owner := -1
		name := ""
		for _, s := range active {
			if s.order > owner {
				owner = s.order
				name = s.name
			}
		}
		if owner < 0 {
			continue
		}
		if n := len(r.starts); n > 0 && r.ends[n-1] == lo && r.names[n-1] == name {
			r.ends[n-1] = hi
		} else {
			r.starts = append(r.starts, lo)
			r.ends = append(r.ends, hi)
			r.names = append(r.names, name)
		}
	}
	return r
}

// Resolve returns the name of the function owning addr, or the hex fallback
// label when no range covers it. It never fails and never returns "".
func (r *Resolver) Resolve(addr uint64) string {
	i := sort.Search(len(r.starts), func(i int) bool { return r.starts[i] > addr })
	if i > 0 && addr < r.ends[i-1] {
		return r.names[i-1]
	}
	return FallbackLabel(addr)
}

// Len reports how many disjoint address segments the resolver holds.
func (r *Resolver) Len() int {
	return len(r.starts)
}

// FallbackLabel renders an unresolved address the way Resolve does, so
// report layers can recognize and format unresolved frames consistently.
func FallbackLabel(addr uint64) string {
	return fmt.Sprintf("0x%x", addr)
}

func dedupe(sorted []uint64) []uint64 {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}
