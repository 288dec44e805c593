package samply

// Capture is a fully parsed samply profile document.
type Capture struct {
	Threads []Thread `json:"threads"`
}

// Thread holds one profiled thread's samples and its stack/frame tables.
type Thread struct {
	Name         string       `json:"name"`
	ProcessName  string       `json:"processName"`
	IsMainThread bool         `json:"isMainThread"`
	Samples      SamplesTable `json:"samples"`
	StackTable   StackTable   `json:"stackTable"`
	FrameTable   FrameTable   `json:"frameTable"`
}

// SamplesTable is the per-thread sample sequence. Stack holds one stack id
// per captured instant; a nil entry is a sample with no walkable stack.
// Length is the sample count declared by the capture.
type SamplesTable struct {
	Stack  []*int `json:"stack"`
	Length int    `json:"length"`
}

// StackTable is the parent-linked chain table shared by all samples of a
// thread. Frame and Prefix are parallel: Frame[id] is the frame of stack id,
// Prefix[id] its parent stack id, nil at a chain root.
type StackTable struct {
	Frame  []int  `json:"frame"`
	Prefix []*int `json:"prefix"`
}

// FrameTable maps frame ids to code addresses.
type FrameTable struct {
	Address []uint64 `json:"address"`
}

// SymbolDump is the parsed symbol document written next to a capture. The
// string table is shared across all images.
type SymbolDump struct {
	Data        []ImageSymbols `json:"data"`
	StringTable []string       `json:"string_table"`
}

// ImageSymbols is one binary image's symbol table.
type ImageSymbols struct {
	DebugName   string        `json:"debug_name"`
	SymbolTable []SymbolEntry `json:"symbol_table"`
}

// SymbolEntry covers the half-open address range [RVA, RVA+Size) and names
// it via an index into the dump's string table.
type SymbolEntry struct {
	RVA    uint64 `json:"rva"`
	Size   uint64 `json:"size"`
	Symbol int    `json:"symbol"`
}
