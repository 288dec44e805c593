package samply

import (
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/gzip"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ReadCapture reads a samply profile document. Files ending in .gz are
// decompressed transparently.
func ReadCapture(path string) (*Capture, error) {
	r, err := openMaybeGzip(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	defer r.Close()

	capture := &Capture{}
	if err := json.NewDecoder(r).Decode(capture); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	if len(capture.Threads) == 0 {
		return nil, fmt.Errorf("profile %s contains no threads", path)
	}
	return capture, nil
}

// ReadSymbolDump reads the symbol document written next to a capture.
// Files ending in .gz are decompressed transparently.
func ReadSymbolDump(path string) (*SymbolDump, error) {
	r, err := openMaybeGzip(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open symbols: %w", err)
	}
	defer r.Close()

	dump := &SymbolDump{}
	if err := json.NewDecoder(r).Decode(dump); err != nil {
		return nil, fmt.Errorf("failed to parse symbols %s: %w", path, err)
	}
	return dump, nil
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	gerr := g.Reader.Close()
	if err := g.f.Close(); err != nil {
		return err
	}
	return gerr
}

func openMaybeGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("bad gzip header in %s: %w", path, err)
	}
	return &gzipFile{Reader: zr, f: f}, nil
}
