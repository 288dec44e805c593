package samply

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const captureJSON = `{
	"threads": [
		{
			"name": "demo",
			"processName": "demo-interactive",
			"isMainThread": true,
			"samples": {"stack": [0, null, 0], "length": 3},
			"stackTable": {"frame": [0], "prefix": [null]},
			"frameTable": {"address": [105]}
		}
	]
}`

const symbolsJSON = `{
	"data": [
		{
			"debug_name": "lib-demo-interactive",
			"symbol_table": [{"rva": 100, "size": 10, "symbol": 0}]
		}
	],
	"string_table": ["foo"]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeGzipFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestReadCapture(t *testing.T) {
	capture, err := ReadCapture(writeFile(t, "profile.json", captureJSON))
	require.NoError(t, err)

	require.Len(t, capture.Threads, 1)
	thread := capture.Threads[0]
	assert.Equal(t, "demo", thread.Name)
	assert.True(t, thread.IsMainThread)
	assert.Equal(t, 3, thread.Samples.Length)

	require.Len(t, thread.Samples.Stack, 3)
	require.NotNil(t, thread.Samples.Stack[0])
	assert.Equal(t, 0, *thread.Samples.Stack[0])
	assert.Nil(t, thread.Samples.Stack[1], "null stack id survives decoding")

	require.Len(t, thread.StackTable.Prefix, 1)
	assert.Nil(t, thread.StackTable.Prefix[0])
	assert.Equal(t, []uint64{105}, thread.FrameTable.Address)
}

func TestReadCaptureGzip(t *testing.T) {
	capture, err := ReadCapture(writeGzipFile(t, "profile.json.gz", captureJSON))
	require.NoError(t, err)
	require.Len(t, capture.Threads, 1)
}

func TestReadCaptureMissingFile(t *testing.T) {
	_, err := ReadCapture(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestReadCaptureNoThreads(t *testing.T) {
	_, err := ReadCapture(writeFile(t, "profile.json", `{"threads": []}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no threads")
}

func TestReadCaptureMalformed(t *testing.T) {
	_, err := ReadCapture(writeFile(t, "profile.json", `{"threads": [`))
	require.Error(t, err)
}

func TestReadCaptureBadGzip(t *testing.T) {
	_, err := ReadCapture(writeFile(t, "profile.json.gz", captureJSON))
	require.Error(t, err, "plain JSON behind a .gz suffix is rejected")
}

func TestReadSymbolDump(t *testing.T) {
	dump, err := ReadSymbolDump(writeFile(t, "profile.syms.json", symbolsJSON))
	require.NoError(t, err)

	require.Len(t, dump.Data, 1)
	assert.Equal(t, "lib-demo-interactive", dump.Data[0].DebugName)
	require.Len(t, dump.Data[0].SymbolTable, 1)
	assert.Equal(t, uint64(100), dump.Data[0].SymbolTable[0].RVA)
	assert.Equal(t, uint64(10), dump.Data[0].SymbolTable[0].Size)
	assert.Equal(t, []string{"foo"}, dump.StringTable)
}

func TestReadSymbolDumpGzip(t *testing.T) {
	dump, err := ReadSymbolDump(writeGzipFile(t, "profile.syms.json.gz", symbolsJSON))
	require.NoError(t, err)
	require.Len(t, dump.Data, 1)
}
