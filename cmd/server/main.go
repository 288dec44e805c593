package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"samply-hotspots/internal/analyzer"
	"samply-hotspots/internal/report"
	"samply-hotspots/internal/samply"
	"samply-hotspots/internal/symbolize"
)

// analysis holds everything derived from one loaded capture.
type analysis struct {
	capture  *samply.Capture
	thread   *samply.Thread
	resolver *symbolize.Resolver
	result   analyzer.Result
}

// Analysis cache keyed by profile path
var analysisCache = make(map[string]*analysis)

func loadAnalysis(profilePath, symbolsPath, binary string) (*analysis, error) {
	capture, err := samply.ReadCapture(profilePath)
	if err != nil {
		return nil, err
	}
	dump, err := samply.ReadSymbolDump(symbolsPath)
	if err != nil {
		return nil, err
	}
	image, err := symbolize.FindImage(dump, binary)
	if err != nil {
		return nil, err
	}
	resolver := symbolize.NewResolver(image, dump.StringTable)
	thread := analyzer.SelectThread(capture, binary)

	a := &analysis{
		capture:  capture,
		thread:   thread,
		resolver: resolver,
		result:   analyzer.Aggregate(thread, resolver),
	}
	analysisCache[profilePath] = a
	return a, nil
}

func cachedAnalysis(profilePath string) (*analysis, bool) {
	a, ok := analysisCache[profilePath]
	return a, ok
}

func main() {
	s := server.NewMCPServer(
		"samply-hotspots",
		"1.0.0",
		server.WithLogging(),
	)

	// Tool 1: Load Profile
	loadProfileTool := mcp.NewTool("load_profile",
		mcp.WithDescription("Load a samply profile and its symbol dump for analysis"),
		mcp.WithString("profile_path",
			mcp.Required(),
			mcp.Description("Absolute path to profile.json (or .json.gz)"),
		),
		mcp.WithString("symbols_path",
			mcp.Required(),
			mcp.Description("Absolute path to profile.syms.json (or .json.gz)"),
		),
		mcp.WithString("binary_name",
			mcp.Description("Target binary name substring (default: demo-interactive)"),
		),
	)

	s.AddTool(loadProfileTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		profilePath, err := request.RequireString("profile_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		symbolsPath, err := request.RequireString("symbols_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		binary := request.GetString("binary_name", "demo-interactive")

		a, err := loadAnalysis(profilePath, symbolsPath, binary)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to load profile: %v", err)), nil
		}

		result := fmt.Sprintf(`Profile loaded successfully!

File: %s
Threads: %d
Selected thread: %s
Samples: %d
Resolved functions: %d
Truncated walks: %d

Use other tools to analyze this profile.
`,
			profilePath,
			len(a.capture.Threads),
			a.thread.Name,
			a.result.TotalSamples,
			len(a.result.Counts),
			a.result.Truncated,
		)

		return mcp.NewToolResultText(result), nil
	})

	// Tool 2: Find Hotspots
	findHotspotsTool := mcp.NewTool("find_hotspots",
		mcp.WithDescription("Find the top CPU hotspots (functions with the most samples) in the loaded profile. This is the most important tool for identifying performance bottlenecks."),
		mcp.WithString("profile_path",
			mcp.Required(),
			mcp.Description("Path to the loaded profile file"),
		),
		mcp.WithNumber("top_n",
			mcp.Description("Number of top hotspots to return (default: 10)"),
		),
		mcp.WithString("keywords",
			mcp.Description("Comma separated substring filters for function names"),
		),
	)

	s.AddTool(findHotspotsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		profilePath, err := request.RequireString("profile_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		topN := int(request.GetFloat("top_n", 10.0))

		a, ok := cachedAnalysis(profilePath)
		if !ok {
			return mcp.NewToolResultError("Profile not loaded. Use load_profile tool first"), nil
		}

		var keywords []string
		if kw := request.GetString("keywords", ""); kw != "" {
			for _, k := range strings.Split(kw, ",") {
				if k = strings.TrimSpace(k); k != "" {
					keywords = append(keywords, k)
				}
			}
		}

		text := report.Render(a.result, report.Options{
			Top:      topN,
			Keywords: keywords,
		})
		return mcp.NewToolResultText(text), nil
	})

	// Tool 3: Key Functions
	keyFunctionsTool := mcp.NewTool("key_functions",
		mcp.WithDescription("Report the sample share of a fixed set of functions. Useful for tracking the same functions across profiling runs."),
		mcp.WithString("profile_path",
			mcp.Required(),
			mcp.Description("Path to the loaded profile file"),
		),
		mcp.WithString("functions",
			mcp.Required(),
			mcp.Description("Comma separated fully qualified function names to track"),
		),
	)

	s.AddTool(keyFunctionsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		profilePath, err := request.RequireString("profile_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		names, err := request.RequireString("functions")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		a, ok := cachedAnalysis(profilePath)
		if !ok {
			return mcp.NewToolResultError("Profile not loaded. Use load_profile tool first"), nil
		}

		var keys []analyzer.KeyFunction
		for _, n := range strings.Split(names, ",") {
			if n = strings.TrimSpace(n); n != "" {
				keys = append(keys, analyzer.KeyFunction{Name: n, Label: shortLabel(n)})
			}
		}
		if len(keys) == 0 {
			return mcp.NewToolResultError("No function names given"), nil
		}

		usage := analyzer.KeyFunctionUsage(a.result, keys)

		var sb strings.Builder
		sb.WriteString("KEY FUNCTION USAGE\n\n")
		for _, u := range usage {
			sb.WriteString(fmt.Sprintf("%5.1f%%  %6d  %s\n", u.Percent, u.Samples, u.Name))
		}
		sb.WriteString(fmt.Sprintf("\nTotal samples: %d\n", a.result.TotalSamples))

		return mcp.NewToolResultText(sb.String()), nil
	})

	// Tool 4: Get Statistics
	getStatisticsTool := mcp.NewTool("get_statistics",
		mcp.WithDescription("Get statistics about the selected thread: sample counts, chain depths, unique chains and addresses."),
		mcp.WithString("profile_path",
			mcp.Required(),
			mcp.Description("Path to the loaded profile file"),
		),
	)

	s.AddTool(getStatisticsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		profilePath, err := request.RequireString("profile_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		a, ok := cachedAnalysis(profilePath)
		if !ok {
			return mcp.NewToolResultError("Profile not loaded. Use load_profile tool first"), nil
		}

		stats := analyzer.ComputeStatistics(a.thread)
		return mcp.NewToolResultText(report.RenderStatistics(stats, a.thread.Name)), nil
	})

	// Tool 5: View Stack
	viewStackTool := mcp.NewTool("view_stack",
		mcp.WithDescription("View one sample's resolved call chain, leaf first. Useful for understanding execution flow."),
		mcp.WithString("profile_path",
			mcp.Required(),
			mcp.Description("Path to the loaded profile file"),
		),
		mcp.WithNumber("sample_index",
			mcp.Required(),
			mcp.Description("Index of the sample to view (0-based)"),
		),
	)

	s.AddTool(viewStackTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		profilePath, err := request.RequireString("profile_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		idx, err := request.RequireFloat("sample_index")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		a, ok := cachedAnalysis(profilePath)
		if !ok {
			return mcp.NewToolResultError("Profile not loaded. Use load_profile tool first"), nil
		}

		names, err := analyzer.ResolveChain(a.thread, a.resolver, int(idx))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(report.RenderChain(names, int(idx))), nil
	})

	// Start the server
	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// shortLabel derives a compact label from the last path segment of a fully
// qualified name.
func shortLabel(name string) string {
	if i := strings.LastIndex(name, "::"); i >= 0 && i+2 < len(name) {
		return strings.ToUpper(name[i+2:])
	}
	return strings.ToUpper(name)
}
