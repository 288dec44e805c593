package analyzer

import (
	"strings"

	"samply-hotspots/internal/samply"
)

// Threads flagged main but carrying fewer samples than this are treated as
// idle placeholders and passed over.
const minThreadSamples = 100

// SelectThread picks the thread to analyze: the first one whose process
// name contains binary or whose main-thread flag is set, provided it holds
// more than minThreadSamples samples. When no thread qualifies it falls
// back to the thread with the most samples. The capture must contain at
// least one thread.
func SelectThread(capture *samply.Capture, binary string) *samply.Thread {
	for i := range capture.Threads {
		t := &capture.Threads[i]
		if strings.Contains(t.ProcessName, binary) || t.IsMainThread {
			if t.Samples.Length > minThreadSamples {
				return t
			}
		}
	}

	best := &capture.Threads[0]
	for i := range capture.Threads {
		if capture.Threads[i].Samples.Length > best.Samples.Length {
			best = &capture.Threads[i]
		}
	}
	return best
}
