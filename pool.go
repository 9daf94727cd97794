package katexpdf

import "runtime"

// Worker sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent browsers to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ResolveWorkers returns the number of concurrent conversions for a
// requested count. Positive requests are capped at MaxPoolSize; zero
// derives the count from GOMAXPROCS (container-aware with automaxprocs).
func ResolveWorkers(requested int) int {
	if requested > 0 {
		return min(requested, MaxPoolSize)
	}

	n := runtime.GOMAXPROCS(0) / cpuDivisor
	return min(max(n, MinPoolSize), MaxPoolSize)
}
