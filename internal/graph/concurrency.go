package graph

import "runtime"

// workerLimit returns the fan-out width used by the bounded parallel
// phases (alias candidate generation and import resolution) — one
// goroutine per logical CPU. Reachability forking is not bounded by it.
func workerLimit() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}
