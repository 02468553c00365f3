package graph

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// splitThreshold is the minimum pending-stack length at which a traversal
// worker forks off half its work to a new goroutine. High enough to avoid
// spinning up a goroutine per single stack push on small graphs, while
// still parallelizing real fan-out.
const splitThreshold = 8

type stackItem struct {
	node  ModuleId
	depth uint
}

// seenSet is the shared, reader-writer-protected bit-vector every forked
// traversal worker consults before expanding a node. A duplicate
// first-visit just costs a wasted yield, not a correctness violation.
type seenSet struct {
	mu   sync.RWMutex
	bits []bool
}

func newSeenSet(n int) *seenSet {
	return &seenSet{bits: make([]bool, n)}
}

// testAndSet marks id seen and reports whether it was already seen before
// this call.
func (s *seenSet) testAndSet(id ModuleId) bool {
	s.mu.RLock()
	if s.bits[id] {
		s.mu.RUnlock()
		return true
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bits[id] {
		return true
	}
	s.bits[id] = true
	return false
}

func (s *seenSet) collect() []ModuleId {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ModuleId, 0, len(s.bits))
	for i, seen := range s.bits {
		if seen {
			out = append(out, ModuleId(i))
		}
	}
	return out
}

// worker drives one (possibly forked) depth-first expansion over its own
// LIFO stack, sharing the seen set with any siblings it has split off.
type worker struct {
	graph     *ModuleGraph
	direction Direction
	maxDepth  uint
	seen      *seenSet
	stack     []stackItem
}

// run drains w's stack, splitting off a forked worker onto eg whenever the
// pending stack reaches splitThreshold.
func (w *worker) run(eg *errgroup.Group) {
	for len(w.stack) > 0 {
		if len(w.stack) >= splitThreshold {
			mid := len(w.stack) / 2
			forkedStack := make([]stackItem, len(w.stack)-mid)
			copy(forkedStack, w.stack[mid:])
			w.stack = w.stack[:mid]

			forked := &worker{
				graph:     w.graph,
				direction: w.direction,
				maxDepth:  w.maxDepth,
				seen:      w.seen,
				stack:     forkedStack,
			}
			eg.Go(func() error {
				forked.run(eg)
				return nil
			})
		}

		n := len(w.stack) - 1
		item := w.stack[n]
		w.stack = w.stack[:n]

		if w.seen.testAndSet(item.node) {
			// Already visited: yield-then-not-expanded (it was expanded on
			// its first pop; this duplicate pop is a no-op).
			continue
		}

		if w.maxDepth > 0 && item.depth >= w.maxDepth {
			// At the depth bound: the node itself was still yielded (it's
			// in the seen set), but its neighbors are not explored.
			continue
		}

		for _, nb := range w.graph.Neighbors(item.node, w.direction) {
			w.stack = append(w.stack, stackItem{node: nb, depth: item.depth + 1})
		}
	}
}

// Reachable performs a bounded depth-first expansion from seed in the
// given direction and returns the reached ModuleIds. maxDepth == 0 means
// unbounded. The seed is always present in the result: it is pushed onto
// the initial stack and is always the first node popped and marked seen.
//
// The traversal may run sequentially or fork across goroutines depending
// on how large the frontier grows; both realizations yield the identical
// set.
func (g *ModuleGraph) Reachable(seed ModuleId, direction Direction, maxDepth uint) []ModuleId {
	seen := newSeenSet(g.nodeCount)
	root := &worker{
		graph:     g,
		direction: direction,
		maxDepth:  maxDepth,
		seen:      seen,
		stack:     []stackItem{{node: seed, depth: 0}},
	}

	var eg errgroup.Group
	eg.Go(func() error {
		root.run(&eg)
		return nil
	})
	_ = eg.Wait()

	return seen.collect()
}
