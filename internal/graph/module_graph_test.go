package graph

import "testing"

func TestBuildModuleGraphNeighbors(t *testing.T) {
	edges := []Edge{
		{From: 0, To: 1},
		{From: 0, To: 2},
		{From: 1, To: 2},
	}
	g := BuildModuleGraph(3, edges)

	if g.NodeCount() != 3 {
		t.Fatalf("expected 3 nodes, got %d", g.NodeCount())
	}

	out0 := g.Neighbors(0, Outgoing)
	if len(out0) != 2 {
		t.Fatalf("expected 2 outgoing neighbors of 0, got %d", len(out0))
	}

	in2 := g.Neighbors(2, Incoming)
	if len(in2) != 2 {
		t.Fatalf("expected 2 incoming neighbors of 2, got %d", len(in2))
	}
}

func TestBuildModuleGraphDuplicateEdgesPermitted(t *testing.T) {
	edges := []Edge{
		{From: 0, To: 1},
		{From: 0, To: 1},
	}
	g := BuildModuleGraph(2, edges)

	out := g.Neighbors(0, Outgoing)
	if len(out) != 2 {
		t.Fatalf("expected duplicate edge to be preserved, got %d neighbors", len(out))
	}
}

func TestBuildModuleGraphIsolatedNode(t *testing.T) {
	g := BuildModuleGraph(1, nil)
	if neighbors := g.Neighbors(0, Outgoing); len(neighbors) != 0 {
		t.Fatalf("expected no neighbors for isolated node, got %d", len(neighbors))
	}
}
