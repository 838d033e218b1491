package index

import (
	"fmt"
	"testing"
)

func TestGraph_Bounds(t *testing.T) {
	s := testStore(t)
	for i := 0; i < 5; i++ {
		mustIndex(t, s, fmt.Sprintf("n%d.md", i), fmt.Sprintf("# Note %d\n[[n%d]]", i, (i+1)%5))
	}

	g, err := s.Graph(3, 0)
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if len(g.Nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(g.Nodes))
	}
	// Stable note_id order.
	for i, n := range g.Nodes {
		if want := fmt.Sprintf("n%d.md", i); n.ID != want {
			t.Errorf("nodes[%d].ID = %q, want %q", i, n.ID, want)
		}
	}
	if len(g.Edges) > 6 {
		t.Errorf("edges = %d, want at most 2*limit", len(g.Edges))
	}
}

func TestGraph_NodeFields(t *testing.T) {
	s := testStore(t)
	mustIndex(t, s, "one.md", "# One\n\nthree words here")

	g, err := s.Graph(10, 0)
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if len(g.Nodes) != 1 {
		t.Fatalf("nodes = %d", len(g.Nodes))
	}
	n := g.Nodes[0]
	if n.ID != "one.md" || n.Label != "One" || n.Type != "note" || n.Path != "one.md" || n.WordCount != 5 {
		t.Errorf("node = %+v", n)
	}
}

func TestGraph_MinDegreeFilter(t *testing.T) {
	s := testStore(t)
	// Triangle a-b-c, plus pendant d -> a.
	mustIndex(t, s, "a.md", "# Alpha\n[[Beta]] [[Gamma]]")
	mustIndex(t, s, "b.md", "# Beta\n[[Alpha]] [[Gamma]]")
	mustIndex(t, s, "c.md", "# Gamma\n[[Alpha]] [[Beta]]")
	mustIndex(t, s, "d.md", "# Delta\n[[Alpha]]")

	g, err := s.Graph(10, 2)
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}

	degree := make(map[string]int)
	for _, e := range g.Edges {
		degree[e.Source]++
		degree[e.Target]++
	}
	for _, n := range g.Nodes {
		if n.ID == "d.md" {
			t.Error("pendant node survived min_degree filter")
		}
		if degree[n.ID] < 2 {
			t.Errorf("node %s has degree %d within returned edges", n.ID, degree[n.ID])
		}
	}
	for _, e := range g.Edges {
		if e.Source == "d.md" || e.Target == "d.md" {
			t.Errorf("edge touching filtered node survived: %+v", e)
		}
	}
}

func TestGraph_EdgeWeightAndLabel(t *testing.T) {
	s := testStore(t)
	mustIndex(t, s, "dst.md", "# Destination")
	mustIndex(t, s, "src.md", "[[Destination]] and [[Destination|shown]]")

	g, err := s.Graph(10, 0)
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	var edge *GraphEdge
	for i := range g.Edges {
		if g.Edges[i].Source == "src.md" {
			edge = &g.Edges[i]
		}
	}
	if edge == nil {
		t.Fatal("edge not found")
	}
	if edge.Target != "dst.md" {
		t.Errorf("target = %q, want resolved id", edge.Target)
	}
	if edge.Weight != 2 {
		t.Errorf("weight = %d, want aggregated occurrences", edge.Weight)
	}
	if edge.Label != "shown" {
		t.Errorf("label = %q, want last-seen link text", edge.Label)
	}
	if edge.Type != "wikilink" {
		t.Errorf("type = %q", edge.Type)
	}
}

func TestGraph_Empty(t *testing.T) {
	s := testStore(t)
	g, err := s.Graph(10, 0)
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Errorf("graph = %+v, want empty lists", g)
	}
}
