package index

import (
	"fmt"
)

// GraphNode is one note in the visualization graph.
type GraphNode struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Type      string `json:"type"`
	Path      string `json:"path"`
	WordCount int    `json:"word_count"`
}

// GraphEdge is one directed link. Target is the resolved note id when the
// link resolved, otherwise the raw target text, so forward references still
// surface in the graph.
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
	Label  string `json:"label"`
	Weight int    `json:"weight"`
}

// GraphData is a bounded node/edge view of the link graph.
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Graph returns the first limit notes in note_id order (the documented
// stable order) and up to 2*limit edges, drawn independently. When
// minDegree > 0, degree is counted over the returned edge set only, and
// both lists are filtered to endpoints meeting the threshold. Degree is
// therefore locally, not globally, accurate, and edges may reference notes
// outside the node window; both are accepted trade-offs for a bounded
// response at vault scale.
func (s *Store) Graph(limit, minDegree int) (*GraphData, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}

	nodeRows, err := s.conn.Query(`
		SELECT note_id, title, path, word_count
		FROM notes ORDER BY note_id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("index: graph nodes: %w", err)
	}
	defer nodeRows.Close()

	var nodes []GraphNode
	for nodeRows.Next() {
		n := GraphNode{Type: "note"}
		if err := nodeRows.Scan(&n.ID, &n.Label, &n.Path, &n.WordCount); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	if err := nodeRows.Err(); err != nil {
		return nil, err
	}

	edgeRows, err := s.conn.Query(`
		SELECT src_note, COALESCE(resolved, raw_target), link_text, occurrences
		FROM links ORDER BY id LIMIT ?
	`, 2*limit)
	if err != nil {
		return nil, fmt.Errorf("index: graph edges: %w", err)
	}
	defer edgeRows.Close()

	var edges []GraphEdge
	for edgeRows.Next() {
		e := GraphEdge{Type: "wikilink"}
		if err := edgeRows.Scan(&e.Source, &e.Target, &e.Label, &e.Weight); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, err
	}

	if minDegree > 0 {
		nodes, edges = filterByDegree(nodes, edges, minDegree)
	}
	if nodes == nil {
		nodes = []GraphNode{}
	}
	if edges == nil {
		edges = []GraphEdge{}
	}
	return &GraphData{Nodes: nodes, Edges: edges}, nil
}

// filterByDegree counts each endpoint's appearances among the drawn edges
// and drops nodes below the threshold along with edges touching them.
func filterByDegree(nodes []GraphNode, edges []GraphEdge, minDegree int) ([]GraphNode, []GraphEdge) {
	degree := make(map[string]int, len(nodes))
	for _, e := range edges {
		degree[e.Source]++
		degree[e.Target]++
	}

	var keptNodes []GraphNode
	for _, n := range nodes {
		if degree[n.ID] >= minDegree {
			keptNodes = append(keptNodes, n)
		}
	}
	var keptEdges []GraphEdge
	for _, e := range edges {
		if degree[e.Source] >= minDegree && degree[e.Target] >= minDegree {
			keptEdges = append(keptEdges, e)
		}
	}
	return keptNodes, keptEdges
}
