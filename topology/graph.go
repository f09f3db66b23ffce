package topology

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidGraph wraps every validation failure returned by NewGraph
var ErrInvalidGraph = errors.New("invalid station graph")

var validate = validator.New()

// Graph is one station's modeled interior. It is read-only once built.
type Graph struct {
	stationID string
	name      string
	nodes     map[string]Node
	edges     []Edge
}

// NewGraph validates nodes and edges and builds an immutable graph.
// Nodes without a StationID inherit stationID; nodes that name another station
// are rejected, as are edges whose endpoints are not in the node set.
func NewGraph(stationID, name string, nodes []Node, edges []Edge) (*Graph, error) {
	if stationID == "" {
		return nil, fmt.Errorf("%w: empty station id", ErrInvalidGraph)
	}
	g := &Graph{
		stationID: stationID,
		name:      name,
		nodes:     make(map[string]Node, len(nodes)),
		edges:     make([]Edge, 0, len(edges)),
	}
	for _, n := range nodes {
		if err := validate.Struct(n); err != nil {
			return nil, fmt.Errorf("%w: node %q: %v", ErrInvalidGraph, n.ID, err)
		}
		if n.StationID == "" {
			n.StationID = stationID
		}
		if n.StationID != stationID {
			return nil, fmt.Errorf("%w: node %q belongs to %q", ErrInvalidGraph, n.ID, n.StationID)
		}
		if _, dup := g.nodes[n.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate node %q", ErrInvalidGraph, n.ID)
		}
		g.nodes[n.ID] = n.clone()
	}
	for i, e := range edges {
		if err := validate.Struct(e); err != nil {
			return nil, fmt.Errorf("%w: edge %d (%s->%s): %v", ErrInvalidGraph, i, e.FromNodeID, e.ToNodeID, err)
		}
		if _, ok := g.nodes[e.FromNodeID]; !ok {
			return nil, fmt.Errorf("%w: edge %d: unknown node %q", ErrInvalidGraph, i, e.FromNodeID)
		}
		if _, ok := g.nodes[e.ToNodeID]; !ok {
			return nil, fmt.Errorf("%w: edge %d: unknown node %q", ErrInvalidGraph, i, e.ToNodeID)
		}
		g.edges = append(g.edges, e.clone())
	}
	return g, nil
}

func (g *Graph) StationID() string { return g.stationID }

// Name is the display name given by the data source, or the station id.
func (g *Graph) Name() string {
	if g.name != "" {
		return g.name
	}
	return g.stationID
}

func (g *Graph) NodeCount() int { return len(g.nodes) }

func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node returns a copy of the node with the given id
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return n.clone(), true
}

// Nodes returns copies of all nodes ordered by id
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Edges returns copies of all edges in curator order
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	for i, e := range g.edges {
		out[i] = e.clone()
	}
	return out
}

// Outgoing returns copies of the edges leaving node id
func (g *Graph) Outgoing(id string) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.FromNodeID == id {
			out = append(out, e.clone())
		}
	}
	return out
}

// MapEdges derives a new graph with every edge passed through fn. The receiver
// is left untouched. The result is validated like any other graph.
func (g *Graph) MapEdges(fn func(Edge) Edge) (*Graph, error) {
	nodes := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	edges := make([]Edge, len(g.edges))
	for i, e := range g.edges {
		edges[i] = fn(e.clone())
	}
	return NewGraph(g.stationID, g.name, nodes, edges)
}
