// Package interior finds the cheapest walking path between two nodes of one
// station graph under a tpi.Weighting.
package interior

import (
	"container/heap"
	"math"

	"github.com/theoremus-urban-solutions/route-experience/topology"
	"github.com/theoremus-urban-solutions/route-experience/tpi"
)

// Path is a walked sequence of edges inside one station.
type Path struct {
	Nodes    []string        `json:"nodes"`
	Edges    []topology.Edge `json:"edges"`
	Cost     float64         `json:"cost"`
	Duration float64         `json:"durationSeconds"`
	Distance float64         `json:"distanceMeters"`
}

type queueItem struct {
	nodeID string
	cost   float64
	index  int
}

type priorityQueue []*queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool { return pq[i].cost < pq[j].cost }

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// ShortestPath runs Dijkstra from one node to another. Infeasible edges are
// never relaxed. The second result is false when either node is unknown or
// the target cannot be reached with finite cost.
func ShortestPath(g *topology.Graph, fromID, toID string, w tpi.Weighting) (Path, bool) {
	if g == nil {
		return Path{}, false
	}
	if _, ok := g.Node(fromID); !ok {
		return Path{}, false
	}
	if _, ok := g.Node(toID); !ok {
		return Path{}, false
	}
	if fromID == toID {
		return Path{Nodes: []string{fromID}}, true
	}

	cost := map[string]float64{fromID: 0}
	prevEdge := make(map[string]topology.Edge)
	visited := make(map[string]bool)

	pq := priorityQueue{}
	heap.Push(&pq, &queueItem{nodeID: fromID, cost: 0})

	for pq.Len() > 0 {
		current := heap.Pop(&pq).(*queueItem)
		if visited[current.nodeID] {
			continue
		}
		visited[current.nodeID] = true
		if current.nodeID == toID {
			break
		}

		for _, e := range g.Outgoing(current.nodeID) {
			if visited[e.ToNodeID] {
				continue
			}
			wgt := w.EdgeWeight(e)
			if tpi.Infeasible(wgt) || math.IsNaN(wgt) {
				continue
			}
			next := current.cost + wgt
			if have, ok := cost[e.ToNodeID]; ok && next >= have {
				continue
			}
			cost[e.ToNodeID] = next
			prevEdge[e.ToNodeID] = e
			heap.Push(&pq, &queueItem{nodeID: e.ToNodeID, cost: next})
		}
	}

	if !visited[toID] {
		return Path{}, false
	}

	var edges []topology.Edge
	for at := toID; at != fromID; {
		e := prevEdge[at]
		edges = append(edges, e)
		at = e.FromNodeID
	}
	p := Path{Nodes: []string{fromID}, Cost: cost[toID]}
	for i := len(edges) - 1; i >= 0; i-- {
		e := edges[i]
		p.Edges = append(p.Edges, e)
		p.Nodes = append(p.Nodes, e.ToNodeID)
		p.Duration += e.DurationSeconds
		p.Distance += e.DistanceMeters
	}
	return p, true
}
