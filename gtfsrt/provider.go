package gtfsrt

import (
	"context"
	"time"

	"github.com/theoremus-urban-solutions/route-experience/topology"
)

// outOfServiceResistance is the baseline given to an edge whose lift is down
const outOfServiceResistance = 100

// SnapshotSource yields the outage snapshot to apply. *Feed implements it.
type SnapshotSource interface {
	Current() *Snapshot
}

// OutageProvider decorates a topology.Provider. Elevator and escalator edges
// touching a stop with an active outage come back inaccessible, at maximum
// resistance and tagged OUT_OF_SERVICE. An outage naming the station itself
// covers every lift in it.
type OutageProvider struct {
	inner  topology.Provider
	source SnapshotSource
	now    func() time.Time
}

// NewOutageProvider wraps inner with the outages reported by source.
func NewOutageProvider(inner topology.Provider, source SnapshotSource) *OutageProvider {
	return &OutageProvider{inner: inner, source: source, now: time.Now}
}

func (p *OutageProvider) StationGraph(ctx context.Context, stationID string) (*topology.Graph, error) {
	g, err := p.inner.StationGraph(ctx, stationID)
	if err != nil || g == nil || p.source == nil {
		return g, err
	}
	snap := p.source.Current()
	if snap == nil || len(snap.Outages) == 0 {
		return g, nil
	}
	return Apply(g, snap, p.now())
}

type liftState struct {
	elevator  bool
	escalator bool
}

// Apply derives a graph with the outages of snap active at t. The input graph
// is left untouched; when nothing applies it is returned as is.
func Apply(g *topology.Graph, snap *Snapshot, t time.Time) (*topology.Graph, error) {
	station := stateFor(snap, g.StationID(), t)
	nodes := make(map[string]liftState)
	for _, n := range g.Nodes() {
		if s := stateFor(snap, n.ID, t); s.elevator || s.escalator {
			nodes[n.ID] = s
		}
	}
	if len(nodes) == 0 && !station.elevator && !station.escalator {
		return g, nil
	}

	return g.MapEdges(func(e topology.Edge) topology.Edge {
		s := station
		for _, id := range []string{e.FromNodeID, e.ToNodeID} {
			ns := nodes[id]
			s.elevator = s.elevator || ns.elevator
			s.escalator = s.escalator || ns.escalator
		}
		if (s.elevator && e.Is(topology.TagElevator)) || (s.escalator && e.Is(topology.TagEscalator)) {
			return markOut(e)
		}
		return e
	})
}

func stateFor(snap *Snapshot, stopID string, t time.Time) liftState {
	var s liftState
	for _, o := range snap.ForStop(stopID, t) {
		s.elevator = s.elevator || o.Elevator
		s.escalator = s.escalator || o.Escalator
	}
	return s
}

func markOut(e topology.Edge) topology.Edge {
	e.WheelchairAccessible = false
	e.StrollerAccessible = false
	e.ResistanceScore = outOfServiceResistance
	if !e.HasTag(topology.TagElevatorOutage) {
		e.Tags = append(e.Tags, topology.Tag{Kind: topology.TagElevatorOutage, Raw: topology.TagElevatorOutage.String()})
	}
	return e
}
