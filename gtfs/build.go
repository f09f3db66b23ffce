package gtfs

import (
	"fmt"
	"math"
	"sort"

	"github.com/theoremus-urban-solutions/route-experience/topology"
)

const (
	walkSpeedMPS     = 1.3
	secondsPerStair  = 0.6
	elevatorDefaultS = 30.0
	steepSlope       = 0.05
	wheelchairSlope  = 0.083
	narrowWidth      = 1.0
	longWalkMeters   = 100.0
)

func (x *PathwayIndex) build() {
	byStation := map[string][]Pathway{}
	modes := map[string]map[int]bool{}
	for _, p := range x.feed.Pathways {
		from, to := x.stationOf[p.FromStopID], x.stationOf[p.ToStopID]
		if from == "" || from != to {
			continue
		}
		byStation[from] = append(byStation[from], p)
		for _, id := range []string{p.FromStopID, p.ToStopID} {
			if modes[id] == nil {
				modes[id] = map[int]bool{}
			}
			modes[id][p.Mode] = true
		}
	}

	stations := make([]string, 0, len(byStation))
	for st := range byStation {
		stations = append(stations, st)
	}
	sort.Strings(stations)

	for _, st := range stations {
		g, err := x.buildStation(st, byStation[st], modes)
		if err != nil {
			x.errs[st] = fmt.Errorf("gtfs station %s: %w", st, err)
			continue
		}
		x.graphs[st] = g
	}
}

func (x *PathwayIndex) buildStation(station string, pathways []Pathway, modes map[string]map[int]bool) (*topology.Graph, error) {
	var nodes []topology.Node
	for _, s := range x.feed.Stops {
		if s.LocationType == LocationStation || x.stationOf[s.ID] != station {
			continue
		}
		n := topology.Node{
			ID:        s.ID,
			StationID: station,
			Type:      nodeType(s, modes[s.ID]),
			Level:     x.level(s),
		}
		meta := map[string]string{}
		if s.Name != "" {
			meta["name"] = s.Name
		}
		if l, ok := x.levels[s.LevelID]; ok && l.Name != "" {
			meta["level"] = l.Name
		}
		if len(meta) > 0 {
			n.Metadata = meta
		}
		nodes = append(nodes, n)
	}

	edges := make([]topology.Edge, 0, len(pathways))
	for _, p := range pathways {
		edges = append(edges, x.edge(p, p.FromStopID, p.ToStopID))
		if p.Bidirectional {
			edges = append(edges, x.edge(p, p.ToStopID, p.FromStopID))
		}
	}
	return topology.NewGraph(station, x.stops[station].Name, nodes, edges)
}

func nodeType(s Stop, modes map[int]bool) topology.NodeType {
	switch s.LocationType {
	case LocationEntrance:
		return topology.NodeExit
	case LocationGenericNode:
		switch {
		case modes[PathwayFareGate] || modes[PathwayExitGate]:
			return topology.NodeTicketGate
		case modes[PathwayElevator]:
			return topology.NodeElevatorHall
		}
		return topology.NodePOI
	}
	return topology.NodePlatform
}

func (x *PathwayIndex) level(s Stop) int {
	if l, ok := x.levels[s.LevelID]; ok {
		return int(math.Round(l.Index))
	}
	if s.LocationType == LocationBoardingArea {
		if parent, ok := x.stops[s.ParentStation]; ok {
			return x.level(parent)
		}
	}
	return 0
}

// edge maps a pathway to a directed edge from -> to
func (x *PathwayIndex) edge(p Pathway, from, to string) topology.Edge {
	fromStop, toStop := x.stops[from], x.stops[to]
	length := p.Length
	if length <= 0 {
		length = distanceMeters(fromStop, toStop)
	}
	duration := p.TraversalTime
	if duration <= 0 {
		switch {
		case p.Mode == PathwayElevator:
			duration = elevatorDefaultS
		case length > 0:
			duration = length / walkSpeedMPS
		case p.StairCount != 0:
			duration = math.Abs(float64(p.StairCount)) * secondsPerStair
		}
	}

	e := topology.Edge{
		FromNodeID:           from,
		ToNodeID:             to,
		Type:                 topology.EdgeWalk,
		DistanceMeters:       length,
		DurationSeconds:      duration,
		WheelchairAccessible: true,
		StrollerAccessible:   true,
	}
	var tags []string
	resistance := 5.0

	switch p.Mode {
	case PathwayWalkway:
		if p.MaxSlope >= steepSlope {
			e.Type = topology.EdgeSlope
			resistance += 15
		}
		if p.MaxSlope > wheelchairSlope {
			e.WheelchairAccessible = false
		}
	case PathwayStairs:
		e.Type = topology.EdgeStairs
		tags = append(tags, "stairs")
		resistance = 40 + math.Min(math.Abs(float64(p.StairCount)), 40)
		e.WheelchairAccessible = false
		e.StrollerAccessible = false
	case PathwayMovingSidewalk:
		tags = append(tags, "moving_walkway")
		resistance = 3
	case PathwayEscalator:
		e.Type = topology.EdgeEscalator
		tags = append(tags, "escalator")
		resistance = 25
		e.WheelchairAccessible = false
		e.StrollerAccessible = false
		if !p.Bidirectional && x.level(toStop) > x.level(fromStop) {
			tags = append(tags, "escalator_up_only")
		}
	case PathwayElevator:
		e.Type = topology.EdgeElevator
		tags = append(tags, "elevator")
	case PathwayFareGate:
		tags = append(tags, "fare_gate")
		resistance = 10
	case PathwayExitGate:
		tags = append(tags, "exit_gate")
		resistance = 10
	}

	if length > longWalkMeters {
		tags = append(tags, "long_walk")
		resistance += math.Min((length-longWalkMeters)/20, 20)
	}
	if p.MinWidth > 0 {
		w := p.MinWidth
		e.WidthMeters = &w
		if w < narrowWidth {
			tags = append(tags, "NARROW")
			resistance += 10
		}
	}
	if p.SignpostedAs != "" {
		tags = append(tags, "CLEAR_SIGNAGE")
	}

	e.ResistanceScore = math.Max(0, math.Min(100, resistance))
	e.Tags = topology.Tags(tags...)
	return e
}
