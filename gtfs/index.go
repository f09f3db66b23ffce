package gtfs

import (
	"context"
	"sort"

	"github.com/theoremus-urban-solutions/route-experience/topology"
)

// PathwayIndex stores station graphs derived from one GTFS feed. It is
// read-only once built and safe for concurrent use.
type PathwayIndex struct {
	feed      Feed
	stops     map[string]Stop
	levels    map[string]Level
	stationOf map[string]string          // stop_id -> parent station stop_id
	graphs    map[string]*topology.Graph // station -> graph
	errs      map[string]error           // station -> build failure
}

// NewPathwayIndex builds graphs for every station that has pathways.
func NewPathwayIndex(feed Feed) *PathwayIndex {
	x := &PathwayIndex{
		feed:      feed,
		stops:     make(map[string]Stop, len(feed.Stops)),
		levels:    make(map[string]Level, len(feed.Levels)),
		stationOf: make(map[string]string, len(feed.Stops)),
		graphs:    map[string]*topology.Graph{},
		errs:      map[string]error{},
	}
	for _, s := range feed.Stops {
		x.stops[s.ID] = s
	}
	for _, l := range feed.Levels {
		x.levels[l.ID] = l
	}
	for id := range x.stops {
		if st := x.rootStation(id, 0); st != "" {
			x.stationOf[id] = st
		}
	}
	x.build()
	return x
}

// StationGraph implements topology.Provider. id may be the station or any
// stop inside it. A station whose pathways failed validation returns its
// build error.
func (x *PathwayIndex) StationGraph(ctx context.Context, id string) (*topology.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	station, ok := x.stationOf[id]
	if !ok {
		return nil, nil
	}
	if err := x.errs[station]; err != nil {
		return nil, err
	}
	return x.graphs[station], nil
}

// StationIDs lists stations with a usable graph, sorted
func (x *PathwayIndex) StationIDs() []string {
	ids := make([]string, 0, len(x.graphs))
	for id := range x.graphs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// StationFor returns the parent station of a stop, or "" if it has none
func (x *PathwayIndex) StationFor(stopID string) string { return x.stationOf[stopID] }

func (x *PathwayIndex) GetStopName(stopID string) string { return x.stops[stopID].Name }

// rootStation follows parent_station links up to the station. Boarding areas
// sit two levels below it.
func (x *PathwayIndex) rootStation(id string, depth int) string {
	s, ok := x.stops[id]
	if !ok || depth > 3 {
		return ""
	}
	if s.LocationType == LocationStation {
		return s.ID
	}
	if s.ParentStation == "" {
		return ""
	}
	return x.rootStation(s.ParentStation, depth+1)
}
