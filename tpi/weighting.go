package tpi

import (
	"github.com/theoremus-urban-solutions/route-experience/profile"
	"github.com/theoremus-urban-solutions/route-experience/topology"
)

// Weighting assigns a traversal cost to interior edges.
type Weighting interface {
	EdgeWeight(e topology.Edge) float64
	Name() string
}

// ProfileWeighting weights edges with EdgeCost for a fixed profile.
type ProfileWeighting struct {
	Profile profile.Profile
}

func (w ProfileWeighting) EdgeWeight(e topology.Edge) float64 {
	return EdgeCost(e, w.Profile)
}

func (w ProfileWeighting) Name() string { return "tpi" }

// DurationWeighting is the neutral walking time, ignoring resistance.
type DurationWeighting struct{}

func (DurationWeighting) EdgeWeight(e topology.Edge) float64 { return e.DurationSeconds }

func (DurationWeighting) Name() string { return "duration" }
