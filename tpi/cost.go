package tpi

import (
	"math"

	"github.com/theoremus-urban-solutions/route-experience/profile"
	"github.com/theoremus-urban-solutions/route-experience/topology"
)

// Soft-block costs. Both are finite so a blocked edge still compares against
// alternatives.
const (
	StrollerBlock        = 1000.0
	EscalatorUpOnlyBlock = 500.0
)

const (
	durationWeight = 0.5

	wheelchairElevator = 0.1

	luggageStairs    = 5.0
	luggageEscalator = 0.5
	luggageElevator  = 0.2

	crowdFactor     = 1.5
	narrowFactor    = 1.2
	signageFactor   = 0.9
	modernFloorLugg = 0.8
)

// EdgeCost returns the cost of traversing e for the given profile.
func EdgeCost(e topology.Edge, p profile.Profile) float64 {
	multiplier := 1.0

	if p.Has(profile.Wheelchair) {
		if !e.WheelchairAccessible {
			return math.Inf(1)
		}
		if e.Is(topology.TagElevator) {
			multiplier = wheelchairElevator
		}
	}

	if p.Has(profile.Stroller) {
		if !e.StrollerAccessible {
			return StrollerBlock
		}
		if e.HasTag(topology.TagEscalatorUpOnly) {
			return EscalatorUpOnlyBlock
		}
	}

	luggage := p.Has(profile.Luggage)
	if luggage {
		switch {
		case e.Is(topology.TagStairs):
			multiplier *= luggageStairs
		case e.Is(topology.TagEscalator):
			multiplier *= luggageEscalator
		case e.Is(topology.TagElevator):
			multiplier *= luggageElevator
		}
	}

	if e.HasTag(topology.TagCrowded) || e.HasTag(topology.TagCrowdedPeak) {
		multiplier *= crowdFactor
	}
	if e.HasTag(topology.TagNarrow) {
		multiplier *= narrowFactor
	}
	if e.HasTag(topology.TagClearSignage) {
		multiplier *= signageFactor
	}
	if luggage && e.HasTag(topology.TagModernFloor) {
		multiplier *= modernFloorLugg
	}

	return e.DurationSeconds*durationWeight + e.ResistanceScore*multiplier
}

// Infeasible reports whether cost is a hard block
func Infeasible(cost float64) bool {
	return math.IsInf(cost, 1)
}
