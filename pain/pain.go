// Package pain aggregates a station's edges into one transfer pain score.
//
// This is the coarse additive model used for route ranking. It is separate
// from the per-edge tpi cost but keeps the same severity order: stroller
// blocks outweigh luggage penalties, which outweigh crowding.
package pain

import (
	"strings"

	"github.com/theoremus-urban-solutions/route-experience/profile"
	"github.com/theoremus-urban-solutions/route-experience/topology"
)

// Reason strings recorded in Result.Reasons
const (
	ReasonHoliday        = "Holiday Crowds (High)"
	ReasonStairsLuggage  = "Avoid Stairs (Luggage)"
	ReasonStairsStroller = "Avoid Stairs (Stroller)"
	ReasonNarrowCorridor = "Narrow Corridor"
)

const (
	holidaySurcharge  = 15.0
	stairsBase        = 10.0
	stairsLuggageMul  = 3.0
	stairsStrollerMul = 5.0
	narrowLuggage     = 20.0
	luggageFriction   = 30.0
)

// HolidayMode selects how the holiday surcharge scales
type HolidayMode string

const (
	// HolidayPerEdge adds the surcharge once for every edge scanned.
	HolidayPerEdge HolidayMode = "per_edge"
	// HolidayPerStation adds it once per station.
	HolidayPerStation HolidayMode = "per_station"
)

// Config tunes the aggregator.
type Config struct {
	// Hubs are matched as substrings of the station id, or case-insensitively
	// against the station name.
	Hubs        []string
	HolidayMode HolidayMode
	// ChargeLuggageStairs adds 10x3 per stairs edge for luggage. When false the
	// stairs only record a reason and the flat luggage surcharge carries them.
	ChargeLuggageStairs bool
}

// DefaultConfig matches the reference ranking behavior
func DefaultConfig() Config {
	return Config{
		Hubs:        []string{"Ueno", "Tokyo"},
		HolidayMode: HolidayPerEdge,
	}
}

// Result is the pain of one station transfer.
type Result struct {
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// Aggregator scores station graphs. It holds no per-call state and is safe for
// concurrent use.
type Aggregator struct {
	cfg Config
}

func New(cfg Config) *Aggregator {
	if cfg.HolidayMode == "" {
		cfg.HolidayMode = HolidayPerEdge
	}
	cfg.Hubs = append([]string(nil), cfg.Hubs...)
	return &Aggregator{cfg: cfg}
}

var defaultAggregator = New(DefaultConfig())

// Aggregate scores g with the default configuration.
func Aggregate(g *topology.Graph, p profile.Profile, isHoliday bool) Result {
	return defaultAggregator.Aggregate(g, p, isHoliday)
}

// Aggregate scans every edge of g. A nil graph scores zero.
func (a *Aggregator) Aggregate(g *topology.Graph, p profile.Profile, isHoliday bool) Result {
	if g == nil {
		return Result{}
	}
	return a.score(g, g.Edges(), p, isHoliday)
}

// AggregatePath scores only the given edges of g, typically the interior path
// the traveler actually walks. Hub detection still uses g.
func (a *Aggregator) AggregatePath(g *topology.Graph, path []topology.Edge, p profile.Profile, isHoliday bool) Result {
	if g == nil {
		return Result{}
	}
	return a.score(g, path, p, isHoliday)
}

// IsHub reports whether g is one of the configured holiday hubs
func (a *Aggregator) IsHub(g *topology.Graph) bool {
	for _, hub := range a.cfg.Hubs {
		if hub == "" {
			continue
		}
		if strings.Contains(g.StationID(), hub) || strings.EqualFold(g.Name(), hub) {
			return true
		}
	}
	return false
}

func (a *Aggregator) score(g *topology.Graph, edges []topology.Edge, p profile.Profile, isHoliday bool) Result {
	var r reasons
	score := 0.0
	luggage := p.Has(profile.Luggage)
	stroller := p.Has(profile.Stroller)

	if isHoliday && a.IsHub(g) {
		if a.cfg.HolidayMode == HolidayPerStation {
			score += holidaySurcharge
		} else {
			score += holidaySurcharge * float64(len(edges))
		}
		r.add(ReasonHoliday)
	}

	for _, e := range edges {
		if e.Is(topology.TagStairs) {
			switch {
			case luggage:
				if a.cfg.ChargeLuggageStairs {
					score += stairsBase * stairsLuggageMul
				}
				r.add(ReasonStairsLuggage)
			case stroller:
				score += stairsBase * stairsStrollerMul
				r.add(ReasonStairsStroller)
			}
		}
		if luggage && e.HasTag(topology.TagNarrow) {
			score += narrowLuggage
			r.add(ReasonNarrowCorridor)
		}
	}

	if luggage && len(r) > 0 {
		score += luggageFriction
	}
	return Result{Score: score, Reasons: r}
}

// reasons keeps first-seen order without duplicates
type reasons []string

func (r *reasons) add(s string) {
	for _, have := range *r {
		if have == s {
			return
		}
	}
	*r = append(*r, s)
}
