package gtfs

// GTFS location_type values
const (
	LocationStop         = 0
	LocationStation      = 1
	LocationEntrance     = 2
	LocationGenericNode  = 3
	LocationBoardingArea = 4
)

// GTFS pathway_mode values
const (
	PathwayWalkway        = 1
	PathwayStairs         = 2
	PathwayMovingSidewalk = 3
	PathwayEscalator      = 4
	PathwayElevator       = 5
	PathwayFareGate       = 6
	PathwayExitGate       = 7
)

// Stop is one stops.txt row
type Stop struct {
	ID            string
	Name          string
	LocationType  int
	ParentStation string
	LevelID       string
	Lat, Lon      float64
	HasCoord      bool
}

// Pathway is one pathways.txt row. Zero means "not given" for the optional
// numeric fields.
type Pathway struct {
	ID            string
	FromStopID    string
	ToStopID      string
	Mode          int
	Bidirectional bool
	Length        float64
	TraversalTime float64
	StairCount    int
	MaxSlope      float64
	MinWidth      float64
	SignpostedAs  string
}

// Level is one levels.txt row
type Level struct {
	ID    string
	Index float64
	Name  string
}

// Feed holds the raw records the index is built from.
type Feed struct {
	Stops    []Stop
	Pathways []Pathway
	Levels   []Level
}
