/*
Package gtfs derives station interior graphs from GTFS static pathways data.

This package is data-source agnostic - it accepts raw zip bytes or io.ReaderAt
and builds an in-memory index. Only stops.txt, pathways.txt and levels.txt are
read; every other file in the feed is ignored.

# Basic Usage

	zipBytes := fetchGTFSFromYourSource()

	index, err := gtfs.NewPathwayIndexFromBytes(zipBytes)
	if err != nil {
	    log.Fatal(err)
	}

	// PathwayIndex is a topology.Provider
	g, err := index.StationGraph(ctx, "station_ueno")

Stations are keyed by their parent station stop_id. Child stop ids (platforms,
entrances, generic nodes, boarding areas) resolve to their parent station's
graph.

# Mapping

	pathway_mode 1 walkway          -> walk (slope when max_slope >= 0.05)
	pathway_mode 2 stairs           -> stairs, tagged "stairs"
	pathway_mode 3 moving sidewalk  -> walk, tagged "moving_walkway"
	pathway_mode 4 escalator        -> escalator ("escalator_up_only" when one-way up)
	pathway_mode 5 elevator         -> elevator, tagged "elevator"
	pathway_mode 6/7 fare/exit gate -> walk, tagged "fare_gate"/"exit_gate"

location_type 0 and 4 become platforms, 2 exits, and 3 (generic nodes) become
ticket gates, elevator halls or points of interest depending on the pathways
that touch them. Bidirectional pathways produce an edge in each direction.

Missing traversal_time is estimated from length at 1.3 m/s; missing length is
estimated from stop coordinates. Resistance scores are heuristic and clamped
to [0,100].

# Performance: Cache the Index

Parse the feed once at startup. SerializeIndexToFile and
DeserializeIndexFromFile keep a gob copy of the parsed records so restarts can
skip the zip.
*/
package gtfs
