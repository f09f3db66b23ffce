/*
Package topology models the walking graph inside a station and the providers
that hand those graphs to the scoring engine.

A Graph holds one station's typed nodes (platforms, gates, exits, elevator
halls) and directed edges (walk, stairs, escalator, elevator, slope). Each edge
carries a neutral-pace duration, a curator-assigned resistance score in
[0,100], accessibility flags and free-form context tags.

# Building Graphs

Graphs are built through NewGraph, which validates every node and edge and
returns a value that is never modified afterwards:

	g, err := topology.NewGraph("odpt.Station:JR-East.Yamanote.Ueno", "Ueno", nodes, edges)
	if errors.Is(err, topology.ErrInvalidGraph) {
	    // bad curator data
	}

YAML station files can be decoded with DecodeGraphYAML or loaded in bulk with
LoadDir. The reference hub fixtures are embedded and available via Fixtures().

# Tags

Edge tags are parsed into a closed set of TagKind variants. Labels outside that
set become TagUnknown and keep their raw text; cost models ignore them.

# Providers

Provider is the single boundary to topology data:

	g, err := provider.StationGraph(ctx, stationID)

A nil graph with a nil error means the station is not modeled. This is a normal
outcome, not a fault. Providers compose:

	p := topology.NewCachedProvider(
	    topology.Chain(topology.Fixtures(), dirProvider, gtfsProvider),
	    256, 10*time.Minute,
	)
*/
package topology
