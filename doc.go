// Package routeexperience assembles the route experience scoring engine from
// configuration: station topology sources, the graph cache, the realtime
// outage overlay and the route synthesizer.
//
// Library users who already hold a topology.Provider can use the synth
// package directly; Engine is the batteries-included entry point used by the
// command line tool.
package routeexperience
