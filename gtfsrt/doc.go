// Package gtfsrt reads GTFS-Realtime service alerts and overlays elevator and
// escalator outages onto station graphs.
//
// Only alerts that concern vertical transport are kept: those with effect
// ACCESSIBILITY_ISSUE, or whose header or description mentions an elevator or
// escalator. Each outage applies to the stops named by its informed entities.
//
// The main types are Feed, which fetches and holds the latest Snapshot, and
// OutageProvider, which wraps a topology.Provider and marks affected edges
// as out of service.
package gtfsrt
