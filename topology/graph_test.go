package topology

import (
	"errors"
	"strings"
	"testing"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want TagKind
	}{
		{"stairs", "stairs", TagStairs},
		{"narrow upper", "NARROW", TagNarrow},
		{"narrow lower", "narrow", TagNarrow},
		{"crowded", "CROWDED", TagCrowded},
		{"peak", "crowded_peak", TagCrowdedPeak},
		{"signage", " CLEAR_SIGNAGE ", TagClearSignage},
		{"up only", "escalator_up_only", TagEscalatorUpOnly},
		{"outage", "out_of_service", TagElevatorOutage},
		{"unknown", "scenic", TagUnknown},
		{"empty", "", TagUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTag(tt.in)
			if got.Kind != tt.want {
				t.Errorf("ParseTag(%q) = %v, want %v", tt.in, got.Kind, tt.want)
			}
			if got.Raw != strings.TrimSpace(tt.in) {
				t.Errorf("ParseTag(%q).Raw = %q", tt.in, got.Raw)
			}
		})
	}
}

func TestEdgeIs(t *testing.T) {
	byType := Edge{Type: EdgeStairs}
	byTag := Edge{Type: EdgeWalk, Tags: Tags("stairs")}
	neither := Edge{Type: EdgeWalk, Tags: Tags("flat")}

	if !byType.Is(TagStairs) || !byTag.Is(TagStairs) {
		t.Error("stairs should match by type or tag")
	}
	if neither.Is(TagStairs) {
		t.Error("flat walk should not be stairs")
	}
	if byType.HasTag(TagStairs) {
		t.Error("HasTag must only look at tags")
	}
	if neither.HasTag(TagUnknown) {
		t.Error("TagUnknown never matches")
	}
}

func testNodes() []Node {
	return []Node{
		{ID: "A", Type: NodePlatform, Level: 1},
		{ID: "B", Type: NodeTicketGate, Level: 0},
	}
}

func TestNewGraph_Validation(t *testing.T) {
	tests := []struct {
		name      string
		stationID string
		nodes     []Node
		edges     []Edge
		wantErr   bool
	}{
		{
			name:      "valid",
			stationID: "S",
			nodes:     testNodes(),
			edges:     []Edge{{FromNodeID: "A", ToNodeID: "B", Type: EdgeWalk, DurationSeconds: 10, ResistanceScore: 5}},
		},
		{name: "empty station", stationID: "", nodes: testNodes(), wantErr: true},
		{
			name:      "resistance above range",
			stationID: "S",
			nodes:     testNodes(),
			edges:     []Edge{{FromNodeID: "A", ToNodeID: "B", Type: EdgeWalk, ResistanceScore: 101}},
			wantErr:   true,
		},
		{
			name:      "negative duration",
			stationID: "S",
			nodes:     testNodes(),
			edges:     []Edge{{FromNodeID: "A", ToNodeID: "B", Type: EdgeWalk, DurationSeconds: -1}},
			wantErr:   true,
		},
		{
			name:      "unknown endpoint",
			stationID: "S",
			nodes:     testNodes(),
			edges:     []Edge{{FromNodeID: "A", ToNodeID: "C", Type: EdgeWalk}},
			wantErr:   true,
		},
		{
			name:      "self loop",
			stationID: "S",
			nodes:     testNodes(),
			edges:     []Edge{{FromNodeID: "A", ToNodeID: "A", Type: EdgeWalk}},
			wantErr:   true,
		},
		{
			name:      "bad edge type",
			stationID: "S",
			nodes:     testNodes(),
			edges:     []Edge{{FromNodeID: "A", ToNodeID: "B", Type: "teleport"}},
			wantErr:   true,
		},
		{
			name:      "bad node type",
			stationID: "S",
			nodes:     []Node{{ID: "A", Type: "lounge"}},
			wantErr:   true,
		},
		{
			name:      "duplicate node",
			stationID: "S",
			nodes:     []Node{{ID: "A", Type: NodeExit}, {ID: "A", Type: NodeExit}},
			wantErr:   true,
		},
		{
			name:      "foreign node",
			stationID: "S",
			nodes:     []Node{{ID: "A", StationID: "T", Type: NodeExit}},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGraph(tt.stationID, "", tt.nodes, tt.edges)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidGraph) {
					t.Fatalf("expected ErrInvalidGraph, got %v", err)
				}
				t.Logf("✓ rejected: %v", err)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestGraph_Immutable(t *testing.T) {
	edges := []Edge{{FromNodeID: "A", ToNodeID: "B", Type: EdgeWalk, Tags: Tags("NARROW")}}
	nodes := testNodes()
	g, err := NewGraph("S", "", nodes, edges)
	if err != nil {
		t.Fatal(err)
	}

	edges[0].Tags[0] = ParseTag("flat")
	nodes[0].Tags = append(nodes[0].Tags, "changed")
	if !g.Edges()[0].HasTag(TagNarrow) {
		t.Error("graph edge changed through caller slice")
	}

	out := g.Edges()
	out[0].Tags[0] = ParseTag("flat")
	if !g.Edges()[0].HasTag(TagNarrow) {
		t.Error("graph edge changed through accessor copy")
	}

	n, _ := g.Node("A")
	if n.StationID != "S" {
		t.Errorf("node should inherit station id, got %q", n.StationID)
	}
	if g.Name() != "S" {
		t.Errorf("Name() should fall back to station id, got %q", g.Name())
	}
	t.Log("✓ graph is isolated from caller and accessor slices")
}

func TestGraph_MapEdges(t *testing.T) {
	g := mustFixture(t, UenoStationID)
	derived, err := g.MapEdges(func(e Edge) Edge {
		e.WheelchairAccessible = false
		return e
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range derived.Edges() {
		if e.WheelchairAccessible {
			t.Fatal("derived edge still accessible")
		}
	}
	accessible := 0
	for _, e := range g.Edges() {
		if e.WheelchairAccessible {
			accessible++
		}
	}
	if accessible == 0 {
		t.Error("MapEdges modified the source graph")
	}
	if derived.NodeCount() != g.NodeCount() || derived.Name() != g.Name() {
		t.Error("derived graph lost nodes or name")
	}
}

func TestFixtures_Ueno(t *testing.T) {
	g := mustFixture(t, UenoStationID)

	if g.NodeCount() != 8 {
		t.Errorf("Ueno nodes = %d, want 8", g.NodeCount())
	}
	if g.EdgeCount() != 6 {
		t.Errorf("Ueno edges = %d, want 6", g.EdgeCount())
	}
	if g.Name() != "Ueno" {
		t.Errorf("Name() = %q", g.Name())
	}

	stairs := g.Outgoing("Ueno.Concourse.Central")[0]
	if stairs.Type != EdgeStairs || !stairs.HasTag(TagNarrow) || !stairs.HasTag(TagCrowdedPeak) {
		t.Errorf("unexpected central stairs edge: %+v", stairs)
	}
	if stairs.ResistanceScore != 80 || stairs.WheelchairAccessible {
		t.Errorf("central stairs: resistance %.0f, wheelchair %v", stairs.ResistanceScore, stairs.WheelchairAccessible)
	}
	t.Logf("✓ Ueno fixture: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
}

func TestFixtures_Tokyo(t *testing.T) {
	g := mustFixture(t, TokyoStationID)

	long := false
	for _, e := range g.Edges() {
		if e.DistanceMeters >= 500 {
			long = true
		}
	}
	if !long {
		t.Error("Tokyo fixture should model the long Keiyo passage")
	}
	t.Logf("✓ Tokyo fixture: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
}

func mustFixture(t *testing.T, stationID string) *Graph {
	t.Helper()
	g, err := Fixtures().StationGraph(t.Context(), stationID)
	if err != nil {
		t.Fatal(err)
	}
	if g == nil {
		t.Fatalf("no fixture for %s", stationID)
	}
	return g
}
