package gtfs

import (
	"archive/zip"
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/theoremus-urban-solutions/route-experience/interior"
	"github.com/theoremus-urban-solutions/route-experience/pain"
	"github.com/theoremus-urban-solutions/route-experience/profile"
	"github.com/theoremus-urban-solutions/route-experience/topology"
	"github.com/theoremus-urban-solutions/route-experience/tpi"
)

const testStops = "\ufeffstop_id,stop_name,location_type,parent_station,level_id,stop_lat,stop_lon\n" +
	"HUB,Hub Central,1,,,35.0,139.0\n" +
	"HUB_P1,Platform 1,0,HUB,L_B1,35.0,139.0\n" +
	"HUB_P2,Platform 2,0,HUB,L_B1,35.0001,139.0\n" +
	"HUB_GATE,Gate,3,HUB,L_G,,\n" +
	"HUB_EL_TOP,Elevator top,3,HUB,L_G,,\n" +
	"HUB_EL_BOT,Elevator bottom,3,HUB,L_B1,,\n" +
	"HUB_EXIT,North Exit,2,HUB,L_G,35.001,139.0\n" +
	"HUB_BA,Boarding area,4,HUB_P1,,,\n" +
	"OTHER,Other,1,,,36.0,140.0\n" +
	"OTHER_P,Other Platform,0,OTHER,,,\n"

const testLevels = "level_id,level_index,level_name\n" +
	"L_G,0,Ground\n" +
	"L_B1,-1,B1\n"

const testPathways = "pathway_id,from_stop_id,to_stop_id,pathway_mode,is_bidirectional,length,traversal_time,stair_count,max_slope,min_width,signposted_as\n" +
	"PW1,HUB_GATE,HUB_P1,2,1,12,20,-24,,0.9,To platforms\n" +
	"PW2,HUB_GATE,HUB_EL_TOP,1,1,30,,,,2.0,\n" +
	"PW3,HUB_EL_TOP,HUB_EL_BOT,5,1,,,,,,\n" +
	"PW4,HUB_EL_BOT,HUB_P1,1,1,10,8,,,,\n" +
	"PW5,HUB_P1,HUB_GATE,4,0,15,25,,,,\n" +
	"PW6,HUB_EXIT,HUB_GATE,6,1,5,5,,,,\n" +
	"PW7,HUB_P1,HUB_P2,1,1,,,,,,\n" +
	"PW8,HUB_P1,OTHER_P,1,1,1000,,,,,\n"

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testFeedZip(t *testing.T) []byte {
	return buildZip(t, map[string]string{
		"stops.txt":    testStops,
		"levels.txt":   testLevels,
		"pathways.txt": testPathways,
		"routes.txt":   "route_id\nR1\n",
	})
}

func loadTestIndex(t *testing.T) *PathwayIndex {
	t.Helper()
	x, err := NewPathwayIndexFromBytes(testFeedZip(t))
	if err != nil {
		t.Fatalf("Failed to load pathways: %v", err)
	}
	return x
}

func hubGraph(t *testing.T, x *PathwayIndex, id string) *topology.Graph {
	t.Helper()
	g, err := x.StationGraph(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if g == nil {
		t.Fatalf("no graph for %s", id)
	}
	return g
}

func TestPathwayIndex_Stations(t *testing.T) {
	x := loadTestIndex(t)

	ids := x.StationIDs()
	if len(ids) != 1 || ids[0] != "HUB" {
		t.Fatalf("StationIDs() = %v, want [HUB]", ids)
	}

	tests := []struct {
		id      string
		wantHub bool
	}{
		{"HUB", true},
		{"HUB_P2", true},
		{"HUB_BA", true},
		{"OTHER_P", false},
		{"OTHER", false},
		{"nope", false},
	}
	for _, tt := range tests {
		g, err := x.StationGraph(context.Background(), tt.id)
		if err != nil {
			t.Fatalf("%s: %v", tt.id, err)
		}
		if (g != nil) != tt.wantHub {
			t.Errorf("%s: graph present = %v, want %v", tt.id, g != nil, tt.wantHub)
		}
		if g != nil && g.StationID() != "HUB" {
			t.Errorf("%s: station = %s", tt.id, g.StationID())
		}
	}

	if x.StationFor("HUB_BA") != "HUB" || x.GetStopName("HUB_EXIT") != "North Exit" {
		t.Error("stop lookups")
	}
	t.Logf("✓ %d stations with pathways", len(ids))
}

func TestPathwayIndex_Nodes(t *testing.T) {
	g := hubGraph(t, loadTestIndex(t), "HUB")
	if g.Name() != "Hub Central" {
		t.Errorf("Name() = %q", g.Name())
	}
	if g.NodeCount() != 7 {
		t.Errorf("NodeCount() = %d, want 7", g.NodeCount())
	}

	tests := []struct {
		id    string
		typ   topology.NodeType
		level int
	}{
		{"HUB_P1", topology.NodePlatform, -1},
		{"HUB_BA", topology.NodePlatform, -1},
		{"HUB_GATE", topology.NodeTicketGate, 0},
		{"HUB_EL_TOP", topology.NodeElevatorHall, 0},
		{"HUB_EL_BOT", topology.NodeElevatorHall, -1},
		{"HUB_EXIT", topology.NodeExit, 0},
	}
	for _, tt := range tests {
		n, ok := g.Node(tt.id)
		if !ok {
			t.Errorf("missing node %s", tt.id)
			continue
		}
		if n.Type != tt.typ || n.Level != tt.level {
			t.Errorf("%s: type %s level %d, want %s %d", tt.id, n.Type, n.Level, tt.typ, tt.level)
		}
	}
	if n, _ := g.Node("HUB_P1"); n.Metadata["level"] != "B1" || n.Metadata["name"] != "Platform 1" {
		t.Errorf("metadata = %v", n.Metadata)
	}
}

func TestPathwayIndex_Edges(t *testing.T) {
	g := hubGraph(t, loadTestIndex(t), "HUB")
	if g.EdgeCount() != 13 {
		t.Fatalf("EdgeCount() = %d, want 13", g.EdgeCount())
	}

	edge := func(from, to string) topology.Edge {
		for _, e := range g.Outgoing(from) {
			if e.ToNodeID == to {
				return e
			}
		}
		t.Fatalf("no edge %s -> %s", from, to)
		return topology.Edge{}
	}

	stairs := edge("HUB_GATE", "HUB_P1")
	if stairs.Type != topology.EdgeStairs || !stairs.HasTag(topology.TagNarrow) || !stairs.HasTag(topology.TagClearSignage) {
		t.Errorf("stairs edge = %+v", stairs)
	}
	if stairs.ResistanceScore != 74 || stairs.WheelchairAccessible || stairs.StrollerAccessible {
		t.Errorf("stairs resistance %v accessible %v/%v", stairs.ResistanceScore, stairs.WheelchairAccessible, stairs.StrollerAccessible)
	}
	if stairs.WidthMeters == nil || *stairs.WidthMeters != 0.9 {
		t.Error("stairs width not kept")
	}
	var up *topology.Edge
	for _, e := range g.Outgoing("HUB_P1") {
		if e.Type == topology.EdgeEscalator && e.ToNodeID == "HUB_GATE" {
			up = &e
		}
	}
	if up == nil {
		t.Fatal("missing escalator HUB_P1 -> HUB_GATE")
	}
	if !up.HasTag(topology.TagEscalatorUpOnly) {
		t.Errorf("one-way upward escalator should be up-only: %+v", up.Tags)
	}
	for _, e := range g.Outgoing("HUB_GATE") {
		if e.Type == topology.EdgeEscalator {
			t.Error("one-way escalator must not get a reverse edge")
		}
	}

	lift := edge("HUB_EL_TOP", "HUB_EL_BOT")
	if lift.Type != topology.EdgeElevator || lift.DurationSeconds != 30 || !lift.WheelchairAccessible {
		t.Errorf("elevator edge = %+v", lift)
	}

	walk := edge("HUB_GATE", "HUB_EL_TOP")
	if math.Abs(walk.DurationSeconds-30/1.3) > 1e-9 {
		t.Errorf("walk duration = %v, want length / 1.3", walk.DurationSeconds)
	}

	platforms := edge("HUB_P1", "HUB_P2")
	if platforms.DistanceMeters < 10 || platforms.DistanceMeters > 12 {
		t.Errorf("distance from coordinates = %v, want about 11.1", platforms.DistanceMeters)
	}

	for _, e := range g.Edges() {
		if e.ToNodeID == "OTHER_P" || e.FromNodeID == "OTHER_P" {
			t.Error("cross-station pathway should be skipped")
		}
	}
}

func TestPathwayIndex_Scoring(t *testing.T) {
	g := hubGraph(t, loadTestIndex(t), "HUB")

	res := pain.Aggregate(g, profile.New("LUGGAGE"), false)
	// two narrow stairs edges at 20 each, plus the flat luggage surcharge
	if res.Score != 70 {
		t.Errorf("luggage pain = %v (%v), want 70", res.Score, res.Reasons)
	}

	p, ok := interior.ShortestPath(g, "HUB_EXIT", "HUB_P1", tpi.ProfileWeighting{Profile: profile.New("WHEELCHAIR")})
	if !ok {
		t.Fatal("wheelchair should reach the platform by elevator")
	}
	want := []string{"HUB_EXIT", "HUB_GATE", "HUB_EL_TOP", "HUB_EL_BOT", "HUB_P1"}
	if len(p.Nodes) != len(want) {
		t.Fatalf("path = %v, want %v", p.Nodes, want)
	}
	for i := range want {
		if p.Nodes[i] != want[i] {
			t.Errorf("path = %v, want %v", p.Nodes, want)
			break
		}
	}
}

func TestPathwayIndex_InvalidStation(t *testing.T) {
	x := NewPathwayIndex(Feed{
		Stops: []Stop{
			{ID: "S", LocationType: LocationStation},
			{ID: "S_P", ParentStation: "S"},
		},
		Pathways: []Pathway{{ID: "loop", FromStopID: "S_P", ToStopID: "S_P", Mode: PathwayWalkway}},
	})
	g, err := x.StationGraph(context.Background(), "S_P")
	if err == nil || g != nil {
		t.Fatalf("self-loop pathway should fail the station, got (%v, %v)", g, err)
	}
	if len(x.StationIDs()) != 0 {
		t.Error("failed station listed")
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := NewPathwayIndexFromBytes([]byte("not a zip")); err == nil {
		t.Error("invalid zip should fail")
	}

	broken := buildZip(t, map[string]string{
		"pathways.txt": "pathway_id,from_stop_id\nPW1,A\n",
	})
	if _, err := NewPathwayIndexFromBytes(broken); err == nil {
		t.Error("pathways without required columns should fail")
	}

	empty := buildZip(t, map[string]string{"agency.txt": "agency_id\nA\n"})
	x, err := NewPathwayIndexFromBytes(empty)
	if err != nil {
		t.Fatal(err)
	}
	if len(x.StationIDs()) != 0 {
		t.Error("feed without pathways has no stations")
	}

	if _, err := NewPathwayIndexFromFile(filepath.Join(t.TempDir(), "absent.zip")); err == nil {
		t.Error("missing zip file should fail")
	}
}

func TestLoad_FileAndCache(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "gtfs.zip")
	if err := os.WriteFile(zipPath, testFeedZip(t), 0644); err != nil {
		t.Fatal(err)
	}

	x, err := NewPathwayIndexFromFile(zipPath)
	if err != nil {
		t.Fatal(err)
	}

	cachePath := filepath.Join(dir, "pathways.gob")
	if err := SerializeIndexToFile(x, cachePath); err != nil {
		t.Fatal(err)
	}
	cached, err := DeserializeIndexFromFile(cachePath)
	if err != nil {
		t.Fatal(err)
	}

	orig := hubGraph(t, x, "HUB")
	again := hubGraph(t, cached, "HUB")
	if orig.EdgeCount() != again.EdgeCount() || orig.NodeCount() != again.NodeCount() {
		t.Errorf("cached index differs: %d/%d edges", orig.EdgeCount(), again.EdgeCount())
	}

	if _, err := DeserializeIndexFromFile(filepath.Join(dir, "missing.gob")); err == nil {
		t.Error("missing cache should fail")
	}
	t.Log("✓ gob cache rebuilds the same graphs")
}
