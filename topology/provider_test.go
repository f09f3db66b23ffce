package topology

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const miniStation = `stationId: test.Station:Mini
name: Mini
nodes:
  - id: Mini.Platform
    type: platform
    level: 0
  - id: Mini.Exit
    type: exit
    level: 0
edges:
  - from: Mini.Platform
    to: Mini.Exit
    type: walk
    distanceMeters: 40
    durationSeconds: 30
    tags: [flat, narrow]
    resistanceScore: 12
    wheelchairAccessible: true
    strollerAccessible: true
`

func TestDecodeGraphYAML(t *testing.T) {
	g, err := DecodeGraphYAML(strings.NewReader(miniStation))
	if err != nil {
		t.Fatal(err)
	}
	e := g.Edges()[0]
	if !e.HasTag(TagNarrow) {
		t.Error("lowercase narrow should parse to TagNarrow")
	}
	if e.Tags[0].Kind != TagUnknown || e.Tags[0].Raw != "flat" {
		t.Errorf("unknown tag not preserved: %+v", e.Tags[0])
	}

	_, err = DecodeGraphYAML(strings.NewReader(""))
	if !errors.Is(err, ErrInvalidGraph) {
		t.Errorf("empty document: got %v", err)
	}

	_, err = DecodeGraphYAML(strings.NewReader("stationId: x\nbogus: 1\n"))
	if err == nil {
		t.Error("unknown field should be rejected")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mini.yaml"), []byte(miniStation), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	ids := p.StationIDs()
	if len(ids) != 1 || ids[0] != "test.Station:Mini" {
		t.Fatalf("StationIDs() = %v", ids)
	}

	bad := filepath.Join(dir, "broken.yml")
	if err := os.WriteFile(bad, []byte("stationId: ''\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDir(dir); err == nil {
		t.Error("invalid file should fail the load")
	}

	if _, err := LoadDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("missing dir should fail")
	}
	t.Log("✓ LoadDir reads yaml files and rejects broken ones")
}

func TestStaticProvider(t *testing.T) {
	p := Fixtures()
	g, err := p.StationGraph(context.Background(), "odpt.Station:Nowhere")
	if g != nil || err != nil {
		t.Errorf("unmodeled station: got (%v, %v), want (nil, nil)", g, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.StationGraph(ctx, UenoStationID); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled ctx: got %v", err)
	}

	ueno, _ := p.StationGraph(context.Background(), UenoStationID)
	if _, err := NewStaticProvider(ueno, ueno); err == nil {
		t.Error("duplicate station should be rejected")
	}
}

func TestChain(t *testing.T) {
	boom := errors.New("boom")
	failing := ProviderFunc(func(ctx context.Context, id string) (*Graph, error) {
		return nil, boom
	})

	tests := []struct {
		name    string
		chain   Provider
		station string
		wantNil bool
		wantErr error
	}{
		{"fixture after failure", Chain(failing, Fixtures()), UenoStationID, false, nil},
		{"nil links skipped", Chain(nil, Fixtures()), TokyoStationID, false, nil},
		{"miss everywhere", Chain(Fixtures()), "x", true, nil},
		{"only failure", Chain(failing, Fixtures()), "x", true, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := tt.chain.StationGraph(context.Background(), tt.station)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (g == nil) != tt.wantNil {
				t.Errorf("graph nil = %v, want %v", g == nil, tt.wantNil)
			}
		})
	}
}

func TestCachedProvider(t *testing.T) {
	calls := 0
	fail := true
	inner := ProviderFunc(func(ctx context.Context, id string) (*Graph, error) {
		calls++
		if fail {
			return nil, errors.New("transient")
		}
		return Fixtures().StationGraph(ctx, id)
	})
	c := NewCachedProvider(inner, 4, 0)
	ctx := context.Background()

	if _, err := c.StationGraph(ctx, UenoStationID); err == nil {
		t.Fatal("expected inner error")
	}
	fail = false
	for i := 0; i < 3; i++ {
		g, err := c.StationGraph(ctx, UenoStationID)
		if err != nil || g == nil {
			t.Fatalf("lookup %d: (%v, %v)", i, g, err)
		}
	}
	if calls != 2 {
		t.Errorf("inner calls = %d, want 2 (errors are not cached)", calls)
	}

	for i := 0; i < 2; i++ {
		if g, _ := c.StationGraph(ctx, "missing"); g != nil {
			t.Fatal("expected miss")
		}
	}
	if calls != 3 {
		t.Errorf("inner calls = %d, want 3 (misses are cached)", calls)
	}

	c.Purge()
	_, _ = c.StationGraph(ctx, UenoStationID)
	if calls != 4 {
		t.Errorf("inner calls after purge = %d, want 4", calls)
	}
	t.Logf("✓ cache hit/miss accounting: %d inner calls", calls)
}
