package route

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func sampleOption() Option {
	return Option{
		Label: "Via Ueno",
		Steps: []Step{
			{Kind: StepTrain, Text: "Take Yamanote: Tokyo → Ueno"},
			{Kind: StepTransfer, Text: "Transfer", StationID: "odpt.Station:JR-East.Yamanote.Ueno"},
			{Kind: StepTrain, Text: "Take Ginza: Ueno → Asakusa"},
		},
		Railways:  []string{"odpt.Railway:JR-East.Yamanote"},
		Duration:  18,
		Transfers: 1,
		Fare:      &Fare{IC: 178, Ticket: 180},
		PainDebug: &PainDebug{Score: 50, Transfers: []TransferPain{{Station: "Ueno", Score: 50, Reasons: []string{"Narrow Corridor"}}}},
		Insights:  []Insight{{Type: InsightWarning, Key: "stairs_warning", Text: "Contains Stairs"}},
	}
}

func TestClone_Deep(t *testing.T) {
	orig := sampleOption()
	c := orig.Clone()
	if !reflect.DeepEqual(orig, c) {
		t.Fatal("clone differs from original")
	}

	c.Steps[0].Text = "changed"
	c.Fare.IC = 0
	c.Railways[0] = "changed"
	c.PainDebug.Transfers[0].Reasons[0] = "changed"
	c.Insights[0].Text = "changed"

	if !reflect.DeepEqual(orig, sampleOption()) {
		t.Error("mutating the clone changed the original")
	}
	t.Log("✓ Clone shares no mutable state")
}

func TestOption_JSON(t *testing.T) {
	data, err := json.Marshal(sampleOption())
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, key := range []string{`"score":`, `"painDebug":`, `"insights":`, `"kind":"transfer"`, `"ic":178`} {
		if !strings.Contains(s, key) {
			t.Errorf("json missing %s: %s", key, s)
		}
	}
}
