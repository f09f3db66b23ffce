package synth

import (
	"regexp"
	"strings"

	"github.com/theoremus-urban-solutions/route-experience/route"
	"github.com/theoremus-urban-solutions/route-experience/topology"
)

// Coverage describes one station the resolver can recognize.
type Coverage struct {
	StationID string
	Name      string
	// Names holds display names keyed by locale tag ("ja", "zh-TW").
	Names map[string]string
	// IDPattern is matched against step station ids.
	IDPattern *regexp.Regexp
	// TextPattern is matched against step text after Ignore matches are removed.
	TextPattern *regexp.Regexp
	Ignore      *regexp.Regexp
}

// DefaultCoverage recognizes the bundled reference hubs.
func DefaultCoverage() []Coverage {
	return []Coverage{
		{
			StationID:   topology.UenoStationID,
			Name:        "Ueno",
			Names:       map[string]string{"ja": "上野", "zh-TW": "上野"},
			IDPattern:   regexp.MustCompile(`Ueno`),
			TextPattern: regexp.MustCompile(`(?i)Ueno|上野`),
		},
		{
			StationID:   topology.TokyoStationID,
			Name:        "Tokyo",
			Names:       map[string]string{"ja": "東京", "zh-TW": "東京"},
			IDPattern:   regexp.MustCompile(`\.Tokyo$`),
			TextPattern: regexp.MustCompile(`(?i)\bTokyo\b|東京`),
			Ignore:      regexp.MustCompile(`(?i)Tokyo\s*Metro|東京メトロ|Tokyo\s*Monorail|東京モノレール`),
		},
	}
}

// Match is a resolved transfer station.
type Match struct {
	StationID string
	Name      string
	Names     map[string]string
}

// DisplayName returns the name for a matched locale tag, then Name.
func (m Match) DisplayName(tag string) string {
	if n, ok := m.Names[tag]; ok && n != "" {
		return n
	}
	return m.Name
}

// Resolver maps a train → transfer → train window to a station.
type Resolver struct {
	coverage []Coverage
}

// NewResolver keeps coverage order; earlier entries win.
func NewResolver(coverage []Coverage) *Resolver {
	return &Resolver{coverage: append([]Coverage(nil), coverage...)}
}

const arrow = "→"

// Resolve looks at the transfer step, then the arriving train, then the
// departing train. Train texts of the form "A → B" are narrowed to the side
// touching the transfer. A transfer step that carries a station id nobody
// covers still resolves to that id so providers can look it up.
func (r *Resolver) Resolve(prev, transfer, next route.Step) (Match, bool) {
	candidates := []struct {
		id   string
		text string
	}{
		{transfer.StationID, transfer.Text},
		{prev.StationID, arrivingSide(prev.Text)},
		{next.StationID, departingSide(next.Text)},
	}
	for _, c := range candidates {
		for i := range r.coverage {
			if r.coverage[i].matches(c.id, c.text) {
				return r.coverage[i].match(), true
			}
		}
	}
	if id := strings.TrimSpace(transfer.StationID); id != "" {
		return Match{StationID: id}, true
	}
	return Match{}, false
}

func (c *Coverage) matches(id, text string) bool {
	if id != "" && c.IDPattern != nil && c.IDPattern.MatchString(id) {
		return true
	}
	if text == "" || c.TextPattern == nil {
		return false
	}
	if c.Ignore != nil {
		text = c.Ignore.ReplaceAllString(text, "")
	}
	return c.TextPattern.MatchString(text)
}

func (c *Coverage) match() Match {
	m := Match{StationID: c.StationID, Name: c.Name}
	if len(c.Names) > 0 {
		m.Names = make(map[string]string, len(c.Names))
		for k, v := range c.Names {
			m.Names[k] = v
		}
	}
	return m
}

// arrivingSide keeps the text after the last arrow
func arrivingSide(text string) string {
	if i := strings.LastIndex(text, arrow); i >= 0 {
		return text[i+len(arrow):]
	}
	return text
}

// departingSide keeps the text before the first arrow
func departingSide(text string) string {
	if i := strings.Index(text, arrow); i >= 0 {
		return text[:i]
	}
	return text
}

// TransferEvent is a resolved train → transfer → train window.
type TransferEvent struct {
	Index int
	Match Match
}

// ScanTransfers finds the resolvable transfer events of one route in step order.
func ScanTransfers(steps []route.Step, r *Resolver) []TransferEvent {
	var events []TransferEvent
	for i := 1; i+1 < len(steps); i++ {
		if steps[i].Kind != route.StepTransfer {
			continue
		}
		if steps[i-1].Kind != route.StepTrain || steps[i+1].Kind != route.StepTrain {
			continue
		}
		if m, ok := r.Resolve(steps[i-1], steps[i], steps[i+1]); ok {
			events = append(events, TransferEvent{Index: i, Match: m})
		}
	}
	return events
}
