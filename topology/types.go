package topology

import "strings"

// NodeType classifies a point inside a station
type NodeType string

const (
	NodePlatform     NodeType = "platform"
	NodeTicketGate   NodeType = "ticket_gate"
	NodeExit         NodeType = "exit"
	NodePOI          NodeType = "poi"
	NodeRestroom     NodeType = "restroom"
	NodeElevatorHall NodeType = "elevator_hall"
)

// EdgeType is the physical way an edge is traversed
type EdgeType string

const (
	EdgeWalk      EdgeType = "walk"
	EdgeStairs    EdgeType = "stairs"
	EdgeEscalator EdgeType = "escalator"
	EdgeElevator  EdgeType = "elevator"
	EdgeSlope     EdgeType = "slope"
)

// Node is a typed point of the station interior.
type Node struct {
	ID        string            `json:"id" yaml:"id" validate:"required"`
	StationID string            `json:"stationId" yaml:"stationId"`
	Type      NodeType          `json:"type" yaml:"type" validate:"oneof=platform ticket_gate exit poi restroom elevator_hall"`
	Level     int               `json:"level" yaml:"level"`
	Tags      []string          `json:"tags,omitempty" yaml:"tags"`
	Metadata  map[string]string `json:"metadata,omitempty" yaml:"metadata"`
}

// HasTag reports whether the node carries the given semantic label
func (n Node) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Edge is a directed connection between two nodes of the same station.
//
// ResistanceScore is a profile-independent difficulty baseline set by the data
// curator. DurationSeconds is the neutral walking pace.
type Edge struct {
	FromNodeID           string   `json:"fromNodeId" yaml:"from" validate:"required"`
	ToNodeID             string   `json:"toNodeId" yaml:"to" validate:"required,nefield=FromNodeID"`
	Type                 EdgeType `json:"type" yaml:"type" validate:"oneof=walk stairs escalator elevator slope"`
	DistanceMeters       float64  `json:"distanceMeters" yaml:"distanceMeters" validate:"gte=0"`
	DurationSeconds      float64  `json:"durationSeconds" yaml:"durationSeconds" validate:"gte=0"`
	Tags                 []Tag    `json:"tags,omitempty" yaml:"tags"`
	ResistanceScore      float64  `json:"resistanceScore" yaml:"resistanceScore" validate:"gte=0,lte=100"`
	WheelchairAccessible bool     `json:"isWheelchairAccessible" yaml:"wheelchairAccessible"`
	StrollerAccessible   bool     `json:"isStrollerAccessible" yaml:"strollerAccessible"`
	WidthMeters          *float64 `json:"widthMeters,omitempty" yaml:"widthMeters" validate:"omitempty,gt=0"`
}

// HasTag reports whether one of the edge tags is of the given kind.
func (e Edge) HasTag(kind TagKind) bool {
	if kind == TagUnknown {
		return false
	}
	for _, t := range e.Tags {
		if t.Kind == kind {
			return true
		}
	}
	return false
}

// Is reports whether the edge has the feature either as a tag or, for the
// vertical transport kinds, as its edge type.
func (e Edge) Is(kind TagKind) bool {
	switch kind {
	case TagStairs:
		if e.Type == EdgeStairs {
			return true
		}
	case TagEscalator:
		if e.Type == EdgeEscalator {
			return true
		}
	case TagElevator:
		if e.Type == EdgeElevator {
			return true
		}
	}
	return e.HasTag(kind)
}

// clone returns a copy that shares nothing mutable with e
func (e Edge) clone() Edge {
	out := e
	if e.Tags != nil {
		out.Tags = append([]Tag(nil), e.Tags...)
	}
	if e.WidthMeters != nil {
		w := *e.WidthMeters
		out.WidthMeters = &w
	}
	return out
}

func (n Node) clone() Node {
	out := n
	if n.Tags != nil {
		out.Tags = append([]string(nil), n.Tags...)
	}
	if n.Metadata != nil {
		out.Metadata = make(map[string]string, len(n.Metadata))
		for k, v := range n.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// TagKind is the closed set of resistance and context labels the cost models
// understand. Anything else is TagUnknown.
type TagKind uint8

const (
	TagUnknown TagKind = iota
	TagStairs
	TagNarrow
	TagCrowded
	TagCrowdedPeak
	TagClearSignage
	TagModernFloor
	TagElevator
	TagEscalator
	TagEscalatorUpOnly
	TagElevatorOutage
)

var tagNames = map[TagKind]string{
	TagStairs:          "stairs",
	TagNarrow:          "NARROW",
	TagCrowded:         "crowded",
	TagCrowdedPeak:     "CROWDED_PEAK",
	TagClearSignage:    "CLEAR_SIGNAGE",
	TagModernFloor:     "MODERN_FLOOR",
	TagElevator:        "elevator",
	TagEscalator:       "escalator",
	TagEscalatorUpOnly: "escalator_up_only",
	TagElevatorOutage:  "OUT_OF_SERVICE",
}

var tagKinds = func() map[string]TagKind {
	m := make(map[string]TagKind, len(tagNames))
	for k, name := range tagNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

func (k TagKind) String() string {
	if name, ok := tagNames[k]; ok {
		return name
	}
	return "unknown"
}

// Tag is one edge label: a known variant, or TagUnknown with the raw text kept.
type Tag struct {
	Kind TagKind
	Raw  string
}

// ParseTag maps a free-form label to its variant. Matching ignores case and
// surrounding whitespace; it never fails.
func ParseTag(s string) Tag {
	raw := strings.TrimSpace(s)
	if k, ok := tagKinds[strings.ToLower(raw)]; ok {
		return Tag{Kind: k, Raw: raw}
	}
	return Tag{Kind: TagUnknown, Raw: raw}
}

// Tags parses a list of labels
func Tags(labels ...string) []Tag {
	out := make([]Tag, 0, len(labels))
	for _, l := range labels {
		out = append(out, ParseTag(l))
	}
	return out
}

func (t Tag) String() string {
	if t.Raw != "" {
		return t.Raw
	}
	return t.Kind.String()
}

// MarshalText keeps the label as the curator wrote it.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText lets yaml and json decode plain strings into tags.
func (t *Tag) UnmarshalText(text []byte) error {
	*t = ParseTag(string(text))
	return nil
}
