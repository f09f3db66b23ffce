// Package route defines the route options exchanged with the path-search
// service and the fields the scoring engine adds to them.
package route

// StepKind classifies one step of an itinerary
type StepKind string

const (
	StepOrigin      StepKind = "origin"
	StepDestination StepKind = "destination"
	StepTrain       StepKind = "train"
	StepTransfer    StepKind = "transfer"
	StepWalk        StepKind = "walk"
	StepWait        StepKind = "wait"
	StepInfo        StepKind = "info"
)

// Step is one instruction of a route, e.g. "Take Yamanote: Tokyo → Ueno".
type Step struct {
	Kind      StepKind `json:"kind"`
	Text      string   `json:"text"`
	Note      string   `json:"note,omitempty"`
	Icon      string   `json:"icon,omitempty"`
	StationID string   `json:"stationId,omitempty"`
	RailwayID string   `json:"railwayId,omitempty"`
}

// Fare in yen for IC card and paper ticket
type Fare struct {
	IC     int `json:"ic"`
	Ticket int `json:"ticket"`
}

// Source records where a route came from
type Source struct {
	Type     string `json:"type"`
	Verified bool   `json:"verified"`
}

// InsightType is the polarity of an insight
type InsightType string

const (
	InsightPro     InsightType = "pro"
	InsightCon     InsightType = "con"
	InsightWarning InsightType = "warning"
)

// Insight is a short localized remark attached to a scored route.
type Insight struct {
	Type InsightType `json:"type"`
	Key  string      `json:"key"`
	Text string      `json:"text"`
	Icon string      `json:"icon,omitempty"`
}

// TransferPain is the pain contribution of one covered transfer
type TransferPain struct {
	StationID string   `json:"stationId"`
	Station   string   `json:"station"`
	Score     float64  `json:"score"`
	Reasons   []string `json:"notes"`
}

// PainDebug explains how a route's pain total was reached.
type PainDebug struct {
	Score     float64        `json:"score"`
	Transfers []TransferPain `json:"transfers"`
}

// Option is one candidate itinerary.
//
// Label through NextDeparture come from the caller and are never rewritten.
// Score, PainDebug and Insights are filled in by the synthesizer.
type Option struct {
	Label         string   `json:"label"`
	Steps         []Step   `json:"steps"`
	Sources       []Source `json:"sources,omitempty"`
	Railways      []string `json:"railways,omitempty"`
	Duration      int      `json:"duration"`
	Transfers     int      `json:"transfers"`
	Fare          *Fare    `json:"fare,omitempty"`
	NextDeparture string   `json:"nextDeparture,omitempty"`

	Score     float64    `json:"score"`
	PainDebug *PainDebug `json:"painDebug,omitempty"`
	Insights  []Insight  `json:"insights,omitempty"`
}

// Clone returns a deep copy of o
func (o Option) Clone() Option {
	out := o
	if o.Steps != nil {
		out.Steps = append([]Step(nil), o.Steps...)
	}
	if o.Sources != nil {
		out.Sources = append([]Source(nil), o.Sources...)
	}
	if o.Railways != nil {
		out.Railways = append([]string(nil), o.Railways...)
	}
	if o.Fare != nil {
		f := *o.Fare
		out.Fare = &f
	}
	if o.PainDebug != nil {
		pd := PainDebug{Score: o.PainDebug.Score}
		if o.PainDebug.Transfers != nil {
			pd.Transfers = make([]TransferPain, 0, len(o.PainDebug.Transfers))
		}
		for _, tp := range o.PainDebug.Transfers {
			tp.Reasons = append([]string(nil), tp.Reasons...)
			pd.Transfers = append(pd.Transfers, tp)
		}
		out.PainDebug = &pd
	}
	if o.Insights != nil {
		out.Insights = append([]Insight(nil), o.Insights...)
	}
	return out
}
