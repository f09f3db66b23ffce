package gtfsrt

import "time"

// Period is an alert activity window in epoch seconds. Zero bounds are open.
type Period struct {
	Start int64
	End   int64
}

// Outage is one alert reporting broken vertical transport
type Outage struct {
	AlertID     string
	Header      string
	Description string
	Effect      string
	Elevator    bool
	Escalator   bool
	StopIDs     []string
	Periods     []Period
}

// Active reports whether the outage applies at t. An outage without periods
// is always active.
func (o Outage) Active(t time.Time) bool {
	if len(o.Periods) == 0 {
		return true
	}
	now := t.Unix()
	for _, p := range o.Periods {
		if (p.Start == 0 || now >= p.Start) && (p.End == 0 || now < p.End) {
			return true
		}
	}
	return false
}

// Snapshot is the parsed content of one alerts feed.
type Snapshot struct {
	Timestamp int64
	Outages   []Outage
}

// ForStop returns the outages naming stopID that are active at t
func (s *Snapshot) ForStop(stopID string, t time.Time) []Outage {
	if s == nil {
		return nil
	}
	var out []Outage
	for _, o := range s.Outages {
		if !o.Active(t) {
			continue
		}
		for _, id := range o.StopIDs {
			if id == stopID {
				out = append(out, o)
				break
			}
		}
	}
	return out
}
