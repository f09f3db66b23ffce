// Package profile holds the traveler capability set consumed by the cost models.
package profile

import (
	"sort"
	"strings"
)

// Capability is a situational need of the traveler
type Capability string

const (
	Wheelchair Capability = "WHEELCHAIR"
	Stroller   Capability = "STROLLER"
	Luggage    Capability = "LUGGAGE"
	// CrowdHi marks a traveler who wants to avoid crowded transfers.
	CrowdHi Capability = "CROWD_HI"
)

var known = map[Capability]bool{
	Wheelchair: true,
	Stroller:   true,
	Luggage:    true,
	CrowdHi:    true,
}

// Profile is a read-only set of capabilities. The zero value has none.
type Profile struct {
	caps map[Capability]struct{}
}

// New builds a profile from capability labels. Labels are matched without
// regard to case; unknown labels are dropped.
func New(labels ...string) Profile {
	p := Profile{caps: make(map[Capability]struct{}, len(labels))}
	for _, l := range labels {
		c := Capability(strings.ToUpper(strings.TrimSpace(l)))
		if known[c] {
			p.caps[c] = struct{}{}
		}
	}
	return p
}

// Parse reads a comma separated capability list such as "luggage,crowd_hi".
func Parse(csv string) Profile {
	if strings.TrimSpace(csv) == "" {
		return Profile{}
	}
	return New(strings.Split(csv, ",")...)
}

func (p Profile) Has(c Capability) bool {
	_, ok := p.caps[c]
	return ok
}

func (p Profile) Empty() bool { return len(p.caps) == 0 }

// Capabilities lists the set in sorted order
func (p Profile) Capabilities() []Capability {
	out := make([]Capability, 0, len(p.caps))
	for c := range p.caps {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (p Profile) String() string {
	caps := p.Capabilities()
	parts := make([]string, len(caps))
	for i, c := range caps {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}
