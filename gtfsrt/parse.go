package gtfsrt

import (
	"fmt"
	"regexp"
	"strings"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

const effectAccessibilityIssue = "ACCESSIBILITY_ISSUE"

// English words must stand alone so "uplift" or "shoplifting" do not count.
var (
	elevatorWords  = regexp.MustCompile(`(?i)\b(?:elevators?|lifts?)\b|エレベーター|電梯|升降機`)
	escalatorWords = regexp.MustCompile(`(?i)\bescalators?\b|エスカレーター|手扶梯`)
)

// ParseOutages decodes a GTFS-RT FeedMessage and keeps the vertical transport
// outages. Deleted entities and alerts without stops are skipped.
func ParseOutages(data []byte) (*Snapshot, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("decode alerts feed: %w", err)
	}

	snap := &Snapshot{Timestamp: int64(fm.GetHeader().GetTimestamp())}
	for _, e := range fm.GetEntity() {
		a := e.GetAlert()
		if a == nil || e.GetIsDeleted() {
			continue
		}
		o := Outage{
			AlertID:     e.GetId(),
			Header:      translatedText(a.GetHeaderText()),
			Description: translatedText(a.GetDescriptionText()),
		}
		if a.Effect != nil {
			o.Effect = a.GetEffect().String()
		}

		text := allTranslations(a.GetHeaderText()) + " " + allTranslations(a.GetDescriptionText())
		o.Elevator = elevatorWords.MatchString(text)
		o.Escalator = escalatorWords.MatchString(text)
		if o.Effect == effectAccessibilityIssue && !o.Elevator && !o.Escalator {
			o.Elevator = true
		}
		if !o.Elevator && !o.Escalator {
			continue
		}

		for _, ie := range a.GetInformedEntity() {
			if sid := ie.GetStopId(); sid != "" {
				o.StopIDs = append(o.StopIDs, sid)
			}
		}
		if len(o.StopIDs) == 0 {
			continue
		}
		for _, ap := range a.GetActivePeriod() {
			o.Periods = append(o.Periods, Period{Start: int64(ap.GetStart()), End: int64(ap.GetEnd())})
		}
		snap.Outages = append(snap.Outages, o)
	}
	return snap, nil
}

// translatedText prefers the untagged or English translation
func translatedText(ts *gtfsrtpb.TranslatedString) string {
	var first string
	for _, tr := range ts.GetTranslation() {
		lang := tr.GetLanguage()
		if lang == "" || strings.HasPrefix(strings.ToLower(lang), "en") {
			return tr.GetText()
		}
		if first == "" {
			first = tr.GetText()
		}
	}
	return first
}

func allTranslations(ts *gtfsrtpb.TranslatedString) string {
	parts := make([]string, 0, len(ts.GetTranslation()))
	for _, tr := range ts.GetTranslation() {
		parts = append(parts, tr.GetText())
	}
	return strings.Join(parts, " ")
}
