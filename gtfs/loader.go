package gtfs

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// NewPathwayIndexFromBytes parses a GTFS zip held in memory.
func NewPathwayIndexFromBytes(data []byte) (*PathwayIndex, error) {
	return NewPathwayIndexFromReader(bytes.NewReader(data), int64(len(data)))
}

// NewPathwayIndexFromReader parses a GTFS zip from any random-access source.
func NewPathwayIndexFromReader(r io.ReaderAt, size int64) (*PathwayIndex, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open gtfs zip: %w", err)
	}
	feed, err := readFeed(zr.File)
	if err != nil {
		return nil, err
	}
	return NewPathwayIndex(feed), nil
}

// NewPathwayIndexFromFile opens a local GTFS zip file.
func NewPathwayIndexFromFile(path string) (*PathwayIndex, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open gtfs zip: %w", err)
	}
	defer zr.Close()
	feed, err := readFeed(zr.File)
	if err != nil {
		return nil, err
	}
	return NewPathwayIndex(feed), nil
}

func readFeed(files []*zip.File) (Feed, error) {
	var feed Feed
	for _, f := range files {
		name := strings.ToLower(f.Name)
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		if name == "stops.txt" || name == "pathways.txt" || name == "levels.txt" {
			if err := consumeCSV(&feed, name, f); err != nil {
				return Feed{}, fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return feed, nil
}

func consumeCSV(feed *Feed, name string, f *zip.File) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	rec, err := csvr.ReadAll()
	if err != nil {
		return err
	}
	if len(rec) == 0 {
		return nil
	}
	head := rec[0]
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], "\ufeff")
	}
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	get := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	switch name {
	case "stops.txt":
		sID := idx("stop_id")
		sN := idx("stop_name")
		lt := idx("location_type")
		ps := idx("parent_station")
		lvl := idx("level_id")
		sLat := idx("stop_lat")
		sLon := idx("stop_lon")
		if sID < 0 {
			return fmt.Errorf("missing stop_id column")
		}
		for _, row := range rec[1:] {
			s := Stop{
				ID:            get(row, sID),
				Name:          get(row, sN),
				LocationType:  atoi(get(row, lt)),
				ParentStation: get(row, ps),
				LevelID:       get(row, lvl),
			}
			if s.ID == "" {
				continue
			}
			lat, errLat := strconv.ParseFloat(get(row, sLat), 64)
			lon, errLon := strconv.ParseFloat(get(row, sLon), 64)
			if errLat == nil && errLon == nil {
				s.Lat, s.Lon, s.HasCoord = lat, lon, true
			}
			feed.Stops = append(feed.Stops, s)
		}
	case "pathways.txt":
		pID := idx("pathway_id")
		from := idx("from_stop_id")
		to := idx("to_stop_id")
		mode := idx("pathway_mode")
		bidi := idx("is_bidirectional")
		length := idx("length")
		tt := idx("traversal_time")
		stairs := idx("stair_count")
		slope := idx("max_slope")
		width := idx("min_width")
		sign := idx("signposted_as")
		if from < 0 || to < 0 || mode < 0 {
			return fmt.Errorf("missing from_stop_id, to_stop_id or pathway_mode column")
		}
		for _, row := range rec[1:] {
			p := Pathway{
				ID:            get(row, pID),
				FromStopID:    get(row, from),
				ToStopID:      get(row, to),
				Mode:          atoi(get(row, mode)),
				Bidirectional: get(row, bidi) == "1",
				Length:        atof(get(row, length)),
				TraversalTime: atof(get(row, tt)),
				StairCount:    atoi(get(row, stairs)),
				MaxSlope:      atof(get(row, slope)),
				MinWidth:      atof(get(row, width)),
				SignpostedAs:  get(row, sign),
			}
			if p.FromStopID == "" || p.ToStopID == "" {
				continue
			}
			feed.Pathways = append(feed.Pathways, p)
		}
	case "levels.txt":
		lID := idx("level_id")
		li := idx("level_index")
		ln := idx("level_name")
		for _, row := range rec[1:] {
			l := Level{ID: get(row, lID), Index: atof(get(row, li)), Name: get(row, ln)}
			if l.ID != "" {
				feed.Levels = append(feed.Levels, l)
			}
		}
	}
	return nil
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func atof(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
