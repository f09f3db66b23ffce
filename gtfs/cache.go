package gtfs

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
)

// SerializeIndexToWriter writes the parsed feed records with gob. Graphs are
// rebuilt on load, so the cache stays valid across graph-building changes.
func SerializeIndexToWriter(index *PathwayIndex, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(index.feed); err != nil {
		return fmt.Errorf("failed to encode pathway feed: %w", err)
	}
	return nil
}

// DeserializeIndexFromReader reads records written by SerializeIndexToWriter
// and rebuilds the index.
func DeserializeIndexFromReader(r io.Reader) (*PathwayIndex, error) {
	var feed Feed
	if err := gob.NewDecoder(r).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode pathway feed: %w", err)
	}
	return NewPathwayIndex(feed), nil
}

// SerializeIndexToFile writes the index cache to path.
//
// Example:
//
//	index, _ := gtfs.NewPathwayIndexFromFile("gtfs.zip")
//	if err := gtfs.SerializeIndexToFile(index, "/cache/pathways.gob"); err != nil {
//	    // handle error
//	}
func SerializeIndexToFile(index *PathwayIndex, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	if err := SerializeIndexToWriter(index, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// DeserializeIndexFromFile loads an index cache written by SerializeIndexToFile.
func DeserializeIndexFromFile(path string) (*PathwayIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	defer f.Close()
	return DeserializeIndexFromReader(f)
}
