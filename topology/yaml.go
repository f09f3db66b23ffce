package topology

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// graphFile is the on-disk layout of one station
type graphFile struct {
	StationID string `yaml:"stationId"`
	Name      string `yaml:"name"`
	Nodes     []Node `yaml:"nodes"`
	Edges     []Edge `yaml:"edges"`
}

// DecodeGraphYAML reads a single station document.
func DecodeGraphYAML(r io.Reader) (*Graph, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc graphFile
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidGraph)
		}
		return nil, fmt.Errorf("decode station yaml: %w", err)
	}
	return NewGraph(doc.StationID, doc.Name, doc.Nodes, doc.Edges)
}

// LoadDir reads every *.yml and *.yaml file in dir into a StaticProvider.
// Any unreadable or invalid file fails the whole load.
func LoadDir(dir string) (*StaticProvider, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read topology dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yml" || ext == ".yaml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	graphs := make([]*Graph, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		g, err := DecodeGraphYAML(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		graphs = append(graphs, g)
	}
	return NewStaticProvider(graphs...)
}
