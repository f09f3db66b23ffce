package topology

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

// Station ids of the bundled reference hubs
const (
	UenoStationID  = "odpt.Station:JR-East.Yamanote.Ueno"
	TokyoStationID = "odpt.Station:JR-East.Tokaido.Tokyo"
)

//go:embed fixtures/*.yml
var fixtureFS embed.FS

// Fixtures returns the bundled hub graphs. The embedded files are part of the
// binary, so a decode failure is a build defect and panics.
func Fixtures() *StaticProvider {
	p, err := loadFS(fixtureFS, "fixtures")
	if err != nil {
		panic(fmt.Sprintf("topology: bundled fixtures: %v", err))
	}
	return p
}

func loadFS(fsys fs.FS, dir string) (*StaticProvider, error) {
	names, err := fs.Glob(fsys, dir+"/*.yml")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	graphs := make([]*Graph, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
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
