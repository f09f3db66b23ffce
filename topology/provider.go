package topology

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Provider supplies station graphs by station id.
//
// A nil graph with a nil error means the station has no modeled interior.
// Errors are provider faults (I/O, decoding); callers in the scoring path turn
// them into "no graph" as well.
type Provider interface {
	StationGraph(ctx context.Context, stationID string) (*Graph, error)
}

// ProviderFunc adapts a function to Provider
type ProviderFunc func(ctx context.Context, stationID string) (*Graph, error)

func (f ProviderFunc) StationGraph(ctx context.Context, stationID string) (*Graph, error) {
	return f(ctx, stationID)
}

// StaticProvider serves a fixed set of graphs from memory.
type StaticProvider struct {
	graphs map[string]*Graph
}

// NewStaticProvider indexes graphs by station id. Two graphs for the same
// station are rejected.
func NewStaticProvider(graphs ...*Graph) (*StaticProvider, error) {
	p := &StaticProvider{graphs: make(map[string]*Graph, len(graphs))}
	for _, g := range graphs {
		if g == nil {
			continue
		}
		if _, dup := p.graphs[g.StationID()]; dup {
			return nil, fmt.Errorf("duplicate graph for station %q", g.StationID())
		}
		p.graphs[g.StationID()] = g
	}
	return p, nil
}

func (p *StaticProvider) StationGraph(ctx context.Context, stationID string) (*Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.graphs[stationID], nil
}

// StationIDs lists the modeled stations in sorted order
func (p *StaticProvider) StationIDs() []string {
	ids := make([]string, 0, len(p.graphs))
	for id := range p.graphs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Chain asks each provider in turn and returns the first graph found.
// A failing link does not stop the chain; its error is returned only when no
// later link has the station.
func Chain(providers ...Provider) Provider {
	return chain(providers)
}

type chain []Provider

func (c chain) StationGraph(ctx context.Context, stationID string) (*Graph, error) {
	var errs []error
	for _, p := range c {
		if p == nil {
			continue
		}
		g, err := p.StationGraph(ctx, stationID)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			errs = append(errs, err)
			continue
		}
		if g != nil {
			return g, nil
		}
	}
	return nil, errors.Join(errs...)
}
