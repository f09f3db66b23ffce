package synth

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"github.com/theoremus-urban-solutions/route-experience/locale"
	"github.com/theoremus-urban-solutions/route-experience/pain"
	"github.com/theoremus-urban-solutions/route-experience/profile"
	"github.com/theoremus-urban-solutions/route-experience/route"
	"github.com/theoremus-urban-solutions/route-experience/topology"
)

const (
	defaultLoadTimeout = 2 * time.Second
	defaultConcurrency = 8

	crowdFreeBelow   = 10.0
	luggageFineBelow = 20.0
	difficultAbove   = 15.0
)

// Insight icons
const (
	IconUserCheck     = "UserCheck"
	IconBriefcase     = "Briefcase"
	IconAlertTriangle = "AlertTriangle"
	IconGitGraph      = "GitGraph"
)

// Options configures a Synthesizer. Zero values select defaults.
type Options struct {
	Pain        pain.Config
	Coverage    []Coverage
	LoadTimeout time.Duration
	Concurrency int
	Catalog     *locale.Catalog
	Logger      *slog.Logger
}

// Synthesizer scores and re-ranks routes. It is safe for concurrent use.
type Synthesizer struct {
	provider    topology.Provider
	resolver    *Resolver
	pain        *pain.Aggregator
	catalog     *locale.Catalog
	loadTimeout time.Duration
	concurrency int
	log         *slog.Logger
}

// New creates a synthesizer reading station graphs from provider.
func New(provider topology.Provider, opts Options) *Synthesizer {
	s := &Synthesizer{
		provider:    provider,
		catalog:     opts.Catalog,
		loadTimeout: opts.LoadTimeout,
		concurrency: opts.Concurrency,
		log:         opts.Logger,
	}
	if opts.Coverage == nil {
		opts.Coverage = DefaultCoverage()
	}
	s.resolver = NewResolver(opts.Coverage)
	if opts.Pain.Hubs == nil {
		opts.Pain.Hubs = pain.DefaultConfig().Hubs
	}
	s.pain = pain.New(opts.Pain)
	if s.catalog == nil {
		s.catalog = locale.Default
	}
	if s.loadTimeout <= 0 {
		s.loadTimeout = defaultLoadTimeout
	}
	if s.concurrency <= 0 {
		s.concurrency = defaultConcurrency
	}
	if s.log == nil {
		s.log = slog.Default().With("component", "synth")
	}
	return s
}

// Resolver exposes the transfer resolver used by s
func (s *Synthesizer) Resolver() *Resolver { return s.resolver }

// stationPain is the per-call, read-only pain of one loaded station
type stationPain struct {
	name   string
	result pain.Result
}

// Synthesize scores routes and returns deep copies sorted by ascending score.
func (s *Synthesizer) Synthesize(ctx context.Context, routes []route.Option, p profile.Profile, isHoliday bool, loc string) ([]route.Option, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return []route.Option{}, nil
	}

	events := make([][]TransferEvent, len(routes))
	var stations []string
	seen := make(map[string]bool)
	for i := range routes {
		events[i] = ScanTransfers(routes[i].Steps, s.resolver)
		for _, ev := range events[i] {
			if !seen[ev.Match.StationID] {
				seen[ev.Match.StationID] = true
				stations = append(stations, ev.Match.StationID)
			}
		}
	}

	graphs, err := s.loadGraphs(ctx, stations)
	if err != nil {
		return nil, err
	}

	painByStation := make(map[string]stationPain, len(graphs))
	for id, g := range graphs {
		painByStation[id] = stationPain{name: g.Name(), result: s.pain.Aggregate(g, p, isHoliday)}
	}

	tag := s.catalog.Match(loc).String()
	out := make([]route.Option, len(routes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range routes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = s.scoreRoute(routes[i], events[i], painByStation, p, loc, tag)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].Score < out[b].Score })

	s.log.Debug("routes synthesized",
		"routes", len(out),
		"stations", len(stations),
		"graphs", len(graphs),
		"profile", p.String(),
		"holiday", isHoliday,
	)
	return out, nil
}

// loadGraphs fetches each station at most once. Failures, timeouts and panics
// in the provider become missing graphs; only cancellation of ctx is returned.
func (s *Synthesizer) loadGraphs(ctx context.Context, stations []string) (map[string]*topology.Graph, error) {
	loaded := make([]*topology.Graph, len(stations))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, id := range stations {
		g.Go(func() error {
			loaded[i] = s.loadGraph(gctx, id)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	graphs := make(map[string]*topology.Graph, len(stations))
	for i, id := range stations {
		if loaded[i] != nil {
			graphs[id] = loaded[i]
		}
	}
	return graphs, nil
}

func (s *Synthesizer) loadGraph(ctx context.Context, stationID string) *topology.Graph {
	ctx, cancel := context.WithTimeout(ctx, s.loadTimeout)
	defer cancel()

	type result struct {
		g   *topology.Graph
		err error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("provider panic: %v", r)}
			}
		}()
		g, err := s.provider.StationGraph(ctx, stationID)
		done <- result{g: g, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			s.log.Warn("topology unavailable, scoring without it", "station", stationID, "error", res.err)
			return nil
		}
		return res.g
	case <-ctx.Done():
		s.log.Warn("topology load abandoned", "station", stationID, "error", ctx.Err())
		return nil
	}
}

func (s *Synthesizer) scoreRoute(r route.Option, events []TransferEvent, painByStation map[string]stationPain, p profile.Profile, loc, tag string) route.Option {
	out := r.Clone()
	debug := &route.PainDebug{Transfers: make([]route.TransferPain, 0, len(events))}

	for _, ev := range events {
		sp, ok := painByStation[ev.Match.StationID]
		if !ok {
			continue
		}
		name := ev.Match.DisplayName(tag)
		if name == "" {
			name = sp.name
		}
		debug.Score += sp.result.Score
		debug.Transfers = append(debug.Transfers, route.TransferPain{
			StationID: ev.Match.StationID,
			Station:   name,
			Score:     sp.result.Score,
			Reasons:   append([]string{}, sp.result.Reasons...),
		})
	}

	out.Score = float64(r.Duration) + debug.Score
	out.PainDebug = debug
	out.Insights = s.insights(debug, p, loc)
	return out
}

func (s *Synthesizer) insights(debug *route.PainDebug, p profile.Profile, loc string) []route.Insight {
	insights := []route.Insight{}
	add := func(typ route.InsightType, key, text, icon string) {
		insights = append(insights, route.Insight{Type: typ, Key: key, Text: text, Icon: icon})
	}

	if debug.Score < crowdFreeBelow && p.Has(profile.CrowdHi) {
		add(route.InsightPro, locale.KeyAvoidedCrowd, s.catalog.Text(loc, locale.KeyAvoidedCrowd), IconUserCheck)
	}
	if p.Has(profile.Luggage) {
		if debug.Score < luggageFineBelow {
			add(route.InsightPro, locale.KeyLuggageFriendly, s.catalog.Text(loc, locale.KeyLuggageFriendly), IconBriefcase)
		} else {
			add(route.InsightWarning, locale.KeyStairsWarning, s.catalog.Text(loc, locale.KeyStairsWarning), IconAlertTriangle)
		}
	}
	for _, tp := range debug.Transfers {
		if tp.Score > difficultAbove {
			text := fmt.Sprintf("%s (%s)", s.catalog.Text(loc, locale.KeyDiffTransfer), tp.Station)
			add(route.InsightCon, locale.KeyDiffTransfer, text, IconGitGraph)
		}
	}
	return insights
}
