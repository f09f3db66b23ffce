package routeexperience

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"golang.org/x/exp/slog"

	"github.com/theoremus-urban-solutions/route-experience/config"
	"github.com/theoremus-urban-solutions/route-experience/gtfs"
	"github.com/theoremus-urban-solutions/route-experience/gtfsrt"
	"github.com/theoremus-urban-solutions/route-experience/pain"
	"github.com/theoremus-urban-solutions/route-experience/profile"
	"github.com/theoremus-urban-solutions/route-experience/route"
	"github.com/theoremus-urban-solutions/route-experience/synth"
	"github.com/theoremus-urban-solutions/route-experience/topology"
)

// Engine is a configured synthesizer plus the providers behind it.
type Engine struct {
	cfg      config.AppConfig
	provider topology.Provider
	cache    *topology.CachedProvider
	outages  *gtfsrt.Feed
	synth    *synth.Synthesizer
	painCfg  pain.Config
	log      *slog.Logger
}

// NewEngine builds the provider stack described by cfg:
// outage overlay over an LRU over the chain dir, gtfs, fixtures.
func NewEngine(cfg config.AppConfig) (*Engine, error) {
	log := slog.Default().With("component", "engine")

	var links []topology.Provider
	if cfg.Topology.Dir != "" {
		p, err := topology.LoadDir(cfg.Topology.Dir)
		if err != nil {
			return nil, fmt.Errorf("topology dir: %w", err)
		}
		log.Info("loaded topology dir", "dir", cfg.Topology.Dir, "stations", len(p.StationIDs()))
		links = append(links, p)
	}
	if cfg.Topology.GTFSPath != "" || cfg.Topology.GTFSCache != "" {
		idx, err := loadPathways(cfg.Topology, log)
		if err != nil {
			return nil, err
		}
		links = append(links, idx)
	}
	if cfg.Topology.UseFixtures() {
		links = append(links, topology.Fixtures())
	}
	if len(links) == 0 {
		log.Warn("no topology source configured; every route scores on duration only")
	}

	return newEngine(cfg, topology.Chain(links...), log)
}

// NewEngineWithProvider uses base in place of the configured topology sources.
// Cache and outage settings still apply.
func NewEngineWithProvider(cfg config.AppConfig, base topology.Provider) (*Engine, error) {
	return newEngine(cfg, base, slog.Default().With("component", "engine"))
}

func newEngine(cfg config.AppConfig, base topology.Provider, log *slog.Logger) (*Engine, error) {
	coverage, err := CoverageFromConfig(cfg.Coverage)
	if err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg, painCfg: PainConfigFromConfig(cfg.Pain), log: log}
	provider := base
	if !cfg.Cache.Disabled {
		e.cache = topology.NewCachedProvider(provider, cfg.Cache.Size, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		provider = e.cache
	}
	timeout := time.Duration(cfg.Realtime.TimeoutMS) * time.Millisecond
	e.outages = gtfsrt.NewFeed(cfg.Realtime.AlertsURL, gtfsrt.NewClient(timeout), slog.Default())
	provider = gtfsrt.NewOutageProvider(provider, e.outages)
	e.provider = provider

	e.synth = synth.New(provider, synth.Options{
		Pain:        e.painCfg,
		Coverage:    coverage,
		LoadTimeout: time.Duration(cfg.Engine.LoadTimeoutMS) * time.Millisecond,
		Concurrency: cfg.Engine.Concurrency,
		Logger:      slog.Default().With("component", "synth"),
	})
	return e, nil
}

func loadPathways(tc config.TopologyConfig, log *slog.Logger) (*gtfs.PathwayIndex, error) {
	if tc.GTFSCache != "" {
		if _, err := os.Stat(tc.GTFSCache); err == nil {
			idx, err := gtfs.DeserializeIndexFromFile(tc.GTFSCache)
			if err == nil {
				log.Info("loaded pathway cache", "path", tc.GTFSCache, "stations", len(idx.StationIDs()))
				return idx, nil
			}
			log.Warn("pathway cache unreadable, rebuilding", "path", tc.GTFSCache, "error", err)
		}
	}
	if tc.GTFSPath == "" {
		return nil, fmt.Errorf("gtfs cache %s missing and no gtfsPath configured", tc.GTFSCache)
	}
	idx, err := gtfs.NewPathwayIndexFromFile(tc.GTFSPath)
	if err != nil {
		return nil, fmt.Errorf("gtfs pathways: %w", err)
	}
	log.Info("loaded gtfs pathways", "path", tc.GTFSPath, "stations", len(idx.StationIDs()))
	if tc.GTFSCache != "" {
		if err := gtfs.SerializeIndexToFile(idx, tc.GTFSCache); err != nil {
			log.Warn("could not write pathway cache", "path", tc.GTFSCache, "error", err)
		}
	}
	return idx, nil
}

// Synthesize scores routes. An empty locale uses the configured default.
func (e *Engine) Synthesize(ctx context.Context, routes []route.Option, p profile.Profile, isHoliday bool, loc string) ([]route.Option, error) {
	if loc == "" {
		loc = e.cfg.Engine.DefaultLocale
	}
	return e.synth.Synthesize(ctx, routes, p, isHoliday, loc)
}

// Provider is the full provider stack, outages included.
func (e *Engine) Provider() topology.Provider { return e.provider }

func (e *Engine) Synthesizer() *synth.Synthesizer { return e.synth }

// Aggregator returns a pain aggregator with the engine's settings
func (e *Engine) Aggregator() *pain.Aggregator { return pain.New(e.painCfg) }

// Outages is the realtime alerts feed. It is empty until refreshed or loaded.
func (e *Engine) Outages() *gtfsrt.Feed { return e.outages }

// PurgeCache drops cached station graphs, if caching is on
func (e *Engine) PurgeCache() {
	if e.cache != nil {
		e.cache.Purge()
	}
}

// Start refreshes the alerts feed in the background until ctx is done. It is
// a no-op when no alerts URL is configured.
func (e *Engine) Start(ctx context.Context) {
	if e.cfg.Realtime.AlertsURL == "" {
		return
	}
	interval := time.Duration(e.cfg.Realtime.ReadIntervalMS) * time.Millisecond
	e.log.Info("watching alerts feed", "url", e.cfg.Realtime.AlertsURL, "interval", interval)
	go e.outages.Run(ctx, interval)
}

// CoverageFromConfig compiles configured coverage entries. No entries keeps
// the built-in reference hubs.
func CoverageFromConfig(entries []config.CoverageConfig) ([]synth.Coverage, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	out := make([]synth.Coverage, 0, len(entries))
	var errs []error
	for _, c := range entries {
		cov := synth.Coverage{StationID: c.StationID, Name: c.Name, Names: c.Names}
		var err error
		if cov.IDPattern, err = compile(c.IDPattern); err != nil {
			errs = append(errs, fmt.Errorf("coverage %s idPattern: %w", c.StationID, err))
		}
		if cov.TextPattern, err = compile(c.TextPattern); err != nil {
			errs = append(errs, fmt.Errorf("coverage %s textPattern: %w", c.StationID, err))
		}
		if cov.Ignore, err = compile(c.Ignore); err != nil {
			errs = append(errs, fmt.Errorf("coverage %s ignore: %w", c.StationID, err))
		}
		out = append(out, cov)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

func compile(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile(pattern)
}

// PainConfigFromConfig maps the pain section onto pain.Config
func PainConfigFromConfig(pc config.PainConfig) pain.Config {
	cfg := pain.Config{
		Hubs:                pc.Hubs,
		HolidayMode:         pain.HolidayMode(pc.HolidayMode),
		ChargeLuggageStairs: pc.ChargeLuggageStairs,
	}
	if cfg.Hubs == nil {
		cfg.Hubs = pain.DefaultConfig().Hubs
	}
	return cfg
}
