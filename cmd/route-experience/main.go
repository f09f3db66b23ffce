package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/exp/slog"

	lib "github.com/theoremus-urban-solutions/route-experience"
	"github.com/theoremus-urban-solutions/route-experience/config"
	"github.com/theoremus-urban-solutions/route-experience/formatter"
	"github.com/theoremus-urban-solutions/route-experience/interior"
	"github.com/theoremus-urban-solutions/route-experience/internal"
	"github.com/theoremus-urban-solutions/route-experience/profile"
	"github.com/theoremus-urban-solutions/route-experience/route"
	"github.com/theoremus-urban-solutions/route-experience/tpi"
)

type options struct {
	mode      string
	format    string
	config    string
	routes    string
	alerts    string
	caps      string
	holiday   bool
	locale    string
	station   string
	from      string
	to        string
	weighting string
	logLevel  string
}

func main() {
	var o options
	flag.StringVar(&o.mode, "mode", "synth", "synth|cost|path")
	flag.StringVar(&o.format, "format", "json", "json|text")
	flag.StringVar(&o.config, "config", "", "config file (default config.yml)")
	flag.StringVar(&o.routes, "routes", "-", "route options JSON: file, URL or - for stdin (synth)")
	flag.StringVar(&o.alerts, "alerts", "", "GTFS-RT service alerts: file or URL (overrides config)")
	flag.StringVar(&o.caps, "caps", "", "comma separated capabilities: wheelchair,stroller,luggage,crowd_hi")
	flag.BoolVar(&o.holiday, "holiday", false, "apply the holiday crowd surcharge")
	flag.StringVar(&o.locale, "locale", "", "insight locale (en, ja, zh-TW)")
	flag.StringVar(&o.station, "station", "", "station id (cost, path)")
	flag.StringVar(&o.from, "from", "", "start node id (path)")
	flag.StringVar(&o.to, "to", "", "end node id (path)")
	flag.StringVar(&o.weighting, "weighting", "tpi", "tpi|duration (cost, path)")
	flag.StringVar(&o.logLevel, "log", "", "log level (overrides config)")
	flag.Parse()

	if err := run(context.Background(), o, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "route-experience:", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.AppConfig, error) {
	if path != "" {
		if err := config.LoadAppConfig(path); err != nil {
			return config.AppConfig{}, err
		}
		return config.Config, nil
	}
	if err := config.LoadAppConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config.Default(), nil
		}
		return config.AppConfig{}, err
	}
	return config.Config, nil
}

func run(ctx context.Context, o options, out io.Writer) error {
	cfg, err := loadConfig(o.config)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	level := cfg.Logging.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	internal.InitLoggingTo(os.Stderr, level)

	format, err := formatter.ParseFormat(o.format)
	if err != nil {
		return err
	}

	engine, err := lib.NewEngine(cfg)
	if err != nil {
		return err
	}

	f := newFetcher(time.Duration(cfg.Realtime.TimeoutMS) * time.Millisecond)
	alerts := o.alerts
	if alerts == "" {
		alerts = cfg.Realtime.AlertsURL
	}
	if alerts != "" {
		data, err := f.fetch(ctx, alerts)
		if err != nil {
			slog.Warn("alerts unavailable, scoring without outages", "source", alerts, "error", err)
		} else if err := engine.Outages().Load(data); err != nil {
			slog.Warn("alerts unreadable, scoring without outages", "source", alerts, "error", err)
		}
	}

	p := profile.Parse(o.caps)

	switch o.mode {
	case "synth":
		data, err := f.fetch(ctx, o.routes)
		if err != nil {
			return err
		}
		var routes []route.Option
		if err := json.Unmarshal(data, &routes); err != nil {
			return fmt.Errorf("decode routes: %w", err)
		}
		scored, err := engine.Synthesize(ctx, routes, p, o.holiday, o.locale)
		if err != nil {
			return err
		}
		return formatter.WriteRoutes(out, format, scored)

	case "cost", "path":
		if o.station == "" {
			return errors.New("-station is required")
		}
		g, err := engine.Provider().StationGraph(ctx, o.station)
		if err != nil {
			return err
		}
		if g == nil {
			return fmt.Errorf("station %s is not modeled", o.station)
		}
		w, err := weighting(o.weighting, p)
		if err != nil {
			return err
		}
		if o.mode == "cost" {
			return formatter.WriteCostTable(out, format, formatter.CostTable(g, w))
		}
		if o.from == "" || o.to == "" {
			return errors.New("-from and -to are required")
		}
		path, ok := interior.ShortestPath(g, o.from, o.to, w)
		rep := formatter.PathReport{Station: g.Name(), Weighting: w.Name(), Found: ok, Path: path}
		if ok {
			rep.Pain = engine.Aggregator().AggregatePath(g, path.Edges, p, o.holiday)
		}
		return formatter.WritePath(out, format, rep)

	default:
		return fmt.Errorf("unknown mode %q", o.mode)
	}
}

func weighting(name string, p profile.Profile) (tpi.Weighting, error) {
	switch name {
	case "", "tpi":
		return tpi.ProfileWeighting{Profile: p}, nil
	case "duration":
		return tpi.DurationWeighting{}, nil
	}
	return nil, fmt.Errorf("unknown weighting %q (tpi|duration)", name)
}
