package formatter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/theoremus-urban-solutions/route-experience/interior"
	"github.com/theoremus-urban-solutions/route-experience/pain"
	"github.com/theoremus-urban-solutions/route-experience/route"
	"github.com/theoremus-urban-solutions/route-experience/topology"
	"github.com/theoremus-urban-solutions/route-experience/tpi"
)

// CostRow is one edge of a station cost table. Cost is nil when the edge is
// infeasible, since JSON has no infinity.
type CostRow struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	Type       string   `json:"type"`
	Tags       []string `json:"tags,omitempty"`
	Cost       *float64 `json:"cost"`
	Infeasible bool     `json:"infeasible,omitempty"`
}

// CostTable evaluates every edge of g with w, in graph order.
func CostTable(g *topology.Graph, w tpi.Weighting) []CostRow {
	edges := g.Edges()
	rows := make([]CostRow, 0, len(edges))
	for _, e := range edges {
		row := CostRow{From: e.FromNodeID, To: e.ToNodeID, Type: string(e.Type)}
		for _, t := range e.Tags {
			row.Tags = append(row.Tags, t.String())
		}
		if c := w.EdgeWeight(e); tpi.Infeasible(c) {
			row.Infeasible = true
		} else {
			row.Cost = &c
		}
		rows = append(rows, row)
	}
	return rows
}

// PathReport is the cheapest interior path plus its path-scoped pain
type PathReport struct {
	Station   string        `json:"station"`
	Weighting string        `json:"weighting"`
	Found     bool          `json:"found"`
	Path      interior.Path `json:"path"`
	Pain      pain.Result   `json:"pain"`
}

// WriteRoutes renders scored routes
func WriteRoutes(w io.Writer, f Format, routes []route.Option) error {
	if f == FormatJSON {
		return writeJSON(w, routes)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tLABEL\tMIN\tPAIN\tSCORE\tINSIGHTS")
	for i, r := range routes {
		painScore := 0.0
		if r.PainDebug != nil {
			painScore = r.PainDebug.Score
		}
		texts := make([]string, 0, len(r.Insights))
		for _, in := range r.Insights {
			texts = append(texts, in.Text)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%g\t%g\t%s\n", i+1, r.Label, r.Duration, painScore, r.Score, strings.Join(texts, "; "))
	}
	return tw.Flush()
}

// WriteCostTable renders a cost table
func WriteCostTable(w io.Writer, f Format, rows []CostRow) error {
	if f == FormatJSON {
		return writeJSON(w, rows)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FROM\tTO\tTYPE\tCOST\tTAGS")
	for _, r := range rows {
		cost := "inf"
		if r.Cost != nil {
			cost = fmt.Sprintf("%.1f", *r.Cost)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.From, r.To, r.Type, cost, strings.Join(r.Tags, ","))
	}
	return tw.Flush()
}

// WritePath renders a path report
func WritePath(w io.Writer, f Format, rep PathReport) error {
	if f == FormatJSON {
		return writeJSON(w, rep)
	}
	if !rep.Found {
		_, err := fmt.Fprintf(w, "%s: no feasible path (%s)\n", rep.Station, rep.Weighting)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s (%s): %s\n", rep.Station, rep.Weighting, strings.Join(rep.Path.Nodes, " -> ")); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "cost %.1f, %.0fs, %.0fm, pain %g %v\n",
		rep.Path.Cost, rep.Path.Duration, rep.Path.Distance, rep.Pain.Score, rep.Pain.Reasons)
	return err
}
