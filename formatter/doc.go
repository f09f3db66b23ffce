// Package formatter renders engine results for the command line: scored
// routes, per-edge cost tables and interior paths, as JSON or aligned text.
package formatter
