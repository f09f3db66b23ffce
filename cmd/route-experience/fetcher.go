package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/route-experience/gtfsrt"
)

// fetcher reads inputs from a URL, a local file, or stdin ("-").
type fetcher struct {
	client *gtfsrt.Client
	stdin  io.Reader
}

func newFetcher(timeout time.Duration) *fetcher {
	return &fetcher{client: gtfsrt.NewClient(timeout), stdin: os.Stdin}
}

// fetch returns nil for an empty source so optional inputs can be skipped.
func (f *fetcher) fetch(ctx context.Context, src string) ([]byte, error) {
	switch {
	case src == "":
		return nil, nil
	case src == "-":
		b, err := io.ReadAll(f.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return b, nil
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return f.client.Fetch(ctx, src)
	default:
		b, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", src, err)
		}
		return b, nil
	}
}
