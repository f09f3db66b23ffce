package formatter

import (
	"encoding/json"
	"fmt"
	"io"
)

// Format selects the output encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat accepts json and text; anything else is an error.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatText:
		return Format(s), nil
	case "":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q (json|text)", s)
}

// BuildJSON serializes v as indented JSON
func BuildJSON(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(b, '\n'), nil
}

func writeJSON(w io.Writer, v any) error {
	b, err := BuildJSON(v)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
