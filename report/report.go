// SPDX-License-Identifier: MIT

// Package report persists benchmark results in language-neutral formats and
// renders leaderboards as text.
//
// What:
//   - Document bundles library descriptors and result records.
//   - Encode / Decode round-trip a Document losslessly through JSON or YAML.
//   - WriteLeaderboards prints ranked tables with excluded records and reasons.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/matbench/bench"
	"github.com/katalvlaran/matbench/library"
)

// ErrUnknownFormat reports an unsupported encoding name or file extension.
var ErrUnknownFormat = errors.New("report: unknown format")

// Format selects the encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document is the persisted unit.
type Document struct {
	Libraries []library.Descriptor `json:"libraries" yaml:"libraries"`
	Records   []bench.ResultRecord `json:"records" yaml:"records"`
}

// NewDocument returns a Document carrying the full registry and records.
func NewDocument(records []bench.ResultRecord) Document {
	return Document{Libraries: library.All(), Records: records}
}

// ParseFormat accepts "json", "yaml" or "yml" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}

	return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Encode writes doc to w.
func Encode(w io.Writer, doc Document, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("report: encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("report: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("report: encode yaml: %w", err)
		}
		return nil
	}

	return fmt.Errorf("%q: %w", f, ErrUnknownFormat)
}

// Decode reads a Document from r. Unknown JSON fields are rejected.
func Decode(r io.Reader, f Format) (Document, error) {
	var doc Document
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("report: decode json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("report: decode yaml: %w", err)
		}
	default:
		return Document{}, fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}

	return doc, nil
}
