// SPDX-License-Identifier: MIT

// Package library is the closed registry of benchmarked libraries: one static
// Descriptor per library plus the constructor of its adapter.
//
// Adding a library means adding a Descriptor here and a LibraryAdapter
// implementation under adapter/; nothing is discovered at runtime.
package library

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/matbench/adapter/gonumlib"
	"github.com/katalvlaran/matbench/adapter/lvdense"
	"github.com/katalvlaran/matbench/adapter/sparselib"
	"github.com/katalvlaran/matbench/bench"
)

// ErrUnknownLibrary is returned for an ID absent from the registry.
var ErrUnknownLibrary = errors.New("library: unknown library")

// LineType is a plot styling hint.
type LineType string

// Line types used by the registry.
const (
	LineSolid  LineType = "solid"
	LineDashed LineType = "dashed"
	LineDotted LineType = "dotted"
)

// Descriptor is read-only metadata about one library.
type Descriptor struct {
	ID           bench.LibraryID `json:"id" yaml:"id"`
	PlotName     string          `json:"plot_name" yaml:"plot_name"`
	DirName      string          `json:"dir_name" yaml:"dir_name"`
	Version      string          `json:"version" yaml:"version"`
	DateModified string          `json:"date_modified" yaml:"date_modified"`
	ExtraLibs    bool            `json:"extra_libs" yaml:"extra_libs"`
	PlotLineType LineType        `json:"plot_line_type" yaml:"plot_line_type"`
}

// entry pairs a Descriptor with its adapter constructor.
type entry struct {
	desc  Descriptor
	build func(log zerolog.Logger) bench.LibraryAdapter
}

// registry order is the display order and the ranking tie-break order.
var registry = []entry{
	{
		desc: Descriptor{
			ID:           gonumlib.ID,
			PlotName:     "Gonum",
			DirName:      "gonum",
			Version:      "v0.16.0",
			DateModified: "2025-03-05",
			PlotLineType: LineSolid,
		},
		build: func(log zerolog.Logger) bench.LibraryAdapter { return gonumlib.New(gonumlib.WithLogger(log)) },
	},
	{
		desc: Descriptor{
			ID:           lvdense.ID,
			PlotName:     "lvlath dense",
			DirName:      "lvdense",
			Version:      "v0.1.0",
			DateModified: "2025-06-01",
			PlotLineType: LineDashed,
		},
		build: func(log zerolog.Logger) bench.LibraryAdapter { return lvdense.New(lvdense.WithLogger(log)) },
	},
	{
		desc: Descriptor{
			ID:           sparselib.ID,
			PlotName:     "Sparse 1.3 (Go)",
			DirName:      "sparse",
			Version:      "v0.0.0-20250223074749-e82e4651f4d6",
			DateModified: "2025-02-23",
			PlotLineType: LineDotted,
		},
		build: func(log zerolog.Logger) bench.LibraryAdapter { return sparselib.New(sparselib.WithLogger(log)) },
	},
}

// All returns a copy of every Descriptor in registry order.
func All() []Descriptor {
	out := make([]Descriptor, len(registry))
	for i, e := range registry {
		out[i] = e.desc
	}

	return out
}

// IDs returns the registered IDs in registry order.
func IDs() []bench.LibraryID {
	out := make([]bench.LibraryID, len(registry))
	for i, e := range registry {
		out[i] = e.desc.ID
	}

	return out
}

// Lookup returns the Descriptor of id.
func Lookup(id bench.LibraryID) (Descriptor, error) {
	i := Order(id)
	if i < 0 {
		return Descriptor{}, fmt.Errorf("%q: %w", id, ErrUnknownLibrary)
	}

	return registry[i].desc, nil
}

// Order returns the registry position of id, or -1.
func Order(id bench.LibraryID) int {
	for i, e := range registry {
		if e.desc.ID == id {
			return i
		}
	}

	return -1
}

// NewAdapter constructs a fresh, unconfigured adapter for id.
func NewAdapter(id bench.LibraryID, log zerolog.Logger) (bench.LibraryAdapter, error) {
	i := Order(id)
	if i < 0 {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownLibrary)
	}

	return registry[i].build(log.With().Str("library", string(id)).Logger()), nil
}
