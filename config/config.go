// Package config loads the scalar settings a clustering run needs: cluster
// count, thread count, dimensionality, and the source/destination paths
// (spec.md §6 "Config reader"). Settings are read from a small JSON file
// using jsoniter, the fast JSON codec the teacher's own ais/cmd/cli packages
// import for the same reason: avoiding encoding/json's reflection overhead
// on the request/config hot path.
/*
 * Copyright (c) 2026, ghjramos. All rights reserved.
 */
package config

import (
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Settings is the external configuration contract of spec.md §6. Seed is
// optional and fixes initial-centroid selection; when it is omitted,
// engine.New derives a seed from mono.NanoTime() (nanoseconds since process
// start).
type Settings struct {
	K             int    `json:"k"`
	Threads       int    `json:"threads"`
	Dimensions    int    `json:"dimensions,omitempty"`
	PointsNumber  int    `json:"points_number,omitempty"`
	SourcePath    string `json:"source_path"`
	DestPath      string `json:"dest_path"`
	Seed          *int64 `json:"seed,omitempty"`
	MaxIterations int    `json:"max_iterations,omitempty"`
}

// Default returns the engine's own conservative defaults, used to fill in
// whatever a loaded settings file leaves at its zero value.
func Default() Settings {
	return Settings{
		Threads:       1,
		MaxIterations: 0, // unbounded; rely on fixed-point convergence
	}
}

// Load reads and parses a JSON settings file at path, applying Default()'s
// values for any field the file omits.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read %q", path)
	}

	s := Default()
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "config: parse %q", path)
	}
	if s.Threads <= 0 {
		s.Threads = 1
	}
	return &s, nil
}

// Validate checks the settings that the engine's own construction would
// otherwise reject, so the driver can report a single diagnostic instead of
// a bare construction error (spec.md §7).
func (s *Settings) Validate() error {
	switch {
	case s.K < 2:
		return errors.New("config: k must be >= 2")
	case s.Threads < 1:
		return errors.New("config: threads must be >= 1")
	case s.SourcePath == "":
		return errors.New("config: source_path is required")
	case s.DestPath == "":
		return errors.New("config: dest_path is required")
	}
	return nil
}
