// Package dataio implements the two external collaborators spec.md §6 names
// but leaves as contracts: a delimited-text point reader and a centroid
// writer. No delimited-text parsing library appears anywhere in the
// retrieval pack this module was built from, so this leaf stays on the
// standard library's bufio/strconv (see DESIGN.md).
/*
 * Copyright (c) 2026, ghjramos. All rights reserved.
 */
package dataio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/ghjramos/kmeans-core/cmn/nlog"
	"github.com/pkg/errors"
)

// ReadPoints parses r as one point per line, fields separated by whitespace
// or commas, into an N×D matrix. dims, when > 0, is the declared
// dimensionality: rows with more fields are truncated, rows with fewer are
// zero-padded, both logged at Warning. dims == 0 infers D from the first
// line and applies the same pad/truncate rule to every later line. Invalid
// numeric fields are substituted with 0.0 and logged (spec.md §6).
func ReadPoints(r io.Reader, dims int) ([][]float64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var rows [][]float64
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})

		if dims == 0 {
			dims = len(fields)
		}

		row := make([]float64, dims)
		for d := 0; d < dims; d++ {
			if d >= len(fields) {
				continue // pad with 0.0
			}
			v, err := strconv.ParseFloat(fields[d], 64)
			if err != nil {
				nlog.Warningf("dataio: line %d field %d: invalid number %q, substituting 0.0", lineNo, d, fields[d])
				v = 0.0
			}
			row[d] = v
		}
		if len(fields) != dims {
			nlog.Warningf("dataio: line %d: %d fields, expected %d; padded/truncated", lineNo, len(fields), dims)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "dataio: scan input")
	}
	return rows, nil
}
