/*
 * Copyright (c) 2026, ghjramos. All rights reserved.
 */
package dataio

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// WriteCentroids emits one record per cluster, coordinates joined by ", "
// and terminated by a newline, with a blank separator line between records
// (spec.md §6 "Output writer").
func WriteCentroids(w io.Writer, centroids [][]float64) error {
	bw := bufio.NewWriter(w)
	for ci, c := range centroids {
		if ci > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return errors.Wrap(err, "dataio: write separator")
			}
		}
		for di, v := range c {
			if di > 0 {
				if _, err := bw.WriteString(", "); err != nil {
					return errors.Wrap(err, "dataio: write coordinate separator")
				}
			}
			if _, err := bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
				return errors.Wrap(err, "dataio: write coordinate")
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return errors.Wrap(err, "dataio: write record terminator")
		}
	}
	return bw.Flush()
}
