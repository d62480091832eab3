/*
 * Copyright (c) 2026, ghjramos. All rights reserved.
 */
package dataio_test

import (
	"strings"

	"github.com/ghjramos/kmeans-core/dataio"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ReadPoints", func() {
	It("should parse comma-separated rows with a declared dimension", func() {
		in := "1, 2, 3\n4, 5, 6\n"
		rows, err := dataio.ReadPoints(strings.NewReader(in), 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(2))
		Expect(rows[0]).To(Equal([]float64{1, 2, 3}))
		Expect(rows[1]).To(Equal([]float64{4, 5, 6}))
	})

	It("should infer dimensionality from the first line when dims is 0", func() {
		in := "1 2\n3 4\n"
		rows, err := dataio.ReadPoints(strings.NewReader(in), 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(2))
		Expect(rows[0]).To(HaveLen(2))
	})

	It("should skip blank lines", func() {
		in := "1, 1\n\n2, 2\n"
		rows, err := dataio.ReadPoints(strings.NewReader(in), 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(2))
	})

	It("should zero-pad a short row to the declared dimension", func() {
		in := "1\n"
		rows, err := dataio.ReadPoints(strings.NewReader(in), 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows[0]).To(Equal([]float64{1, 0, 0}))
	})

	It("should truncate a long row to the declared dimension", func() {
		in := "1, 2, 3, 4\n"
		rows, err := dataio.ReadPoints(strings.NewReader(in), 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows[0]).To(Equal([]float64{1, 2}))
	})

	It("should substitute 0.0 for an unparseable field", func() {
		in := "1, oops\n"
		rows, err := dataio.ReadPoints(strings.NewReader(in), 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows[0]).To(Equal([]float64{1, 0}))
	})
})

var _ = Describe("WriteCentroids", func() {
	It("should join coordinates with commas and separate records with a blank line", func() {
		var sb strings.Builder
		err := dataio.WriteCentroids(&sb, [][]float64{{1, 2}, {3, 4}})
		Expect(err).NotTo(HaveOccurred())
		Expect(sb.String()).To(Equal("1, 2\n\n3, 4\n"))
	})

	It("should handle a single centroid with no separator", func() {
		var sb strings.Builder
		err := dataio.WriteCentroids(&sb, [][]float64{{5, 5}})
		Expect(err).NotTo(HaveOccurred())
		Expect(sb.String()).To(Equal("5, 5\n"))
	})
})
