/*
 * Copyright (c) 2026, ghjramos. All rights reserved.
 */
package config_test

import (
	"os"
	"path/filepath"

	"github.com/ghjramos/kmeans-core/config"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Settings", func() {
	Describe("Default", func() {
		It("should set threads to 1 and leave iterations unbounded", func() {
			s := config.Default()
			Expect(s.Threads).To(Equal(1))
			Expect(s.MaxIterations).To(Equal(0))
		})
	})

	Describe("Load", func() {
		var dir string

		BeforeEach(func() {
			dir = os.TempDir()
		})

		writeFile := func(name, content string) string {
			path := filepath.Join(dir, name)
			Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
			return path
		}

		It("should parse a well-formed settings file", func() {
			path := writeFile("settings_ok.json", `{
				"k": 3,
				"threads": 4,
				"source_path": "in.csv",
				"dest_path": "out.csv"
			}`)
			s, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.K).To(Equal(3))
			Expect(s.Threads).To(Equal(4))
			Expect(s.SourcePath).To(Equal("in.csv"))
			Expect(s.DestPath).To(Equal("out.csv"))
		})

		It("should coerce a non-positive thread count up to 1", func() {
			path := writeFile("settings_zero_threads.json", `{
				"k": 2,
				"threads": 0,
				"source_path": "in.csv",
				"dest_path": "out.csv"
			}`)
			s, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Threads).To(Equal(1))
		})

		It("should error when the file does not exist", func() {
			_, err := config.Load(filepath.Join(dir, "does-not-exist.json"))
			Expect(err).To(HaveOccurred())
		})

		It("should error on malformed JSON", func() {
			path := writeFile("settings_bad.json", `{not valid json`)
			_, err := config.Load(path)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Validate", func() {
		It("should accept a fully populated settings value", func() {
			s := config.Settings{K: 2, Threads: 1, SourcePath: "in.csv", DestPath: "out.csv"}
			Expect(s.Validate()).To(Succeed())
		})

		It("should reject k below 2", func() {
			s := config.Settings{K: 1, Threads: 1, SourcePath: "in.csv", DestPath: "out.csv"}
			Expect(s.Validate()).To(HaveOccurred())
		})

		It("should reject a missing source path", func() {
			s := config.Settings{K: 2, Threads: 1, DestPath: "out.csv"}
			Expect(s.Validate()).To(HaveOccurred())
		})

		It("should reject a missing destination path", func() {
			s := config.Settings{K: 2, Threads: 1, SourcePath: "in.csv"}
			Expect(s.Validate()).To(HaveOccurred())
		})
	})
})
