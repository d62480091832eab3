// Command kmeans is the top-level driver spec.md §1 calls out of scope for
// the core: it loads settings, parses the input matrix, runs the engine,
// and writes the resulting centroids (spec.md §7 exit-status contract).
/*
 * Copyright (c) 2026, ghjramos. All rights reserved.
 */
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ghjramos/kmeans-core/config"
	"github.com/ghjramos/kmeans-core/dataio"
	"github.com/ghjramos/kmeans-core/engine"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
)

func main() {
	app := cli.NewApp()
	app.Name = "kmeans"
	app.Usage = "multi-threaded k-means clustering driver"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Usage: "path to a JSON settings file", Required: true},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "kmeans:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	settings, err := config.Load(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	src, err := os.Open(settings.SourcePath)
	if err != nil {
		return errors.Wrap(err, "open source")
	}
	defer src.Close()

	points, err := dataio.ReadPoints(src, settings.Dimensions)
	if err != nil {
		return errors.Wrap(err, "read points")
	}

	eng, err := engine.New(points, engine.Options{
		K:             settings.K,
		Threads:       settings.Threads,
		Seed:          settings.Seed,
		MaxIterations: settings.MaxIterations,
	})
	if err != nil {
		return errors.Wrap(err, "construct engine")
	}

	progress := mpb.New(mpb.WithWidth(40))
	bar := progress.AddSpinner(1, mpb.SpinnerOnLeft,
		mpb.PrependDecorators(decor.Name("clustering", decor.WC{W: len("clustering") + 1})),
		mpb.AppendDecorators(decor.Elapsed(decor.ET_STYLE_GO)),
	)

	start := time.Now()
	result, err := eng.Run(context.Background())
	bar.Increment()
	progress.Wait()
	if err != nil {
		return errors.Wrap(err, "run engine")
	}
	fmt.Fprintf(os.Stderr, "kmeans: converged in %d iterations, %v, sse=%.6f, empty-cluster retentions=%d\n",
		result.Iterations, time.Since(start), result.SSE, result.EmptyClusterRetentions)

	dst, err := os.Create(settings.DestPath)
	if err != nil {
		return errors.Wrap(err, "create destination")
	}
	defer dst.Close()

	if err := dataio.WriteCentroids(dst, result.Centroids); err != nil {
		return errors.Wrap(err, "write centroids")
	}
	return nil
}
