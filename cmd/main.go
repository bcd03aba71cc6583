package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/royalcat/geoscatter/internal/stats"
	"github.com/royalcat/geoscatter/pointsaver"
	"github.com/royalcat/geoscatter/scatter"
	"github.com/royalcat/geoscatter/server"

	_ "net/http/pprof"

	_ "github.com/KimMachineGun/automemlimit"
	"github.com/urfave/cli/v3"
	_ "go.uber.org/automaxprocs"
)

func main() {
	app := &cli.App{
		Name:        "geoscatter",
		Description: "Generates synthetic points inside polygons with exact per-polygon counts",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "serve queries over a generated points file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:      "points",
						Aliases:   []string{"p"},
						Required:  true,
						TakesFile: true,
					},
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
					},
				},
				Action: serve,
			},
			{
				Name:    "generate",
				Aliases: []string{"g"},
				Usage:   "generates a points file from a polygon set with quotas",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:      "input",
						Aliases:   []string{"i"},
						Usage:     "GeoJSON feature collection of polygons",
						Required:  true,
						TakesFile: true,
					},
					&cli.StringFlag{
						Name:      "points",
						Aliases:   []string{"p"},
						Required:  true,
						TakesFile: true,
					},
					&cli.StringFlag{
						Name:  "quota-property",
						Usage: "feature property holding the per-polygon point count",
						Value: "quota",
					},
					&cli.IntFlag{
						Name:  "seed",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Value: 256,
					},
					&cli.IntFlag{
						Name:  "max-depth",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "min-bucket",
						Value: 32,
					},
					&cli.IntFlag{
						Name:  "max-candidates",
						Value: 100_000,
					},
					&cli.IntFlag{
						Name:  "max-rounds",
						Value: 32,
					},
					&cli.IntFlag{
						Name:        "threads",
						Aliases:     []string{"t"},
						DefaultText: "max",
					},
					&cli.BoolFlag{
						Name:  "stats",
						Usage: "log runtime resource usage at the end of the run",
					},
					&cli.StringFlag{
						Name:        "pprof.listen",
						DefaultText: "",
					},
					&cli.BoolFlag{
						Name:        "pprof.profile",
						DefaultText: "",
					},
					&cli.BoolFlag{
						Name:        "pprof.heap",
						DefaultText: "",
					},
				},
				Action: generate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx *cli.Context) error {
	log := slog.Default().With("run_id", uuid.NewString())

	cfg := scatter.ConfigDefault()
	cfg.Seed = int64(ctx.Int("seed"))
	cfg.BatchSize = ctx.Int("batch-size")
	cfg.MaxDepth = ctx.Int("max-depth")
	cfg.MinBucketSize = ctx.Int("min-bucket")
	cfg.MaxCandidatesPerRound = ctx.Int("max-candidates")
	cfg.MaxRounds = ctx.Int("max-rounds")
	if threads := ctx.Int("threads"); threads > 0 {
		cfg.Threads = threads
	} else {
		cfg.Threads = runtime.GOMAXPROCS(0)
	}
	log = log.With("threads", cfg.Threads, "seed", cfg.Seed)

	if pprofListen := ctx.String("pprof.listen"); pprofListen != "" {
		go func() {
			log.Info("Starting pprof server")
			err := http.ListenAndServe(pprofListen, nil)
			if err != nil {
				log.Error("Error starting pprof server", "error", err)
			}
		}()
	}

	pprofHeap := ctx.Bool("pprof.heap")

	if ctx.Bool("pprof.profile") {
		f, err := os.OpenFile("profile.cpu.pprof", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("error creating pprof file: %w", err)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			return fmt.Errorf("error starting pprof: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	polygons, err := loadPolygons(ctx.String("input"), ctx.String("quota-property"))
	if err != nil {
		return fmt.Errorf("error loading polygons: %w", err)
	}
	log.Info("Loaded polygons", "count", len(polygons))

	var collector *stats.Collector
	if ctx.Bool("stats") {
		collector, err = stats.NewCollector(time.Second)
		if err != nil {
			return fmt.Errorf("error creating stats collector: %w", err)
		}
		collector.Start()
	}

	points, diag, err := scatter.Generate(ctx.Context, cfg, polygons, scatter.WithLogger(log))
	if err != nil {
		return fmt.Errorf("error generating points: %w", err)
	}

	if collector != nil {
		collector.Stop(log)
	}

	if diag.OverlapViolations > 0 {
		log.Warn("input polygons overlap", "violations", diag.OverlapViolations)
	}

	if pprofHeap {
		err := writeHeapProfile("profile")
		if err != nil {
			return fmt.Errorf("error writing heap profile: %w", err)
		}
	}

	saveFile := ctx.String("points")
	if !strings.HasSuffix(saveFile, ".gsc") {
		saveFile = saveFile + ".gsc"
	}

	fmt.Printf("Generation complete, %s points\n", humanize.Comma(int64(len(points))))
	fmt.Printf("Saving to file: %s\n", saveFile)
	err = pointsaver.SaveToFile(saveFile, points, pointsaver.Metadata{
		Version:     1,
		Seed:        cfg.Seed,
		DateCreated: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to save points to file: %w", err)
	}

	fmt.Printf("Complete\n")

	return nil
}

func writeHeapProfile(name string) error {
	f, err := os.Create(name + ".heap.prof")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	return pprof.WriteHeapProfile(f)
}

func serve(ctx *cli.Context) error {
	slog.Info("Loading points file")
	points, err := pointsaver.LoadFromFile(ctx.String("points"), slog.Default())
	if err != nil {
		return err
	}

	return server.Run(ctx.Context, ctx.String("listen"), server.NewPointStore(points))
}
