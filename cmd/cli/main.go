package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/archivemon/internal/config"
	"github.com/hamed0406/archivemon/internal/domain"
	"github.com/hamed0406/archivemon/internal/logging"
	"github.com/hamed0406/archivemon/internal/probe"
	"github.com/hamed0406/archivemon/internal/registry"
	"github.com/hamed0406/archivemon/internal/report"
	"github.com/hamed0406/archivemon/internal/repo"
	"github.com/hamed0406/archivemon/internal/repo/memory"
	"github.com/hamed0406/archivemon/internal/repo/postgres"
	"github.com/hamed0406/archivemon/internal/scheduler"
)

func main() {
	check := flag.Bool("check", false, "run one check cycle over every endpoint")
	status := flag.Bool("status", false, "print the current status report")
	flag.Parse()

	if !*check && !*status {
		fmt.Println("Digital archive uptime monitor")
		fmt.Println("Usage:")
		fmt.Println("  archivemon -check    # probe every endpoint once")
		fmt.Println("  archivemon -status   # print the status report")
		return
	}

	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	reg := registry.Default()
	if cfg.EndpointsFile != "" {
		eps, err := config.LoadEndpoints(cfg.EndpointsFile)
		if err != nil {
			log.Fatal(err)
		}
		reg, err = registry.New(eps)
		if err != nil {
			log.Fatal(err)
		}
	}

	ctx := context.Background()

	// Without a database each run starts from an empty history, so -status
	// after a separate -check run would show nothing. Point DATABASE_URL at
	// postgres to keep histories across invocations.
	var store repo.ObservationStore
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal(err)
		}
		store = pg
	} else {
		store = memory.New()
	}

	if *check {
		fmt.Printf("Checking %d endpoints...\n", reg.Len())
		prober := probe.NewHTTPProber(cfg.ProbeTimeout)
		runner := scheduler.NewRunner(logger, reg, store, prober, cfg.ProbeTimeout, cfg.MaxConcurrentChecks)
		sum := runner.RunCycle(ctx)
		fmt.Printf("Done: %d/%d accessible\n", sum.Succeeded, sum.Checked)
	}

	if *status {
		rep, err := report.Generate(ctx, reg, store)
		if err != nil {
			logger.Error("report_error", zap.Error(err))
			os.Exit(1)
		}
		printReport(rep)
	}
}

func printReport(rep domain.Report) {
	fmt.Printf("Status report, generated %s\n", rep.GeneratedAt.Format(time.RFC3339))
	fmt.Printf("%d up, %d down, %d unknown\n\n", rep.UpCount, rep.DownCount, rep.UnknownCount)
	for _, e := range rep.Entries {
		lat := "n/a"
		if e.Stats.AvgLatencyMS != nil {
			lat = fmt.Sprintf("%.0f ms", *e.Stats.AvgLatencyMS)
		}
		fmt.Printf("%-8s %-45s uptime %5.1f%%  avg %-8s (%d checks)\n",
			e.Stats.LastStatus, e.Endpoint.Name, e.Stats.UptimePercent, lat, e.Stats.TotalChecks)
	}
}
