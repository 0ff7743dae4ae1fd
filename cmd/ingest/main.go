// Command ingest loads keyword export CSV files into the database.
//
//	ingest [-site timeout.com] export.csv ...
//	ingest -dir ./data
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"seodash/internal/cache"
	"seodash/internal/config"
	"seodash/internal/db"
	"seodash/internal/jobs"
)

func main() {
	site := flag.String("site", "", "site the files belong to (default: from config.yaml or the file name)")
	dir := flag.String("dir", "", "import every CSV file in this directory")
	migrate := flag.Bool("migrate", true, "run database migrations first")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [file.csv ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *dir == "" && flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if *dir != "" && *site != "" {
		log.Fatal("-site cannot be combined with -dir")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if *migrate {
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	var reportCache *cache.Client
	if cfg.RedisURL != "" {
		if reportCache, err = cache.NewClient(cfg.RedisURL, cfg.CacheTTL); err != nil {
			slog.Warn("report cache unavailable, cached reports may be stale", "error", err)
		} else {
			defer reportCache.Close()
		}
	}

	importer := jobs.NewImporter(database, reportCache, yamlCfg)

	var errs []error
	imported := 0
	if *dir != "" {
		n, dirErrs := importer.ImportDir(ctx, *dir)
		imported += n
		errs = append(errs, dirErrs...)
	}
	for _, path := range flag.Args() {
		res, err := importer.ImportFile(ctx, path, *site)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		imported++
		fmt.Printf("%s: %d of %d rows imported into %s\n", path, res.Imported(), res.TotalRows, res.Site)
	}

	if len(errs) > 0 {
		log.Printf("%d file(s) imported, %d failed:\n%v", imported, len(errs), errors.Join(errs...))
		os.Exit(1)
	}
	fmt.Printf("%d file(s) imported\n", imported)
}
