package main

import (
	"fmt"
	"os"

	log "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/namsral/flag"

	"github.com/insartools/sarcut"
	"github.com/insartools/sarcut/storage/bbolt"
)

const appName = "regioninfo"

var dbPath = flag.String("dbPath", "regions.db", "Database path")

func main() {
	flag.Parse()

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "app", appName)

	if _, err := os.Stat(*dbPath); err != nil {
		level.Error(logger).Log("msg", "can't find db", "error", err, "db_path", *dbPath)
		os.Exit(2)
	}

	storage, clean, err := bbolt.NewROStorage(*dbPath, logger)
	if err != nil {
		level.Error(logger).Log("msg", "failed to open storage", "error", err, "db_path", *dbPath)
		os.Exit(2)
	}
	defer clean()

	infos, err := storage.LoadIndexInfos()
	if err != nil {
		level.Error(logger).Log("msg", "failed to read infos", "error", err)
		os.Exit(2)
	}
	fmt.Print(infos)

	err = storage.LoadAllRegions(func(r *sarcut.Region) error {
		if r.Degenerate() {
			fmt.Printf("%d\t%s\tdegenerate\n", r.ID, r)
			return nil
		}
		fmt.Printf("%d\t%s\n", r.ID, r)
		return nil
	})
	if err != nil {
		level.Error(logger).Log("msg", "failed to read regions", "error", err)
		os.Exit(2)
	}
}
