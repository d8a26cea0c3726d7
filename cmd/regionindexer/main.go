package main

import (
	"os"
	"path/filepath"

	log "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/namsral/flag"

	"github.com/insartools/sarcut/boundary"
	"github.com/insartools/sarcut/storage/bbolt"
)

const appName = "regionindexer"

var (
	version = "no version from LDFLAGS"

	filePath = flag.String("filePath", "", "kml, kmz or geojson boundary file to index")
	dbPath   = flag.String("dbPath", "regions.db", "Database path")
)

func main() {
	flag.Parse()

	logger := log.NewJSONLogger(log.NewSyncWriter(os.Stdout))
	logger = log.With(logger, "caller", log.Caller(5), "ts", log.DefaultTimestampUTC)
	logger = log.With(logger, "app", appName)
	logger = level.NewFilter(logger, level.AllowAll())

	if *filePath == "" {
		level.Error(logger).Log("msg", "filePath is required")
		os.Exit(2)
	}
	if filepath.Ext(*filePath) == ".db" {
		level.Error(logger).Log("msg", "filePath is already a region db", "file_path", *filePath)
		os.Exit(2)
	}

	rs, err := boundary.Load(*filePath)
	if err != nil {
		level.Error(logger).Log("msg", "failed to load boundary", "error", err, "file_path", *filePath)
		os.Exit(2)
	}

	storage, clean, err := bbolt.NewStorage(*dbPath, logger)
	if err != nil {
		level.Error(logger).Log("msg", "failed to open storage", "error", err, "db_path", *dbPath)
		os.Exit(2)
	}

	err = storage.Index(rs, filepath.Base(*filePath), version)
	if err != nil {
		clean()
		level.Error(logger).Log("msg", "failed to index regions", "error", err, "db_path", *dbPath)
		os.Exit(2)
	}

	if err := clean(); err != nil {
		level.Error(logger).Log("msg", "failed to close storage", "error", err, "db_path", *dbPath)
		os.Exit(2)
	}

	level.Info(logger).Log("msg", "indexed regions", "region_count", len(rs), "db_path", *dbPath)
}
