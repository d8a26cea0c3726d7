package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	log "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/namsral/flag"

	"github.com/insartools/sarcut"
	"github.com/insartools/sarcut/boundary"
	"github.com/insartools/sarcut/cut"
	"github.com/insartools/sarcut/table"
)

const appName = "cutvelts"

const example = `Example:
  cutvelts -d vel.txt -f v -k cut.kml
  cutvelts -d vel.txt -f v -k cut_multi.kml -n f -a m
  cutvelts -d ts.txt -f t -k cut.kmz
  cutvelts -d ts.txt -f t -k cut_multi.kmz -n f -a m
`

var (
	version = "no version from LDFLAGS"

	_ = flag.String(flag.DefaultConfigFlagname, "", "path to config file")

	dataFile    = flag.String("d", "", "velocity or timeseries data file")
	dataFlag    = flag.String("f", "", "flag of data, t for timeseries data, v for velocity data")
	kmlFile     = flag.String("k", "", "kml, kmz, geojson or region db file for cutting data")
	numberFlag  = flag.String("n", "t", "first column of data is point number [t] or not [f]")
	areaFlag    = flag.String("a", "s", "cut single area [s] or cut multi area [m]")
	strategy    = flag.String("strategy", sarcut.RayCastStrategy, "Strategy to use: raycast|s2")
	workers     = flag.Int("workers", 1, "regions cut concurrently in multi area mode")
	outDir      = flag.String("outDir", ".", "output directory in multi area mode")
	metricsFile = flag.String("metricsFile", "", "write run metrics to this Prometheus textfile")
	logLevel    = flag.String("logLevel", "info", "Log level: debug|info|warn|error")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags]\ncut velocity or timeseries data using kml or kmz\n\n", appName)
		flag.PrintDefaults()
		fmt.Fprint(os.Stderr, "\n", example)
	}
	flag.Parse()

	logger := log.NewJSONLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "caller", log.Caller(5), "ts", log.DefaultTimestampUTC)
	logger = log.With(logger, "app", appName)
	logger = level.NewFilter(logger, levelOption(*logLevel))

	stdlog.SetOutput(log.NewStdlibAdapter(logger))

	versionGauge.WithLabelValues(version).Set(1)

	opts, err := options()
	if err != nil {
		level.Error(logger).Log("msg", "invalid flags", "error", err)
		flag.Usage()
		os.Exit(2)
	}

	data, err := filepath.Abs(*dataFile)
	if err != nil || !isFile(data) {
		level.Error(logger).Log("msg", "cannot find data file", "data_file", *dataFile)
		os.Exit(2)
	}
	kml, err := filepath.Abs(*kmlFile)
	if err != nil || !isFile(kml) {
		level.Error(logger).Log("msg", "cannot find boundary file", "kml", *kmlFile)
		os.Exit(2)
	}

	level.Info(logger).Log("msg", "Starting app", "version", version)

	rs, err := boundary.Load(kml)
	if err != nil {
		level.Error(logger).Log("msg", "failed to load boundary", "error", err, "kml", kml)
		os.Exit(2)
	}
	level.Info(logger).Log("msg", "read boundary", "region_count", len(rs), "kml", kml)

	if !opts.Multi && len(rs) > 1 {
		level.Warn(logger).Log(
			"msg", "several regions in single area mode, the last non empty one is written",
			"region_count", len(rs),
		)
	}

	fmt.Println("loading...")
	m, err := table.LoadFile(data)
	if err != nil {
		level.Error(logger).Log("msg", "failed to load data", "error", err, "data_file", data)
		os.Exit(2)
	}
	rows, cols := m.Dims()
	level.Info(logger).Log("msg", "read data", "rows", rows, "cols", cols, "kind", opts.Kind)

	cutter, err := cut.New(logger, opts)
	if err != nil {
		level.Error(logger).Log("msg", "invalid options", "error", err)
		os.Exit(2)
	}
	cutter.OnProgress = func(done, total int, rep cut.Report) {
		recordReport(rep)
		if opts.Multi {
			fmt.Printf("\rProcessing: %d/%d", done, total)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	_, err = cutter.Run(ctx, rs, m, data)
	if err != nil {
		errorCounter.Inc()
		level.Error(logger).Log("msg", "failed to cut data", "error", err)
		if merr := writeMetrics(*metricsFile); merr != nil {
			level.Error(logger).Log("msg", "failed to write metrics", "error", merr)
		}
		os.Exit(2)
	}

	if opts.Multi {
		fmt.Printf("\rProcessed: %d/%d, enjoy it.\n", len(rs), len(rs))
	} else {
		fmt.Println("all done, enjoy it.")
	}

	if err := writeMetrics(*metricsFile); err != nil {
		level.Error(logger).Log("msg", "failed to write metrics", "error", err, "metrics_file", *metricsFile)
		os.Exit(2)
	}
}

// options validates the one letter flags and builds the cut options
func options() (cut.Options, error) {
	opts := cut.Options{
		Strategy: *strategy,
		Workers:  *workers,
		OutDir:   *outDir,
	}

	if *dataFile == "" || *dataFlag == "" || *kmlFile == "" {
		return opts, fmt.Errorf("-d, -f and -k are required")
	}

	kind, err := table.ParseKind(*dataFlag)
	if err != nil {
		return opts, err
	}
	opts.Kind = kind

	switch strings.ToLower(*numberFlag) {
	case "t":
		opts.HasIndexColumn = true
	case "f":
	default:
		return opts, fmt.Errorf("error number_flag, first column of data is point number [t] or not [f]")
	}

	switch strings.ToLower(*areaFlag) {
	case "s":
	case "m":
		opts.Multi = true
	default:
		return opts, fmt.Errorf("error area_flag, cut single area [s] or cut multi area [m]")
	}

	return opts, nil
}

func levelOption(l string) level.Option {
	switch strings.ToLower(l) {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	}
	return level.AllowInfo()
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
