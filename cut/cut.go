// Package cut selects the rows of velocity and time series tables falling
// inside regions, and writes one filtered table per region.
package cut

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	log "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/insartools/sarcut"
	"github.com/insartools/sarcut/index/raycast"
	"github.com/insartools/sarcut/index/s2index"
	"github.com/insartools/sarcut/table"
)

// Options for a cut run
type Options struct {
	// HasIndexColumn first column is the point number, lng lat are columns 1 and 2,
	// otherwise lng lat are columns 0 and 1
	HasIndexColumn bool

	// Kind of the table, time series tables keep their first row as header
	Kind table.Kind

	// Multi writes one file per region into OutDir,
	// otherwise a single <data>_cut.txt next to the data file
	Multi bool

	// Strategy used for the exact containment test: raycast or s2
	Strategy string

	// Workers regions processed concurrently in multi mode
	Workers int

	OutDir string
}

// Report of one region
type Report struct {
	Region string

	// Candidates data rows tested, time series header excluded
	Candidates int

	// Prefiltered rows inside the region bounding box
	Prefiltered int

	// Selected rows inside the region
	Selected int

	// File written, empty if nothing was selected
	File string
}

type regionIndex interface {
	sarcut.Index
	sarcut.BBoxFilter
}

// Cutter cuts tables by regions
type Cutter struct {
	opts   Options
	logger log.Logger

	// OnProgress is called after each region is done
	OnProgress func(done, total int, rep Report)
}

// New returns a Cutter, opts are validated
func New(logger log.Logger, opts Options) (*Cutter, error) {
	switch opts.Strategy {
	case "":
		opts.Strategy = sarcut.RayCastStrategy
	case sarcut.RayCastStrategy, sarcut.S2Strategy:
	default:
		return nil, errors.Errorf("unknown strategy %q", opts.Strategy)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}

	return &Cutter{
		opts:   opts,
		logger: log.With(logger, "component", "cutter"),
	}, nil
}

func (c *Cutter) newIndex(r *sarcut.Region) regionIndex {
	if c.opts.Strategy == sarcut.S2Strategy {
		return s2index.New(r)
	}
	return raycast.New(r)
}

// lngLatColumns returns the lng and lat column offsets in the table
func (c *Cutter) lngLatColumns() (int, int) {
	if c.opts.HasIndexColumn {
		return 1, 2
	}
	// a point number is implied in front of the table and never written
	return 0, 1
}

// Select returns the rows of m inside region r, in table order.
// Time series tables get their header row first.
// The returned rows are views on m.
func (c *Cutter) Select(r *sarcut.Region, m *mat.Dense) ([][]float64, Report, error) {
	rep := Report{Region: r.Name}

	lngCol, latCol := c.lngLatColumns()
	_, cols := m.Dims()
	if cols <= latCol {
		return nil, rep, errors.Wrapf(table.ErrFormat, "table has %d columns, lng lat expected in columns %d and %d", cols, lngCol, latCol)
	}

	rows := table.Rows(m)
	var header []float64
	if c.opts.Kind == table.TimeSeries {
		header, rows = rows[0], rows[1:]
	}
	rep.Candidates = len(rows)

	idx := c.newIndex(r)

	// prefilter the whole table first, the exact test only runs on the survivors
	pool := make([]int, 0, len(rows))
	for i, row := range rows {
		if idx.MayContain(row[lngCol], row[latCol]) {
			pool = append(pool, i)
		}
	}
	rep.Prefiltered = len(pool)

	var out [][]float64
	if header != nil {
		out = append(out, header)
	}
	for _, i := range pool {
		if idx.Contains(rows[i][lngCol], rows[i][latCol]) {
			out = append(out, rows[i])
			rep.Selected++
		}
	}

	return out, rep, nil
}

// OutputPath returns the file written for region r when cutting dataPath
func (c *Cutter) OutputPath(r *sarcut.Region, dataPath string) string {
	if !c.opts.Multi {
		return strings.TrimSuffix(dataPath, filepath.Ext(dataPath)) + "_cut.txt"
	}
	name := strings.NewReplacer("/", "_", `\`, "_").Replace(r.Name)
	return filepath.Join(c.opts.OutDir, name+"-"+c.opts.Kind.Suffix()+".txt")
}

// cutRegion selects and writes the rows of region r, nothing is written for an empty selection
func (c *Cutter) cutRegion(r *sarcut.Region, m *mat.Dense, dataPath string) (Report, error) {
	rows, rep, err := c.Select(r, m)
	if err != nil {
		return rep, err
	}

	if rep.Selected == 0 {
		level.Debug(c.logger).Log("msg", "no row selected, skipping output", "region", r.Name)
		return rep, nil
	}

	path := c.OutputPath(r, dataPath)
	if err := table.WriteFile(path, rows); err != nil {
		return rep, err
	}
	rep.File = path

	level.Debug(c.logger).Log(
		"msg", "region cut",
		"region", r.Name,
		"prefiltered", rep.Prefiltered,
		"selected", rep.Selected,
		"file", path,
	)

	return rep, nil
}

// Run cuts table m, read from dataPath, by every region of rs.
// Reports are returned in rs order.
//
// In single mode all regions write the same file, the last region with a
// non empty selection wins, regions are then processed in order.
func (c *Cutter) Run(ctx context.Context, rs sarcut.RegionSet, m *mat.Dense, dataPath string) ([]Report, error) {
	reports := make([]Report, len(rs))

	var (
		mu   sync.Mutex
		done int
	)
	progress := func(rep Report) {
		mu.Lock()
		defer mu.Unlock()
		done++
		if c.OnProgress != nil {
			c.OnProgress(done, len(rs), rep)
		}
	}

	workers := c.opts.Workers
	if !c.opts.Multi {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, r := range rs {
		i, r := i, r
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rep, err := c.cutRegion(r, m, dataPath)
			if err != nil {
				return errors.Wrapf(err, "can't cut region %s", r.Name)
			}
			reports[i] = rep
			progress(rep)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return reports, err
	}
	if err := ctx.Err(); err != nil {
		return reports, err
	}

	level.Info(c.logger).Log(
		"msg", "cut done",
		"region_count", len(rs),
		"file_count", countFiles(reports),
	)

	return reports, nil
}

func countFiles(reports []Report) int {
	var n int
	for _, rep := range reports {
		if rep.File != "" {
			n++
		}
	}
	return n
}
