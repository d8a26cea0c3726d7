// Package table reads and writes whitespace delimited numeric tables,
// the velocity and time series exports of InSAR processors.
package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Kind of rows held by a table
type Kind int

const (
	// Velocity tables are flat, every row is a point
	Velocity Kind = iota
	// TimeSeries tables start with a header row holding the dates
	TimeSeries
)

// ErrFormat is returned for tables that are not fully numeric and rectangular
var ErrFormat = errors.New("invalid table format")

// ParseKind accepts the short flags "v" and "t" or the long names
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "v", "vel", "velocity":
		return Velocity, nil
	case "t", "ts", "timeseries":
		return TimeSeries, nil
	}
	return Velocity, errors.Errorf("unknown data kind %q, t for timeseries data, v for velocity data", s)
}

func (k Kind) String() string {
	if k == TimeSeries {
		return "timeseries"
	}
	return "velocity"
}

// Suffix used to name per region outputs
func (k Kind) Suffix() string {
	if k == TimeSeries {
		return "ts"
	}
	return "vel"
}

// Load reads a whitespace delimited table,
// empty lines and # comments are skipped
func Load(r io.Reader) (*mat.Dense, error) {
	var (
		data []float64
		cols int
		rows int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	var lineNum int
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if rows == 0 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, errors.Wrapf(ErrFormat, "line %d: got %d columns, expected %d", lineNum, len(fields), cols)
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, errors.Wrapf(ErrFormat, "line %d: can't parse %q", lineNum, f)
			}
			data = append(data, v)
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "can't read table")
	}
	if rows == 0 {
		return nil, errors.Wrap(ErrFormat, "empty table")
	}

	return mat.NewDense(rows, cols, data), nil
}

// LoadFile reads the table at path
func LoadFile(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "can't load table %s", path)
	}
	return m, nil
}

// Write writes rows, values formatted with %4f and space separated
func Write(w io.Writer, rows [][]float64) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(bw, "%4f", v); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes rows to path, truncating any existing file
func WriteFile(path string, rows [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, rows); err != nil {
		f.Close()
		return errors.Wrapf(err, "can't write table %s", path)
	}
	return f.Close()
}

// Rows returns a row view for every row of m, no copy is done
func Rows(m mat.RawMatrixer) [][]float64 {
	raw := m.RawMatrix()
	rows := make([][]float64, raw.Rows)
	for i := range rows {
		rows[i] = raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
	}
	return rows
}
