// Package flightlog persists flight records as a CSV table, one row per
// step, and reads such tables back for analysis.
package flightlog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/flight"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/geo"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/schedule"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/weather"
)

// Header is the column layout of a flight log.
var Header = []string{
	"Step", "Latitude", "Longitude", "Altitude(ft)", "ClimbRate(ft/min)",
	"WindEffect", "Turbulence", "Weather",
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// Row formats a record in Header order.
func Row(r flight.Record) []string {
	return []string{
		strconv.Itoa(r.Step),
		formatFloat(r.Position.Lat),
		formatFloat(r.Position.Lon),
		formatFloat(r.Altitude),
		formatFloat(r.ClimbRate),
		formatFloat(r.Wind),
		formatFloat(r.Turbulence),
		r.Weather.String(),
	}
}

// Writer is a flight.Observer appending one row per record. Write errors
// do not interrupt the flight; the first one is kept and returned by Close.
type Writer struct {
	f    *os.File
	buf  *bufio.Writer
	csv  *csv.Writer
	rows int
	err  error
}

// Create truncates or creates path, creating its directory if needed, and
// writes the header row.
func Create(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("flight log: cannot create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("flight log: cannot open %s: %w", path, err)
	}

	bw := bufio.NewWriter(f)
	w := &Writer{f: f, buf: bw, csv: csv.NewWriter(bw)}
	if err := w.csv.Write(Header); err != nil {
		f.Close()
		return nil, fmt.Errorf("flight log: cannot write header: %w", err)
	}
	return w, nil
}

func (w *Writer) Observe(r flight.Record) {
	if w.err != nil {
		return
	}
	if err := w.csv.Write(Row(r)); err != nil {
		w.err = fmt.Errorf("flight log: step %d: %w", r.Step, err)
		return
	}
	w.rows++
}

// Rows returns the number of data rows written, excluding the header.
func (w *Writer) Rows() int { return w.rows }

func (w *Writer) Path() string { return w.f.Name() }

// Close flushes the log and closes the file.
func (w *Writer) Close() error {
	w.csv.Flush()
	err := errors.Join(w.err, w.csv.Error(), w.buf.Flush(), w.f.Close())
	if err != nil {
		return fmt.Errorf("flight log %s: %w", w.f.Name(), err)
	}
	return nil
}

// ErrBadHeader is returned by Read when the table does not start with
// Header.
var ErrBadHeader = errors.New("unexpected flight log header")

// Read loads a flight log. The setpoint and phase of each record are
// recomputed from sched using the number of rows as the flight length;
// the controller output is not persisted and is left zero.
func Read(r io.Reader, sched schedule.Schedule) ([]flight.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	hdr, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("flight log: header: %w", err)
	}
	for i := range Header {
		if hdr[i] != Header[i] {
			return nil, fmt.Errorf("column %d is %q: %w", i+1, hdr[i], ErrBadHeader)
		}
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("flight log: %w", err)
	}

	recs := make([]flight.Record, len(rows))
	for i, row := range rows {
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("flight log: row %d: %w", i+2, err)
		}
		if sched != nil {
			rec.Setpoint = sched.Setpoint(rec.Step-1, len(rows))
			rec.Phase = sched.Phase(rec.Step-1, len(rows))
		}
		recs[i] = rec
	}
	return recs, nil
}

// ReadFile is Read for a named file.
func ReadFile(path string, sched schedule.Schedule) ([]flight.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(bufio.NewReader(f), sched)
}

func parseRow(row []string) (flight.Record, error) {
	var r flight.Record
	var err error
	if r.Step, err = strconv.Atoi(row[0]); err != nil {
		return r, err
	}

	vals := make([]float64, 6)
	for i := range vals {
		if vals[i], err = strconv.ParseFloat(row[i+1], 64); err != nil {
			return r, fmt.Errorf("%s: %w", Header[i+1], err)
		}
	}
	r.Position = geo.Point{Lat: vals[0], Lon: vals[1]}
	r.Altitude, r.ClimbRate, r.Wind, r.Turbulence = vals[2], vals[3], vals[4], vals[5]

	if r.Weather, err = weather.ParseMode(row[7]); err != nil {
		return r, err
	}
	return r, nil
}
