package orrery

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

var traceHeader = []string{"frame", "time", "name", "M", "nu", "x", "y", "r", "iterations", "converged"}

// Tracer streams the state of every body at every frame as CSV, for plotting
// and diagnostics. Traces are written only, never read back.
type Tracer struct {
	w      *csv.Writer
	closer io.Closer
	rows   uint64
	err    error
}

// NewTracer returns a tracer writing to w, and writes the header.
func NewTracer(w io.Writer) *Tracer {
	t := &Tracer{w: csv.NewWriter(w)}
	if _, err := fmt.Fprintf(w, `# Creation date (UTC): %s
# Records are one body per line, all angles in degrees.
#   time is the host time in seconds, M the mean anomaly, nu the true anomaly
#   x, y and r are in world units, the star being at the origin
`, time.Now().UTC()); err != nil {
		t.err = err
		return t
	}
	t.write(traceHeader)
	return t
}

// CreateTracer creates (or truncates) the file at path and returns a tracer
// writing to it. The tracer must be closed.
func CreateTracer(path string) (*Tracer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating trace: %w", err)
	}
	return newOwningTracer(f)
}

// newOwningTracer returns a tracer which closes wc on Close. If the header
// cannot be written, wc is closed right away.
func newOwningTracer(wc io.WriteCloser) (*Tracer, error) {
	t := NewTracer(wc)
	if t.err != nil {
		wc.Close()
		return nil, fmt.Errorf("writing trace header: %w", t.err)
	}
	t.closer = wc
	return t, nil
}

func (t *Tracer) write(record []string) {
	if t.err != nil {
		return
	}
	if err := t.w.Write(record); err != nil {
		t.err = err
	}
}

// Record writes one row per body. The solutions are matched to the bodies by index.
func (t *Tracer) Record(frame uint64, now float64, bodies []Body, sols []KeplerSolution) {
	for i, b := range bodies {
		var sol KeplerSolution
		if i < len(sols) {
			sol = sols[i]
		}
		p := b.Position()
		t.write([]string{
			strconv.FormatUint(frame, 10),
			strconv.FormatFloat(now, 'f', 6, 64),
			b.Name,
			strconv.FormatFloat(Rad2deg(b.m), 'f', 6, 64),
			strconv.FormatFloat(Rad2deg(b.ν), 'f', 6, 64),
			strconv.FormatFloat(p.X, 'f', 6, 64),
			strconv.FormatFloat(p.Y, 'f', 6, 64),
			strconv.FormatFloat(b.RNorm(), 'f', 6, 64),
			strconv.Itoa(sol.Iterations),
			strconv.FormatBool(sol.Converged),
		})
		t.rows++
	}
}

// Rows returns the number of body rows written so far.
func (t *Tracer) Rows() uint64 {
	return t.rows
}

// Err returns the first write error, if any.
func (t *Tracer) Err() error {
	if t.err != nil {
		return t.err
	}
	return t.w.Error()
}

// Close flushes the trace and closes the underlying file if the tracer owns it.
func (t *Tracer) Close() error {
	t.w.Flush()
	err := t.Err()
	if t.closer != nil {
		if cerr := t.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
