package orrery

import (
	"bytes"
	"encoding/csv"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestTracer(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewTracer(&buf)
	sim := NewSimulation(DefaultConfig(), SolarSystem(), nil)
	sim.Initialize(PhaseZero, testEpoch)
	for frame := uint64(0); frame < 3; frame++ {
		sim.Step(0.1)
		tracer.Record(frame, float64(frame)/60, sim.Bodies(), sim.Solutions())
	}
	if err := tracer.Close(); err != nil {
		t.Fatal(err)
	}
	if tracer.Rows() != 27 {
		t.Fatalf("%d rows written", tracer.Rows())
	}
	out := buf.String()
	if !strings.HasPrefix(out, "# Creation date (UTC): ") {
		t.Fatalf("missing creation date in %q", out)
	}
	var body []string
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "#") {
			body = append(body, line)
		}
	}
	records, err := csv.NewReader(strings.NewReader(strings.Join(body, "\n"))).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 28 {
		t.Fatalf("%d records", len(records))
	}
	if strings.Join(records[0], ",") != "frame,time,name,M,nu,x,y,r,iterations,converged" {
		t.Fatalf("unexpected header %v", records[0])
	}
	if records[1][0] != "0" || records[1][2] != "Mercury" || records[1][9] != "true" {
		t.Fatalf("unexpected first row %v", records[1])
	}
	if records[27][0] != "2" || records[27][2] != "Pluto" {
		t.Fatalf("unexpected last row %v", records[27])
	}
}

type failingWriter struct {
	closed bool
}

func (*failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func (w *failingWriter) Close() error {
	w.closed = true
	return nil
}

func TestTracerError(t *testing.T) {
	tracer := NewTracer(&failingWriter{})
	if tracer.Err() == nil {
		t.Fatal("header write error not reported")
	}
	w := &failingWriter{}
	if tracer, err := newOwningTracer(w); err == nil || tracer != nil {
		t.Fatalf("tracer returned (%v) despite the header error", err)
	}
	if !w.closed {
		t.Fatal("file left open after the header error")
	}
	if _, err := CreateTracer(filepath.Join(t.TempDir(), "missing", "trace.csv")); err == nil {
		t.Fatal("trace created in a missing directory")
	}
	path := filepath.Join(t.TempDir(), "trace.csv")
	tracer, err := CreateTracer(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := tracer.Close(); err != nil {
		t.Fatal(err)
	}
}
