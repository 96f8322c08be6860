// Package sinks implements the sampler's observation sinks: pure readers
// of lattice state that append or write periodic snapshots of the
// sampler's progress. None of them mutate what they observe.
package sinks

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/DavidAllison/sixvertex-sim/sim"
)

// VolumeSink appends the current lattice volume to a per-run log file on
// every Emit call.
type VolumeSink struct {
	path string
	f    *os.File
	w    *bufio.Writer
}

// NewVolumeSink opens (creating if necessary) the append-mode log at path.
func NewVolumeSink(path string) (*VolumeSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("sinks: opening volume log %q: %w", path, err)
	}
	return &VolumeSink{path: path, f: f, w: bufio.NewWriter(f)}, nil
}

// Emit writes one "label flipCount volume" line and flushes it, so the
// file always reflects every completed emission even if the process exits
// before Close.
func (s *VolumeSink) Emit(label string, flipCount int64, lat *sim.Lattice) error {
	if _, err := fmt.Fprintf(s.w, "%s %d %d\n", label, flipCount, lat.Volume); err != nil {
		return fmt.Errorf("sinks: writing volume log %q: %w", s.path, err)
	}
	return s.w.Flush()
}

// Close flushes and closes the underlying file.
func (s *VolumeSink) Close() error {
	if err := s.w.Flush(); err != nil {
		return err
	}
	return s.f.Close()
}

// WeightSink appends the lattice's total configuration weight, rendered as
// the symbolic product w0^n0 * w1^n1 * ... * w5^n5, to a per-run log file.
type WeightSink struct {
	path string
	f    *os.File
	w    *bufio.Writer
}

// NewWeightSink opens (creating if necessary) the append-mode log at path.
func NewWeightSink(path string) (*WeightSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("sinks: opening weight log %q: %w", path, err)
	}
	return &WeightSink{path: path, f: f, w: bufio.NewWriter(f)}, nil
}

// TotalWeightExpr renders lat's vertex-type tally as the symbolic product
// w0^n0 * w1^n1 * ... * w5^n5, where wN is the weight of vertex type N and
// nN is the number of cells of that type.
func TotalWeightExpr(lat *sim.Lattice) string {
	counts := lat.CountByType()
	terms := make([]string, len(counts))
	for i, n := range counts {
		terms[i] = fmt.Sprintf("w%d^%d", i, n)
	}
	return strings.Join(terms, "*")
}

// Emit writes one "label flipCount expr" line and flushes it.
func (s *WeightSink) Emit(label string, flipCount int64, lat *sim.Lattice) error {
	if _, err := fmt.Fprintf(s.w, "%s %d %s\n", label, flipCount, TotalWeightExpr(lat)); err != nil {
		return fmt.Errorf("sinks: writing weight log %q: %w", s.path, err)
	}
	return s.w.Flush()
}

// Close flushes and closes the underlying file.
func (s *WeightSink) Close() error {
	if err := s.w.Flush(); err != nil {
		return err
	}
	return s.f.Close()
}

// SnapshotSink writes the lattice's digit-string encoding (sim.Lattice.Snapshot,
// the exact inverse of sim.ParseLattice) to a fresh file per emission, named
// by label and flip count, inside dir.
type SnapshotSink struct {
	dir string
}

// NewSnapshotSink returns a SnapshotSink writing into dir, which must
// already exist.
func NewSnapshotSink(dir string) *SnapshotSink {
	return &SnapshotSink{dir: dir}
}

// Emit writes the snapshot file and returns its path.
func (s *SnapshotSink) Emit(label string, flipCount int64, lat *sim.Lattice) (string, error) {
	path := fmt.Sprintf("%s/%s-%012d.snap", s.dir, label, flipCount)
	if err := os.WriteFile(path, []byte(lat.Snapshot()), 0644); err != nil {
		return "", fmt.Errorf("sinks: writing snapshot %q: %w", path, err)
	}
	return path, nil
}
