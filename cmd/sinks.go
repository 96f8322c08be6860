// cmd/sinks.go
package cmd

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/DavidAllison/sixvertex-sim/sim"
	"github.com/DavidAllison/sixvertex-sim/sim/sinks"
)

// lattices names the (label, accessor) pairs every recurring emission fans
// out over: one firing per configured sink kind, per lattice, per interval.
var lattices = []struct {
	label string
	get   func(e *sim.Engine) *sim.Lattice
}{
	{"upper", func(e *sim.Engine) *sim.Lattice { return e.Upper }},
	{"lower", func(e *sim.Engine) *sim.Lattice { return e.Lower }},
}

// recurringSinkEmission adapts a sinks.*Sink's Emit call to sim.Emission,
// firing every interval flips until its sink (or the write itself) fails,
// at which point it logs and stops rescheduling rather than taking down
// the whole run — sink I/O failure is not an invariant violation.
type recurringSinkEmission struct {
	atFlip   int64
	interval int64
	label    string
	kind     string
	run      func(label string, flipCount int64, lat *sim.Lattice) error
	get      func(e *sim.Engine) *sim.Lattice
}

func (em *recurringSinkEmission) AtFlip() int64 { return em.atFlip }

func (em *recurringSinkEmission) Fire(e *sim.Engine) sim.Emission {
	now := e.FlipCompleted + e.FlipFailed
	if err := em.run(em.label, now, em.get(e)); err != nil {
		logrus.Errorf("%s sink (%s) failed at flip %d: %v", em.kind, em.label, now, err)
		return nil
	}
	return &recurringSinkEmission{
		atFlip: em.atFlip + em.interval, interval: em.interval,
		label: em.label, kind: em.kind, run: em.run, get: em.get,
	}
}

// buildSinks opens every configured sink under outDir, schedules a
// recurring emission per sink kind per lattice onto a fresh
// EmissionQueue, and returns the queue plus the close functions the caller
// must run (in any order) once the run finishes. summary gets one
// acceptance-rate sample recorded per interval, alongside the file sinks.
func buildSinks(outDir string, e *sim.Engine, summary *sinks.Summary) (*sim.EmissionQueue, []func(), error) {
	queue := sim.NewEmissionQueue()
	var closers []func()

	volumeSink, err := sinks.NewVolumeSink(filepath.Join(outDir, "volume.log"))
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, func() {
		if err := volumeSink.Close(); err != nil {
			logrus.Errorf("closing volume sink: %v", err)
		}
	})

	weightSink, err := sinks.NewWeightSink(filepath.Join(outDir, "weight.log"))
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, func() {
		if err := weightSink.Close(); err != nil {
			logrus.Errorf("closing weight sink: %v", err)
		}
	})

	snapshotDir := filepath.Join(outDir, "snapshots")
	if err := os.MkdirAll(snapshotDir, 0755); err != nil {
		return nil, nil, err
	}
	snapshotSink := sinks.NewSnapshotSink(snapshotDir)

	cdensityDir := filepath.Join(outDir, "cdensity")
	if err := os.MkdirAll(cdensityDir, 0755); err != nil {
		return nil, nil, err
	}
	cdensitySink, err := sinks.NewCDensitySink(cdensityDir, cdensityStep)
	if err != nil {
		return nil, nil, err
	}

	for _, lat := range lattices {
		queue.Schedule(&recurringSinkEmission{
			atFlip: emitEvery, interval: emitEvery, label: lat.label, kind: "volume",
			get: lat.get,
			run: func(label string, flipCount int64, l *sim.Lattice) error {
				return volumeSink.Emit(label, flipCount, l)
			},
		})
		queue.Schedule(&recurringSinkEmission{
			atFlip: emitEvery, interval: emitEvery, label: lat.label, kind: "weight",
			get: lat.get,
			run: func(label string, flipCount int64, l *sim.Lattice) error {
				return weightSink.Emit(label, flipCount, l)
			},
		})
		queue.Schedule(&recurringSinkEmission{
			atFlip: emitEvery, interval: emitEvery, label: lat.label, kind: "snapshot",
			get: lat.get,
			run: func(label string, flipCount int64, l *sim.Lattice) error {
				_, err := snapshotSink.Emit(label, flipCount, l)
				return err
			},
		})
		queue.Schedule(&recurringSinkEmission{
			atFlip: emitEvery, interval: emitEvery, label: lat.label, kind: "cdensity",
			get: lat.get,
			run: func(label string, flipCount int64, l *sim.Lattice) error {
				_, err := cdensitySink.Emit(label, flipCount, l)
				return err
			},
		})
	}

	queue.Schedule(&recurringSummaryEmission{atFlip: emitEvery, interval: emitEvery, summary: summary})

	return queue, closers, nil
}

// recurringSummaryEmission records one AcceptanceSample into the run's
// Summary every interval flips, feeding the acceptance-rate trend reported
// in matrix.end.
type recurringSummaryEmission struct {
	atFlip   int64
	interval int64
	summary  *sinks.Summary
}

func (em *recurringSummaryEmission) AtFlip() int64 { return em.atFlip }

func (em *recurringSummaryEmission) Fire(e *sim.Engine) sim.Emission {
	em.summary.Record(sinks.AcceptanceSample{FlipCompleted: e.FlipCompleted, FlipFailed: e.FlipFailed})
	return &recurringSummaryEmission{atFlip: em.atFlip + em.interval, interval: em.interval, summary: em.summary}
}
