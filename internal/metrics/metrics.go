// Package metrics exposes editor activity as OpenTelemetry instruments.
package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/sinbaddoraji/Dream/internal/metrics"

// History operations recorded by Command.
const (
	OpExecute = "execute"
	OpUndo    = "undo"
	OpRedo    = "redo"
)

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Recorder holds the editor's instruments. A nil *Recorder records nothing.
type Recorder struct {
	commands   metric.Int64Counter
	actions    metric.Int64Counter
	selections metric.Int64Counter
	snapshots  metric.Int64Counter
	objects    metric.Int64ObservableGauge
}

// New creates the instruments on the global meter provider (no-op unless the
// program installs one). objectCount is polled for the object gauge and may be nil.
func New(objectCount func() int) (*Recorder, error) {
	return NewWithMeter(meter(), objectCount)
}

// NewWithMeter creates the instruments on m.
func NewWithMeter(m metric.Meter, objectCount func() int) (*Recorder, error) {
	r := &Recorder{}
	var err error

	r.commands, err = m.Int64Counter(
		"editor.history.commands",
		metric.WithDescription("History commands executed, undone and redone"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating commands counter: %w", err)
	}

	r.actions, err = m.Int64Counter(
		"editor.drawlog.actions",
		metric.WithDescription("Actions appended to the draw log"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating actions counter: %w", err)
	}

	r.selections, err = m.Int64Counter(
		"editor.selection.changes",
		metric.WithDescription("Selection changes"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating selections counter: %w", err)
	}

	r.snapshots, err = m.Int64Counter(
		"editor.storage.snapshots",
		metric.WithDescription("Project snapshots written or skipped"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating snapshots counter: %w", err)
	}

	r.objects, err = m.Int64ObservableGauge(
		"editor.canvas.objects",
		metric.WithDescription("Objects on the canvas"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating objects gauge: %w", err)
	}

	if objectCount != nil {
		_, err = m.RegisterCallback(
			func(ctx context.Context, o metric.Observer) error {
				o.ObserveInt64(r.objects, int64(objectCount()))
				return nil
			},
			r.objects,
		)
		if err != nil {
			return nil, fmt.Errorf("registering objects callback: %w", err)
		}
	}

	return r, nil
}

// Command records a history operation (OpExecute, OpUndo or OpRedo).
func (r *Recorder) Command(ctx context.Context, op, description string) {
	if r == nil {
		return
	}
	r.commands.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("command", description),
	))
}

// Action records a draw log entry of the given type.
func (r *Recorder) Action(ctx context.Context, actionType string) {
	if r == nil {
		return
	}
	r.actions.Add(ctx, 1, metric.WithAttributes(attribute.String("type", actionType)))
}

// Selection records a selection change of size n.
func (r *Recorder) Selection(ctx context.Context, n int) {
	if r == nil {
		return
	}
	r.selections.Add(ctx, 1, metric.WithAttributes(attribute.Bool("empty", n == 0)))
}

// Snapshot records a snapshot attempt; saved is false for skipped duplicates.
func (r *Recorder) Snapshot(ctx context.Context, saved bool) {
	if r == nil {
		return
	}
	result := "skipped"
	if saved {
		result = "saved"
	}
	r.snapshots.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
