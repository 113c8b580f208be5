package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricOperationsTotal = "tsxmod.operations.total"
	metricEditsTotal      = "tsxmod.edits.spliced.total"
	metricIssuesTotal     = "tsxmod.parse.issues.total"
	metricOriginatedTotal = "tsxmod.files.originated.total"

	attrTemplate = "template"
)

// TransformMetrics holds OTel instruments for transformation-specific metrics.
type TransformMetrics struct {
	operationsTotal metric.Int64Counter
	editsTotal      metric.Int64Counter
	issuesTotal     metric.Int64Counter
	originatedTotal metric.Int64Counter
}

// TransformStats holds the statistics for a single executed operation,
// decoupled from catalog types.
type TransformStats struct {
	// Operation is the request type discriminator.
	Operation string
	// Succeeded reports whether the operation produced valid output.
	Succeeded bool
	// Edits is the number of edit records spliced.
	Edits int64
	// Issues is the number of syntax issues found in the input parse.
	Issues int64
	// OriginatedTemplate names the template when a new file was produced.
	OriginatedTemplate string
}

// NewTransformMetrics creates transformation metric instruments from the given meter.
func NewTransformMetrics(mt metric.Meter) (*TransformMetrics, error) {
	ops, err := mt.Int64Counter(metricOperationsTotal,
		metric.WithDescription("Total operations executed"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricOperationsTotal, err)
	}

	edits, err := mt.Int64Counter(metricEditsTotal,
		metric.WithDescription("Total edit records spliced into source"),
		metric.WithUnit("{edit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricEditsTotal, err)
	}

	issues, err := mt.Int64Counter(metricIssuesTotal,
		metric.WithDescription("Syntax issues observed in parsed input"),
		metric.WithUnit("{issue}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricIssuesTotal, err)
	}

	originated, err := mt.Int64Counter(metricOriginatedTotal,
		metric.WithDescription("New files originated by template"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricOriginatedTotal, err)
	}

	return &TransformMetrics{
		operationsTotal: ops,
		editsTotal:      edits,
		issuesTotal:     issues,
		originatedTotal: originated,
	}, nil
}

// RecordExecution records statistics for one completed operation.
// Safe to call on a nil receiver (no-op).
func (tm *TransformMetrics) RecordExecution(ctx context.Context, stats TransformStats) {
	if tm == nil {
		return
	}

	status := "ok"
	if !stats.Succeeded {
		status = statusError
	}

	tm.operationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrOp, stats.Operation),
		attribute.String(attrStatus, status),
	))

	opAttrs := metric.WithAttributes(attribute.String(attrOp, stats.Operation))
	tm.editsTotal.Add(ctx, stats.Edits, opAttrs)
	tm.issuesTotal.Add(ctx, stats.Issues, opAttrs)

	if stats.OriginatedTemplate != "" {
		tm.originatedTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String(attrTemplate, stats.OriginatedTemplate),
		))
	}
}
