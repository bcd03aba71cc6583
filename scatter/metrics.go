package scatter

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("github.com/royalcat/geoscatter/scatter")

type metrics struct {
	candidatesSampled metric.Int64Counter
	pointsAccepted    metric.Int64Counter
	roundsRun         metric.Int64Counter
	overlapViolations metric.Int64Counter
}

func newMetrics() (*metrics, error) {
	candidatesSampled, err := meter.Int64Counter("candidates_sampled_total")
	if err != nil {
		return nil, err
	}
	pointsAccepted, err := meter.Int64Counter("points_accepted_total")
	if err != nil {
		return nil, err
	}
	roundsRun, err := meter.Int64Counter("rounds_total")
	if err != nil {
		return nil, err
	}
	overlapViolations, err := meter.Int64Counter("overlap_violations_total")
	if err != nil {
		return nil, err
	}

	return &metrics{
		candidatesSampled: candidatesSampled,
		pointsAccepted:    pointsAccepted,
		roundsRun:         roundsRun,
		overlapViolations: overlapViolations,
	}, nil
}
