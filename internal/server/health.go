package server

import "context"

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// SourceHealthService verifies the transaction source as part of health
// checks. The memory source always reports ready; the graph source checks
// connectivity.
type SourceHealthService struct {
	Source HealthService
}

// Probe implements the HealthService interface.
func (s SourceHealthService) Probe(ctx context.Context) error {
	if s.Source == nil {
		return nil
	}
	return s.Source.Probe(ctx)
}
