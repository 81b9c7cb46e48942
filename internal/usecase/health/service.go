package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "healthy"
	// Degraded indicates the source is unreachable while a snapshot is still served.
	Degraded Status = "degraded"
	// Unhealthy indicates no snapshot can be served.
	Unhealthy Status = "unhealthy"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	catalog SnapshotChecker
	source  SourcePinger
}

// New creates a Service. source can be nil for sources without a remote backend.
func New(catalog SnapshotChecker, source SourcePinger) *Service {
	return &Service{catalog: catalog, source: source}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)

	catalogOK := s.catalog.Loaded()
	checks["catalog"] = result(catalogOK)

	sourceOK := true
	if s.source != nil {
		sourceOK = s.source.Ping(ctx) == nil
		checks["source"] = result(sourceOK)
	}

	status := Healthy
	switch {
	case !catalogOK:
		status = Unhealthy
	case !sourceOK:
		status = Degraded
	}
	return Report{Status: status, Checks: checks}
}

func result(ok bool) CheckResult {
	if ok {
		return CheckOK
	}
	return CheckError
}
