package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the index serves but the source is unreachable.
	Degraded Status = "degraded"
	// Unhealthy indicates no index is loaded.
	Unhealthy Status = "error"
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
	index  IndexChecker
	source SourceChecker
}

// New creates a Service. source can be nil when the driver has nothing to probe.
func New(index IndexChecker, source SourceChecker) *Service {
	return &Service{index: index, source: source}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)

	checks["index"] = CheckOK
	if !s.index.Ready() {
		checks["index"] = CheckError
	}

	if s.source != nil {
		if err := s.source.Check(ctx); err != nil {
			checks["source"] = CheckError
		} else {
			checks["source"] = CheckOK
		}
	}

	status := Healthy
	switch {
	case checks["index"] == CheckError:
		status = Unhealthy
	case checks["source"] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
