package health

import (
	"context"

	"github.com/kailas-cloud/knowhub/internal/db"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the database answers but searches fail.
	Degraded Status = "degraded"
	// Unhealthy indicates the database is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckSkipped indicates a check that did not run.
	CheckSkipped CheckResult = "skipped"
)

// probeTable is counted to verify migrations were applied.
const probeTable = "users"

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db    DBPinger
	probe Counter
}

// New creates a Service. probe can be nil.
func New(db DBPinger, probe Counter) *Service {
	return &Service{db: db, probe: probe}
}

// Check pings the database, then probes the search path.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		if s.probe != nil {
			checks["search"] = CheckSkipped
		}
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks["database"] = CheckOK

	status := Healthy
	if s.probe != nil {
		q := db.From(probeTable).Window(0, 1).MustBuild()
		if _, err := s.probe.Count(ctx, q); err != nil {
			checks["search"] = CheckError
			status = Degraded
		} else {
			checks["search"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
