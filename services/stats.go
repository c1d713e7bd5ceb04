package services

import (
	"fmt"
	"time"

	"report-triage-service/models"
)

// ComputeStats derives aggregate statistics from a report snapshot in a
// single pass. Pure function, no I/O. The "today" bucket counts reports
// created on or after midnight in now's location, which carries the
// operator's reference timezone.
//
// Stored severities are normalized case-insensitively before bucketing.
// A report whose severity or status is truly unrecognized is a
// data-integrity fault: the call aborts instead of silently miscounting.
// For well-formed input, Total == Pending+Fixed == Low+Medium+High
// always holds.
func ComputeStats(reports []models.Report, now time.Time) (*models.AggregateStats, error) {
	stats := &models.AggregateStats{}

	year, month, day := now.Date()
	startOfDay := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	for i := range reports {
		r := &reports[i]
		stats.Total++

		severity, err := models.ParseSeverity(string(r.Severity))
		if err != nil {
			return nil, fmt.Errorf("%w: report %d has severity %q", models.ErrDataIntegrity, r.Seq, r.Severity)
		}
		switch severity {
		case models.SeverityLow:
			stats.Low++
		case models.SeverityMedium:
			stats.Medium++
		case models.SeverityHigh:
			stats.High++
		}

		switch r.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusFixed:
			stats.Fixed++
		default:
			return nil, fmt.Errorf("%w: report %d has status %q", models.ErrDataIntegrity, r.Seq, r.Status)
		}

		if !r.CreatedAt.In(now.Location()).Before(startOfDay) {
			stats.Today++
		}
	}

	return stats, nil
}
