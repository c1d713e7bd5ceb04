package services

import (
	"fmt"
	"strings"

	"report-triage-service/models"
)

// SeverityFilterAll passes every report regardless of severity.
const SeverityFilterAll = "all"

// FilterReports narrows a report snapshot for the triage dashboard.
// The input arrives in the store's newest-first order and that order is
// preserved; the snapshot itself is never mutated, so the filter is safe
// to re-run on every dashboard refresh.
//
// severityFilter is "all" or one of the three levels, case-insensitive;
// anything else is a validation error. The comparison against each
// report's stored severity is case-insensitive on both sides. A
// non-empty search term matches case-insensitively against location and
// submitter id. Both predicates are conjunctive. The full filtered
// result is returned; windowing is a presentation concern.
func FilterReports(reports []models.Report, severityFilter, searchTerm string) ([]models.Report, error) {
	filter := strings.ToLower(strings.TrimSpace(severityFilter))
	if filter == "" {
		filter = SeverityFilterAll
	}
	if filter != SeverityFilterAll {
		if _, err := models.ParseSeverity(filter); err != nil {
			return nil, fmt.Errorf("%w: unknown severity filter %q", models.ErrValidation, severityFilter)
		}
	}

	term := strings.ToLower(strings.TrimSpace(searchTerm))

	result := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		if filter != SeverityFilterAll && strings.ToLower(string(r.Severity)) != filter {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(r.Location), term) &&
			!strings.Contains(strings.ToLower(r.SubmitterID), term) {
			continue
		}
		result = append(result, r)
	}

	return result, nil
}
