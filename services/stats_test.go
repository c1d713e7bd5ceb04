package services

import (
	"errors"
	"testing"
	"time"

	"report-triage-service/models"
)

func mkReport(seq int64, severity models.Severity, status models.Status, createdAt time.Time) models.Report {
	return models.Report{
		Seq:         seq,
		SubmitterID: "user1",
		Location:    "Elm St",
		Severity:    severity,
		Status:      status,
		CreatedAt:   createdAt,
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats, err := ComputeStats(nil, time.Now())
	if err != nil {
		t.Fatalf("ComputeStats on empty input returned error: %v", err)
	}
	if stats.Total != 0 || stats.Pending != 0 || stats.Fixed != 0 || stats.Today != 0 {
		t.Errorf("Expected all-zero stats, got %+v", stats)
	}
}

func TestComputeStatsScenario(t *testing.T) {
	// Three fresh submissions: severities High, Low, High, all pending.
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	reports := []models.Report{
		mkReport(1, models.SeverityHigh, models.StatusPending, now.Add(-time.Hour)),
		mkReport(2, models.SeverityLow, models.StatusPending, now.Add(-2*time.Hour)),
		mkReport(3, models.SeverityHigh, models.StatusPending, now.Add(-3*time.Hour)),
	}

	stats, err := ComputeStats(reports, now)
	if err != nil {
		t.Fatalf("ComputeStats returned error: %v", err)
	}
	if stats.Total != 3 || stats.High != 2 || stats.Low != 1 || stats.Medium != 0 {
		t.Errorf("Unexpected severity counts: %+v", stats)
	}
	if stats.Pending != 3 || stats.Fixed != 0 {
		t.Errorf("Unexpected status counts: %+v", stats)
	}

	// Marking one high report fixed moves the status counts only.
	reports[0].Status = models.StatusFixed
	stats, err = ComputeStats(reports, now)
	if err != nil {
		t.Fatalf("ComputeStats returned error: %v", err)
	}
	if stats.Pending != 2 || stats.Fixed != 1 {
		t.Errorf("Expected pending=2 fixed=1, got %+v", stats)
	}
	if stats.High != 2 || stats.Low != 1 || stats.Medium != 0 {
		t.Errorf("Severity counts should be unchanged, got %+v", stats)
	}
}

func TestComputeStatsInvariant(t *testing.T) {
	// total == pending+fixed == low+medium+high over assorted sets.
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	severities := []models.Severity{models.SeverityLow, models.SeverityMedium, models.SeverityHigh}
	statuses := []models.Status{models.StatusPending, models.StatusFixed}

	var reports []models.Report
	seq := int64(1)
	for i := 0; i < 31; i++ {
		reports = append(reports, mkReport(seq,
			severities[(i*7)%3], statuses[(i*5)%2],
			now.Add(-time.Duration(i*13)*time.Hour)))
		seq++

		stats, err := ComputeStats(reports, now)
		if err != nil {
			t.Fatalf("ComputeStats returned error at n=%d: %v", len(reports), err)
		}
		if stats.Total != len(reports) {
			t.Errorf("Total = %d, want %d", stats.Total, len(reports))
		}
		if stats.Total != stats.Pending+stats.Fixed {
			t.Errorf("Total %d != pending %d + fixed %d", stats.Total, stats.Pending, stats.Fixed)
		}
		if stats.Total != stats.Low+stats.Medium+stats.High {
			t.Errorf("Total %d != low %d + medium %d + high %d", stats.Total, stats.Low, stats.Medium, stats.High)
		}
	}
}

func TestComputeStatsTodayBucket(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 6, 10, 8, 30, 0, 0, loc)
	midnight := time.Date(2025, 6, 10, 0, 0, 0, 0, loc)

	reports := []models.Report{
		mkReport(1, models.SeverityLow, models.StatusPending, now),
		mkReport(2, models.SeverityLow, models.StatusPending, midnight),
		mkReport(3, models.SeverityLow, models.StatusPending, midnight.Add(-time.Second)),
		mkReport(4, models.SeverityLow, models.StatusPending, midnight.Add(-24*time.Hour)),
	}

	stats, err := ComputeStats(reports, now)
	if err != nil {
		t.Fatalf("ComputeStats returned error: %v", err)
	}
	if stats.Today != 2 {
		t.Errorf("Today = %d, want 2 (on-or-after local midnight)", stats.Today)
	}
}

func TestComputeStatsMixedCaseSeverity(t *testing.T) {
	// Stored casing must not affect bucketing.
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	reports := []models.Report{
		mkReport(1, "High", models.StatusPending, now),
		mkReport(2, "LOW", models.StatusFixed, now),
		mkReport(3, "medium", models.StatusPending, now),
	}

	stats, err := ComputeStats(reports, now)
	if err != nil {
		t.Fatalf("ComputeStats returned error: %v", err)
	}
	if stats.Total != 3 || stats.Low != 1 || stats.Medium != 1 || stats.High != 1 {
		t.Errorf("Unexpected severity counts: %+v", stats)
	}
}

func TestComputeStatsDataIntegrity(t *testing.T) {
	now := time.Now()

	badSeverity := []models.Report{mkReport(7, "catastrophic", models.StatusPending, now)}
	if _, err := ComputeStats(badSeverity, now); !errors.Is(err, models.ErrDataIntegrity) {
		t.Errorf("Expected ErrDataIntegrity for unknown severity, got %v", err)
	}

	badStatus := []models.Report{mkReport(9, models.SeverityLow, "archived", now)}
	_, err := ComputeStats(badStatus, now)
	if !errors.Is(err, models.ErrDataIntegrity) {
		t.Errorf("Expected ErrDataIntegrity for unknown status, got %v", err)
	}
}
