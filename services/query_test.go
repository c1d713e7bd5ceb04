package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-triage-service/models"
)

func querySnapshot() []models.Report {
	base := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	return []models.Report{
		{Seq: 4, SubmitterID: "citizen-42", Location: "Main St and 5th", Severity: models.SeverityMedium, Status: models.StatusPending, CreatedAt: base},
		{Seq: 3, SubmitterID: "roadwatcher", Location: "Elm St", Severity: models.SeverityHigh, Status: models.StatusPending, CreatedAt: base.Add(-time.Hour)},
		{Seq: 2, SubmitterID: "mainuser", Location: "Oak Ave", Severity: models.SeverityMedium, Status: models.StatusFixed, CreatedAt: base.Add(-2 * time.Hour)},
		{Seq: 1, SubmitterID: "citizen-42", Location: "MAIN STREET bridge", Severity: models.SeverityLow, Status: models.StatusFixed, CreatedAt: base.Add(-3 * time.Hour)},
	}
}

func TestFilterReportsAllEmptyTermReturnsEverything(t *testing.T) {
	snapshot := querySnapshot()

	got, err := FilterReports(snapshot, "all", "")
	require.NoError(t, err)
	require.Len(t, got, len(snapshot))
	for i := range snapshot {
		assert.Equal(t, snapshot[i].Seq, got[i].Seq, "order must follow the store scan")
	}

	// Re-evaluation on the unchanged snapshot yields the same sequence.
	again, err := FilterReports(snapshot, "all", "")
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestFilterReportsConjunctive(t *testing.T) {
	// Severity filter AND search term must both pass.
	got, err := FilterReports(querySnapshot(), "Medium", "Main")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(4), got[0].Seq) // location match
	assert.Equal(t, int64(2), got[1].Seq) // submitter match
}

func TestFilterReportsSearchMatchesSubmitterOrLocation(t *testing.T) {
	got, err := FilterReports(querySnapshot(), "all", "citizen-42")
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = FilterReports(querySnapshot(), "all", "elm")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].Seq)
}

func TestFilterReportsSeverityCaseInsensitive(t *testing.T) {
	for _, filter := range []string{"high", "High", "HIGH"} {
		got, err := FilterReports(querySnapshot(), filter, "")
		require.NoError(t, err)
		require.Len(t, got, 1, "filter %q", filter)
		assert.Equal(t, models.SeverityHigh, got[0].Severity)
	}
}

func TestFilterReportsBlankTermPassesAll(t *testing.T) {
	got, err := FilterReports(querySnapshot(), "all", "   ")
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestFilterReportsMatchesMixedCaseStoredSeverity(t *testing.T) {
	base := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	reports := []models.Report{
		{Seq: 2, SubmitterID: "u1", Location: "Elm St", Severity: "High", Status: models.StatusPending, CreatedAt: base},
		{Seq: 1, SubmitterID: "u2", Location: "Oak Ave", Severity: "LOW", Status: models.StatusPending, CreatedAt: base.Add(-time.Hour)},
	}

	got, err := FilterReports(reports, "high", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].Seq)

	got, err = FilterReports(reports, "Low", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].Seq)
}

func TestFilterReportsUnknownSeverity(t *testing.T) {
	_, err := FilterReports(querySnapshot(), "critical", "")
	assert.True(t, errors.Is(err, models.ErrValidation), "got %v", err)
}

func TestFilterReportsDoesNotMutateInput(t *testing.T) {
	snapshot := querySnapshot()
	_, err := FilterReports(snapshot, "low", "bridge")
	require.NoError(t, err)
	assert.Equal(t, querySnapshot(), snapshot)
}
