package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/apex/log"

	"report-triage-service/models"
)

// ReportService is the Report Store: keyed reads and writes on single
// report rows plus an ordered full scan. No cross-record transactions;
// a single create or status update is the atomicity unit.
type ReportService struct {
	db *sql.DB
}

func NewReportService(db *sql.DB) *ReportService {
	return &ReportService{db: db}
}

// imageRef is the opaque stable key for a report's photo. Derived from
// seq, never stored.
func imageRef(seq int64) string {
	return fmt.Sprintf("reports/%d/image", seq)
}

// CreateReport persists a new report atomically and returns the fully
// populated record, including the store-assigned seq and created_at. The
// insert and the read-back run in one transaction, so a failure anywhere
// leaves no row behind.
func (s *ReportService) CreateReport(ctx context.Context, submitterID string, image []byte, location string, severity models.Severity) (*models.Report, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: starting transaction: %v", models.ErrStore, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO reports (submitter_id, image, location, severity, status)
		 VALUES (?, ?, ?, ?, ?)`,
		submitterID, image, location, severity, models.StatusPending)
	if err != nil {
		log.Errorf("Error inserting report for %s: %v", submitterID, err)
		return nil, fmt.Errorf("%w: inserting report: %v", models.ErrStore, err)
	}

	seq, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("%w: reading insert id: %v", models.ErrStore, err)
	}

	var r models.Report
	row := tx.QueryRowContext(ctx,
		`SELECT seq, submitter_id, location, severity, status, created_at
		 FROM reports WHERE seq = ?`, seq)
	if err := row.Scan(&r.Seq, &r.SubmitterID, &r.Location, &r.Severity, &r.Status, &r.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: reading back report %d: %v", models.ErrStore, seq, err)
	}
	r.ImageRef = imageRef(r.Seq)

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: committing report %d: %v", models.ErrStore, seq, err)
	}
	return &r, nil
}

// GetReport fetches one report by id. The image blob is not loaded; the
// record carries its opaque image_ref instead.
func (s *ReportService) GetReport(ctx context.Context, seq int64) (*models.Report, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT seq, submitter_id, location, severity, status, created_at
		 FROM reports WHERE seq = ?`, seq)

	var r models.Report
	err := row.Scan(&r.Seq, &r.SubmitterID, &r.Location, &r.Severity, &r.Status, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: report %d", models.ErrNotFound, seq)
	}
	if err != nil {
		log.Errorf("Error fetching report %d: %v", seq, err)
		return nil, fmt.Errorf("%w: fetching report %d: %v", models.ErrStore, seq, err)
	}
	r.ImageRef = imageRef(r.Seq)
	return &r, nil
}

// GetReportImage fetches the stored image payload for one report.
func (s *ReportService) GetReportImage(ctx context.Context, seq int64) ([]byte, error) {
	var image []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT image FROM reports WHERE seq = ?`, seq).Scan(&image)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: report %d", models.ErrNotFound, seq)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetching image for report %d: %v", models.ErrStore, seq, err)
	}
	return image, nil
}

// UpdateReportStatus persists the new status as a single-row update and
// returns the fresh record. MySQL reports zero affected rows when the new
// value equals the stored one, so a zero count alone does not mean the
// report is missing; existence is re-checked before declaring not-found.
// Same-status updates are an idempotent no-op that still succeeds.
func (s *ReportService) UpdateReportStatus(ctx context.Context, seq int64, status models.Status) (*models.Report, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE reports SET status = ? WHERE seq = ?`, status, seq)
	if err != nil {
		log.Errorf("Error updating status of report %d: %v", seq, err)
		return nil, fmt.Errorf("%w: updating report %d: %v", models.ErrStore, seq, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: reading affected rows for report %d: %v", models.ErrStore, seq, err)
	}
	if affected == 0 {
		return s.GetReport(ctx, seq)
	}

	log.Infof("Updated report %d status to %s", seq, status)
	return s.GetReport(ctx, seq)
}

// ListReports returns the current snapshot of all reports, newest first.
// The ordering is a property of this scan; callers never re-sort.
func (s *ReportService) ListReports(ctx context.Context) ([]models.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, submitter_id, location, severity, status, created_at
		 FROM reports ORDER BY created_at DESC, seq DESC`)
	if err != nil {
		log.Errorf("Error scanning reports: %v", err)
		return nil, fmt.Errorf("%w: scanning reports: %v", models.ErrStore, err)
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		var r models.Report
		if err := rows.Scan(&r.Seq, &r.SubmitterID, &r.Location, &r.Severity, &r.Status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning report row: %v", models.ErrStore, err)
		}
		r.ImageRef = imageRef(r.Seq)
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating reports: %v", models.ErrStore, err)
	}

	return reports, nil
}
