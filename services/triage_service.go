package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"

	"report-triage-service/classifier"
	"report-triage-service/metrics"
	"report-triage-service/models"
)

// ReportStore is the persistence capability the triage engine writes
// through. database.ReportService is the production implementation.
type ReportStore interface {
	CreateReport(ctx context.Context, submitterID string, image []byte, location string, severity models.Severity) (*models.Report, error)
	GetReport(ctx context.Context, seq int64) (*models.Report, error)
	GetReportImage(ctx context.Context, seq int64) ([]byte, error)
	UpdateReportStatus(ctx context.Context, seq int64, status models.Status) (*models.Report, error)
	ListReports(ctx context.Context) ([]models.Report, error)
}

// ReportPublisher sends accepted reports to downstream consumers.
// rabbitmq.Publisher is the production implementation.
type ReportPublisher interface {
	Publish(message interface{}) error
}

// TriageService owns the report lifecycle: submission with synchronous
// classification, and the pending/fixed status toggle. Aggregates and
// filtered views are always derived from the store snapshot, never from
// locally maintained counters, so they cannot drift from the records.
type TriageService struct {
	store           ReportStore
	classifier      classifier.Classifier
	publisher       ReportPublisher
	hub             *WebSocketHub
	classifyTimeout time.Duration
	timezone        *time.Location
}

// NewTriageService creates the lifecycle engine. publisher and hub may be
// nil; submission then skips the respective fan-out.
func NewTriageService(store ReportStore, cls classifier.Classifier, publisher ReportPublisher, hub *WebSocketHub, classifyTimeout time.Duration, tz *time.Location) *TriageService {
	if tz == nil {
		tz = time.Local
	}
	return &TriageService{
		store:           store,
		classifier:      cls,
		publisher:       publisher,
		hub:             hub,
		classifyTimeout: classifyTimeout,
		timezone:        tz,
	}
}

// Submit classifies and persists one new report. Each call creates a new
// record; repeated submissions are not de-duplicated. The classifier call
// is bounded by the configured timeout so a hung model cannot block
// callers indefinitely. Payload size limits are enforced by the upload
// validator upstream, not here.
func (s *TriageService) Submit(ctx context.Context, submitterID string, imageData []byte, location string) (*models.Report, error) {
	if submitterID == "" {
		return nil, fmt.Errorf("%w: submitter id is empty", models.ErrValidation)
	}
	if len(imageData) == 0 {
		return nil, fmt.Errorf("%w: image payload is empty", models.ErrValidation)
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: location is empty", models.ErrValidation)
	}

	classifyCtx, cancel := context.WithTimeout(ctx, s.classifyTimeout)
	defer cancel()

	start := time.Now()
	severity, err := s.classifier.Classify(classifyCtx, imageData)
	metrics.ClassificationDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ClassificationFailuresTotal.Inc()
		log.Errorf("Classifier %s failed for submitter %s: %v", s.classifier.SourceName(), submitterID, err)
		return nil, fmt.Errorf("%w: %s: %v", models.ErrClassification, s.classifier.SourceName(), err)
	}

	report, err := s.store.CreateReport(ctx, submitterID, imageData, location, severity)
	if err != nil {
		return nil, err
	}

	metrics.ReportsSubmittedTotal.WithLabelValues(string(severity)).Inc()
	log.Infof("Report %d submitted by %s with severity %s", report.Seq, submitterID, severity)

	// Fan-out happens only after the write succeeded and never gates
	// the caller's response. The publish runs off the request path.
	go s.publishReport(report)
	if s.hub != nil {
		s.hub.BroadcastMessage(models.BroadcastMessage{Type: "report_submitted", Report: report})
	}

	return report, nil
}

// SetStatus toggles a report between pending and fixed. Only admins may
// call it. Setting the current status again is an idempotent no-op that
// still succeeds. The store write completes before anything observable
// changes; there is no optimistic local update to roll back.
func (s *TriageService) SetStatus(ctx context.Context, principal models.Principal, seq int64, newStatus string) (*models.Report, error) {
	status, err := models.ParseStatus(newStatus)
	if err != nil {
		return nil, err
	}
	if !principal.IsAdmin {
		log.Warnf("User %s attempted status change on report %d without admin privilege", principal.UserID, seq)
		return nil, fmt.Errorf("%w: user %s", models.ErrAuthorization, principal.UserID)
	}

	report, err := s.store.UpdateReportStatus(ctx, seq, status)
	if err != nil {
		return nil, err
	}

	metrics.StatusUpdatesTotal.WithLabelValues(string(status)).Inc()
	log.Infof("Report %d set to %s by %s", seq, status, principal.UserID)
	return report, nil
}

// GetReport returns one report by id.
func (s *TriageService) GetReport(ctx context.Context, seq int64) (*models.Report, error) {
	return s.store.GetReport(ctx, seq)
}

// GetReportImage returns the stored photo bytes for one report.
func (s *TriageService) GetReportImage(ctx context.Context, seq int64) ([]byte, error) {
	return s.store.GetReportImage(ctx, seq)
}

// QueryReports serves the triage dashboard list: the store's newest-first
// snapshot narrowed by severity filter and search term.
func (s *TriageService) QueryReports(ctx context.Context, severityFilter, searchTerm string) ([]models.Report, error) {
	reports, err := s.store.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	return FilterReports(reports, severityFilter, searchTerm)
}

// Stats computes aggregate statistics from the current store snapshot.
// A caller that just wrote sees its own write here because the snapshot
// is re-read on every call.
func (s *TriageService) Stats(ctx context.Context) (*models.AggregateStats, error) {
	reports, err := s.store.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeStats(reports, time.Now().In(s.timezone))
}

func (s *TriageService) publishReport(report *models.Report) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(report); err != nil {
		metrics.PublishErrorsTotal.Inc()
		log.Errorf("Failed to publish report %d: %v", report.Seq, err)
		return
	}
	log.Infof("Published report %d for downstream processing", report.Seq)
}
