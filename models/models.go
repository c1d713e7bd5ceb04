package models

import (
	"fmt"
	"strings"
	"time"
)

// Severity is the classifier-assigned defect magnitude. It is set exactly
// once, at report creation, and never changes afterwards.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ParseSeverity normalizes a severity string case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityLow:
		return SeverityLow, nil
	case SeverityMedium:
		return SeverityMedium, nil
	case SeverityHigh:
		return SeverityHigh, nil
	}
	return "", fmt.Errorf("%w: unknown severity %q", ErrValidation, s)
}

// Status is the operational state of a report. Transitions toggle freely
// in both directions; staff may reopen a mistakenly closed report.
type Status string

const (
	StatusPending Status = "pending"
	StatusFixed   Status = "fixed"
)

// ParseStatus normalizes a status string case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusFixed:
		return StatusFixed, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
}

// Report is a single submitted road-defect record.
type Report struct {
	Seq         int64     `json:"seq" db:"seq"`
	SubmitterID string    `json:"submitter_id" db:"submitter_id"`
	ImageRef    string    `json:"image_ref" db:"image_ref"`
	Location    string    `json:"location" db:"location"`
	Severity    Severity  `json:"severity" db:"severity"`
	Status      Status    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// AggregateStats is derived from a report snapshot and never stored.
type AggregateStats struct {
	Total   int `json:"total"`
	Low     int `json:"low"`
	Medium  int `json:"medium"`
	High    int `json:"high"`
	Pending int `json:"pending"`
	Fixed   int `json:"fixed"`
	Today   int `json:"today"`
}

// Principal is the acting identity, supplied by the external auth service.
// The core trusts this tuple as given.
type Principal struct {
	UserID  string
	IsAdmin bool
}

// SubmitReportRequest is the body of POST /reports. Image is base64-encoded;
// the upstream upload validator enforces the payload size ceiling before
// requests reach this service.
type SubmitReportRequest struct {
	Image    string `json:"image"`
	Location string `json:"location"`
}

// UpdateStatusRequest is the body of POST /reports/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type ReportsResponse struct {
	Reports []Report `json:"reports"`
}

// BroadcastMessage is pushed to dashboard websocket clients when a new
// report is submitted.
type BroadcastMessage struct {
	Type   string  `json:"type"`
	Report *Report `json:"report"`
}

type HealthResponse struct {
	Status           string `json:"status"`
	Service          string `json:"service"`
	ConnectedClients int    `json:"connected_clients,omitempty"`
}
