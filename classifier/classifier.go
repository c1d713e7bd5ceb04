package classifier

import (
	"context"

	"report-triage-service/models"
)

// Classifier maps a submitted defect photo to a severity level.
// Implementations must be concurrency-safe; classification may be remote
// and non-deterministic. Callers bound the call with the context deadline.
type Classifier interface {
	// Classify takes raw image bytes and returns one of the three
	// severity levels, or an error when the backing model is
	// unreachable or returns garbage.
	Classify(ctx context.Context, imageData []byte) (models.Severity, error)
	// SourceName returns a short provider label for logs and metrics.
	SourceName() string
}
