package classifier

import (
	"context"
	"crypto/sha256"

	"report-triage-service/models"
)

// StubClient is a deterministic, no-network classifier intended for CI,
// local development and end-to-end tests. The same image always yields the
// same severity so downstream assertions are stable.
type StubClient struct{}

func NewStubClient() *StubClient { return &StubClient{} }

func (c *StubClient) SourceName() string { return "Stub" }

func (c *StubClient) Classify(ctx context.Context, imageData []byte) (models.Severity, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	sum := sha256.Sum256(imageData)
	switch sum[0] % 3 {
	case 0:
		return models.SeverityLow, nil
	case 1:
		return models.SeverityMedium, nil
	default:
		return models.SeverityHigh, nil
	}
}
