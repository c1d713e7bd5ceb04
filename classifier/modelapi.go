package classifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/apex/log"

	"report-triage-service/models"
)

// ModelAPIClient calls an external severity-model inference endpoint.
// The endpoint accepts a base64-encoded image and answers with a severity
// label plus a confidence score.
type ModelAPIClient struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewModelAPIClient creates a classifier backed by the model inference API.
// The HTTP client timeout is a backstop; per-call deadlines come from the
// caller's context.
func NewModelAPIClient(url, apiKey string, timeout time.Duration) *ModelAPIClient {
	return &ModelAPIClient{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *ModelAPIClient) SourceName() string { return "ModelAPI" }

type classifyRequest struct {
	Image string `json:"image"`
}

type classifyResponse struct {
	Severity   string  `json:"severity"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error"`
}

func (c *ModelAPIClient) Classify(ctx context.Context, imageData []byte) (models.Severity, error) {
	payload := classifyRequest{
		Image: base64.StdEncoding.EncodeToString(imageData),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call severity model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("severity model returned status %d", resp.StatusCode)
	}

	var result classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode severity model response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("severity model error: %s", result.Error)
	}

	severity, err := models.ParseSeverity(result.Severity)
	if err != nil {
		return "", fmt.Errorf("severity model returned unknown level %q", result.Severity)
	}

	log.Debugf("Model classified image (%d bytes) as %s with confidence %.2f",
		len(imageData), severity, result.Confidence)
	return severity, nil
}
