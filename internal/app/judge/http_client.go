package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPClient posts each test case to an external executor service. Any
// transport failure or non-2xx response surfaces as an error; callers treat
// that the same as a runtime_error verdict.
type HTTPClient struct {
	url        string
	httpClient *http.Client
}

func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type executorResponse struct {
	Verdict Verdict `json:"verdict"`
}

func (c *HTTPClient) Judge(ctx context.Context, req Request) (Verdict, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return VerdictInternalError, fmt.Errorf("judge: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return VerdictInternalError, fmt.Errorf("judge: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return VerdictInternalError, fmt.Errorf("judge: executor call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return VerdictInternalError, fmt.Errorf("judge: executor returned status %d", resp.StatusCode)
	}

	var out executorResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return VerdictInternalError, fmt.Errorf("judge: decode executor response: %w", err)
	}

	switch out.Verdict {
	case VerdictPassed, VerdictWrongAnswer, VerdictTimeLimitExceeded, VerdictRuntimeError, VerdictInternalError:
		return out.Verdict, nil
	default:
		return VerdictInternalError, fmt.Errorf("judge: unknown verdict %q", out.Verdict)
	}
}
