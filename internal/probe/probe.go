package probe

import (
	"context"
	"net/http"
	"strings"
	"time"

	"gsmonitor/internal/logging"
	"gsmonitor/internal/models"
)

// Prober issues single reachability checks against an endpoint.
type Prober struct {
	client *http.Client
	logger logging.Logger
}

// New creates a prober whose requests are bounded by timeout.
func New(timeout time.Duration, logger logging.Logger) *Prober {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Prober{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// NormalizeEndpoint turns a bare host:port into a request URL. Endpoints that
// already carry a scheme pass through unchanged.
func NormalizeEndpoint(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return "http://" + endpoint
}

// Check performs one GET against the endpoint and classifies the outcome.
// Status codes below 400 count as reachable; codes at or above 400 and
// transport-level failures are carried in the result, never raised to the
// caller.
func (p *Prober) Check(ctx context.Context, endpoint string) models.ProbeResult {
	p.logger.Infof("Checking gsocket access to %s", endpoint)

	res := models.ProbeResult{
		Endpoint:  endpoint,
		CheckedAt: time.Now().UTC(),
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, NormalizeEndpoint(endpoint), nil)
	if err != nil {
		msg := err.Error()
		res.Error = &msg
		p.logger.Errorf("GSocket access failed: %s", msg)
		return res
	}

	response, err := p.client.Do(req)
	if err != nil {
		msg := err.Error()
		res.Error = &msg
		p.logger.Errorf("GSocket access failed: %s", msg)
		return res
	}
	defer response.Body.Close()

	latency := float64(time.Since(start).Milliseconds())
	res.LatencyMS = &latency
	res.StatusCode = &response.StatusCode

	if response.StatusCode >= 400 {
		p.logger.Errorf("GSocket access failed - HTTP Code: %d", response.StatusCode)
		return res
	}

	res.OK = true
	p.logger.Infof("GSocket access successful - HTTP Code: %d", response.StatusCode)
	return res
}
