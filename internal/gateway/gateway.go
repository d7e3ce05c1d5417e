package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"entity-journal-cli/internal/pkg/logger"
	"entity-journal-cli/pkg/events"

	"github.com/google/uuid"
)

const logModule = "gateway"

// maxRetries bounds the rate-limit backoff loop. The third 429 in a row is
// surfaced to the caller as a terminal failure.
const maxRetries = 2

// CredentialSource supplies the bearer credential for outbound requests and
// is invalidated synchronously when the backend rejects it. Invalidate must
// be idempotent: concurrent unauthorized responses may race each other and
// with a user-initiated logout.
type CredentialSource interface {
	Credential() (string, bool)
	Invalidate()
}

// Gateway is the single egress point for all backend calls. It injects the
// credential, classifies failures, retries rate-limited requests with
// exponential backoff, and broadcasts process-wide signals. Signal
// publication always happens before the caller observes the error.
type Gateway struct {
	baseURL string
	client  *http.Client
	creds   CredentialSource
	bus     *events.Bus
	log     logger.ILogger

	// sleep is swapped out in tests to observe backoff delays.
	sleep func(time.Duration)
}

func New(baseURL string, timeout time.Duration, creds CredentialSource, bus *events.Bus, log logger.ILogger) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		creds:   creds,
		bus:     bus,
		log:     log,
		sleep:   time.Sleep,
	}
}

func (g *Gateway) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return g.do(ctx, http.MethodGet, path, query, nil, out)
}

func (g *Gateway) Post(ctx context.Context, path string, body, out interface{}) error {
	return g.do(ctx, http.MethodPost, path, nil, body, out)
}

func (g *Gateway) Put(ctx context.Context, path string, body, out interface{}) error {
	return g.do(ctx, http.MethodPut, path, nil, body, out)
}

func (g *Gateway) Patch(ctx context.Context, path string, body, out interface{}) error {
	return g.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (g *Gateway) Delete(ctx context.Context, path string, query url.Values) error {
	return g.do(ctx, http.MethodDelete, path, query, nil, nil)
}

func (g *Gateway) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	fullURL := g.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	retries := 0
	for {
		req, err := http.NewRequestWithContext(ctx, method, fullURL, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Request-Id", uuid.NewString())
		if token, ok := g.creds.Credential(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := g.client.Do(req)
		if err != nil {
			// Network failures and timeouts surface untouched: retry is
			// reserved for the rate-limited case.
			return fmt.Errorf("%s %s: %w", method, path, err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("%s %s: read response: %w", method, path, readErr)
		}

		if resp.StatusCode == http.StatusTooManyRequests && retries < maxRetries {
			retries++
			delay := 500 * time.Millisecond * (1 << retries)
			g.log.Warn(logModule, "rate limited, retrying", map[string]interface{}{
				"method": method, "path": path, "retry": retries, "delay_ms": delay.Milliseconds(),
			})
			g.sleep(delay)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			if out != nil && len(respBody) > 0 {
				if err := json.Unmarshal(respBody, out); err != nil {
					return fmt.Errorf("%s %s: decode response: %w", method, path, err)
				}
			}
			return nil
		}

		return g.classify(method, path, resp.StatusCode, respBody)
	}
}

// classify turns a failed response into an *APIError, broadcasting the
// matching process-wide signal first. Exactly one signal fires per failed
// call; plain client errors fire none.
func (g *Gateway) classify(method, path string, status int, body []byte) error {
	apiErr := newAPIError(status, body)

	switch {
	case status == http.StatusUnauthorized:
		// Clear the stored credential before anyone else can observe the
		// rejection, then tell the rest of the process.
		g.creds.Invalidate()
		g.bus.Publish(events.SessionExpired{OccurredAt: time.Now()})
		g.log.Warn(logModule, "unauthorized, session reset", map[string]interface{}{
			"method": method, "path": path,
		})

	case status == http.StatusForbidden:
		g.bus.Publish(events.Forbidden{Body: decodeBody(body), OccurredAt: time.Now()})

	case status >= 500:
		g.bus.Publish(events.ServerFault{Status: status, Body: decodeBody(body), OccurredAt: time.Now()})
		g.log.Error(logModule, "server fault", map[string]interface{}{
			"method": method, "path": path, "status": status,
		})

	case status == http.StatusTooManyRequests:
		g.log.Warn(logModule, "rate limit retries exhausted", map[string]interface{}{
			"method": method, "path": path,
		})
	}

	return apiErr
}

func decodeBody(body []byte) map[string]interface{} {
	decoded := map[string]interface{}{}
	if len(body) == 0 {
		return decoded
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		decoded["raw"] = string(body)
	}
	return decoded
}
