package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewHTTPClient returns the client shared by all upstream services. It has no
// timeout of its own; requests are bounded by the caller's context.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// doJSON sends req and decodes a 2xx JSON body into out.
func doJSON(client *http.Client, service string, req *http.Request, out interface{}) error {
	resp, err := client.Do(req)
	if err != nil {
		return &UpstreamError{Service: service, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return &UpstreamError{Service: service, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &UpstreamError{Service: service, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func getJSON(ctx context.Context, client *http.Client, service, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", service, err)
	}
	req.Header.Set("Accept", "application/json")
	return doJSON(client, service, req, out)
}
