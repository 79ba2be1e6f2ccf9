// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package queryservice talks to the external course query service: one POST
// per query, JSON in and JSON out.
package queryservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/pdiddy/coursefinder/internal/httputil"
	"github.com/pdiddy/coursefinder/pkg/types"
)

// ErrMalformedResponse is returned when the service answers with a body that
// is not a JSON object.
var ErrMalformedResponse = errors.New("malformed query service response")

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 32 << 20

// Client posts natural-language queries to the service.
type Client struct {
	HTTP      *http.Client
	Endpoint  string
	UserAgent string
}

// New returns a Client configured from cfg.
func New(cfg types.QueryServiceConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = types.DefaultEndpoint
	}
	return &Client{
		HTTP:      httputil.NewClient(cfg.HTTPConfig),
		Endpoint:  endpoint,
		UserAgent: cfg.UserAgent,
	}
}

// Query sends text to the service and decodes its answer. A returned error
// means no usable response was obtained; a service-reported problem comes
// back in QueryResponse.Error with a nil error.
//
// The HTTP status is not inspected: the service reports its own failures in
// the body, so any JSON object is accepted.
func (c *Client) Query(ctx context.Context, text string) (types.QueryResponse, error) {
	payload, err := json.Marshal(types.QueryRequest{Query: text})
	if err != nil {
		return types.QueryResponse{}, fmt.Errorf("encoding query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return types.QueryResponse{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return types.QueryResponse{}, fmt.Errorf("query service request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return types.QueryResponse{}, fmt.Errorf("reading query service response: %w", err)
	}
	return decodeResponse(body)
}

// decodeResponse parses any JSON value. Only a body that does not parse, or
// a literal null, is malformed. A non-object value (array, string, number,
// bool) carries neither field and yields an empty response.
//
// Presence follows the service's loose typing: an error field counts when it
// is a non-empty string, a non-zero number, true, or an object/array; null,
// false, 0, and "" mean no error. A courses field that is null, false, 0, or
// "" means no courses; any other value must be a list of course objects.
func decodeResponse(body []byte) (types.QueryResponse, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return types.QueryResponse{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	raw = bytes.TrimSpace(raw)
	switch raw[0] {
	case 'n':
		return types.QueryResponse{}, ErrMalformedResponse
	case '{':
	default:
		return types.QueryResponse{}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return types.QueryResponse{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var qr types.QueryResponse
	if v, ok := fields["error"]; ok {
		msg, err := errorText(v)
		if err != nil {
			return types.QueryResponse{}, err
		}
		qr.Error = msg
	}
	if v, ok := fields["courses"]; ok && !falsy(v) {
		if err := json.Unmarshal(v, &qr.Courses); err != nil {
			return types.QueryResponse{}, fmt.Errorf("%w: courses: %v", ErrMalformedResponse, err)
		}
	}
	return qr, nil
}

// errorText renders a present error value as display text, or "" when the
// value means no error.
func errorText(v json.RawMessage) (string, error) {
	if falsy(v) {
		return "", nil
	}
	var decoded any
	if err := json.Unmarshal(v, &decoded); err != nil {
		return "", fmt.Errorf("%w: error: %v", ErrMalformedResponse, err)
	}
	switch x := decoded.(type) {
	case string:
		return x, nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case bool:
		return "true", nil
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, v); err != nil {
		return "", fmt.Errorf("%w: error: %v", ErrMalformedResponse, err)
	}
	return compact.String(), nil
}

// falsy reports whether v is null, false, zero, or the empty string.
func falsy(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	switch string(v) {
	case "null", "false", `""`:
		return true
	}
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return f == 0
	}
	return false
}
