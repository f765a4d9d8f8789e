package rally

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// content is the request body wrapper Rally expects on create and update
type content struct {
	Content map[string]any `json:"Content"`
}

// endpoint returns the absolute URL for a reference path
func (c *Client) endpoint(path string) string {
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("https://%s/slm/webservice/%s/%s", c.host, c.protocolVersion, path)
}

// execute performs an authenticated request and unwraps the response
func (c *Client) execute(ctx context.Context, method, path string, fields map[string]any) (*response, error) {
	url := c.endpoint(path)

	var body io.Reader
	if fields != nil {
		payload, err := json.Marshal(content{Content: fields})
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "text/javascript")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("Rally API request")

	return unwrap(raw, resp.StatusCode)
}

// unwrap checks the status code and strips a known envelope, turning
// envelope errors and warnings into Go errors. Errors take precedence
// over warnings.
func unwrap(body []byte, statusCode int) (*response, error) {
	if statusCode < 200 || statusCode >= 300 {
		return nil, &HTTPStatusError{StatusCode: statusCode, Body: string(body)}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return &response{kind: envelopeNone}, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	resp := &response{kind: envelopeNone, raw: body}
	if len(top) != 1 {
		return resp, nil
	}

	for key, payload := range top {
		kind, ok := envelopeKeys[key]
		if !ok {
			return resp, nil
		}
		if err := json.Unmarshal(payload, &resp.result); err != nil {
			return nil, fmt.Errorf("%w: malformed %s: %v", ErrInvalidResponse, key, err)
		}
		resp.kind = kind
		resp.raw = payload
	}

	if len(resp.result.Errors) > 0 {
		return nil, &APIError{Messages: resp.result.Errors}
	}
	if len(resp.result.Warnings) > 0 {
		return nil, &APIWarning{Messages: resp.result.Warnings}
	}

	return resp, nil
}

// firstValue decodes the first member, in document order, of a JSON
// object. Rally wraps a single object under its type name.
func firstValue(raw []byte) (Object, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected object", ErrInvalidResponse)
	}
	if !dec.More() {
		return nil, fmt.Errorf("%w: empty object", ErrInvalidResponse)
	}
	// key
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	var obj Object
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: null object", ErrInvalidResponse)
	}
	return obj, nil
}
