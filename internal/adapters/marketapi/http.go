package marketapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"campus-market-service/internal/ports"
)

const maxErrorBody = 4 << 10

// StatusError is a non-2xx reply from the market API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("market api: status %d: %s", e.Code, e.Body)
}

// Unwrap maps the status onto the transport-independent port errors.
func (e *StatusError) Unwrap() error {
	switch {
	case e.Code == http.StatusUnauthorized, e.Code == http.StatusForbidden:
		return ports.ErrUnauthorized
	case e.Code == http.StatusNotFound:
		return ports.ErrNotFound
	case e.Code == http.StatusBadRequest,
		e.Code == http.StatusConflict,
		e.Code == http.StatusUnprocessableEntity:
		return ports.ErrRejected
	case e.Code >= 500:
		return ports.ErrUpstream
	}
	return nil
}

func (c *Client) newRequest(
	ctx context.Context,
	method string,
	path string,
	token string,
	body any,
) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do sends req and turns any status >= 400 into a *StatusError.
func do(client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ports.ErrUpstream, err)
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// call performs one request and decodes a JSON reply into out when out is non-nil.
func (c *Client) call(
	ctx context.Context,
	client *http.Client,
	method string,
	path string,
	token string,
	in any,
	out any,
) error {
	req, err := c.newRequest(ctx, method, path, token, in)
	if err != nil {
		return err
	}

	resp, err := do(client, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty response body", ports.ErrUpstream)
		}
		return fmt.Errorf("%w: decode response: %w", ports.ErrUpstream, err)
	}
	return nil
}
