// Package api provides the JSON-over-HTTP plumbing shared by the clients that
// talk to the campus backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sigma_app/platform/apperr"
	"sigma_app/platform/config"
	"sigma_app/platform/logger"

	"github.com/google/uuid"
)

const (
	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 1 << 20

	// HeaderRequestID correlates a request with the backend's logs.
	HeaderRequestID = "X-Request-ID"

	msgNetwork = "서버에 연결할 수 없습니다. 백엔드 서버가 실행 중인지 확인해 주세요."
	msgTimeout = "서버 응답 시간이 초과되었습니다. 잠시 후 다시 시도해 주세요."
)

// Client sends JSON requests to a single base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	RequestID  string
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// DecodeJSON decodes the body into v. A body that is not valid JSON yields a
// KindMalformedResponse error.
func (r *Response) DecodeJSON(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return apperr.Wrap(apperr.KindMalformedResponse, "서버가 예상치 않은 응답을 보냈습니다.", err)
	}
	return nil
}

// New creates a client using the configured base URL and timeout.
func New(cfg config.APIConfig, log *logger.Logger) *Client {
	return NewWithHTTPClient(cfg.GetAPIBaseURL(), &http.Client{Timeout: cfg.GetRequestTimeout()}, log)
}

// NewWithHTTPClient creates a client around an existing http.Client.
func NewWithHTTPClient(baseURL string, httpClient *http.Client, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}
}

// Do sends one request and reads the response. It never retries. Transport
// failures come back as KindNetwork or KindTimeout; any HTTP status is
// returned as a Response for the caller to interpret.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body interface{}) (*Response, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "encode request body", err).WithOp("api.Do")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "create request", err).WithOp("api.Do")
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.WithRequestID(requestID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		appErr := transportError(err)
		log.Warn("backend request failed", "method", method, "path", path, "kind", appErr.Kind.String(), "error", err)
		return nil, appErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		appErr := transportError(err)
		log.Warn("backend response read failed", "method", method, "path", path, "status", resp.StatusCode, "error", err)
		return nil, appErr
	}

	log.Debug("backend request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	return &Response{StatusCode: resp.StatusCode, Body: data, RequestID: requestID}, nil
}

func transportError(err error) *apperr.Error {
	if isTimeout(err) {
		return apperr.Wrap(apperr.KindTimeout, msgTimeout, err).WithOp("api.Do")
	}
	return apperr.Wrap(apperr.KindNetwork, msgNetwork, err).WithOp("api.Do")
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// ErrorMessage extracts a human readable message from a non-2xx body.
// It looks at "message", then "error", then "detail". ok is false when the
// body is not a JSON object or none of the fields holds a non-empty string.
func ErrorMessage(body []byte) (msg string, ok bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", false
	}
	for _, key := range []string{"message", "error", "detail"} {
		raw, present := fields[key]
		if !present {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s, true
		}
	}
	return "", false
}

// IsJSONObject reports whether body is a JSON object. null, arrays and
// scalars are not.
func IsJSONObject(body []byte) bool {
	var fields map[string]json.RawMessage
	return json.Unmarshal(body, &fields) == nil && fields != nil
}

// StatusMessage builds the fallback message "<prefix> 실패 (HTTP 상태 코드: N)."
func StatusMessage(prefix string, status int) string {
	return fmt.Sprintf("%s 실패 (HTTP 상태 코드: %d).", prefix, status)
}
