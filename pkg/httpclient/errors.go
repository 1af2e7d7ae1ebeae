package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// UpstreamError describes a non-2xx answer from a third-party API.
type UpstreamError struct {
	Service    string
	StatusCode int
	Reason     string
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s returned %d %s: %s", e.Service, e.StatusCode, e.Reason, e.Message)
	}
	return fmt.Sprintf("%s returned %d: %s", e.Service, e.StatusCode, e.Message)
}

// TooManyRequests reports a rate limit or exhausted quota.
func (e *UpstreamError) TooManyRequests() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.Reason == "RESOURCE_EXHAUSTED"
}

// googleErrorBody is the error envelope used by Google APIs.
type googleErrorBody struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// ParseResponseError consumes and closes resp.Body and returns an
// *UpstreamError. Call it only for non-2xx responses.
func ParseResponseError(resp *http.Response, service string) error {
	defer func() { _ = resp.Body.Close() }()

	upErr := &UpstreamError{Service: service, StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		upErr.Message = fmt.Sprintf("read body: %v", err)
		return upErr
	}

	var parsed googleErrorBody
	if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil {
		upErr.Reason = parsed.Error.Status
		upErr.Message = parsed.Error.Message
		return upErr
	}
	upErr.Message = string(body)
	return upErr
}
