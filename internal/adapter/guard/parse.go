package guard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"

	"settlement-reconciler/pkg/apperror"
)

const (
	maxBodyBytes   = 10 << 20
	maxErrorBytes  = 64 << 10
	maxDetailBytes = 200
)

// ParseStrict reads resp and returns its body as JSON. The content type must
// be JSON and the body must be non-empty, well-formed JSON.
func ParseStrict(resp *http.Response) (json.RawMessage, error) {
	contentType := resp.Header.Get("Content-Type")
	if !isJSONContentType(contentType) {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, maxDetailBytes+1))
		return nil, apperror.ErrInvalidContentType(contentType, truncate(preview))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if bb, ok := resp.Body.(*boundedBody); ok && bb.expired() {
			return nil, apperror.ErrRequestTimeout(err)
		}
		return nil, apperror.ErrResponseRead(err)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, apperror.ErrEmptyResponse()
	}

	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperror.ErrJSONParse(truncate(body), err)
	}
	return raw, nil
}

// ValidateBusinessOutcome inspects a parsed payload for an explicit
// rejection. An "error" or "errors" field is API_ERROR; "success": false is
// API_FAILURE. The backend's message is kept when it sent one. Payloads
// that are not objects carry no outcome and pass.
func ValidateBusinessOutcome(data json.RawMessage, operation string) error {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	message := stringField(payload, "message")

	for _, key := range []string{"error", "errors"} {
		raw, ok := payload[key]
		if !ok || !present(raw) {
			continue
		}
		msg := errorMessage(raw)
		if msg == "" {
			msg = message
		}
		if msg == "" {
			msg = fallbackMessage(operation)
		}
		return apperror.ErrAPI(msg)
	}

	if raw, ok := payload["success"]; ok {
		var success bool
		if err := json.Unmarshal(raw, &success); err == nil && !success {
			if message == "" {
				message = fallbackMessage(operation)
			}
			return apperror.ErrAPIFailure(message)
		}
	}
	return nil
}

func fallbackMessage(operation string) string {
	if operation == "" {
		return "The request was not successful."
	}
	return operation + " was not successful."
}

// statusError builds the HTTP_<status> error for a non-2xx response, using
// the backend's message when the body carries one.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
	body = bytes.TrimSpace(body)

	message := ""
	var payload map[string]json.RawMessage
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
		message = stringField(payload, "message")
		if message == "" {
			if raw, ok := payload["error"]; ok {
				message = errorMessage(raw)
			}
		}
	}
	if message == "" {
		message = fmt.Sprintf("Request failed with status %d", resp.StatusCode)
	}
	return apperror.ErrHTTPStatus(resp.StatusCode, message, truncate(body))
}

// classifyTransport maps a failed round trip to a guard error. cause is the
// request context's cancellation cause.
func classifyTransport(err, cause error) *apperror.AppError {
	if errors.Is(cause, errRequestTimeout) || errors.Is(cause, context.DeadlineExceeded) {
		return apperror.ErrRequestTimeout(err)
	}

	inner := err
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		inner = urlErr.Err
	}
	if errors.Is(inner, context.DeadlineExceeded) {
		return apperror.ErrRequestTimeout(err)
	}
	if errors.Is(inner, context.Canceled) {
		return apperror.ErrFetchFailed(err)
	}

	var netErr net.Error
	if errors.As(inner, &netErr) {
		if netErr.Timeout() {
			return apperror.ErrRequestTimeout(err)
		}
		return apperror.ErrNetwork(err)
	}
	if errors.Is(inner, io.EOF) || errors.Is(inner, io.ErrUnexpectedEOF) ||
		errors.Is(inner, syscall.ECONNREFUSED) || errors.Is(inner, syscall.ECONNRESET) {
		return apperror.ErrNetwork(err)
	}
	return apperror.ErrFetchFailed(err)
}

func isJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// present reports whether a JSON value is set to something meaningful.
func present(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "", "null", "false", `""`, "[]", "{}":
		return false
	}
	return true
}

func stringField(payload map[string]json.RawMessage, key string) string {
	raw, ok := payload[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// errorMessage extracts a message from an error field shaped as a string,
// an object with "message", or a list of either.
func errorMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		return stringField(obj, "message")
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return errorMessage(list[0])
	}
	return ""
}

func truncate(body []byte) string {
	s := string(body)
	if len(s) <= maxDetailBytes {
		return s
	}
	return strings.ToValidUTF8(s[:maxDetailBytes], "") + "..."
}
