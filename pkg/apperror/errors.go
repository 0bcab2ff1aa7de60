package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the single classified error type. Every failure leaving the
// transaction guard or the settlement services is an *AppError so callers can
// decide retryability from Class and the two flags without string matching.
type AppError struct {
	Code           string `json:"error_code"`
	Message        string `json:"message"`
	HTTPStatus     int    `json:"-"`
	IsNetworkError bool   `json:"is_network_error"`
	IsTimeoutError bool   `json:"is_timeout_error"`
	Detail         string `json:"detail,omitempty"` // Diagnostic only (truncated bodies etc.)
	Class          Class  `json:"-"`
	Err            error  `json:"-"` // Wrapped cause, never exposed to clients
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Retryable reports whether repeating the same call may succeed.
func (e *AppError) Retryable() bool {
	if e.Class == nil {
		return false
	}
	return e.Class.Retryable()
}

// As extracts an *AppError from an error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsRetryable reports whether err is a classified, retryable failure.
func IsRetryable(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Retryable()
}

// HasCode reports whether err is an *AppError carrying code.
func HasCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

func newError(class Class, code, message string, httpStatus int, err error) *AppError {
	_, network := class.(NetworkClass)
	_, timeout := class.(TimeoutClass)
	return &AppError{
		Code:           code,
		Message:        message,
		HTTPStatus:     httpStatus,
		IsNetworkError: network,
		IsTimeoutError: timeout,
		Class:          class,
		Err:            err,
	}
}

const (
	CodeNetworkDisconnected = "NETWORK_DISCONNECTED"
	CodeInternetUnreachable = "INTERNET_UNREACHABLE"
	CodeRequestTimeout      = "REQUEST_TIMEOUT"
	CodeNetworkError        = "NETWORK_ERROR"
	CodeFetchFailed         = "FETCH_FAILED"
	CodeCircuitOpen         = "CIRCUIT_OPEN"
	CodeResponseReadFailed  = "RESPONSE_READ_FAILED"
	CodeInvalidContentType  = "INVALID_CONTENT_TYPE"
	CodeEmptyResponse       = "EMPTY_RESPONSE"
	CodeJSONParseFailed     = "JSON_PARSE_FAILED"
	CodeAPIError            = "API_ERROR"
	CodeAPIFailure          = "API_FAILURE"
	CodeUnexpected          = "UNEXPECTED_ERROR"

	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeRateLimited     = "RATE_LIMITED"
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	CodeStorage         = "STORAGE_ERROR"
)

// HTTPCode returns the machine code for a non-2xx upstream status, e.g. HTTP_502.
func HTTPCode(status int) string {
	return fmt.Sprintf("HTTP_%d", status)
}

// ---- Connectivity & transport ----

func ErrNetworkDisconnected() *AppError {
	return newError(NetworkClass{}, CodeNetworkDisconnected,
		"No internet connection. Please check your network and try again.", http.StatusServiceUnavailable, nil)
}

func ErrInternetUnreachable() *AppError {
	return newError(NetworkClass{}, CodeInternetUnreachable,
		"The internet is not reachable right now. Please try again.", http.StatusServiceUnavailable, nil)
}

func ErrRequestTimeout(err error) *AppError {
	return newError(TimeoutClass{}, CodeRequestTimeout,
		"The request timed out. Please try again.", http.StatusGatewayTimeout, err)
}

func ErrNetwork(err error) *AppError {
	return newError(NetworkClass{}, CodeNetworkError,
		"A network error occurred. Please check your connection and try again.", http.StatusServiceUnavailable, err)
}

func ErrCircuitOpen(err error) *AppError {
	return newError(NetworkClass{}, CodeCircuitOpen,
		"The service is temporarily unavailable. Please try again shortly.", http.StatusServiceUnavailable, err)
}

func ErrResponseRead(err error) *AppError {
	return newError(NetworkClass{}, CodeResponseReadFailed,
		"Failed to read the server response.", http.StatusBadGateway, err)
}

// ErrFetchFailed wraps a request failure that is neither a timeout nor a transport error.
func ErrFetchFailed(err error) *AppError {
	return newError(UnexpectedClass{}, CodeFetchFailed, "The request could not be completed.", http.StatusBadGateway, err)
}

// ---- Protocol violations ----

func ErrInvalidContentType(contentType, detail string) *AppError {
	e := newError(ProtocolClass{Kind: ProtocolContentType}, CodeInvalidContentType,
		fmt.Sprintf("Unexpected response content type %q", contentType), http.StatusBadGateway, nil)
	e.Detail = detail
	return e
}

func ErrEmptyResponse() *AppError {
	return newError(ProtocolClass{Kind: ProtocolEmpty}, CodeEmptyResponse,
		"The server returned an empty response.", http.StatusBadGateway, nil)
}

func ErrJSONParse(detail string, err error) *AppError {
	e := newError(ProtocolClass{Kind: ProtocolMalformed}, CodeJSONParseFailed,
		"The server returned a malformed response.", http.StatusBadGateway, err)
	e.Detail = detail
	return e
}

// ---- Upstream status & business outcome ----

// ErrHTTPStatus is a non-2xx upstream response. message is the backend's own
// message when its error body parsed, otherwise a fallback citing the status.
func ErrHTTPStatus(status int, message, detail string) *AppError {
	e := newError(HTTPClass{Status: status}, HTTPCode(status), message, http.StatusBadGateway, nil)
	e.Detail = detail
	return e
}

func ErrAPI(message string) *AppError {
	return newError(BusinessClass{Code: CodeAPIError}, CodeAPIError, message, http.StatusUnprocessableEntity, nil)
}

func ErrAPIFailure(message string) *AppError {
	return newError(BusinessClass{Code: CodeAPIFailure}, CodeAPIFailure, message, http.StatusUnprocessableEntity, nil)
}

// ErrUnexpected normalizes an unclassified failure.
func ErrUnexpected(err error) *AppError {
	return newError(UnexpectedClass{}, CodeUnexpected, "An unexpected error occurred.", http.StatusInternalServerError, err)
}

// ---- Local rejections & storage ----

func Validation(message string) *AppError {
	return newError(InputClass{}, CodeValidation, message, http.StatusBadRequest, nil)
}

func ErrNotFound(entity string) *AppError {
	return newError(InputClass{}, CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound, nil)
}

func ErrRateLimitExceeded() *AppError {
	return newError(InputClass{}, CodeRateLimited, "Rate limit exceeded", http.StatusTooManyRequests, nil)
}

func ErrPayloadTooLarge(limit int64) *AppError {
	return newError(InputClass{}, CodePayloadTooLarge,
		fmt.Sprintf("Request body exceeds %d bytes", limit), http.StatusRequestEntityTooLarge, nil)
}

// ErrStorage reports a failed ledger read or write. It is returned to callers
// so a settlement that was not persisted is never reported as recorded.
func ErrStorage(err error) *AppError {
	return newError(StorageClass{}, CodeStorage, "Settlement storage is unavailable", http.StatusInternalServerError, err)
}
