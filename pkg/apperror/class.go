package apperror

import "net/http"

// Class is the closed set of failure classes carried by AppError. The set is
// sealed by the unexported method; handle it with a type switch over the
// concrete types below.
type Class interface {
	Retryable() bool
	class()
}

// NetworkClass covers offline, unreachable and transport failures.
type NetworkClass struct{}

// TimeoutClass is a request whose bound elapsed before the transport resolved.
type TimeoutClass struct{}

// HTTPClass is a non-2xx upstream response.
type HTTPClass struct {
	Status int
}

// ProtocolKind names the protocol rule a response broke.
type ProtocolKind string

const (
	ProtocolContentType ProtocolKind = "CONTENT_TYPE"
	ProtocolEmpty       ProtocolKind = "EMPTY"
	ProtocolMalformed   ProtocolKind = "MALFORMED"
)

// ProtocolClass is a response that violates the JSON contract.
type ProtocolClass struct {
	Kind ProtocolKind
}

// BusinessClass is an explicit rejection by the backend.
type BusinessClass struct {
	Code string
}

// UnexpectedClass is anything the guard could not classify further.
type UnexpectedClass struct{}

// InputClass is a request rejected locally before any I/O.
type InputClass struct{}

// StorageClass is a failed read or write of the settlement ledger.
type StorageClass struct{}

func (NetworkClass) Retryable() bool    { return true }
func (TimeoutClass) Retryable() bool    { return true }
func (c HTTPClass) Retryable() bool     { return c.Status >= http.StatusInternalServerError }
func (ProtocolClass) Retryable() bool   { return false }
func (BusinessClass) Retryable() bool   { return false }
func (UnexpectedClass) Retryable() bool { return true }
func (InputClass) Retryable() bool      { return false }
func (StorageClass) Retryable() bool    { return true }

func (NetworkClass) class()    {}
func (TimeoutClass) class()    {}
func (HTTPClass) class()       {}
func (ProtocolClass) class()   {}
func (BusinessClass) class()   {}
func (UnexpectedClass) class() {}
func (InputClass) class()      {}
func (StorageClass) class()    {}

const genericRetryLater = "Something went wrong on our side. Please try again later."

// UserMessage returns the text a client should show for e. Business failures
// keep the backend message verbatim; protocol and unexpected failures are
// replaced with a generic, non-actionable message.
func UserMessage(e *AppError) string {
	switch e.Class.(type) {
	case NetworkClass, TimeoutClass, BusinessClass, HTTPClass, InputClass:
		return e.Message
	case ProtocolClass, UnexpectedClass, StorageClass:
		return genericRetryLater
	default:
		return genericRetryLater
	}
}
