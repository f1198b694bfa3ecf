package netatmo

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeAuth indicates a rejected password grant or a failed token refresh
	ErrTypeAuth ErrorType = iota
	// ErrTypeData indicates the account has no station or an expected device is missing
	ErrTypeData
	// ErrTypeTransport indicates a network-level failure (timeout, refused, DNS, ...)
	ErrTypeTransport
	// ErrTypeHTTP indicates a non-success status that is not an auth rejection
	ErrTypeHTTP
	// ErrTypeParse indicates a malformed response body
	ErrTypeParse
	// ErrTypeConfig indicates missing or invalid client configuration
	ErrTypeConfig
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeAuth:
		return "Authentication Error"
	case ErrTypeData:
		return "Data Error"
	case ErrTypeTransport:
		return "Transport Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeConfig:
		return "Configuration Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// DataErrorSubtype distinguishes the expected "missing data" outcomes
type DataErrorSubtype int

const (
	DataErrorNone DataErrorSubtype = iota
	// DataErrorNoStation: the response body is empty, the account has no hardware
	DataErrorNoStation
	// DataErrorNoDevice: the body is present but lists no devices
	DataErrorNoDevice
	// DataErrorModuleNotFound: no module of the requested type is paired
	DataErrorModuleNotFound
)

// NetworkErrorSubtype provides more specific transport error classification
type NetworkErrorSubtype int

const (
	NetworkErrorGeneral NetworkErrorSubtype = iota
	NetworkErrorTimeout
	NetworkErrorConnectionRefused
	NetworkErrorDNS
	NetworkErrorHostUnreachable
	NetworkErrorNetworkUnreachable
	NetworkErrorCanceled
)

// Error is the single structured error returned by this package.
type Error struct {
	Type           ErrorType           // Category of error
	Message        string              // Human-readable error message
	Op             string              // Endpoint path or operation that failed
	StatusCode     int                 // HTTP status code (if applicable)
	APICode        int                 // Netatmo error.code from the response body (if any)
	ModuleType     ModuleType          // Requested module type for DataErrorModuleNotFound
	DataSubtype    DataErrorSubtype    // Cause of a data error
	NetworkSubtype NetworkErrorSubtype // Cause of a transport error
	Err            error               // Underlying error, unmodified
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s [%s]", e.Type, e.Message, e.Op)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s (caused by: %v)", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// NewAuthError creates an authentication error
func NewAuthError(op, message string, statusCode int) *Error {
	return &Error{
		Type:       ErrTypeAuth,
		Message:    message,
		Op:         op,
		StatusCode: statusCode,
	}
}

// NewNoStationError reports an account without any weather station
func NewNoStationError() *Error {
	return &Error{
		Type:        ErrTypeData,
		Message:     "no weather station available",
		Op:          PathStationsData,
		DataSubtype: DataErrorNoStation,
	}
}

// NewNoDeviceError reports a station-data body with an empty device list
func NewNoDeviceError() *Error {
	return &Error{
		Type:        ErrTypeData,
		Message:     "station data lists no devices",
		Op:          PathStationsData,
		DataSubtype: DataErrorNoDevice,
	}
}

// NewModuleNotFoundError reports that no module of moduleType is paired with the station
func NewModuleNotFoundError(moduleType ModuleType) *Error {
	return &Error{
		Type:        ErrTypeData,
		Message:     fmt.Sprintf("module not found: %s", moduleType),
		Op:          PathStationsData,
		ModuleType:  moduleType,
		DataSubtype: DataErrorModuleNotFound,
	}
}

// NewHTTPError creates an HTTP-level error
func NewHTTPError(op string, statusCode int, message string) *Error {
	return &Error{
		Type:       ErrTypeHTTP,
		Message:    message,
		Op:         op,
		StatusCode: statusCode,
	}
}

// NewParseError creates a parsing error
func NewParseError(op, message string, err error) *Error {
	return &Error{
		Type:    ErrTypeParse,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// NewConfigError creates a configuration error
func NewConfigError(message string) *Error {
	return &Error{
		Type:    ErrTypeConfig,
		Message: message,
	}
}

// NewTransportError wraps a failure from the HTTP collaborator. The original
// error is kept as-is in Err.
func NewTransportError(op string, err error) *Error {
	subtype := classifyNetworkError(err)
	return &Error{
		Type:           ErrTypeTransport,
		Message:        describeNetworkSubtype(subtype),
		Op:             op,
		NetworkSubtype: subtype,
		Err:            err,
	}
}

// classifyNetworkError inspects err and returns a more specific subtype
func classifyNetworkError(err error) NetworkErrorSubtype {
	if err == nil {
		return NetworkErrorGeneral
	}

	if errors.Is(err, context.Canceled) {
		return NetworkErrorCanceled
	}

	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return NetworkErrorTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NetworkErrorTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return NetworkErrorDNS
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		switch {
		case errors.Is(opErr.Err, syscall.ECONNREFUSED):
			return NetworkErrorConnectionRefused
		case errors.Is(opErr.Err, syscall.EHOSTUNREACH):
			return NetworkErrorHostUnreachable
		case errors.Is(opErr.Err, syscall.ENETUNREACH):
			return NetworkErrorNetworkUnreachable
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil && urlErr.Err != err {
		return classifyNetworkError(urlErr.Err)
	}

	return NetworkErrorGeneral
}

func describeNetworkSubtype(subtype NetworkErrorSubtype) string {
	switch subtype {
	case NetworkErrorTimeout:
		return "request timed out"
	case NetworkErrorConnectionRefused:
		return "connection refused"
	case NetworkErrorDNS:
		return "DNS resolution failed"
	case NetworkErrorHostUnreachable:
		return "host unreachable"
	case NetworkErrorNetworkUnreachable:
		return "network unreachable"
	case NetworkErrorCanceled:
		return "request canceled"
	default:
		return "network error occurred"
	}
}

func asError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsAuthError checks if an error is an authentication error
func IsAuthError(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeAuth
}

// IsDataError checks if an error is any kind of data error
func IsDataError(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeData
}

// IsNoStation checks if the account simply has no weather station
func IsNoStation(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeData && e.DataSubtype == DataErrorNoStation
}

// IsModuleNotFound checks if an expected module type was missing
func IsModuleNotFound(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeData && e.DataSubtype == DataErrorModuleNotFound
}

// IsTransportError checks if an error came from the network layer
func IsTransportError(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeTransport
}

// IsHTTPError checks if an error is an HTTP error
func IsHTTPError(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeHTTP
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeParse
}

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeConfig
}

// TroubleshootingHint returns user-friendly troubleshooting advice for an error
func TroubleshootingHint(err error) []string {
	e, ok := asError(err)
	if !ok {
		return []string{"An unexpected error occurred. Please try again."}
	}

	switch e.Type {
	case ErrTypeAuth:
		return []string{
			"Netatmo rejected the credentials.",
			"Check NETATMO_CLIENT_ID and NETATMO_CLIENT_SECRET against your app at dev.netatmo.com",
			"Check NETATMO_USERNAME and NETATMO_PASSWORD (the account that owns the station)",
			"Make sure the requested scope includes read_station",
		}

	case ErrTypeData:
		switch e.DataSubtype {
		case DataErrorNoStation, DataErrorNoDevice:
			return []string{
				"The account has no weather station attached.",
				"Add the station in the Netatmo app, then try again",
			}
		case DataErrorModuleNotFound:
			return []string{
				fmt.Sprintf("The station has no %s module paired.", e.ModuleType),
				"Pair the module in the Netatmo app",
				"Check that the module batteries are not empty",
			}
		}
		return []string{"The station data is incomplete."}

	case ErrTypeTransport:
		hint := []string{"Could not reach the Netatmo API."}
		switch e.NetworkSubtype {
		case NetworkErrorTimeout:
			hint = append(hint, "Try increasing the timeout (--timeout)")
		case NetworkErrorDNS:
			hint = append(hint, "Check your DNS settings and the configured base_url")
		default:
			hint = append(hint, "Check your internet connection")
		}
		return hint

	case ErrTypeHTTP:
		if e.StatusCode >= 500 {
			return []string{
				fmt.Sprintf("The Netatmo API returned HTTP %d.", e.StatusCode),
				"The service may be down, try again later",
			}
		}
		return []string{fmt.Sprintf("The Netatmo API returned HTTP %d. Check the request parameters.", e.StatusCode)}

	case ErrTypeParse:
		return []string{
			"Failed to parse the Netatmo response.",
			"Run with NETATMO_LOG_LEVEL=debug to see the request flow",
		}

	case ErrTypeConfig:
		return []string{
			"The client is not configured.",
			"Set the NETATMO_* variables in the environment or in a .env file",
		}
	}

	return []string{"An error occurred. Please check the error message for details."}
}

// ShortMessage returns a concise, user-friendly error message
func ShortMessage(err error) string {
	e, ok := asError(err)
	if !ok {
		return err.Error()
	}

	switch e.Type {
	case ErrTypeAuth:
		return "Authentication failed - check credentials"
	case ErrTypeTransport:
		return "Netatmo unreachable - " + describeNetworkSubtype(e.NetworkSubtype)
	case ErrTypeHTTP:
		return fmt.Sprintf("Netatmo error (HTTP %d)", e.StatusCode)
	case ErrTypeParse:
		return "Failed to parse Netatmo response"
	default:
		return strings.TrimSpace(e.Message)
	}
}
