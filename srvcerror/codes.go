package srvcerror

import "net/http"

const (
	ErrCodeConfigMissing      = "config_missing"
	ErrCodeCredentialInvalid  = "credential_invalid"
	ErrCodeRepositoryNotFound = "repository_not_found"
	ErrCodeWriteConflict      = "write_conflict"
	ErrCodeExtractionFailed   = "extraction_failed"
	ErrCodeDetectionTimeout   = "detection_timeout"
	ErrCodeNetworkError       = "network_error"
	ErrCodeSyncInFlight       = "sync_in_flight"
)

func ErrConfigMissing() *Error {
	return New(
		ErrCodeConfigMissing,
		"github credential or repository is not configured",
	).SetHttpStatusCode(http.StatusBadRequest)
}

func ErrCredentialInvalid() *Error {
	return New(
		ErrCodeCredentialInvalid,
		"the configured credential was rejected by the remote store",
	).SetHttpStatusCode(http.StatusUnauthorized)
}

func ErrRepositoryNotFound() *Error {
	return New(
		ErrCodeRepositoryNotFound,
		"the configured repository does not exist or is not reachable",
	).SetHttpStatusCode(http.StatusNotFound)
}

func ErrWriteConflict() *Error {
	return New(
		ErrCodeWriteConflict,
		"the remote file changed since it was last read",
	).SetHttpStatusCode(http.StatusConflict)
}

func ErrExtractionFailed() *Error {
	return New(
		ErrCodeExtractionFailed,
		"no extraction strategy yielded submission code",
	).SetHttpStatusCode(http.StatusUnprocessableEntity)
}

func ErrDetectionTimeout() *Error {
	return New(
		ErrCodeDetectionTimeout,
		"no verdict was observed within the detection window",
	).SetHttpStatusCode(http.StatusGatewayTimeout)
}

func ErrNetworkError() *Error {
	return New(
		ErrCodeNetworkError,
		"a network request to the remote store failed",
	).SetHttpStatusCode(http.StatusBadGateway)
}

func ErrSyncInFlight() *Error {
	return New(
		ErrCodeSyncInFlight,
		"another synchronization is already in flight",
	).SetHttpStatusCode(http.StatusConflict)
}
