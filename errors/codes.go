package errors

import "strconv"

// ErrorCode identifies an application error class. Codes are grouped by
// domain in blocks of one thousand so new codes slot in without renumbering.
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_FORBIDDEN         ErrorCode = 1006
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1007

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN       ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED       ErrorCode = 2001
	ErrorCode_AUTH_INVALID_CREDENTIALS ErrorCode = 2002
	ErrorCode_AUTH_SIGNATURE_INVALID   ErrorCode = 2003

	// Transcripts
	ErrorCode_TRANSCRIPT_NOT_FOUND      ErrorCode = 3000
	ErrorCode_TRANSCRIPT_INGEST_FAILED  ErrorCode = 3001
	ErrorCode_TRANSCRIPT_ARCHIVE_FAILED ErrorCode = 3002

	// Action items
	ErrorCode_ACTION_ITEM_NOT_FOUND ErrorCode = 4000
	ErrorCode_INVALID_TRANSITION    ErrorCode = 4001

	// Extraction and processing
	ErrorCode_EXTRACTION_FAILED ErrorCode = 5000
	ErrorCode_PROCESSING_FAILED ErrorCode = 5001
	ErrorCode_QUEUE_FULL        ErrorCode = 5002
	ErrorCode_LOCK_UNAVAILABLE  ErrorCode = 5003
	ErrorCode_AUTOMATION_FAILED ErrorCode = 5004

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 6000
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 6001

	// Database
	ErrorCode_DB_CONNECTION_FAILED  ErrorCode = 7000
	ErrorCode_DB_QUERY_FAILED       ErrorCode = 7001
	ErrorCode_DB_TRANSACTION_FAILED ErrorCode = 7002
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK: "HTTP_OK",

	ErrorCode_INTERNAL:          "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:  "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:         "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:    "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED: "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:   "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:         "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:   "INVALID_PAYLOAD",

	ErrorCode_AUTH_INVALID_TOKEN:       "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:       "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_INVALID_CREDENTIALS: "AUTH_INVALID_CREDENTIALS",
	ErrorCode_AUTH_SIGNATURE_INVALID:   "AUTH_SIGNATURE_INVALID",

	ErrorCode_TRANSCRIPT_NOT_FOUND:      "TRANSCRIPT_NOT_FOUND",
	ErrorCode_TRANSCRIPT_INGEST_FAILED:  "TRANSCRIPT_INGEST_FAILED",
	ErrorCode_TRANSCRIPT_ARCHIVE_FAILED: "TRANSCRIPT_ARCHIVE_FAILED",

	ErrorCode_ACTION_ITEM_NOT_FOUND: "ACTION_ITEM_NOT_FOUND",
	ErrorCode_INVALID_TRANSITION:    "INVALID_TRANSITION",

	ErrorCode_EXTRACTION_FAILED: "EXTRACTION_FAILED",
	ErrorCode_PROCESSING_FAILED: "PROCESSING_FAILED",
	ErrorCode_QUEUE_FULL:        "QUEUE_FULL",
	ErrorCode_LOCK_UNAVAILABLE:  "LOCK_UNAVAILABLE",
	ErrorCode_AUTOMATION_FAILED: "AUTOMATION_FAILED",

	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",

	ErrorCode_DB_CONNECTION_FAILED:  "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:       "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED: "DB_TRANSACTION_FAILED",
}

// String returns the symbolic name of the code, or its numeric form when the
// code is unknown.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN_" + strconv.Itoa(int(c))
}
