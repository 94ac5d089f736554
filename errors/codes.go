package errors

// ErrorCode identifies an application error category
type ErrorCode int32

const (
	ErrorCode_HTTP_OK          ErrorCode = 0
	ErrorCode_INTERNAL         ErrorCode = 1
	ErrorCode_INVALID_ARGUMENT ErrorCode = 2
	ErrorCode_NOT_FOUND        ErrorCode = 3

	// Upload / pipeline
	ErrorCode_MISSING_AUDIO_FILE    ErrorCode = 100
	ErrorCode_UNSUPPORTED_EXTENSION ErrorCode = 101
	ErrorCode_TRANSCRIPTION_FAILED  ErrorCode = 102
	ErrorCode_SUMMARY_FAILED        ErrorCode = 103
	ErrorCode_PROCESSING_FAILED     ErrorCode = 104

	// Export
	ErrorCode_UNSUPPORTED_FORMAT   ErrorCode = 200
	ErrorCode_EXPORT_FAILED        ErrorCode = 201

	// Integrations
	ErrorCode_CALENDAR_AUTH_FAILED ErrorCode = 300
	ErrorCode_CALENDAR_FAILED      ErrorCode = 301
	ErrorCode_STORAGE_FAILED       ErrorCode = 302
	ErrorCode_LLM_UNAVAILABLE      ErrorCode = 303

	// Database
	ErrorCode_DB_QUERY_FAILED ErrorCode = 400
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:               "OK",
	ErrorCode_INTERNAL:              "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:      "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:             "NOT_FOUND",
	ErrorCode_MISSING_AUDIO_FILE:    "MISSING_AUDIO_FILE",
	ErrorCode_UNSUPPORTED_EXTENSION: "UNSUPPORTED_EXTENSION",
	ErrorCode_TRANSCRIPTION_FAILED:  "TRANSCRIPTION_FAILED",
	ErrorCode_SUMMARY_FAILED:        "SUMMARY_FAILED",
	ErrorCode_PROCESSING_FAILED:     "PROCESSING_FAILED",
	ErrorCode_UNSUPPORTED_FORMAT:    "UNSUPPORTED_FORMAT",
	ErrorCode_EXPORT_FAILED:         "EXPORT_FAILED",
	ErrorCode_CALENDAR_AUTH_FAILED:  "CALENDAR_AUTH_FAILED",
	ErrorCode_CALENDAR_FAILED:       "CALENDAR_FAILED",
	ErrorCode_STORAGE_FAILED:        "STORAGE_FAILED",
	ErrorCode_LLM_UNAVAILABLE:       "LLM_UNAVAILABLE",
	ErrorCode_DB_QUERY_FAILED:       "DB_QUERY_FAILED",
}

// String returns the symbolic name for the error code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
