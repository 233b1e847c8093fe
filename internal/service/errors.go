package service

import "errors"

// Sentinel errors classifying every way a summarization request can
// fail. Each pipeline stage maps its failures to exactly one of these,
// wrapped with the underlying cause, so callers can both branch with
// errors.Is and log the root error. None of them is ever swallowed; a
// failed request always surfaces one of these to the caller and leaves
// the history store untouched.
var (
	// ErrInvalidURL: no video identifier could be extracted from the
	// submitted URL. Nothing was fetched and nothing was saved.
	ErrInvalidURL = errors.New("invalid video url")

	// ErrUnknownLanguage: the requested output language is not in the
	// language catalog.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrMetadataUnavailable: title/channel lookup failed.
	ErrMetadataUnavailable = errors.New("video metadata unavailable")

	// ErrTranscriptUnavailable: the video has no usable transcript,
	// e.g. captions are disabled.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")

	// ErrSummarizationFailed: the summarization model call failed.
	ErrSummarizationFailed = errors.New("summarization failed")

	// ErrStorageUnavailable: the final history append could not
	// complete. Fatal to the request; no partial state exists because
	// the append is the only write and it is a single statement.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
