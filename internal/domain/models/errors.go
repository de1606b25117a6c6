package models

import "github.com/pkg/errors"

var (
	ErrNotFound                 = errors.New("application not found")
	ErrInvalidState             = errors.New("invalid application state")
	ErrInvalidTransition        = errors.New("invalid stage transition")
	ErrUnknownRole              = errors.New("unknown role")
	ErrUnsupportedFormat        = errors.New("unsupported resume format")
	ErrExtractionFailed         = errors.New("resume text extraction failed")
	ErrMisconfiguredCredentials = errors.New("credentials are not configured")
	ErrOracleResponseInvalid    = errors.New("invalid oracle response")
	ErrMissingFeedback          = errors.New("feedback is required for rejection")
	ErrCredentialFetchFailed    = errors.New("credential fetch failed")
	ErrSchedulingFailed         = errors.New("scheduling failed")
	ErrNotificationFailed       = errors.New("notification failed")
)

// ErrInvalidOracleResponse is the name the decision gate uses for the same condition.
var ErrInvalidOracleResponse = ErrOracleResponseInvalid
