package port

import "errors"

// Sentinel errors for the answer pipeline. Each stage fails fast with its own
// kind; the answer service collapses all of them into ErrCannotAnswer before
// anything crosses the trust boundary outward.
var (
	ErrTranslationUnavailable = errors.New("translation unavailable")
	ErrExtractionEmpty        = errors.New("no query candidate in completion")
	ErrValidationRejected     = errors.New("query rejected by safety validator")
	ErrExecutionFailed        = errors.New("query execution failed")
	ErrNonNumericResult       = errors.New("query returned a non-numeric result")

	// ErrCannotAnswer is the only error the messaging surface ever sees.
	ErrCannotAnswer = errors.New("cannot answer question")
)
