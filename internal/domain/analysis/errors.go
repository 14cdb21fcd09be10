package analysis

import "errors"

// ErrInvalidURL is returned when the request carries no usable url.
var ErrInvalidURL = errors.New("Please provide a valid website URL")

// FetchError means the page could not be retrieved or parsed.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string { return "Error fetching the page: " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

// SuggestionError covers every completion API failure; auth, quota and
// transport errors are not told apart.
type SuggestionError struct {
	Err error
}

func (e *SuggestionError) Error() string {
	return "Error analyzing content with OpenAI: " + e.Err.Error()
}
func (e *SuggestionError) Unwrap() error { return e.Err }

// BannerError covers every image API failure. It never fails a request.
type BannerError struct {
	Brand string
	Err   error
}

func (e *BannerError) Error() string { return "Error obtaining banner: " + e.Err.Error() }
func (e *BannerError) Unwrap() error { return e.Err }
