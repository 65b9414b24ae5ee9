package apierror

import "fmt"

// ErrorBody is the error envelope the SocialFlow API returns with non-2xx
// responses. All fields are optional.
type ErrorBody struct {
	Message   string         `json:"message"`
	ErrorText string         `json:"error"`
	Errors    map[string]any `json:"errors"`
}

// HTTPFailure is a raw non-2xx response as produced by the client
// transport, prior to classification. It is the only place a response
// status enters the classifier.
type HTTPFailure struct {
	StatusCode int
	Body       *ErrorBody
	RequestID  string
	Endpoint   string
	Method     string
}

func (f *HTTPFailure) Error() string {
	return fmt.Sprintf("socialflow: request failed with status %d", f.StatusCode)
}
