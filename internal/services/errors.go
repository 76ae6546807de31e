package services

import (
	"fmt"
	"strings"
)

// ErrorMarker prefixes the user-facing text of content and image failures.
// JSON clients that only see the message can match on it.
const ErrorMarker = "Error:"

// HasErrorMarker reports whether s is a failure message rather than content.
func HasErrorMarker(s string) bool {
	return strings.HasPrefix(s, ErrorMarker)
}

// Operation names an AI backend call.
type Operation string

const (
	OpGenerateContent Operation = "generate_content"
	OpGenerateImage   Operation = "generate_image"
	OpFetchNews       Operation = "fetch_news"
)

// FailureReason classifies why an AI call produced no result.
type FailureReason int

const (
	// ReasonTransport means the request never got an HTTP response.
	ReasonTransport FailureReason = iota + 1
	// ReasonAPI means the backend answered with an error status or an
	// undecodable body.
	ReasonAPI
	// ReasonEmptyResponse means a successful response carried no text.
	ReasonEmptyResponse
	// ReasonNoImage means a successful response carried no image.
	ReasonNoImage
)

func (r FailureReason) String() string {
	switch r {
	case ReasonTransport:
		return "transport"
	case ReasonAPI:
		return "api"
	case ReasonEmptyResponse:
		return "empty_response"
	case ReasonNoImage:
		return "no_image"
	default:
		return "unknown"
	}
}

// GenerationError is the single failure type of AIService.
type GenerationError struct {
	Op         Operation
	Reason     FailureReason
	StatusCode int
	Err        error
}

func (e *GenerationError) Error() string {
	switch e.Reason {
	case ReasonEmptyResponse:
		return ErrorMarker + " The AI returned an empty response."
	case ReasonNoImage:
		return ErrorMarker + " No image was generated."
	}

	detail := "unknown error"
	if e.Err != nil {
		detail = e.Err.Error()
	}
	switch e.Op {
	case OpGenerateContent:
		return fmt.Sprintf("%s Failed to generate content. %s", ErrorMarker, detail)
	case OpGenerateImage:
		return fmt.Sprintf("%s Failed to generate image. %s", ErrorMarker, detail)
	default:
		return fmt.Sprintf("Failed to fetch news. %s", detail)
	}
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
