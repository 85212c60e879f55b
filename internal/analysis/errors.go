// Package analysis turns resume text into an AnalysisResult, preferring a generative
// model and falling back to the heuristic scorer on any generative failure.
package analysis

import "fmt"

// MissingResumeMessage is the InputError message for empty resume text.
const MissingResumeMessage = "Missing resume content"

// InputError reports caller input that cannot be analyzed
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// ServiceError represents a transport failure or timeout talking to the generative service
type ServiceError struct {
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generative service: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generative service: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// ParseError represents a generative response that failed structural validation
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
