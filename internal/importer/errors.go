// Package importer reconciles externally sourced resume records against the
// stored set under a configurable overwrite policy.
package importer

import "fmt"

// ParseError indicates the import payload is not valid JSON.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("import file is not valid JSON: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// EmptyError indicates the payload parsed but contained no resume records
// under any accepted shape.
type EmptyError struct{}

func (e *EmptyError) Error() string {
	return "no resumes found in import file"
}
