package types

import "fmt"

// Severity grades a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding reported by a document validator.
type Issue struct {
	Document string
	Severity Severity
	Line     int
	Message  string
}

func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", i.Document, i.Line, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Document, i.Message)
}

// CountErrors returns how many issues have error severity.
func CountErrors(issues []Issue) int {
	n := 0
	for _, i := range issues {
		if i.Severity == SeverityError {
			n++
		}
	}
	return n
}
