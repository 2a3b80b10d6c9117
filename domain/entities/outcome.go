package entities

import "fmt"

// OutcomeKind is the result of a composite action
type OutcomeKind int

const (
	// OutcomeUnknown means neither success nor failure was observed before the timeout.
	OutcomeUnknown OutcomeKind = iota
	OutcomeSuccess
	OutcomeFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Outcome is returned by actions that submit something and wait for the page to react
type Outcome struct {
	Kind    OutcomeKind `json:"kind"`
	Message string      `json:"message,omitempty"`
}

func Success() Outcome {
	return Outcome{Kind: OutcomeSuccess}
}

func Failure(message string) Outcome {
	return Outcome{Kind: OutcomeFailure, Message: message}
}

func Unknown(reason string) Outcome {
	return Outcome{Kind: OutcomeUnknown, Message: reason}
}

func (o Outcome) IsSuccess() bool { return o.Kind == OutcomeSuccess }
func (o Outcome) IsFailure() bool { return o.Kind == OutcomeFailure }
func (o Outcome) IsUnknown() bool { return o.Kind == OutcomeUnknown }

func (o Outcome) String() string {
	if o.Message == "" {
		return o.Kind.String()
	}
	return fmt.Sprintf("%s: %s", o.Kind, o.Message)
}
