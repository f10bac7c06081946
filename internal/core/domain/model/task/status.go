package task

import (
	"fmt"

	"mes/internal/pkg/errs"
)

// Status is the execution state of a task.
type Status int

const (
	Unknown Status = iota
	Pending
	Unreported
	InProgress
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Unreported: "unreported",
		InProgress: "in_progress",
		Completed:  "completed",
	}
}

// ParseStatus converts the wire name of a status into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid task status", s))
}

func (s Status) Validate() error {
	if s < Pending || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid task status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsStarted reports whether work on the task has been reported (in progress or done).
func (s Status) IsStarted() bool {
	return s == InProgress || s == Completed
}
