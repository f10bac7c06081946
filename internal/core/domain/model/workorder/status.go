package workorder

import (
	"fmt"

	"mes/internal/pkg/errs"
)

// Status is the approval state of a work order.
//
// Valid transitions:
//
//	Draft ──submit──> Submitted ──approve──> Approved
//	Draft <──recall── Submitted <─unapprove─ Approved
//
// Staying in the same status is always allowed. Approved never goes back to
// Draft directly.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Draft
	Submitted
	Approved
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Draft:     "draft",
		Submitted: "submitted",
		Approved:  "approved",
	}
}

// transitions lists, for each status, the statuses reachable in one step.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Draft:     {Submitted},
		Submitted: {Draft, Approved},
		Approved:  {Submitted},
	}
}

// ParseStatus converts the wire name of a status into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of Draft, Submitted, Approved.
func (s Status) Validate() error {
	if s < Draft || s > Approved {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// TransitionTo returns target if the workflow allows moving from s to target.
//
// Returns:
//   - (target, nil) when s == target or the edge exists
//   - ErrApprovedCannotRevertToDraft for Approved -> Draft
//   - a RuleIsViolatedError naming both statuses for any other missing edge
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if s == target {
		return target, nil
	}
	if s == Approved && target == Draft {
		return Unknown, ErrApprovedCannotRevertToDraft
	}
	for _, next := range transitions()[s] {
		if next == target {
			return target, nil
		}
	}
	return Unknown, errs.NewRuleIsViolatedError(fmt.Sprintf("工单状态不能从 %s 变更为 %s。", s, target))
}
