// Package errs holds the error vocabulary shared by every layer of the service.
//
// Each kind pairs a sentinel (ErrObjectNotFound, ErrValueIsInvalid, ErrRuleIsViolated,
// ErrInternal and friends) with a struct carrying the details. Structs unwrap to their
// sentinel, so callers classify with errors.Is and the HTTP adapter maps each sentinel
// to one status code.
//
// RuleIsViolatedError carries a client-facing reason and is the only kind whose text
// is returned verbatim. InternalError keeps its cause for the log and shows only Message.
package errs
