// Package services holds the work-order rules that span more than one aggregate.
//
// TaskReconciler computes which tasks a work order gains or loses when its route
// changes. TaskGate decides whether a task may move to a new status given its
// neighbours on the route. WorkOrderLifecycle answers which edits and transitions
// the current order status allows.
//
// All three are pure: they read aggregates and return plans or errors, and the
// command handlers persist the outcome.
package services
