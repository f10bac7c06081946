// Package workorder provides the WorkOrder aggregate and its lifecycle.
//
// A work order moves through Draft, Submitted and Approved. Scheduling is an
// orthogonal flag that may only be raised on an approved order and is never
// cleared: once scheduled, the order's tasks mirror its route and almost every
// field is frozen.
//
// The package includes:
//   - WorkOrder: The aggregate root (identity, name, status, scheduled flag, route)
//   - Status: The three-state approval workflow and its transition table
//   - Field / FieldSet: The explicit set of fields an update request touches
//   - Rule errors carrying the client-facing messages of every lifecycle rule
//
// State transitions:
//
//	Draft ⇄ Submitted ⇄ Approved ──(Schedule)──> Approved + scheduled
package workorder
