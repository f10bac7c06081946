// Package route provides the Route aggregate: a named, ordered sequence of
// process steps that a work order follows.
//
// The package includes:
//   - Route: The aggregate root owning the step list and its ordering
//   - Step: One (process, order) position inside a route
//   - StepDefinition: The value used to describe a desired step list
//
// Key business rules:
//   - Step order values are positive and unique within a route
//   - A route's resolved sequence is its steps sorted ascending by order
//   - The same process may appear several times, each at a distinct order
//   - Replacing the step list keeps the identity of every step whose
//     (process, order) pair survives, so tasks bound to it keep their state
package route
