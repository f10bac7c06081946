// Package task provides the Task entity: the execution record of one route
// step within one work order.
//
// Tasks are created by splitting a scheduled work order and carry a
// denormalized copy of their step's process. The route step link is optional:
// tasks created before route-ordered splitting existed, or whose step was
// deleted, have none and are treated as unbound.
package task
