// Package process provides the Process entity: a named unit of manufacturing
// work (cutting, welding, painting, ...) that route steps and tasks refer to.
//
// Key business rules:
//   - A process has an immutable identifier
//   - Its name is required and at most kernel.MaxNameLength characters
//   - The description is free text and may be empty
package process
