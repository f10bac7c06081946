package workorder

import "slices"

// Field names a mutable attribute of a work order as it appears in update requests.
type Field string

const (
	FieldName      Field = "name"
	FieldStatus    Field = "status"
	FieldScheduled Field = "scheduled"
	// FieldRoute switches the order to a copy of another route template.
	FieldRoute Field = "route_id"
	// FieldSteps replaces the step list of the order's own route.
	FieldSteps Field = "steps"
)

// FieldSet is the set of fields present in an update request, regardless of their values.
type FieldSet map[Field]struct{}

func NewFieldSet(fields ...Field) FieldSet {
	set := make(FieldSet, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func (s FieldSet) Has(f Field) bool {
	_, ok := s[f]
	return ok
}

// Only reports whether every field in s is one of allowed.
func (s FieldSet) Only(allowed ...Field) bool {
	for f := range s {
		if !slices.Contains(allowed, f) {
			return false
		}
	}
	return true
}

// TouchesRoute reports whether the request changes the route or its steps.
func (s FieldSet) TouchesRoute() bool {
	return s.Has(FieldRoute) || s.Has(FieldSteps)
}

// Sorted returns the fields in lexical order, for logging.
func (s FieldSet) Sorted() []Field {
	fields := make([]Field, 0, len(s))
	for f := range s {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}
