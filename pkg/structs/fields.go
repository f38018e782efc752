// Package structs reads struct fields by name.
package structs

import (
	"github.com/oleiade/reflections"
	"github.com/pkg/errors"
)

// GetField returns the value of the provided obj field. obj can whether be a structure or pointer to structure.
// Promoted fields of embedded structures are reachable by their own name.
func GetField(obj any, name string) (any, error) {
	v, err := reflections.GetField(obj, name)
	return v, errors.Wrapf(err, "could not get field %s", name)
}

// A Projection is an ordered subset of a structure's fields.
type Projection struct {
	Fields []string
	Values []any
}

// Project returns the named fields of obj in the given order.
func Project(obj any, fields []string) (Projection, error) {
	p := Projection{
		Fields: fields,
		Values: make([]any, 0, len(fields)),
	}

	for _, name := range fields {
		v, err := GetField(obj, name)
		if err != nil {
			return p, err
		}
		p.Values = append(p.Values, v)
	}
	return p, nil
}

// Map returns the projection as a map keyed by field name.
func (p Projection) Map() map[string]any {
	m := make(map[string]any, len(p.Fields))
	for i, name := range p.Fields {
		m[name] = p.Values[i]
	}
	return m
}
