// Package schema implements the typed LLM-response contract: a declarative
// shape definition that is serialized into prompt text so the model knows
// the exact JSON expected, then used to validate and decode the model's
// answer back into a typed value. The "Instructor" pattern from the JSON
// integrity skill, with the shape single-sourced per call site.
package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Kind is the JSON type a field must carry. Validation is strict: a number
// delivered as a quoted string is a violation, not a coercion.
type Kind string

const (
	String      Kind = "string"
	Number      Kind = "number"
	Boolean     Kind = "boolean"
	StringArray Kind = "string[]"
	NumberArray Kind = "number[]"
)

var validKinds = map[Kind]bool{
	String:      true,
	Number:      true,
	Boolean:     true,
	StringArray: true,
	NumberArray: true,
}

// Field declares one property of the expected JSON object.
type Field struct {
	Name     string
	Kind     Kind
	Optional bool
	Enum     []string // allowed values, String fields only
}

// Definition is an immutable object shape. Build one per call site with
// Define and reuse it for every round trip.
type Definition struct {
	fields []Field
	byName map[string]Field
}

// Define builds a Definition, rejecting shapes that would break the result
// algebra. A field literally named "error" is forbidden because the error
// key is the sole discriminant of a soft failure.
func Define(fields ...Field) (*Definition, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("schema must declare at least one field")
	}
	byName := make(map[string]Field, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("schema field with empty name")
		}
		if f.Name == "error" {
			return nil, fmt.Errorf("schema field %q collides with the error discriminant", f.Name)
		}
		if !validKinds[f.Kind] {
			return nil, fmt.Errorf("schema field %q has unknown kind %q", f.Name, f.Kind)
		}
		if len(f.Enum) > 0 && f.Kind != String {
			return nil, fmt.Errorf("schema field %q: enums are only supported on string fields", f.Name)
		}
		if _, dup := byName[f.Name]; dup {
			return nil, fmt.Errorf("schema field %q declared twice", f.Name)
		}
		byName[f.Name] = f
	}
	return &Definition{fields: fields, byName: byName}, nil
}

// MustDefine is Define for package-level schemas that are statically known
// to be valid.
func MustDefine(fields ...Field) *Definition {
	def, err := Define(fields...)
	if err != nil {
		panic(err)
	}
	return def
}

// Fields returns the declared fields in declaration order.
func (d *Definition) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// Describe serializes the shape into the compact, language-agnostic textual
// form embedded verbatim into prompts:
//
//	{
//	    "armour": number,
//	    "reasoning": string (optional)
//	}
func (d *Definition) Describe() string {
	var b strings.Builder
	b.WriteString("{\n")
	for i, f := range d.fields {
		b.WriteString("    \"")
		b.WriteString(f.Name)
		b.WriteString("\": ")
		if len(f.Enum) > 0 {
			quoted := make([]string, len(f.Enum))
			for j, v := range f.Enum {
				quoted[j] = fmt.Sprintf("%q", v)
			}
			b.WriteString(strings.Join(quoted, " | "))
		} else {
			b.WriteString(string(f.Kind))
		}
		if f.Optional {
			b.WriteString(" (optional)")
		}
		if i < len(d.fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// sortedViolations keeps error messages deterministic regardless of map
// iteration order during validation.
func sortedViolations(violations []string) string {
	sort.Strings(violations)
	return strings.Join(violations, "; ")
}
