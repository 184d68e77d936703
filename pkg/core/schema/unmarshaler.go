package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"npc_outfitter/pkg/core/result"
)

// Unmarshaler validates and decodes raw model text into a typed value per a
// declared schema. One instance per expected shape, reused across calls.
type Unmarshaler[T any] interface {
	SerializeSchema() string
	Unmarshal(raw string) result.ErrorAware[T]
}

// JSONUnmarshaler is the strict implementation: the raw text must be exactly
// one JSON object (no forgiving extraction of JSON buried in prose), every
// declared non-optional field must be present with the declared JSON type,
// and unknown extra fields are silently dropped to strip model chattiness.
type JSONUnmarshaler[T any] struct {
	def *Definition
}

// NewJSONUnmarshaler builds an unmarshaler for the target shape T. The
// Definition, not T's struct tags, is the source of truth for validation;
// T only has to be decodable from the schema-conformant subset.
func NewJSONUnmarshaler[T any](def *Definition) *JSONUnmarshaler[T] {
	return &JSONUnmarshaler[T]{def: def}
}

// SerializeSchema returns the prompt-embeddable description of the shape.
func (u *JSONUnmarshaler[T]) SerializeSchema() string {
	return u.def.Describe()
}

// Unmarshal parses, validates, and decodes raw. Failures come back as soft
// errors carrying the raw text as context; nothing is thrown.
func (u *JSONUnmarshaler[T]) Unmarshal(raw string) result.ErrorAware[T] {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var parsed any
	if err := dec.Decode(&parsed); err != nil {
		return result.Fail[T](
			fmt.Sprintf("unable to parse literal string to JSON: %v", err), raw)
	}
	// Trailing prose after the JSON value is a hard parse failure.
	if dec.More() {
		return result.Fail[T]("unable to parse literal string to JSON: trailing content after JSON value", raw)
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return result.Fail[T](
			"JSON object doesn't meet expected format: top-level value is not an object", raw)
	}

	var violations []string
	conformant := make(map[string]any, len(u.def.fields))
	for _, f := range u.def.fields {
		value, present := obj[f.Name]
		if !present {
			if !f.Optional {
				violations = append(violations, fmt.Sprintf("field %q is required", f.Name))
			}
			continue
		}
		if reason := checkKind(f, value); reason != "" {
			violations = append(violations, fmt.Sprintf("field %q %s", f.Name, reason))
			continue
		}
		conformant[f.Name] = value
	}
	if len(violations) > 0 {
		return result.Fail[T](
			"JSON object doesn't meet expected format: "+sortedViolations(violations), raw)
	}

	// Re-encode only the schema-conformant subset and decode into T. Unknown
	// fields never reach the target type.
	filtered, err := json.Marshal(conformant)
	if err != nil {
		return result.Fail[T](fmt.Sprintf("unable to re-encode validated object: %v", err), raw)
	}
	var target T
	if err := json.Unmarshal(filtered, &target); err != nil {
		return result.Fail[T](
			fmt.Sprintf("validated object does not fit target type: %v", err), raw)
	}
	return result.OK(target)
}

// checkKind returns an empty string when value satisfies the field's kind,
// otherwise the violation reason.
func checkKind(f Field, value any) string {
	switch f.Kind {
	case String:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("must be a string, got %s", jsonTypeName(value))
		}
		if len(f.Enum) > 0 && !contains(f.Enum, s) {
			return fmt.Sprintf("must be one of %v, got %q", f.Enum, s)
		}
	case Number:
		if _, ok := value.(json.Number); !ok {
			return fmt.Sprintf("must be a number, got %s", jsonTypeName(value))
		}
	case Boolean:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("must be a boolean, got %s", jsonTypeName(value))
		}
	case StringArray:
		arr, ok := value.([]any)
		if !ok {
			return fmt.Sprintf("must be an array of strings, got %s", jsonTypeName(value))
		}
		for i, el := range arr {
			if _, ok := el.(string); !ok {
				return fmt.Sprintf("element %d must be a string, got %s", i, jsonTypeName(el))
			}
		}
	case NumberArray:
		arr, ok := value.([]any)
		if !ok {
			return fmt.Sprintf("must be an array of numbers, got %s", jsonTypeName(value))
		}
		for i, el := range arr {
			if _, ok := el.(json.Number); !ok {
				return fmt.Sprintf("element %d must be a number, got %s", i, jsonTypeName(el))
			}
		}
	}
	return ""
}

func jsonTypeName(value any) string {
	switch value.(type) {
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
