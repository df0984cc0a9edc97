package openapi

import (
	"errors"
	"fmt"
)

// Structural errors raised when a specification is missing one of the two
// required top-level keys. They are distinguished so callers can tell a
// document with no components apart from components without schemas.
var (
	ErrMissingComponents = errors.New(`"components" is a required key in the specification`)
	ErrMissingSchemas    = errors.New(`"schemas" is a required key in the components of the specification`)
)

// ComponentSchemas extracts the components.schemas mapping from a raw
// specification document. It is a pure function: no validation beyond the
// presence and shape of the two required keys is performed, and the returned
// mapping may be empty. Deeper problems are the model builder's concern.
func ComponentSchemas(spec map[string]any) (map[string]any, error) {
	rawComponents, ok := spec["components"]
	if !ok {
		return nil, fmt.Errorf("openapi: %w", ErrMissingComponents)
	}
	components, ok := rawComponents.(map[string]any)
	if !ok {
		return nil, fmt.Errorf(`openapi: "components" must be a mapping, got %T`, rawComponents)
	}

	rawSchemas, ok := components["schemas"]
	if !ok {
		return nil, fmt.Errorf("openapi: %w", ErrMissingSchemas)
	}
	schemas, ok := rawSchemas.(map[string]any)
	if !ok {
		return nil, fmt.Errorf(`openapi: "components.schemas" must be a mapping, got %T`, rawSchemas)
	}

	return schemas, nil
}
