package model

import "github.com/goliatone/go-modelgen/pkg/openapi"

// Factory returns the model for a named component schema. Implementations
// memoize per name: for one factory instance the same name always yields the
// identical *Model, and the underlying build function runs at most once per
// distinct name. Unknown or untranslatable names return the build function's
// error unchanged.
type Factory interface {
	Model(name string) (*Model, error)
}

// BuildFunc translates one named schema from the index into a Model. It is
// the collaborator the cached factory wraps; the default implementation lives
// under internal/model, and tests swap in counting stubs.
type BuildFunc func(name string, schemas openapi.SchemaIndex) (*Model, error)
