// Package openapi exposes the public contracts for the loader and parser
// stages that turn an OpenAPI specification into the component schema index
// the model factory consumes. Implementations live under internal/openapi to
// keep kin-openapi dependencies hidden from consumers.
package openapi
