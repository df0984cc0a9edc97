package openapi

import "context"

// Parser extracts the named component schemas from a specification document
// and normalises them into the decoupled Schema value type. Parsing fails
// with ErrMissingComponents or ErrMissingSchemas when the required keys are
// absent; an empty schema index is a valid result.
type Parser interface {
	Schemas(ctx context.Context, doc Document) (SchemaIndex, error)
}

// ParserOptions exposes toggles for parsing behaviour.
type ParserOptions struct {
	// ExternalReferences controls whether $ref pointers outside the document
	// may be fetched during parsing. Defaults to false to keep loading
	// hermetic.
	ExternalReferences bool

	// ValidateDocument runs full OpenAPI validation on the parsed document
	// before the schemas are extracted. Defaults to false: component-only
	// documents are accepted as long as the required keys are present.
	ValidateDocument bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithExternalReferences toggles resolution of refs outside the document.
func WithExternalReferences(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ExternalReferences = enabled
	}
}

// WithDocumentValidation toggles full document validation ahead of schema
// extraction.
func WithDocumentValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ValidateDocument = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration. Implementations under internal/openapi call this helper to
// remain consistent.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the top-level modelgen package to avoid import cycles.
