package parser

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-modelgen/pkg/openapi"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

// Schemas extracts the named component schemas from a Document. Missing
// components or schemas keys surface as the structural sentinel errors so the
// factory construction fails eagerly, never on first use.
func (p *Parser) Schemas(ctx context.Context, doc pkgopenapi.Document) (pkgopenapi.SchemaIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.ExternalReferences,
	}

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}

	if p.options.ValidateDocument {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	if spec.Components == nil {
		return nil, fmt.Errorf("openapi parser: %w", pkgopenapi.ErrMissingComponents)
	}
	if spec.Components.Schemas == nil {
		return nil, fmt.Errorf("openapi parser: %w", pkgopenapi.ErrMissingSchemas)
	}

	index := make(pkgopenapi.SchemaIndex, len(spec.Components.Schemas))
	for name, ref := range spec.Components.Schemas {
		index[name] = convertSchema(ref)
	}
	return index, nil
}
