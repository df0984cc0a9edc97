// Package modelgen maps an OpenAPI specification's component schemas to
// relational model definitions. The entry points validate the specification
// structure, bind a mapping base to the extracted schemas, and return a
// cached factory that materializes one model per schema name on demand.
package modelgen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	internalfactory "github.com/goliatone/go-modelgen/internal/factory"
	internalmodel "github.com/goliatone/go-modelgen/internal/model"
	internalparser "github.com/goliatone/go-modelgen/internal/openapi/parser"
	pkgmodel "github.com/goliatone/go-modelgen/pkg/model"
	pkgopenapi "github.com/goliatone/go-modelgen/pkg/openapi"
)

// Option configures the factory construction entry points.
type Option func(*options)

type options struct {
	base          *pkgmodel.Base
	build         pkgmodel.BuildFunc
	parserOptions []pkgopenapi.ParserOption
	loaderOptions []pkgopenapi.LoaderOption
}

// WithBase supplies a pre-existing mapping base to the file entry points.
// When absent, InitJSON and InitYAML construct a fresh one.
func WithBase(base *pkgmodel.Base) Option {
	return func(opts *options) {
		opts.base = base
	}
}

// WithBuildFunc swaps the schema-to-model translation the factory wraps.
// Useful for tests and for callers with custom column mapping rules.
func WithBuildFunc(build pkgmodel.BuildFunc) Option {
	return func(opts *options) {
		opts.build = build
	}
}

// WithParserOptions forwards options to the document parser.
func WithParserOptions(parserOptions ...pkgopenapi.ParserOption) Option {
	return func(opts *options) {
		opts.parserOptions = append(opts.parserOptions, parserOptions...)
	}
}

// WithLoaderOptions forwards options to the document loader InitSource
// builds.
func WithLoaderOptions(loaderOptions ...pkgopenapi.LoaderOption) Option {
	return func(opts *options) {
		opts.loaderOptions = append(opts.loaderOptions, loaderOptions...)
	}
}

func newOptions(opts ...Option) options {
	var cfg options
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.build == nil {
		cfg.build = internalmodel.New(internalmodel.Options{}).Build
	}
	return cfg
}

// InitModelFactory creates a cached model factory from a decoded
// specification document. The specification must contain
// components.schemas; either key missing fails here, at construction,
// with a structural error naming the key. Construction failures stop there:
// a malformed schema definition does not fail the factory, its error
// surfaces when that name is requested and the remaining schemas stay
// usable. base may be nil when no registry bookkeeping is wanted.
func InitModelFactory(base *pkgmodel.Base, spec map[string]any, opts ...Option) (pkgmodel.Factory, error) {
	cfg := newOptions(opts...)

	schemas, err := pkgopenapi.ComponentSchemas(spec)
	if err != nil {
		return nil, err
	}
	index, broken := internalparser.IndexFromMap(schemas)

	build := cfg.build
	if len(broken) > 0 {
		inner := build
		build = func(name string, schemas pkgopenapi.SchemaIndex) (*pkgmodel.Model, error) {
			if err, ok := broken[name]; ok {
				return nil, err
			}
			return inner(name, schemas)
		}
	}

	return internalfactory.New(base, index, build), nil
}

// InitSchemaIndex creates a cached model factory directly from an already
// extracted schema index, skipping structural validation.
func InitSchemaIndex(base *pkgmodel.Base, index pkgopenapi.SchemaIndex, opts ...Option) pkgmodel.Factory {
	cfg := newOptions(opts...)
	return internalfactory.New(base, index, cfg.build)
}

// InitSource resolves src with a loader configured via WithLoaderOptions and
// builds a cached model factory from the loaded document. It is the entry
// point for fs.FS and remote specifications.
func InitSource(ctx context.Context, base *pkgmodel.Base, src pkgopenapi.Source, opts ...Option) (pkgmodel.Factory, error) {
	cfg := newOptions(opts...)

	loader := NewLoader(cfg.loaderOptions...)
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}

	return InitDocument(ctx, base, doc, opts...)
}

// InitDocument creates a cached model factory from a loaded specification
// document, running the kin-openapi backed parser to extract and normalise
// the component schemas.
func InitDocument(ctx context.Context, base *pkgmodel.Base, doc pkgopenapi.Document, opts ...Option) (pkgmodel.Factory, error) {
	cfg := newOptions(opts...)

	parser := internalparser.New(pkgopenapi.NewParserOptions(cfg.parserOptions...))
	index, err := parser.Schemas(ctx, doc)
	if err != nil {
		return nil, err
	}

	return internalfactory.New(base, index, cfg.build), nil
}

// InitJSON reads an OpenAPI specification from a JSON file and returns the
// mapping base together with a cached model factory bound to it. A fresh
// base is constructed unless one is supplied via WithBase.
func InitJSON(ctx context.Context, path string, opts ...Option) (*pkgmodel.Base, pkgmodel.Factory, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("modelgen: read specification: %w", err)
	}

	var spec map[string]any
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, nil, fmt.Errorf("modelgen: decode json specification: %w", err)
	}

	return initSpec(spec, opts...)
}

// InitYAML reads an OpenAPI specification from a YAML file and returns the
// mapping base together with a cached model factory bound to it. YAML
// support is optional: it requires a decoder registered by blank importing
// the decoder/yamldecoder package, and fails with ErrYAMLNotEnabled
// otherwise.
func InitYAML(ctx context.Context, path string, opts ...Option) (*pkgmodel.Base, pkgmodel.Factory, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	decode, err := yamlDecoder()
	if err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("modelgen: read specification: %w", err)
	}

	spec, err := decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("modelgen: decode yaml specification: %w", err)
	}

	return initSpec(spec, opts...)
}

func initSpec(spec map[string]any, opts ...Option) (*pkgmodel.Base, pkgmodel.Factory, error) {
	cfg := newOptions(opts...)

	base := cfg.base
	if base == nil {
		base = pkgmodel.NewBase()
	}

	factory, err := InitModelFactory(base, spec, opts...)
	if err != nil {
		return nil, nil, err
	}
	return base, factory, nil
}
