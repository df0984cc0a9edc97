package model

import (
	"fmt"
	"sort"
	"strings"

	pkgmodel "github.com/goliatone/go-modelgen/pkg/model"
	pkgopenapi "github.com/goliatone/go-modelgen/pkg/openapi"
)

// Builder translates one named component schema into a relational model. It
// is the collaborator the cached factory wraps; errors it returns propagate
// to the factory caller unchanged.
type Builder struct {
	opts Options
}

// Options configures a Builder.
type Options struct {
	// TableNamer derives a table name from a schema name when x-tablename is
	// absent. Defaults to snake_case.
	TableNamer func(string) string
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := options
	if opts.TableNamer == nil {
		opts.TableNamer = SnakeCase
	}
	return &Builder{opts: opts}
}

// Build resolves the named schema against the index and translates it into a
// model descriptor.
func (b *Builder) Build(name string, schemas pkgopenapi.SchemaIndex) (*pkgmodel.Model, error) {
	sch, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("model build: schema %q is not defined in the specification", name)
	}

	sch, err := resolveRef(name, sch, schemas)
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(); err != nil {
		return nil, fmt.Errorf("model build: schema %q: %w", name, err)
	}

	if sch.Type != "" && sch.Type != "object" {
		return nil, fmt.Errorf("model build: schema %q must be an object, got %q", name, sch.Type)
	}

	table := b.opts.TableNamer(name)
	if raw, ok := sch.Extension(pkgopenapi.ExtTableName); ok {
		value, ok := raw.(string)
		if !ok || value == "" {
			return nil, fmt.Errorf("model build: schema %q: %s must be a non-empty string", name, pkgopenapi.ExtTableName)
		}
		table = value
	}

	columns, err := b.columnsFromProperties(name, sch)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("model build: schema %q has no properties to map", name)
	}

	return &pkgmodel.Model{
		Name:        name,
		Table:       table,
		Columns:     columns,
		Description: sch.Description,
	}, nil
}

// resolveRef follows a top-level alias ($ref to another component schema)
// with a cycle guard. Property-level references are left to columnFromSchema.
// Relational extensions declared on an alias override the target's, with the
// alias nearest the requested name winning; the target is cloned before the
// merge so the shared index entry is never mutated.
func resolveRef(name string, sch pkgopenapi.Schema, schemas pkgopenapi.SchemaIndex) (pkgopenapi.Schema, error) {
	seen := map[string]struct{}{name: {}}
	var overrides map[string]any
	for sch.Ref != "" && sch.Type == "" && len(sch.Properties) == 0 {
		for key, value := range sch.Extensions {
			if overrides == nil {
				overrides = make(map[string]any)
			}
			if _, ok := overrides[key]; !ok {
				overrides[key] = value
			}
		}

		target := refBasename(sch.Ref)
		if target == "" {
			return pkgopenapi.Schema{}, fmt.Errorf("model build: schema %q: unsupported reference %q", name, sch.Ref)
		}
		if _, ok := seen[target]; ok {
			return pkgopenapi.Schema{}, fmt.Errorf("model build: schema %q: circular reference through %q", name, target)
		}
		seen[target] = struct{}{}

		next, ok := schemas[target]
		if !ok {
			return pkgopenapi.Schema{}, fmt.Errorf("model build: schema %q references undefined schema %q", name, target)
		}
		sch = next
	}

	if len(overrides) > 0 {
		sch = sch.Clone()
		if sch.Extensions == nil {
			sch.Extensions = make(map[string]any, len(overrides))
		}
		for key, value := range overrides {
			sch.Extensions[key] = value
		}
	}
	return sch, nil
}

func refBasename(ref string) string {
	const prefix = "#/components/schemas/"
	if !strings.HasPrefix(ref, prefix) {
		return ""
	}
	return strings.TrimPrefix(ref, prefix)
}

func (b *Builder) columnsFromProperties(schemaName string, sch pkgopenapi.Schema) ([]pkgmodel.Column, error) {
	required := make(map[string]struct{}, len(sch.Required))
	for _, name := range sch.Required {
		required[name] = struct{}{}
	}

	// Map iteration order is random; sort property names so column order is
	// stable across builds, with primary key columns first.
	names := make([]string, 0, len(sch.Properties))
	for name := range sch.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var pk, rest []pkgmodel.Column
	for _, name := range names {
		_, isRequired := required[name]
		column, err := columnFromSchema(schemaName, name, sch.Properties[name], isRequired)
		if err != nil {
			return nil, err
		}
		if column.PrimaryKey {
			pk = append(pk, column)
		} else {
			rest = append(rest, column)
		}
	}
	return append(pk, rest...), nil
}

func columnFromSchema(schemaName, name string, ps pkgopenapi.Schema, required bool) (pkgmodel.Column, error) {
	column := pkgmodel.Column{
		Name:        name,
		Nullable:    !required,
		Default:     ps.Default,
		Description: ps.Description,
		Enum:        ps.Enum,
	}
	if ps.Nullable {
		column.Nullable = true
	}

	columnType, size, err := columnType(schemaName, name, ps)
	if err != nil {
		return pkgmodel.Column{}, err
	}
	column.Type = columnType
	column.Size = size

	if column.PrimaryKey, err = extensionBool(schemaName, name, ps, pkgopenapi.ExtPrimaryKey); err != nil {
		return pkgmodel.Column{}, err
	}
	if column.Autoincrement, err = extensionBool(schemaName, name, ps, pkgopenapi.ExtAutoincrement); err != nil {
		return pkgmodel.Column{}, err
	}
	if column.Unique, err = extensionBool(schemaName, name, ps, pkgopenapi.ExtUnique); err != nil {
		return pkgmodel.Column{}, err
	}
	if column.Index, err = extensionBool(schemaName, name, ps, pkgopenapi.ExtIndex); err != nil {
		return pkgmodel.Column{}, err
	}

	if column.PrimaryKey {
		column.Nullable = false
	}
	if column.Autoincrement && columnType != pkgmodel.ColumnTypeInteger && columnType != pkgmodel.ColumnTypeBigInt {
		return pkgmodel.Column{}, fmt.Errorf(
			"model build: property %q of schema %q: %s requires an integer type",
			name, schemaName, pkgopenapi.ExtAutoincrement,
		)
	}

	if raw, ok := ps.Extension(pkgopenapi.ExtForeignKey); ok {
		fk, err := parseForeignKey(raw)
		if err != nil {
			return pkgmodel.Column{}, fmt.Errorf("model build: property %q of schema %q: %w", name, schemaName, err)
		}
		column.ForeignKey = fk
	}

	return column, nil
}

func columnType(schemaName, name string, ps pkgopenapi.Schema) (pkgmodel.ColumnType, int, error) {
	if isJSON, err := extensionBool(schemaName, name, ps, pkgopenapi.ExtJSON); err != nil {
		return "", 0, err
	} else if isJSON {
		return pkgmodel.ColumnTypeJSON, 0, nil
	}

	switch ps.Type {
	case "integer":
		if ps.Format == "int32" {
			return pkgmodel.ColumnTypeInteger, 0, nil
		}
		// int64 and unspecified formats both map wide.
		return pkgmodel.ColumnTypeBigInt, 0, nil
	case "number":
		return pkgmodel.ColumnTypeFloat, 0, nil
	case "boolean":
		return pkgmodel.ColumnTypeBoolean, 0, nil
	case "string":
		switch ps.Format {
		case "date":
			return pkgmodel.ColumnTypeDate, 0, nil
		case "date-time":
			return pkgmodel.ColumnTypeDateTime, 0, nil
		case "binary", "byte":
			return pkgmodel.ColumnTypeBinary, 0, nil
		}
		if ps.MaxLength != nil && *ps.MaxLength > 0 {
			return pkgmodel.ColumnTypeVarchar, *ps.MaxLength, nil
		}
		return pkgmodel.ColumnTypeText, 0, nil
	case "object", "array":
		return "", 0, fmt.Errorf(
			"model build: property %q of schema %q: %s schemas require %s",
			name, schemaName, ps.Type, pkgopenapi.ExtJSON,
		)
	case "":
		if ps.Ref != "" {
			return "", 0, fmt.Errorf(
				"model build: property %q of schema %q: references are not supported, use %s",
				name, schemaName, pkgopenapi.ExtForeignKey,
			)
		}
		return "", 0, fmt.Errorf("model build: property %q of schema %q has no type", name, schemaName)
	default:
		return "", 0, fmt.Errorf("model build: property %q of schema %q has unsupported type %q", name, schemaName, ps.Type)
	}
}

func extensionBool(schemaName, name string, ps pkgopenapi.Schema, key string) (bool, error) {
	raw, ok := ps.Extension(key)
	if !ok {
		return false, nil
	}
	value, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf(
			"model build: property %q of schema %q: %s must be a boolean, got %T",
			name, schemaName, key, raw,
		)
	}
	return value, nil
}

func parseForeignKey(raw any) (*pkgmodel.ForeignKey, error) {
	value, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%s must be a string, got %T", pkgopenapi.ExtForeignKey, raw)
	}
	table, column, found := strings.Cut(value, ".")
	if !found || table == "" || column == "" {
		return nil, fmt.Errorf("%s must look like \"table.column\", got %q", pkgopenapi.ExtForeignKey, value)
	}
	return &pkgmodel.ForeignKey{Table: table, Column: column}, nil
}
