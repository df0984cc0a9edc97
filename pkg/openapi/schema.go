package openapi

import "errors"

// Vendor extension keys the relational mapping understands. They follow the
// x-tablename convention of OpenAPI-to-ORM tooling: everything the column
// translation needs beyond plain JSON schema lives in these keys.
const (
	ExtTableName     = "x-tablename"
	ExtPrimaryKey    = "x-primary-key"
	ExtAutoincrement = "x-autoincrement"
	ExtUnique        = "x-unique"
	ExtIndex         = "x-index"
	ExtForeignKey    = "x-foreign-key"
	ExtJSON          = "x-json"
)

// SchemaIndex maps component schema names to their definitions. It is the
// read-only input the model factory closes over.
type SchemaIndex map[string]Schema

// Names returns the schema names present in the index, unordered.
func (idx SchemaIndex) Names() []string {
	names := make([]string, 0, len(idx))
	for name := range idx {
		names = append(names, name)
	}
	return names
}

// Schema represents one component schema (or a nested property) decoupled
// from the parsing backend. Only the subset relevant to relational mapping is
// carried.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Required    []string
	Properties  map[string]Schema
	Items       *Schema
	Enum        []any
	Description string
	Default     any
	Nullable    bool
	ReadOnly    bool
	MaxLength   *int
	Extensions  map[string]any
}

// Extension returns the raw value of a vendor extension key.
func (s Schema) Extension(key string) (any, bool) {
	value, ok := s.Extensions[key]
	return value, ok
}

// Clone creates a deep copy of the schema tree to avoid accidental mutation.
func (s Schema) Clone() Schema {
	cloned := s
	if len(s.Required) > 0 {
		cloned.Required = append([]string(nil), s.Required...)
	}
	if len(s.Enum) > 0 {
		cloned.Enum = append([]any(nil), s.Enum...)
	}
	if len(s.Properties) > 0 {
		cloned.Properties = make(map[string]Schema, len(s.Properties))
		for k, v := range s.Properties {
			cloned.Properties[k] = v.Clone()
		}
	}
	if s.Items != nil {
		items := s.Items.Clone()
		cloned.Items = &items
	}
	if len(s.Extensions) > 0 {
		cloned.Extensions = make(map[string]any, len(s.Extensions))
		for k, v := range s.Extensions {
			cloned.Extensions[k] = v
		}
	}
	if s.MaxLength != nil {
		value := *s.MaxLength
		cloned.MaxLength = &value
	}
	return cloned
}

// Validate performs the basic sanity check callers need before handing a
// schema to the model builder.
func (s Schema) Validate() error {
	if s.Type == "" && s.Ref == "" && len(s.Properties) == 0 {
		return errors.New("openapi: schema requires a type, ref, or properties")
	}
	return nil
}
