package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-modelgen/pkg/openapi"
)

// relationalExtensions are the vendor extension keys carried through to the
// model builder. Everything else under x- is dropped during conversion.
var relationalExtensions = map[string]struct{}{
	pkgopenapi.ExtTableName:     {},
	pkgopenapi.ExtPrimaryKey:    {},
	pkgopenapi.ExtAutoincrement: {},
	pkgopenapi.ExtUnique:        {},
	pkgopenapi.ExtIndex:         {},
	pkgopenapi.ExtForeignKey:    {},
	pkgopenapi.ExtJSON:          {},
}

// IndexFromMap converts a raw components.schemas mapping, as produced by
// json/yaml decoding, into the typed schema index. It round-trips each
// definition through kin-openapi's schema unmarshalling so both entry paths
// (raw map and loaded document) yield the same Schema values.
//
// A definition that cannot be decoded does not fail the whole conversion:
// its error is returned keyed by schema name so callers can surface it when
// that name is requested, leaving the remaining schemas usable.
func IndexFromMap(raw map[string]any) (pkgopenapi.SchemaIndex, map[string]error) {
	index := make(pkgopenapi.SchemaIndex, len(raw))
	var broken map[string]error
	record := func(name string, err error) {
		if broken == nil {
			broken = make(map[string]error)
		}
		broken[name] = err
	}
	for name, def := range raw {
		data, err := json.Marshal(def)
		if err != nil {
			record(name, fmt.Errorf("openapi parser: encode schema %q: %w", name, err))
			continue
		}
		var ref openapi3.SchemaRef
		if err := ref.UnmarshalJSON(data); err != nil {
			record(name, fmt.Errorf("openapi parser: decode schema %q: %w", name, err))
			continue
		}
		index[name] = convertSchema(&ref)
	}
	return index, broken
}

func convertSchema(ref *openapi3.SchemaRef) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	if ref.Value == nil {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	src := ref.Value
	schema := pkgopenapi.Schema{
		Ref:         ref.Ref,
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Description: src.Description,
		Default:     src.Default,
		Nullable:    src.Nullable,
		ReadOnly:    src.ReadOnly,
	}

	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Properties) > 0 {
		properties := make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			properties[name] = convertSchema(property)
		}
		schema.Properties = properties
	}
	if src.Items != nil {
		items := convertSchema(src.Items)
		schema.Items = &items
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		schema.MaxLength = &value
	}
	schema.Extensions = extractExtensions(src.Extensions)
	mergeAllOfExtensions(&schema, src.AllOf)
	return schema
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}

func extractExtensions(raw map[string]any) map[string]any {
	if len(raw) == 0 {
		return nil
	}

	result := make(map[string]any)
	for key, value := range raw {
		if _, ok := relationalExtensions[key]; !ok {
			continue
		}
		if value == nil {
			continue
		}
		result[key] = value
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// mergeAllOfExtensions lifts relational extensions declared on allOf branches
// onto the composed schema, so x-tablename on a shared base branch survives.
func mergeAllOfExtensions(target *pkgopenapi.Schema, refs openapi3.SchemaRefs) {
	if target == nil || len(refs) == 0 {
		return
	}
	for _, ref := range refs {
		if ref == nil || ref.Value == nil {
			continue
		}
		if ext := extractExtensions(ref.Value.Extensions); len(ext) > 0 {
			if target.Extensions == nil {
				target.Extensions = make(map[string]any, len(ext))
			}
			for key, value := range ext {
				if _, exists := target.Extensions[key]; !exists {
					target.Extensions[key] = value
				}
			}
		}
		mergeAllOfExtensions(target, ref.Value.AllOf)
	}
}
