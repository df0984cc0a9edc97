package model

import (
	"strings"
	"testing"

	pkgmodel "github.com/goliatone/go-modelgen/pkg/model"
	pkgopenapi "github.com/goliatone/go-modelgen/pkg/openapi"
	"github.com/goliatone/go-modelgen/pkg/testsupport"
)

func intPtr(v int) *int { return &v }

func employeeSchema() pkgopenapi.Schema {
	return pkgopenapi.Schema{
		Type:        "object",
		Description: "A person employed by the company.",
		Required:    []string{"id", "name"},
		Extensions:  map[string]any{pkgopenapi.ExtTableName: "employee"},
		Properties: map[string]pkgopenapi.Schema{
			"id": {
				Type:   "integer",
				Format: "int64",
				Extensions: map[string]any{
					pkgopenapi.ExtPrimaryKey:    true,
					pkgopenapi.ExtAutoincrement: true,
				},
			},
			"name":     {Type: "string", MaxLength: intPtr(120)},
			"division": {Type: "string", Extensions: map[string]any{pkgopenapi.ExtIndex: true}},
			"salary":   {Type: "number"},
			"active":   {Type: "boolean", Default: true},
			"hired":    {Type: "string", Format: "date-time"},
		},
	}
}

func TestBuildTranslatesSchema(t *testing.T) {
	t.Parallel()

	builder := New(Options{})
	got, err := builder.Build("Employee", pkgopenapi.SchemaIndex{"Employee": employeeSchema()})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := &pkgmodel.Model{
		Name:        "Employee",
		Table:       "employee",
		Description: "A person employed by the company.",
		Columns: []pkgmodel.Column{
			{Name: "id", Type: pkgmodel.ColumnTypeBigInt, PrimaryKey: true, Autoincrement: true},
			{Name: "active", Type: pkgmodel.ColumnTypeBoolean, Nullable: true, Default: true},
			{Name: "division", Type: pkgmodel.ColumnTypeText, Nullable: true, Index: true},
			{Name: "hired", Type: pkgmodel.ColumnTypeDateTime, Nullable: true},
			{Name: "name", Type: pkgmodel.ColumnTypeVarchar, Size: 120},
			{Name: "salary", Type: pkgmodel.ColumnTypeFloat, Nullable: true},
		},
	}
	testsupport.DiffModels(t, want, got)
}

func TestBuildDefaultsTableNameToSnakeCase(t *testing.T) {
	t.Parallel()

	index := pkgopenapi.SchemaIndex{
		"EmployeeDivision": {
			Type: "object",
			Properties: map[string]pkgopenapi.Schema{
				"id": {Type: "integer"},
			},
		},
	}

	m, err := New(Options{}).Build("EmployeeDivision", index)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if m.Table != "employee_division" {
		t.Fatalf("table = %q, want employee_division", m.Table)
	}
}

func TestBuildUnknownSchema(t *testing.T) {
	t.Parallel()

	_, err := New(Options{}).Build("Missing", pkgopenapi.SchemaIndex{})
	if err == nil || !strings.Contains(err.Error(), `"Missing"`) {
		t.Fatalf("err = %v, want unknown-schema error naming the schema", err)
	}
}

func TestBuildResolvesTopLevelAlias(t *testing.T) {
	t.Parallel()

	index := pkgopenapi.SchemaIndex{
		"Employee": employeeSchema(),
		"Worker":   {Ref: "#/components/schemas/Employee"},
	}

	m, err := New(Options{}).Build("Worker", index)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if m.Name != "Worker" {
		t.Fatalf("name = %q, want Worker", m.Name)
	}
	if m.Table != "employee" {
		t.Fatalf("table = %q, want employee (from the aliased schema)", m.Table)
	}
}

func TestBuildAliasOverridesTableName(t *testing.T) {
	t.Parallel()

	index := pkgopenapi.SchemaIndex{
		"Employee": employeeSchema(),
		"Worker": {
			Ref:        "#/components/schemas/Employee",
			Extensions: map[string]any{pkgopenapi.ExtTableName: "worker"},
		},
	}

	m, err := New(Options{}).Build("Worker", index)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if m.Table != "worker" {
		t.Fatalf("table = %q, want worker (alias override)", m.Table)
	}

	// The merge works on a copy; the shared index entry keeps its own name.
	if got := index["Employee"].Extensions[pkgopenapi.ExtTableName]; got != "employee" {
		t.Fatalf("aliased schema mutated, x-tablename = %v", got)
	}
}

func TestBuildRejectsCircularAlias(t *testing.T) {
	t.Parallel()

	index := pkgopenapi.SchemaIndex{
		"A": {Ref: "#/components/schemas/B"},
		"B": {Ref: "#/components/schemas/A"},
	}

	_, err := New(Options{}).Build("A", index)
	if err == nil || !strings.Contains(err.Error(), "circular") {
		t.Fatalf("err = %v, want circular reference error", err)
	}
}

func TestBuildErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		schema  pkgopenapi.Schema
		wantSub string
	}{
		{
			name:    "empty definition",
			schema:  pkgopenapi.Schema{},
			wantSub: "requires a type, ref, or properties",
		},
		{
			name:    "non object schema",
			schema:  pkgopenapi.Schema{Type: "array"},
			wantSub: "must be an object",
		},
		{
			name:    "no properties",
			schema:  pkgopenapi.Schema{Type: "object"},
			wantSub: "no properties",
		},
		{
			name: "nested object without x-json",
			schema: pkgopenapi.Schema{
				Type: "object",
				Properties: map[string]pkgopenapi.Schema{
					"address": {Type: "object"},
				},
			},
			wantSub: "require x-json",
		},
		{
			name: "property reference",
			schema: pkgopenapi.Schema{
				Type: "object",
				Properties: map[string]pkgopenapi.Schema{
					"division": {Ref: "#/components/schemas/Division"},
				},
			},
			wantSub: "references are not supported",
		},
		{
			name: "non boolean extension",
			schema: pkgopenapi.Schema{
				Type: "object",
				Properties: map[string]pkgopenapi.Schema{
					"id": {Type: "integer", Extensions: map[string]any{pkgopenapi.ExtPrimaryKey: "yes"}},
				},
			},
			wantSub: "must be a boolean",
		},
		{
			name: "autoincrement on string",
			schema: pkgopenapi.Schema{
				Type: "object",
				Properties: map[string]pkgopenapi.Schema{
					"id": {Type: "string", Extensions: map[string]any{
						pkgopenapi.ExtPrimaryKey:    true,
						pkgopenapi.ExtAutoincrement: true,
					}},
				},
			},
			wantSub: "requires an integer type",
		},
		{
			name: "malformed foreign key",
			schema: pkgopenapi.Schema{
				Type: "object",
				Properties: map[string]pkgopenapi.Schema{
					"division": {Type: "integer", Extensions: map[string]any{
						pkgopenapi.ExtForeignKey: "division",
					}},
				},
			},
			wantSub: "table.column",
		},
		{
			name: "bad tablename extension",
			schema: pkgopenapi.Schema{
				Type:       "object",
				Extensions: map[string]any{pkgopenapi.ExtTableName: 7},
				Properties: map[string]pkgopenapi.Schema{
					"id": {Type: "integer"},
				},
			},
			wantSub: "non-empty string",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(Options{}).Build("Broken", pkgopenapi.SchemaIndex{"Broken": tc.schema})
			if err == nil || !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("err = %v, want substring %q", err, tc.wantSub)
			}
		})
	}
}

func TestBuildForeignKeyAndJSONColumns(t *testing.T) {
	t.Parallel()

	index := pkgopenapi.SchemaIndex{
		"Employee": {
			Type: "object",
			Properties: map[string]pkgopenapi.Schema{
				"division_id": {Type: "integer", Extensions: map[string]any{
					pkgopenapi.ExtForeignKey: "division.id",
				}},
				"settings": {Type: "object", Extensions: map[string]any{
					pkgopenapi.ExtJSON: true,
				}},
			},
		},
	}

	m, err := New(Options{}).Build("Employee", index)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	division, _ := m.Column("division_id")
	if division.ForeignKey == nil || division.ForeignKey.Table != "division" || division.ForeignKey.Column != "id" {
		t.Fatalf("foreign key mapped incorrectly: %+v", division.ForeignKey)
	}

	settings, _ := m.Column("settings")
	if settings.Type != pkgmodel.ColumnTypeJSON {
		t.Fatalf("settings type = %q, want JSON", settings.Type)
	}
}

func TestSnakeCase(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Employee":          "employee",
		"EmployeeDivision":  "employee_division",
		"employee":          "employee",
		"employee division": "employee_division",
		"Employee-Division": "employee_division",
	}
	for in, want := range cases {
		if got := SnakeCase(in); got != want {
			t.Errorf("SnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
