package model

// ColumnType is the simplified enum of relational column kinds the schema
// translation produces. Dialects map these onto their native type names.
type ColumnType string

const (
	ColumnTypeInteger  ColumnType = "INTEGER"
	ColumnTypeBigInt   ColumnType = "BIGINT"
	ColumnTypeFloat    ColumnType = "FLOAT"
	ColumnTypeText     ColumnType = "TEXT"
	ColumnTypeVarchar  ColumnType = "VARCHAR"
	ColumnTypeBoolean  ColumnType = "BOOLEAN"
	ColumnTypeDate     ColumnType = "DATE"
	ColumnTypeDateTime ColumnType = "DATETIME"
	ColumnTypeBinary   ColumnType = "BLOB"
	ColumnTypeJSON     ColumnType = "JSON"
)

// ForeignKey references a column on another table, parsed from the
// x-foreign-key "table.column" extension value.
type ForeignKey struct {
	Table  string
	Column string
}

// Column models one table column derived from a schema property.
type Column struct {
	Name          string
	Type          ColumnType
	Size          int // VARCHAR length when > 0
	Nullable      bool
	PrimaryKey    bool
	Autoincrement bool
	Unique        bool
	Index         bool
	Default       any
	ForeignKey    *ForeignKey
	Description   string
	Enum          []any
}

// Model is the table descriptor built per component schema. Once produced by
// the factory it is treated as immutable; callers compare models by pointer
// identity.
type Model struct {
	// Name is the component schema the model was built from.
	Name string
	// Table is the relational table name, from x-tablename or derived from
	// the schema name.
	Table       string
	Columns     []Column
	Description string
}

// Column returns the named column when present.
func (m *Model) Column(name string) (Column, bool) {
	for _, c := range m.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// PrimaryKey returns the columns flagged as primary key, in column order.
func (m *Model) PrimaryKey() []Column {
	var pk []Column
	for _, c := range m.Columns {
		if c.PrimaryKey {
			pk = append(pk, c)
		}
	}
	return pk
}
