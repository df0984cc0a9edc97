package model

import (
	"fmt"
	"strings"
)

// CreateTableSQL renders the CREATE TABLE statement for a model. Index
// columns are emitted separately by CreateIndexSQL.
func CreateTableSQL(m *Model, dialect Dialect) (string, error) {
	if m == nil {
		return "", fmt.Errorf("model is required")
	}
	if len(m.Columns) == 0 {
		return "", fmt.Errorf("model %q has no columns", m.Name)
	}

	pk := m.PrimaryKey()
	inlinePK := len(pk) == 1

	var defs []string
	for _, c := range m.Columns {
		def, err := columnSQL(c, dialect, inlinePK)
		if err != nil {
			return "", fmt.Errorf("column %q: %w", c.Name, err)
		}
		defs = append(defs, def)
	}

	if len(pk) > 1 {
		quoted := make([]string, len(pk))
		for i, c := range pk {
			quoted[i] = dialect.QuoteIdent(c.Name)
		}
		defs = append(defs, "PRIMARY KEY ("+strings.Join(quoted, ", ")+")")
	}

	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	sb.WriteString(dialect.QuoteIdent(m.Table))
	sb.WriteString(" (\n  ")
	sb.WriteString(strings.Join(defs, ",\n  "))
	sb.WriteString("\n)")
	return sb.String(), nil
}

func columnSQL(c Column, dialect Dialect, inlinePK bool) (string, error) {
	var sb strings.Builder
	sb.WriteString(dialect.QuoteIdent(c.Name))
	sb.WriteString(" ")
	sb.WriteString(dialect.ColumnType(c))

	if c.PrimaryKey && inlinePK {
		sb.WriteString(" PRIMARY KEY")
		sb.WriteString(dialect.AutoincrementClause(c))
	} else if !c.Nullable {
		sb.WriteString(" NOT NULL")
	}
	if c.Unique && !c.PrimaryKey {
		sb.WriteString(" UNIQUE")
	}
	if c.Default != nil {
		lit, err := dialect.Literal(c.Default)
		if err != nil {
			return "", err
		}
		sb.WriteString(" DEFAULT ")
		sb.WriteString(lit)
	}
	if c.ForeignKey != nil {
		sb.WriteString(" REFERENCES ")
		sb.WriteString(dialect.QuoteIdent(c.ForeignKey.Table))
		sb.WriteString(" (")
		sb.WriteString(dialect.QuoteIdent(c.ForeignKey.Column))
		sb.WriteString(")")
	}
	return sb.String(), nil
}

// CreateIndexSQL renders CREATE INDEX statements for the columns flagged with
// x-index, in column order.
func CreateIndexSQL(m *Model, dialect Dialect) []string {
	if m == nil {
		return nil
	}
	var stmts []string
	for _, c := range m.Columns {
		if !c.Index || c.PrimaryKey {
			continue
		}
		name := fmt.Sprintf("ix_%s_%s", m.Table, c.Name)
		stmts = append(stmts, fmt.Sprintf(
			"CREATE INDEX %s ON %s (%s)",
			dialect.QuoteIdent(name),
			dialect.QuoteIdent(m.Table),
			dialect.QuoteIdent(c.Name),
		))
	}
	return stmts
}
