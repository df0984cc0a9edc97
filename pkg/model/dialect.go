package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Dialect renders the database-specific fragments of DDL emission. Concrete
// dialects register themselves in the package registry so callers can resolve
// them by name.
type Dialect interface {
	Name() string
	QuoteIdent(name string) string
	// ColumnType maps a column onto the dialect's native type name,
	// accounting for autoincrement serials where the dialect uses them.
	ColumnType(c Column) string
	// AutoincrementClause returns the inline clause appended after PRIMARY
	// KEY, or "" when the dialect encodes autoincrement in the type.
	AutoincrementClause(c Column) string
	// Literal renders a default value as a SQL literal.
	Literal(value any) (string, error)
}

var (
	dialectsMu sync.RWMutex
	dialects   = make(map[string]Dialect)
)

// RegisterDialect adds a dialect to the global registry. Built-in dialects
// register themselves when the package is loaded.
func RegisterDialect(d Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[strings.ToLower(d.Name())] = d
}

// DialectByName returns a registered dialect.
func DialectByName(name string) (Dialect, bool) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[strings.ToLower(name)]
	return d, ok
}

// Dialects returns all registered dialect names, sorted.
func Dialects() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	RegisterDialect(SQLite{})
	RegisterDialect(Postgres{})
}

// SQLite is the built-in sqlite dialect.
type SQLite struct{}

func (SQLite) Name() string { return "sqlite" }

func (SQLite) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (SQLite) ColumnType(c Column) string {
	switch c.Type {
	case ColumnTypeInteger, ColumnTypeBigInt:
		return "INTEGER"
	case ColumnTypeFloat:
		return "REAL"
	case ColumnTypeVarchar:
		if c.Size > 0 {
			return fmt.Sprintf("VARCHAR(%d)", c.Size)
		}
		return "TEXT"
	case ColumnTypeJSON:
		return "TEXT"
	default:
		return string(c.Type)
	}
}

func (SQLite) AutoincrementClause(c Column) string {
	if c.Autoincrement && c.PrimaryKey {
		return " AUTOINCREMENT"
	}
	return ""
}

func (SQLite) Literal(value any) (string, error) {
	return literal(value, "1", "0")
}

// Postgres is the built-in postgresql dialect.
type Postgres struct{}

func (Postgres) Name() string { return "postgres" }

func (Postgres) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (Postgres) ColumnType(c Column) string {
	if c.Autoincrement {
		if c.Type == ColumnTypeBigInt {
			return "BIGSERIAL"
		}
		return "SERIAL"
	}
	switch c.Type {
	case ColumnTypeFloat:
		return "DOUBLE PRECISION"
	case ColumnTypeDateTime:
		return "TIMESTAMP"
	case ColumnTypeBinary:
		return "BYTEA"
	case ColumnTypeJSON:
		return "JSONB"
	case ColumnTypeVarchar:
		if c.Size > 0 {
			return fmt.Sprintf("VARCHAR(%d)", c.Size)
		}
		return "TEXT"
	default:
		return string(c.Type)
	}
}

func (Postgres) AutoincrementClause(Column) string { return "" }

func (Postgres) Literal(value any) (string, error) {
	return literal(value, "TRUE", "FALSE")
}

func literal(value any, boolTrue, boolFalse string) (string, error) {
	switch v := value.(type) {
	case nil:
		return "NULL", nil
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'", nil
	case bool:
		if v {
			return boolTrue, nil
		}
		return boolFalse, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("model: unsupported default literal %T", value)
	}
}
