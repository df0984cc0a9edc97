package model

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// Base is the shared registry all generated models are attached to, the
// counterpart of a declarative base: models registered on the same Base share
// one mapping namespace, and a second model for an already claimed table is
// rejected.
type Base struct {
	mu      sync.RWMutex
	byTable map[string]*Model
	order   []*Model
}

// NewBase constructs an empty registry.
func NewBase() *Base {
	return &Base{byTable: make(map[string]*Model)}
}

// Register attaches a model to the base. Registering a second model for the
// same table fails, which is what makes the factory's "same name, identical
// model" invariant observable.
func (b *Base) Register(m *Model) error {
	if m == nil {
		return fmt.Errorf("model: cannot register a nil model")
	}
	if m.Table == "" {
		return fmt.Errorf("model: model %q has no table name", m.Name)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.byTable[m.Table]; ok {
		return fmt.Errorf("model: table %q is already registered by schema %q", m.Table, existing.Name)
	}
	b.byTable[m.Table] = m
	b.order = append(b.order, m)
	return nil
}

// Get returns the model registered for a table.
func (b *Base) Get(table string) (*Model, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	m, ok := b.byTable[table]
	return m, ok
}

// Models returns the registered models in registration order.
func (b *Base) Models() []*Model {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]*Model(nil), b.order...)
}

// Len reports the number of registered models.
func (b *Base) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}

// CreateAll emits CREATE TABLE (and index) statements for every registered
// model, in registration order, against the given database handle.
func (b *Base) CreateAll(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if db == nil {
		return fmt.Errorf("model: database handle is required")
	}
	if dialect == nil {
		return fmt.Errorf("model: dialect is required")
	}

	for _, m := range b.Models() {
		stmt, err := CreateTableSQL(m, dialect)
		if err != nil {
			return fmt.Errorf("model: table %q: %w", m.Table, err)
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("model: create table %q: %w", m.Table, err)
		}
		for _, idx := range CreateIndexSQL(m, dialect) {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return fmt.Errorf("model: create index on %q: %w", m.Table, err)
			}
		}
	}
	return nil
}
