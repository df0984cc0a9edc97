package model

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAll(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	dialect, _ := DialectByName("sqlite")

	base := NewBase()
	require.NoError(t, base.Register(employeeModel()))

	tableSQL, err := CreateTableSQL(employeeModel(), dialect)
	require.NoError(t, err)

	mock.ExpectExec(tableSQL).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX "ix_employee_division" ON "employee" ("division")`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, base.CreateAll(context.Background(), db, dialect))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAllStopsOnExecError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	dialect, _ := DialectByName("sqlite")

	base := NewBase()
	require.NoError(t, base.Register(employeeModel()))

	tableSQL, err := CreateTableSQL(employeeModel(), dialect)
	require.NoError(t, err)

	mock.ExpectExec(tableSQL).WillReturnError(assert.AnError)

	err = base.CreateAll(context.Background(), db, dialect)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `create table "employee"`)
}

func TestCreateAllValidatesArguments(t *testing.T) {
	t.Parallel()

	dialect, _ := DialectByName("sqlite")
	base := NewBase()

	assert.Error(t, base.CreateAll(context.Background(), nil, dialect))

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.Error(t, base.CreateAll(context.Background(), db, nil))
}
