package rowstore

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewSQLStore(gdb), mock
}

func TestSQLStore_ReadAll(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM `sheet_rows` WHERE sheet = .+ ORDER BY row_idx").
		WillReturnRows(sqlmock.NewRows([]string{"sheet", "row_idx", "cells"}).
			AddRow("Products", 0, `["sku","current_stock"]`).
			AddRow("Products", 1, `["A1","5"]`))

	rows, err := store.ReadAll(context.Background(), "Products")
	assert.NoError(t, err)
	assert.Equal(t, [][]string{{"sku", "current_stock"}, {"A1", "5"}}, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_ReadAll_EmptyTable(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM `sheet_rows`").
		WillReturnRows(sqlmock.NewRows([]string{"sheet", "row_idx", "cells"}))

	rows, err := store.ReadAll(context.Background(), "Products")
	assert.NoError(t, err)
	assert.Nil(t, rows)
}

func TestSQLStore_ReadAll_MalformedCells(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM `sheet_rows`").
		WillReturnRows(sqlmock.NewRows([]string{"sheet", "row_idx", "cells"}).
			AddRow("Products", 0, `not-json`))

	_, err := store.ReadAll(context.Background(), "Products")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "malformed cells")
}

func TestSQLStore_WriteRange(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `sheet_rows`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := store.WriteRange(context.Background(), "SyncQueue", 2, [][]string{
		{"2026-01-02T10:00:00Z", "A1", "5", "true", "done", ""},
		{"2026-01-02T10:01:00Z", "B2", "3", "false", "error", "SKU B2 not found in Products"},
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Append(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COALESCE\\(MAX\\(row_idx\\) \\+ 1, 0\\) FROM `sheet_rows`").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3))
	mock.ExpectExec("INSERT INTO `sheet_rows`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Append(context.Background(), "Transactions", [][]string{
		{"2026-01-02T10:00:00Z", "amy", "A1", "MAIN", "-2", "sale", "", "api"},
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Replace(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `sheet_rows` WHERE sheet = .+").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("INSERT INTO `sheet_rows`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := store.Replace(context.Background(), "Products", [][]string{
		{"sku", "current_stock"},
		{"A1", "5"},
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Replace_EmptyClearsTable(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `sheet_rows` WHERE sheet = .+").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	err := store.Replace(context.Background(), "Products", nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
