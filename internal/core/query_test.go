package core

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestEnsureTerminator_AppendsWhenMissing(t *testing.T) {
	require.Equal(t, "SELECT 1;", EnsureTerminator("SELECT 1"))
}

func TestEnsureTerminator_KeepsExistingTerminator(t *testing.T) {
	require.Equal(t, "SELECT 1;", EnsureTerminator("SELECT 1;"))
	// A terminator hidden behind trailing whitespace still counts.
	require.Equal(t, "SELECT 1; \n", EnsureTerminator("SELECT 1; \n"))
}

func TestEnsureTerminator_Idempotent(t *testing.T) {
	once := EnsureTerminator("SELECT 1")
	require.Equal(t, once, EnsureTerminator(once))
}

func TestExpandValues(t *testing.T) {
	stmt, err := ExpandValues("INSERT INTO t (id, name) VALUES %s;", 2, 2)
	require.NoError(t, err)
	require.Equal(t, "INSERT INTO t (id, name) VALUES ($1,$2),($3,$4);", stmt)
}

func TestExpandValues_SingleRow(t *testing.T) {
	stmt, err := ExpandValues("INSERT INTO t VALUES %s;", 1, 3)
	require.NoError(t, err)
	require.Equal(t, "INSERT INTO t VALUES ($1,$2,$3);", stmt)
}

func TestExpandValues_RejectsMissingMarker(t *testing.T) {
	_, err := ExpandValues("INSERT INTO t VALUES (1);", 1, 1)
	require.Error(t, err)
}

func TestExpandValues_RejectsMultipleMarkers(t *testing.T) {
	_, err := ExpandValues("INSERT INTO t VALUES %s, %s;", 1, 1)
	require.Error(t, err)
}

func TestCollect_AllRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM t`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "a").
			AddRow(2, "b").
			AddRow(3, "c"))

	rows, err := db.Query("SELECT * FROM t;")
	require.NoError(t, err)
	defer rows.Close()

	result, columns, err := Collect(rows, -1)
	require.NoError(t, err)
	require.Equal(t, []string{"id", "name"}, columns)
	require.Len(t, result, 3)
	require.EqualValues(t, 2, result[1][0])
	require.Equal(t, "b", result[1][1])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollect_StopsAtLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM t`).WillReturnRows(
		sqlmock.NewRows([]string{"id"}).
			AddRow(1).
			AddRow(2).
			AddRow(3))

	rows, err := db.Query("SELECT * FROM t;")
	require.NoError(t, err)
	defer rows.Close()

	result, columns, err := Collect(rows, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"id"}, columns)
	require.Len(t, result, 2)
}
