package infrastructure

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"strconv"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSessionToken(t *testing.T) {
	token, err := GenerateSessionToken()
	require.NoError(t, err)
	assert.Len(t, token, 64)

	_, err = hex.DecodeString(token)
	assert.NoError(t, err, "token must be hex-encoded")

	other, err := GenerateSessionToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestWithTransactionCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = WithTransaction(db, context.Background(), func(tx *sql.Tx) error {
		_, err := tx.Exec("UPDATE users SET name = $1", "x")
		return err
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransactionReportsCommitFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	err = WithTransaction(db, context.Background(), func(tx *sql.Tx) error {
		return nil
	})
	assert.Error(t, err, "a failed commit must not look like success")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransactionRollsBackOnOperationError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()

	err = WithTransaction(db, context.Background(), func(tx *sql.Tx) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateOTPCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateOTPCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}
