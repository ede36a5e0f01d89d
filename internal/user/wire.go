package user

import (
	"database/sql"

	"github.com/google/wire"
)

// ProvideUserStorage is a Wire provider function that creates a PostgresStorage
func ProvideUserStorage(db *sql.DB) *PostgresStorage {
	return NewUserPostgresStorage(db)
}

var Set = wire.NewSet(ProvideUserStorage)
