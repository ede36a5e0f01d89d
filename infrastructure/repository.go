package infrastructure

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/rs/zerolog/log"
)

// WithTransaction handles a database transaction and executes the given
// operation. The error return is named so the deferred commit can report its
// failure to the caller.
func WithTransaction(db *sql.DB, ctx context.Context, operation func(*sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p) // re-throw panic after Rollback
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Ctx(ctx).Error().Err(rbErr).Msg("transaction rollback failed")
			}
		} else {
			err = tx.Commit()
		}
	}()

	err = operation(tx)
	return err
}

// GenerateSessionToken returns 32 bytes of crypto/rand entropy, hex encoded.
// The token carries no structure; it is only a lookup key into the sessions table.
func GenerateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GenerateOTPCode returns a random 6-digit one-time code.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
