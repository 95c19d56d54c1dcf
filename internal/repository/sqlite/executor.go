package sqlite

import (
	"context"
	"database/sql"

	"fanfic/internal/domain/repositories"
)

// GetExecutor returns the transaction stored in ctx, or db when there is none.
func GetExecutor(ctx context.Context, db *sql.DB) repositories.SQLTX {
	if tx := repositories.GetSQLTx(ctx); tx != nil {
		return tx
	}
	return db
}
