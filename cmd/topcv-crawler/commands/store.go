package commands

import (
	"context"
	"database/sql"

	"topcv-crawler/internal/store/db"
	"topcv-crawler/lib/sqliteutil"
)

func openStore(ctx context.Context, config sqliteutil.Config) (*sql.DB, error) {
	database, err := config.OpenDB()
	if err != nil {
		return nil, err
	}
	err = sqliteutil.Migrate(ctx, database, db.Schema)
	if err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
