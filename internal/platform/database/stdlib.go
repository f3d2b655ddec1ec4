package database

import (
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
)

// StdDB returns a database/sql handle sharing db's connections, for tools
// such as goose that only speak database/sql. The handle lives as long as
// db; callers should not close it.
func StdDB(db DB) (*sql.DB, error) {
	switch d := db.(type) {
	case *PGXAdapter:
		return stdlib.OpenDBFromPool(d.pool), nil
	case *SQLXAdapter:
		return d.db.DB, nil
	}
	return nil, fmt.Errorf("no database/sql handle for %T", db)
}
