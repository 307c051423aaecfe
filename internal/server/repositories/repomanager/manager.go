package repomanager

import (
	"context"
	"database/sql"

	"github.com/campuskit/campusauth/internal/dbx"
	"github.com/campuskit/campusauth/internal/server/repositories/accounts"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
}
