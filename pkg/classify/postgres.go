package classify

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/StricklySoft/stricklysoft-fault/pkg/fault"
)

const systemPostgres = "postgres"

// Postgres classifies an error returned by pgx. Server-reported errors
// ([*pgconn.PgError]) are resolved against the embedded SQLSTATE table and
// annotated with the state code, severity, and — when the server reported
// them — constraint and table names. [pgx.ErrNoRows] classifies as
// not_found, context errors as timeout or canceled, and anything else as
// internal. If err is nil, Postgres returns nil.
//
// Example:
//
//	tag, err := pool.Exec(ctx, insertSQL, args...)
//	if err != nil {
//	    return classify.Postgres(err, "insert user failed")
//	}
func Postgres(err error, message string) *fault.Error {
	if err == nil {
		return nil
	}
	if kind, ok := contextKind(err); ok {
		return classified(err, message, systemPostgres, kind, Retryable(kind))
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return classified(err, message, systemPostgres, KindNotFound, false)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		kind, retryable := kindForSQLState(pgErr.Code)
		extra := map[string]any{
			"pg.sqlstate": pgErr.Code,
			"pg.severity": pgErr.Severity,
		}
		if pgErr.ConstraintName != "" {
			extra["pg.constraint"] = pgErr.ConstraintName
		}
		if pgErr.TableName != "" {
			extra["pg.table"] = pgErr.TableName
		}
		return classified(err, message, systemPostgres, kind, retryable).Ctx(extra)
	}

	return classified(err, message, systemPostgres, KindInternal, false)
}
