package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-password-history/internal/logger"
)

var (
	// ErrUserNotFound is returned when an operation references a user that does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrStoreUnavailable wraps every driver failure of the password history store.
	ErrStoreUnavailable = errors.New("password history store unavailable")
	// ErrUserAlreadyExists is returned when the username or email is taken.
	ErrUserAlreadyExists = errors.New("username or email already exists")
)

// SQLSTATE codes mapped to domain errors.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// queryExecer is satisfied by *sqlx.DB, *sqlx.Tx and *sqlx.Conn.
type queryExecer interface {
	sqlx.ExecerContext
	sqlx.QueryerContext
}

type lockedConnKey struct{}

// withLockedConn returns a context whose statements run on conn.
func withLockedConn(ctx context.Context, conn *sqlx.Conn) context.Context {
	return context.WithValue(ctx, lockedConnKey{}, conn)
}

// executor returns the transaction from ctx when present, then the connection
// holding the caller's advisory lock, otherwise db.
func executor(ctx context.Context, db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) queryExecer {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	if conn, ok := ctx.Value(lockedConnKey{}).(*sqlx.Conn); ok && conn != nil {
		return conn
	}
	return db
}

// logQuery logs a statement in a single line. Callers never pass password hashes in args.
func logQuery(query string, args []any, result any, err error) {
	logger.Log.Debugw("query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}
