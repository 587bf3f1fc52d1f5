package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrInvalidRole    = errors.New("role must be one of admin, employee")
	ErrInvalidStatus  = errors.New("status must be one of Pending, Approved, Rejected")
	ErrUnknownUser    = errors.New("user_id does not reference an existing user")
	ErrUserHasLeaves  = errors.New("user has leave applications")
)

type violation int

const (
	violationNone violation = iota
	violationUnique
	violationCheck
	violationForeignKey
)

// MySQL server error numbers.
const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
	mysqlCheckConstraint = 3819
)

// classify reports which integrity constraint, if any, a driver error comes from.
func classify(err error) violation {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return violationUnique
		case sqlite3.ErrConstraintCheck:
			return violationCheck
		case sqlite3.ErrConstraintForeignKey:
			return violationForeignKey
		}
		return violationNone
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlDuplicateEntry:
			return violationUnique
		case mysqlCheckConstraint:
			return violationCheck
		case mysqlRowIsReferenced, mysqlNoReferencedRow:
			return violationForeignKey
		}
	}
	return violationNone
}

// withTx runs fn in a transaction, committing on success and rolling back on error or panic.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("[Repo] rollback failed: %v (original error: %v)", rbErr, err)
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("commit transaction: %w", cErr)
		}
	}()
	return fn(tx)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
