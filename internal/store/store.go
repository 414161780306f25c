// Package store persists contacts, special dates and reminders in MySQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/relationship-service/internal/errs"
)

// Store is a handle to the database together with its prepared statements.
type Store struct {
	db *sqlx.DB

	// selectAccount counts the accounts with a given id.
	selectAccount *sqlx.Stmt

	// selectUserAccount selects the account of a user.
	selectUserAccount *sqlx.Stmt

	// selectContactAccount selects the account of a contact.
	selectContactAccount *sqlx.Stmt

	// selectContact selects a contact within an account.
	selectContact *sqlx.Stmt

	// selectSpecialDate selects a special date within an account.
	selectSpecialDate *sqlx.Stmt

	// selectReminder selects a reminder within an account.
	selectReminder *sqlx.Stmt
}

// Open opens a MySQL connection pool for the given DSN.
func Open(dsn string) (*sql.DB, error) {
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return sqlDB, nil
}

// New wraps the specified sql database with sqlx and prepares all statements. The database
// argument can be a real database for production use or a mock database within unit tests.
func New(sqlDB *sql.DB) (*Store, error) {
	s := &Store{db: sqlx.NewDb(sqlDB, "mysql")}

	// Prepared statements offer a significant speed increase if executed many times.
	var err error
	if s.selectAccount, err = s.db.Preparex(`
		SELECT COUNT(*) FROM accounts WHERE id = ?
	`); err != nil {
		return nil, fmt.Errorf("prepare account lookup: %w", err)
	}
	if s.selectUserAccount, err = s.db.Preparex(`
		SELECT account_id FROM users WHERE id = ?
	`); err != nil {
		return nil, fmt.Errorf("prepare user lookup: %w", err)
	}
	if s.selectContactAccount, err = s.db.Preparex(`
		SELECT account_id FROM contacts WHERE id = ?
	`); err != nil {
		return nil, fmt.Errorf("prepare contact lookup: %w", err)
	}
	if s.selectContact, err = s.db.Preparex(`
		SELECT ` + contactColumns + `
		FROM contacts WHERE id = ? AND account_id = ?
	`); err != nil {
		return nil, fmt.Errorf("prepare contact select: %w", err)
	}
	if s.selectSpecialDate, err = s.db.Preparex(`
		SELECT ` + specialDateColumns + `
		FROM special_dates WHERE id = ? AND account_id = ?
	`); err != nil {
		return nil, fmt.Errorf("prepare special date select: %w", err)
	}
	if s.selectReminder, err = s.db.Preparex(`
		SELECT ` + reminderColumns + `
		FROM reminders WHERE id = ? AND account_id = ?
	`); err != nil {
		return nil, fmt.Errorf("prepare reminder select: %w", err)
	}
	return s, nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the prepared statements and the connection pool.
func (s *Store) Close() error {
	for _, stmt := range []*sqlx.Stmt{
		s.selectAccount, s.selectUserAccount, s.selectContactAccount,
		s.selectContact, s.selectSpecialDate, s.selectReminder,
	} {
		_ = stmt.Close()
	}
	return s.db.Close()
}

// AccountExists reports whether an account with the given id exists.
func (s *Store) AccountExists(ctx context.Context, accountId int64) (bool, error) {
	var count int
	if err := s.selectAccount.GetContext(ctx, &count, accountId); err != nil {
		return false, err
	}
	return count > 0, nil
}

// UserAccount returns the id of the account the user belongs to.
func (s *Store) UserAccount(ctx context.Context, userId int64) (int64, error) {
	var accountId int64
	err := s.selectUserAccount.GetContext(ctx, &accountId, userId)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("user %d: %w", userId, errs.ErrNotFound)
	}
	return accountId, err
}

// ContactAccount returns the id of the account the contact belongs to.
func (s *Store) ContactAccount(ctx context.Context, contactId int64) (int64, error) {
	var accountId int64
	err := s.selectContactAccount.GetContext(ctx, &accountId, contactId)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("contact %d: %w", contactId, errs.ErrNotFound)
	}
	return accountId, err
}

// Tx is a unit of work. All mutations of a birthday update go through one Tx.
type Tx struct {
	tx *sqlx.Tx
}

// WithinTx runs fn inside a database transaction. The transaction is committed if fn returns nil
// and rolled back otherwise.
func (s *Store) WithinTx(ctx context.Context, fn func(*Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(&Tx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
