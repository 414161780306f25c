// Package storetest holds sqlmock expectations shared by the tests of the packages built on top of
// the store.
package storetest

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// Column lists of the tables as the store selects them.
var (
	ContactColumns     = []string{"id", "account_id", "name", "birthday_special_date_id", "birthday_reminder_id"}
	SpecialDateColumns = []string{"id", "account_id", "contact_id", "is_age_based", "is_year_unknown", "year", "month", "day", "created_at"}
	ReminderColumns    = []string{"id", "account_id", "contact_id", "special_date_id", "title", "frequency_type", "frequency_number", "schedule", "initial_date", "next_expected_date"}
)

// CreateMockObjects builds a mock database handle and a mock object for defining our expected SQL
// calls.
func CreateMockObjects(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	return db, mock
}

// ExpectPreparedStatements instructs the mock object to expect that the store prepares its
// statements.
func ExpectPreparedStatements(mock sqlmock.Sqlmock) {
	mock.ExpectPrepare("SELECT COUNT\\(\\*\\) FROM accounts")
	mock.ExpectPrepare("SELECT account_id FROM users")
	mock.ExpectPrepare("SELECT account_id FROM contacts")
	mock.ExpectPrepare("FROM contacts WHERE id = \\? AND account_id = \\?")
	mock.ExpectPrepare("FROM special_dates WHERE id = \\? AND account_id = \\?")
	mock.ExpectPrepare("FROM reminders WHERE id = \\? AND account_id = \\?")
}

// ExpectOwnership instructs the mock object to expect the three ownership lookups, in the order
// account, contact, author, each returning the given account.
func ExpectOwnership(mock sqlmock.Sqlmock, accountId, contactId, authorId, contactAccount, authorAccount int64) {
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM accounts").
		WithArgs(accountId).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT account_id FROM contacts").
		WithArgs(contactId).
		WillReturnRows(mock.NewRows([]string{"account_id"}).AddRow(contactAccount))
	mock.ExpectQuery("SELECT account_id FROM users").
		WithArgs(authorId).
		WillReturnRows(mock.NewRows([]string{"account_id"}).AddRow(authorAccount))
}

// ExpectLockContact instructs the mock object to expect the contact row to be locked and returns
// the given link values.
func ExpectLockContact(mock sqlmock.Sqlmock, accountId, contactId int64, name string, specialDateId, reminderId any) {
	mock.ExpectQuery("FROM contacts WHERE id = \\? AND account_id = \\? FOR UPDATE").
		WithArgs(contactId, accountId).
		WillReturnRows(mock.NewRows(ContactColumns).
			AddRow(contactId, accountId, name, specialDateId, reminderId))
}
